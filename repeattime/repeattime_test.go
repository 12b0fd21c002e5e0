package repeattime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, v := range All {
		parsed, err := Parse(string(v))
		assert.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := Parse("fortnightly")
	assert.Equal(t, ErrUnknownRepeatTime, err)

	_, err = Parse("none")
	assert.Equal(t, ErrUnknownRepeatTime, err, "none is not a label, non repeating rows store NULL")
}

func TestNext(t *testing.T) {
	base := time.Date(2022, time.March, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 1), Daily.Next(base))
	assert.Equal(t, base.AddDate(0, 0, 7), Weekly.Next(base))
	assert.Equal(t, time.Date(2022, time.April, 15, 18, 30, 0, 0, time.UTC), Monthly.Next(base))
	assert.Equal(t, time.Date(2023, time.March, 15, 18, 30, 0, 0, time.UTC), Yearly.Next(base))
}

func TestNextMonthlyNormalizes(t *testing.T) {
	// jan 31st has no counterpart in february
	base := time.Date(2022, time.January, 31, 12, 0, 0, 0, time.UTC)
	next := Monthly.Next(base)
	assert.Equal(t, time.March, next.Month())
}

func TestNullRepeatTimeScan(t *testing.T) {
	var n NullRepeatTime
	assert.NoError(t, n.Scan(nil))
	assert.False(t, n.Valid)

	assert.NoError(t, n.Scan("weekly"))
	assert.True(t, n.Valid)
	assert.Equal(t, Weekly, n.RepeatTime)

	assert.Error(t, n.Scan("sometimes"))
}

func TestValue(t *testing.T) {
	v, err := Monthly.Value()
	assert.NoError(t, err)
	assert.Equal(t, "monthly", v)

	_, err = RepeatTime("bogus").Value()
	assert.Error(t, err)

	nv, err := NullRepeatTime{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, nv)
}
