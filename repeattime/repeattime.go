// Package repeattime holds the recurrence cadence shared by calendar events
// and scheduled messages, mirrored by the repeat_time enum in postgres.
package repeattime

import (
	"database/sql/driver"
	"time"

	"emperror.dev/errors"
)

type RepeatTime string

const (
	Daily   RepeatTime = "daily"
	Weekly  RepeatTime = "weekly"
	Monthly RepeatTime = "monthly"
	Yearly  RepeatTime = "yearly"
)

// All lists the valid cadences, in the same order as the enum labels.
// There is no "none" label, a non repeating row stores NULL instead.
var All = []RepeatTime{Daily, Weekly, Monthly, Yearly}

const createTypeStatement = `CREATE TYPE repeat_time AS ENUM ('daily', 'weekly', 'monthly', 'yearly')`

// DBSchemas is run through the schema init machinery, which skips the CREATE
// TYPE when the type is already present (postgres has no IF NOT EXISTS for types)
var DBSchemas = []string{createTypeStatement + `;`}

// GuardedCreateType is the same statement wrapped in a duplicate_object guard,
// for running directly against a database without the schema init machinery
const GuardedCreateType = `DO $$ BEGIN
` + createTypeStatement + `;
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`

var ErrUnknownRepeatTime = errors.NewPlain("unknown repeat time")

func Parse(s string) (RepeatTime, error) {
	r := RepeatTime(s)
	if !r.IsValid() {
		return "", ErrUnknownRepeatTime
	}

	return r, nil
}

func (r RepeatTime) IsValid() bool {
	switch r {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}

	return false
}

func (r RepeatTime) String() string {
	return string(r)
}

// Next returns the next occurrence after t. Monthly and yearly use AddDate,
// so a jan 31st monthly event normalizes into early march rather than failing.
func (r RepeatTime) Next(t time.Time) time.Time {
	switch r {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	}

	return t
}

func (r RepeatTime) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, ErrUnknownRepeatTime
	}

	return string(r), nil
}

func (r *RepeatTime) Scan(src interface{}) error {
	switch t := src.(type) {
	case string:
		*r = RepeatTime(t)
	case []byte:
		*r = RepeatTime(t)
	default:
		return errors.Errorf("cannot scan %T into RepeatTime", src)
	}

	if !r.IsValid() {
		return ErrUnknownRepeatTime
	}

	return nil
}

// NullRepeatTime is a RepeatTime that may be NULL, NULL meaning non repeating
type NullRepeatTime struct {
	RepeatTime RepeatTime
	Valid      bool
}

func From(r RepeatTime) NullRepeatTime {
	return NullRepeatTime{RepeatTime: r, Valid: true}
}

func (n NullRepeatTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}

	return n.RepeatTime.Value()
}

func (n *NullRepeatTime) Scan(src interface{}) error {
	if src == nil {
		n.RepeatTime, n.Valid = "", false
		return nil
	}

	err := n.RepeatTime.Scan(src)
	n.Valid = err == nil
	return err
}
