package common

import (
	stdlog "log"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestSTDLogProxy(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	proxy := stdlog.New(&STDLogProxy{}, "", 0)
	proxy.Println("something from the standard logger")

	entries := hook.AllEntries()
	if !assert.Len(t, entries, 1) {
		return
	}

	assert.Equal(t, "something from the standard logger", entries[0].Message, "trailing newline is stripped")
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Contains(t, entries[0].Data, "stck")
}
