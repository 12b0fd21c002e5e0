package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticSource struct {
	name   string
	values map[string]interface{}
}

func (s *staticSource) GetValue(key string) interface{} {
	return s.values[key]
}

func (s *staticSource) Name() string {
	return s.name
}

func TestDefaultsAndTypes(t *testing.T) {
	m := NewConfigManager()
	optStr := m.RegisterOption("app.name", "", "guildcal")
	optInt := m.RegisterOption("app.conns", "", 3)
	optBool := m.RegisterOption("app.dry", "", false)

	m.Load()

	assert.Equal(t, "guildcal", optStr.GetString())
	assert.Equal(t, 3, optInt.GetInt())
	assert.False(t, optBool.GetBool())
	assert.Nil(t, optStr.ConfigSource, "defaults come from no source")
}

func TestLaterSourcesWin(t *testing.T) {
	m := NewConfigManager()
	opt := m.RegisterOption("app.host", "", "localhost")

	m.AddSource(&staticSource{name: "low", values: map[string]interface{}{"app.host": "low-host"}})
	m.AddSource(&staticSource{name: "high", values: map[string]interface{}{"app.host": "high-host"}})
	m.Load()

	assert.Equal(t, "high-host", opt.GetString())
	assert.Equal(t, "high", opt.ConfigSource.Name())
}

func TestStringValuesCoerced(t *testing.T) {
	m := NewConfigManager()
	optInt := m.RegisterOption("app.conns", "", 10)
	optBool := m.RegisterOption("app.enabled", "", false)

	m.AddSource(&staticSource{name: "env", values: map[string]interface{}{
		"app.conns":   "25",
		"app.enabled": "yes",
	}})
	m.Load()

	assert.Equal(t, 25, optInt.GetInt())
	assert.True(t, optBool.GetBool())
}

func TestEnvSourceKeyMapping(t *testing.T) {
	os.Setenv("GUILDCAL_PQHOST", "db.internal")
	defer os.Unsetenv("GUILDCAL_PQHOST")

	src := &EnvSource{}
	assert.Equal(t, "db.internal", src.GetValue("guildcal.pqhost"))
	assert.Nil(t, src.GetValue("guildcal.missing"))
}
