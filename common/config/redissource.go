package config

import (
	"strings"

	"github.com/mediocregopher/radix/v3"
	"github.com/sirupsen/logrus"
)

// RedisConfigSource reads runtime overrides from the guildcal_config hash
type RedisConfigSource struct {
	Pool *radix.Pool
}

func (rs *RedisConfigSource) GetValue(key string) interface{} {
	prefixStripped := strings.TrimPrefix(key, "guildcal.")

	var v string
	err := rs.Pool.Do(radix.Cmd(&v, "HGET", "guildcal_config", prefixStripped))
	if err != nil {
		logrus.WithError(err).Error("[redis_config_source] failed retrieving value")
		return nil
	}

	if v == "" {
		return nil
	}

	return v
}

func (rs *RedisConfigSource) Name() string {
	return "redis"
}
