package guildsettings

import (
	"strconv"

	"github.com/guildcal/guildcal/common"
	"github.com/mediocregopher/radix/v3"
)

// prefix lookups happen on every incoming message, so they get their own
// redis cache in front of postgres

const prefixCacheExpiry = 3600

func DefaultCommandPrefix() string {
	defaultPrefix := "-"
	if common.Testing {
		defaultPrefix = "("
	}

	return defaultPrefix
}

// GetCommandPrefix returns the guild's command prefix, going redis -> postgres
// -> default
func GetCommandPrefix(guildID int64) (string, error) {
	var prefix string
	err := common.RedisPool.Do(radix.Cmd(&prefix, "GET", prefixCacheKey(guildID)))
	if err == nil && prefix != "" {
		return prefix, nil
	}

	settings, err := Fetch(guildID)
	if err != nil {
		return DefaultCommandPrefix(), err
	}

	prefix = settings.Prefix.String
	if prefix == "" {
		prefix = DefaultCommandPrefix()
	}

	err = common.RedisPool.Do(radix.FlatCmd(nil, "SETEX", prefixCacheKey(guildID), prefixCacheExpiry, prefix))
	return prefix, err
}

// GetPrefixIgnoreError is for contexts where a fallback prefix beats an error
func GetPrefixIgnoreError(guildID int64) string {
	prefix, err := GetCommandPrefix(guildID)
	if err != nil {
		logger.WithError(err).WithField("guild", guildID).Error("failed fetching command prefix")
	}

	return prefix
}

func invalidatePrefix(guildID int64) {
	// tests run against a bare postgres database
	if common.RedisPool == nil {
		return
	}

	common.RedisPool.Do(radix.Cmd(nil, "DEL", prefixCacheKey(guildID)))
}

func prefixCacheKey(guildID int64) string {
	return "command_prefix:" + strconv.FormatInt(guildID, 10)
}
