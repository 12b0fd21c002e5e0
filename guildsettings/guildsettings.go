// Package guildsettings stores per guild configuration: the command prefix
// and the pinned calendar message, one row per guild keyed on the guild id.
package guildsettings

import (
	"database/sql"
	"time"

	"emperror.dev/errors"
	"github.com/guildcal/guildcal/common"
	"github.com/karlseguin/rcache"
	"github.com/volatiletech/null/v8"
)

var logger = common.GetPluginLogger(&Plugin{})

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Guild settings",
		SysName:  "guild_settings",
		Category: common.PluginCategorySettings,
	}
}

func RegisterPlugin() {
	common.RegisterDBSchemas("guildsettings", DBSchemas...)
	common.RegisterPlugin(&Plugin{})
}

// GuildSettings is a single row in guild_settings, the zero value of the
// nullable columns means "not configured"
type GuildSettings struct {
	GuildID            int64       `db:"guild_id"`
	Prefix             null.String `db:"prefix"`
	CalendarMessageURL null.String `db:"calendar_message_url"`
}

var settingsCache = rcache.NewInt(settingsCacheFetcher, time.Minute)

// GetCached returns the settings for the guild through a short lived in
// process cache, invalidated whenever the row is written
func GetCached(guildID int64) *GuildSettings {
	return settingsCache.Get(int(guildID)).(*GuildSettings)
}

func settingsCacheFetcher(key int) interface{} {
	settings, err := Fetch(int64(key))
	if err != nil {
		logger.WithError(err).WithField("guild", key).Error("failed fetching guild settings")
		settings = &GuildSettings{GuildID: int64(key)}
	}

	return settings
}

// Fetch returns the settings row for the guild, or an empty settings struct
// if the guild never configured anything
func Fetch(guildID int64) (*GuildSettings, error) {
	const q = `SELECT guild_id, prefix, calendar_message_url FROM guild_settings WHERE guild_id = $1;`

	settings := &GuildSettings{}
	err := common.SQLX.Get(settings, q, guildID)
	if err == sql.ErrNoRows {
		return &GuildSettings{GuildID: guildID}, nil
	}

	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	return settings, nil
}

// Save upserts the full settings row
func Save(settings *GuildSettings) error {
	const q = `INSERT INTO guild_settings (guild_id, prefix, calendar_message_url)
	VALUES ($1, $2, $3)
	ON CONFLICT (guild_id)
	DO UPDATE SET prefix = excluded.prefix, calendar_message_url = excluded.calendar_message_url;`

	_, err := common.PQ.Exec(q, settings.GuildID, settings.Prefix, settings.CalendarMessageURL)
	if err != nil {
		return errors.WithStackIf(err)
	}

	invalidateCaches(settings.GuildID)
	return nil
}

// SetPrefix upserts only the prefix column, leaving the rest of the row alone
func SetPrefix(guildID int64, prefix string) error {
	const q = `INSERT INTO guild_settings (guild_id, prefix)
	VALUES ($1, $2)
	ON CONFLICT (guild_id)
	DO UPDATE SET prefix = excluded.prefix;`

	_, err := common.PQ.Exec(q, guildID, prefix)
	if err != nil {
		return errors.WithStackIf(err)
	}

	invalidateCaches(guildID)
	return nil
}

// SetCalendarMessageURL upserts only the calendar message url column,
// an invalid null.String clears it
func SetCalendarMessageURL(guildID int64, url null.String) error {
	const q = `INSERT INTO guild_settings (guild_id, calendar_message_url)
	VALUES ($1, $2)
	ON CONFLICT (guild_id)
	DO UPDATE SET calendar_message_url = excluded.calendar_message_url;`

	_, err := common.PQ.Exec(q, guildID, url)
	if err != nil {
		return errors.WithStackIf(err)
	}

	invalidateCaches(guildID)
	return nil
}

// Delete removes the guild's settings row, used when leaving a guild
func Delete(guildID int64) error {
	const q = `DELETE FROM guild_settings WHERE guild_id = $1;`

	_, err := common.PQ.Exec(q, guildID)
	if err != nil {
		return errors.WithStackIf(err)
	}

	invalidateCaches(guildID)
	return nil
}

func invalidateCaches(guildID int64) {
	settingsCache.Delete(int(guildID))
	invalidatePrefix(guildID)
}
