// Package usersettings tracks which users are known to the bot, one row per
// user keyed on the user id. Per guild member data does not belong here.
package usersettings

import (
	"emperror.dev/errors"
	"github.com/guildcal/guildcal/common"
)

var DBSchemas = []string{`
CREATE TABLE IF NOT EXISTS user_settings (
	user_id BIGINT PRIMARY KEY
);
`}

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "User settings",
		SysName:  "user_settings",
		Category: common.PluginCategorySettings,
	}
}

func RegisterPlugin() {
	common.RegisterDBSchemas("usersettings", DBSchemas...)
	common.RegisterPlugin(&Plugin{})
}

// Ensure registers the user, doing nothing if they are already known
func Ensure(userID int64) error {
	const q = `INSERT INTO user_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING;`

	_, err := common.PQ.Exec(q, userID)
	return errors.WithStackIf(err)
}

// Exists reports whether the user has a settings row
func Exists(userID int64) (b bool, err error) {
	const q = `SELECT EXISTS (SELECT 1 FROM user_settings WHERE user_id = $1);`

	err = common.PQ.QueryRow(q, userID).Scan(&b)
	return b, errors.WithStackIf(err)
}

// Delete forgets the user
func Delete(userID int64) error {
	const q = `DELETE FROM user_settings WHERE user_id = $1;`

	_, err := common.PQ.Exec(q, userID)
	return errors.WithStackIf(err)
}
