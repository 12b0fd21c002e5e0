// Package scheduler stores messages queued to be sent, and optionally resent,
// to a channel at a point in time. Firing them is the job of the bot process,
// this package only owns the rows.
package scheduler

import (
	"github.com/guildcal/guildcal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var logger = common.GetPluginLogger(&Plugin{})

var metricsMessagesQueued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "guildcal_scheduler_messages_queued_total",
	Help: "Scheduled messages created or updated",
})

var DBSchemas = []string{`
CREATE TABLE IF NOT EXISTS scheduled_messages (
	id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),

	guild_id BIGINT NOT NULL,
	channel_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,

	text TEXT NOT NULL,
	timestamp TIMESTAMP NOT NULL,
	repeat repeat_time
);
`, `
CREATE INDEX IF NOT EXISTS scheduled_messages_timestamp_idx ON scheduled_messages(timestamp);
`}

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Message scheduler",
		SysName:  "message_scheduler",
		Category: common.PluginCategoryScheduler,
	}
}

// RegisterPlugin queues the schemas and registers the plugin. The repeat_time
// enum has to be registered before this, scheduled_messages references it.
func RegisterPlugin() {
	common.RegisterDBSchemas("scheduler", DBSchemas...)
	common.RegisterPlugin(&Plugin{})
}
