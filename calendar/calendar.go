// Package calendar stores guild calendar events: named, optionally recurring
// entries owned by a guild and created by a user.
package calendar

import (
	"github.com/guildcal/guildcal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var logger = common.GetPluginLogger(&Plugin{})

var metricsEventsSaved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "guildcal_calendar_events_saved_total",
	Help: "Calendar events created or updated",
})

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Calendar",
		SysName:  "calendar",
		Category: common.PluginCategoryCalendar,
	}
}

// RegisterPlugin queues the schemas and registers the plugin. The repeat_time
// enum has to be registered before this, guild_events references it.
func RegisterPlugin() {
	common.RegisterDBSchemas("calendar", DBSchemas...)
	common.RegisterPlugin(&Plugin{})
}
