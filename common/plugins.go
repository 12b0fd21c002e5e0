package common

var (
	Plugins []Plugin
)

type PluginCategory struct {
	Name string
}

var (
	PluginCategoryCore      = &PluginCategory{Name: "Core"}
	PluginCategorySettings  = &PluginCategory{Name: "Settings"}
	PluginCategoryCalendar  = &PluginCategory{Name: "Calendar"}
	PluginCategoryScheduler = &PluginCategory{Name: "Scheduler"}
)

type PluginInfo struct {
	Name     string // Human readable name of the plugin
	SysName  string // snake_case version of the name in lower case
	Category *PluginCategory
}

// Plugin represents a plugin, all plugins need to implement this at a bare minimum
type Plugin interface {
	PluginInfo() *PluginInfo
}

// RegisterPlugin registers a plugin, should be called when the process is starting up
func RegisterPlugin(plugin Plugin) {
	Plugins = append(Plugins, plugin)
	logger.Info("Registered plugin: " + plugin.PluginInfo().SysName)
}
