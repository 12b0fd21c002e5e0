package common

import (
	"github.com/sirupsen/logrus"
)

// GetPluginLogger returns a logger with the plugin's system name as a prefix field
func GetPluginLogger(plugin Plugin) *logrus.Entry {
	info := plugin.PluginInfo()
	return GetFixedPrefixLogger(info.SysName)
}

// GetFixedPrefixLogger returns a logger with the provided prefix field
func GetFixedPrefixLogger(prefix string) *logrus.Entry {
	return logrus.WithField("p", prefix)
}

// AddLogHook adds a hook to the global logger
func AddLogHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}

func SetLogFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

func SetLoggingLevel(level logrus.Level) {
	logrus.SetLevel(level)
}
