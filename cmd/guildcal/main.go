package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/guildcal/guildcal/calendar"
	"github.com/guildcal/guildcal/common"
	"github.com/guildcal/guildcal/guildsettings"
	"github.com/guildcal/guildcal/repeattime"
	"github.com/guildcal/guildcal/scheduler"
	"github.com/guildcal/guildcal/usersettings"
	log "github.com/sirupsen/logrus"
)

var (
	flagDryRun       bool
	flagVersion      bool
	flagLogTimestamp bool
)

func init() {
	flag.BoolVar(&flagDryRun, "dry", false, "Load config and register plugins without touching the database")
	flag.BoolVar(&flagVersion, "version", false, "Print the version and exit")
	flag.BoolVar(&flagLogTimestamp, "ts", false, "Set to include timestamps in log")
}

func main() {
	flag.Parse()

	if flagVersion {
		fmt.Println(common.VERSION)
		os.Exit(0)
	}

	common.AddLogHook(common.ContextHook{})
	common.SetLogFormatter(&log.TextFormatter{
		DisableTimestamp: !flagLogTimestamp,
		ForceColors:      common.Testing,
	})

	// libraries logging through the standard logger end up in logrus too
	stdlog.SetOutput(&common.STDLogProxy{})
	stdlog.SetFlags(0)

	log.Info("Starting guildcal schema bootstrap, version " + common.VERSION)

	err := common.CoreInit(true)
	if err != nil {
		log.WithError(err).Fatal("Failed running core init")
	}

	// registration order doubles as schema init order, the repeat_time enum
	// has to exist before the tables referencing it
	common.RegisterDBSchemas("repeattime", repeattime.DBSchemas...)
	guildsettings.RegisterPlugin()
	usersettings.RegisterPlugin()
	calendar.RegisterPlugin()
	scheduler.RegisterPlugin()

	if flagDryRun {
		log.Info("This is a dry run, exiting")
		return
	}

	err = common.Init()
	if err != nil {
		log.WithError(err).Fatal("Failed initializing the database")
	}

	log.Infof("Database schema up to date, %d plugins registered", len(common.Plugins))
}
