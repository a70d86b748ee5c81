package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/cli/alarms"
	"github.com/julianstephens/routineflow/internal/cli/logs"
	"github.com/julianstephens/routineflow/internal/cli/routines"
	"github.com/julianstephens/routineflow/internal/cli/settings"
	"github.com/julianstephens/routineflow/internal/cli/system"
	"github.com/julianstephens/routineflow/internal/cli/views"
	"github.com/julianstephens/routineflow/internal/config"
	"github.com/julianstephens/routineflow/internal/constants"
	errs "github.com/julianstephens/routineflow/internal/errors"
	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/notifier"
	"github.com/julianstephens/routineflow/internal/scheduler"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite file path or PostgreSQL connection string. Overrides ROUTINEFLOW_DB and the OS keyring. For PostgreSQL, keep the password out of the connection string." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize routineflow storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Routine  struct {
		Add      routines.RoutineAddCmd     `cmd:"" help:"Add a new routine."`
		List     routines.RoutineListCmd    `cmd:"" help:"List routines." default:"1"`
		Edit     routines.RoutineEditCmd    `cmd:"" help:"Edit an existing routine."`
		Delete   routines.RoutineDeleteCmd  `cmd:"" help:"Delete a routine and its logs."`
		Toggle   routines.RoutineToggleCmd  `cmd:"" help:"Activate or deactivate a routine."`
		Reorder  routines.RoutineReorderCmd `cmd:"" help:"Change the display order of routines."`
		Template struct {
			List routines.RoutineTemplateListCmd `cmd:"" help:"List built-in templates." default:"1"`
			Use  routines.RoutineTemplateUseCmd  `cmd:"" help:"Create a routine from a template."`
		} `cmd:"" help:"Browse routine templates."`
	} `cmd:"" help:"Manage routines."`
	Complete   logs.CompleteCmd   `cmd:"" help:"Mark a routine as done."`
	Uncomplete logs.UncompleteCmd `cmd:"" help:"Undo a completion."`
	Stats      views.StatsCmd     `cmd:"" help:"Show streaks, rates and insights."`
	Widget     views.WidgetCmd    `cmd:"" help:"Write the home-screen widget snapshot."`
	Alarms     struct {
		Plan alarms.AlarmsPlanCmd `cmd:"" help:"Show the alarm plan without applying it."`
		Sync alarms.AlarmsSyncCmd `cmd:"" help:"Reschedule every routine alarm."`
		List alarms.AlarmsListCmd `cmd:"" help:"List scheduled alarm triggers." default:"1"`
		Fire alarms.AlarmsFireCmd `cmd:"" help:"Deliver alarms due this minute."`
	} `cmd:"" help:"Manage routine alarms."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a database connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily routine tracker with streaks, alarms and a home-screen widget"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	// the config dir decides where the second .env lives
	base, err := config.FromEnv()
	if err != nil {
		errs.Fatal(err)
	}
	cfg, err := config.Load(config.DefaultEnvFiles(base.ConfigDir)...)
	if err != nil {
		errs.Fatal(err)
	}
	cfg = cfg.WithFlags(CLI.DB, CLI.Debug)

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		errs.Fatal(err)
	}
	logger.Debug("Configuration resolved", "db_source", cfg.DBSource, "config_dir", cfg.ConfigDir)

	store, err := cfg.OpenStore()
	if err != nil {
		errs.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Config:    cfg,
		Registry:  notifier.NewFileRegistry(cfg.ConfigDir),
		Notifier:  notifier.New(),
	}

	// init and the keyring commands manage storage themselves
	cmd := ctx.Command()
	if cmd != "init" && !strings.HasPrefix(cmd, "keyring") {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errs.Fatal(err)
	}
}
