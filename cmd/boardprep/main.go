package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/cli/backups"
	"github.com/julianstephens/boardprep/internal/cli/journey"
	"github.com/julianstephens/boardprep/internal/cli/logs"
	"github.com/julianstephens/boardprep/internal/cli/plans"
	"github.com/julianstephens/boardprep/internal/cli/syllabus"
	"github.com/julianstephens/boardprep/internal/cli/system"
	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/constants"
	apperrors "github.com/julianstephens/boardprep/internal/errors"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/seed"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store location: a .db (SQLite) or .json file, a PostgreSQL connection string without credentials, a redis:// URL, 'keyring' or ':memory:'." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd      `cmd:"" help:"Initialize boardprep storage."`
	Migrate system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd       `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Status  journey.StatusCmd   `cmd:"" help:"Show the countdown and overall progress."`
	Start   journey.StartCmd    `cmd:"" help:"Start the board exam countdown."`
	Advice  journey.AdviceCmd   `cmd:"" help:"Ask the mentor for today's advice."`
	Reset   journey.ResetCmd    `cmd:"" help:"Erase all progress and start over."`
	Theme   journey.ThemeCmd    `cmd:"" help:"Show or change the dashboard theme."`
	Chapter syllabus.ChapterCmd `cmd:"" help:"Track chapter progress."`
	Weak    syllabus.WeakCmd    `cmd:"" help:"Manage weak subjects."`
	Log     logs.LogCmd         `cmd:"" help:"Track daily attendance."`
	Plan    plans.PlanCmd       `cmd:"" help:"Show today's study plan."`
	Now     plans.NowCmd        `cmd:"" help:"Show the current schedule block."`
	Papers  plans.PapersCmd     `cmd:"" help:"List previous year papers."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage progress backups."`
	Keyring  system.KeyringCmd `cmd:"" help:"Manage secrets in the OS keyring."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// selfLoading commands open the store themselves or never touch it
var selfLoading = map[string]bool{
	"init":       true,
	"migrate":    true,
	"doctor":     true,
	"keyring":    true,
	"debug path": true,
}

func needsLoad(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return true
	}
	if selfLoading[fields[0]] {
		return false
	}
	if len(fields) > 1 && selfLoading[fields[0]+" "+fields[1]] {
		return false
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("SSC board exam preparation tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	configDir, err := cli.ConfigDir(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}
	cli.LoadEnv(configDir)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store: store,
		Seed:  seed.MustLoad(),
		Clock: clock.Real(),
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}
