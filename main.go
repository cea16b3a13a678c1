package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/commands"
	"github.com/hay-kot/tzc/internal/core/config"
	"github.com/hay-kot/tzc/internal/core/logging"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tzcApp    = &workspace.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tzc",
		Usage:     "Compare wall-clock times across timezones",
		UsageText: "tzc [global options] command [command options]",
		Description: `tzc lines up the hours of your local timezone and a list of other zones so
a meeting time can be found at a glance.

Run 'tzc' with no arguments to open the interactive timeline.
Run 'tzc show' to print the current comparison.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TZC_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tzc.log)",
				Sources:     cli.EnvVars("TZC_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TZC_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TZC_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "tzc.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			name := "tui"
			if c.Args().Len() > 0 {
				name = c.Args().First()
			}
			ctx = logging.WithCommand(ctx, name)

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Validation ensures the theme exists.
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			opened, err := workspace.Open(cfg, log.Logger)
			if err != nil {
				return ctx, fmt.Errorf("open workspace: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*tzcApp = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := tzcApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}

			if tzcApp.Notices != nil {
				_ = tzcApp.Notices.Flush(os.Stderr)
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, tzcApp)

	app = tuiCmd.Register(app)
	app = commands.NewShowCmd(flags, tzcApp).Register(app)
	app = commands.NewAddCmd(flags, tzcApp).Register(app)
	app = commands.NewRmCmd(flags, tzcApp).Register(app)
	app = commands.NewLabelCmd(flags, tzcApp).Register(app)
	app = commands.NewZonesCmd(flags, tzcApp).Register(app)
	app = commands.NewCopyCmd(flags, tzcApp).Register(app)
	app = commands.NewPrefsCmd(flags, tzcApp).Register(app)
	app = commands.NewDoctorCmd(flags, tzcApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tzc --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
