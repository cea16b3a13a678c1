package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/logging"
	"github.com/hay-kot/tzc/internal/store/filewatch"
	"github.com/hay-kot/tzc/internal/tui"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *workspace.App

	noWatch      bool
	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *workspace.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload when another tzc process changes the selection",
			Sources:     cli.EnvVars("TZC_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TZC_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the interactive timeline",
		UsageText:   "tzc tui",
		Description: "Drag the hour strips to move through time, add zones with /, copy with c.",
		Flags:       cmd.Flags(),
		Action:      cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Str("url", profServer.URL()).Msg("profiler endpoint available")
	}

	ws := cmd.app.Workspace(ctx, time.Now)

	opts := tui.Options{
		Snap:      cmd.flags.Config.Snap(),
		Clipboard: tui.SystemClipboard{},
		Logger:    logging.Component("tui"),
	}

	if !cmd.noWatch {
		watcher, err := filewatch.New(cmd.flags.Config.DataDir, logging.Component("filewatch"))
		if err != nil {
			log.Warn().Err(err).Msg("file watcher unavailable")
			cmd.app.Notices.Printf("live reload disabled: %v", err)
		} else {
			defer func() { _ = watcher.Close() }()
			ch, err := watcher.Watch(ctx, cmd.app.StorePattern())
			if err != nil {
				return fmt.Errorf("watch store: %w", err)
			}
			opts.Watch = ch
		}
	}

	m := tui.New(ctx, ws, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
