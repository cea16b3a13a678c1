package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/workspace"
)

type CopyCmd struct {
	flags *Flags
	app   *workspace.App

	at    string
	print bool
}

// NewCopyCmd creates a new copy command
func NewCopyCmd(flags *Flags, app *workspace.App) *CopyCmd {
	return &CopyCmd{flags: flags, app: app}
}

// Register adds the copy command to the application
func (cmd *CopyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "copy",
		Usage:     "Copy the displayed times to the clipboard",
		UsageText: "tzc copy [--at TIME] [--print]",
		Description: `Writes one "Label: MM/DD HH:MM" line per displayed timezone to the system
clipboard.`,
		Flags: []cli.Flag{
			atFlag(&cmd.at),
			&cli.BoolFlag{
				Name:        "print",
				Aliases:     []string{"p"},
				Usage:       "print the lines instead of copying them",
				Destination: &cmd.print,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CopyCmd) run(ctx context.Context, c *cli.Command) error {
	ws, err := loadWorkspace(ctx, cmd.app, cmd.at)
	if err != nil {
		return err
	}

	text := ws.CopyText()
	if cmd.print {
		_, err := fmt.Fprintln(c.Root().Writer, text)
		return err
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	lines := strings.Count(text, "\n") + 1
	_, _ = fmt.Fprintf(c.Root().Writer, "copied %d lines\n", lines)
	return nil
}
