package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/workspace"
)

type LabelCmd struct {
	flags *Flags
	app   *workspace.App
}

// NewLabelCmd creates a new label command
func NewLabelCmd(flags *Flags, app *workspace.App) *LabelCmd {
	return &LabelCmd{flags: flags, app: app}
}

// Register adds the label command to the application
func (cmd *LabelCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "label",
		Usage:       "Set or clear the custom label of a timezone",
		UsageText:   "tzc label <zone> [label...]",
		Description: "Without a label, or with a blank one, the custom label is removed.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *LabelCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return errors.New("no zone given")
	}

	ws := cmd.app.Workspace(ctx, nil)
	id := zone.ID(c.Args().First())
	label := strings.Join(c.Args().Tail(), " ")

	if err := setLabel(ctx, ws, id, label); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s: %s\n", id, ws.Label(id))
	return nil
}

func setLabel(ctx context.Context, ws *workspace.Workspace, id zone.ID, label string) error {
	if !slices.Contains(ws.Zones(), id) {
		return fmt.Errorf("%s is not selected", id)
	}
	ws.SetLabel(ctx, id, label)
	return nil
}
