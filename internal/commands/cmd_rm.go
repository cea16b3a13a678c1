package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/workspace"
)

type RmCmd struct {
	flags *Flags
	app   *workspace.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *workspace.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Remove timezones from the selection",
		UsageText: "tzc rm <zone...>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return errors.New("no zones given")
	}

	ws := cmd.app.Workspace(ctx, nil)

	var errs []error
	for _, arg := range c.Args().Slice() {
		if err := removeZone(ctx, ws, zone.ID(arg)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func removeZone(ctx context.Context, ws *workspace.Workspace, id zone.ID) error {
	switch {
	case id == ws.Local():
		return fmt.Errorf("%s is the local timezone and cannot be removed", id)
	case !slices.Contains(ws.Zones(), id):
		return fmt.Errorf("%s is not selected", id)
	}
	ws.Remove(ctx, id)
	return nil
}
