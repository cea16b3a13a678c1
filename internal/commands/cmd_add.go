package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/workspace"
)

type AddCmd struct {
	flags *Flags
	app   *workspace.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *workspace.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add timezones to the selection",
		UsageText: "tzc add [zone...]",
		Description: `Adds IANA timezones such as Asia/Tokyo to the selection. Zones already
shown are skipped. Without arguments an interactive picker opens.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ws := cmd.app.Workspace(ctx, nil)

	ids := make([]zone.ID, 0, c.Args().Len())
	for _, arg := range c.Args().Slice() {
		ids = append(ids, zone.ID(arg))
	}

	if len(ids) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no zones given; pass zone identifiers such as Asia/Tokyo")
		}

		picked, err := pickZones(cmd.app.Catalog, ws.Zones())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
		ids = picked
	}

	return addZones(ctx, ws, ids)
}

func addZones(ctx context.Context, ws *workspace.Workspace, ids []zone.ID) error {
	var errs []error
	for _, id := range ids {
		if err := ws.Add(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func pickZones(cat *catalog.Catalog, selected []zone.ID) ([]zone.ID, error) {
	entries := cat.All()

	options := make([]huh.Option[zone.ID], 0, len(entries))
	skip := make(map[zone.ID]bool, len(selected))
	for _, id := range selected {
		skip[id] = true
	}
	for _, e := range entries {
		if skip[e.ID] {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%-22s %s", e.Label, e.ID), e.ID))
	}

	var picked []zone.ID
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[zone.ID]().
				Title("Add timezones").
				Description("/ to filter, space to select, enter to confirm").
				Options(options...).
				Filterable(true).
				Height(15).
				Value(&picked),
		),
	).WithTheme(styles.FormTheme()).Run()

	return picked, err
}
