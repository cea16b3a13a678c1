package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/iojson"
)

type ZonesCmd struct {
	flags *Flags
	app   *workspace.App

	all        bool
	jsonOutput bool
}

// NewZonesCmd creates a new zones command
func NewZonesCmd(flags *Flags, app *workspace.App) *ZonesCmd {
	return &ZonesCmd{flags: flags, app: app}
}

// Register adds the zones command to the application
func (cmd *ZonesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "zones",
		Usage:     "Search the timezone catalog",
		UsageText: "tzc zones [query | glob]",
		Description: `Matches the query by prefix against identifiers and labels, the same way
the picker does. Arguments containing *, ? or [ are matched as globs
against the identifier, e.g. 'America/**'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "do not cap the number of search results",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type catalogEntry struct {
	Zone  string `json:"zone"`
	Label string `json:"label"`
}

func (cmd *ZonesCmd) run(_ context.Context, c *cli.Command) error {
	entries, more, err := findZones(cmd.app.Catalog, strings.Join(c.Args().Slice(), " "), cmd.all)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, catalogEntry{Zone: string(e.ID), Label: e.Label}); err != nil {
				return err
			}
		}
		return nil
	}

	return writeEntries(out, entries, more)
}

// findZones resolves query against cat. more counts matches left out by the
// result cap.
func findZones(cat *catalog.Catalog, query string, all bool) ([]catalog.Entry, int, error) {
	if strings.ContainsAny(query, "*?[{") {
		entries, err := cat.Glob(query)
		return entries, 0, err
	}

	if all {
		return cat.Matches(query, nil), 0, nil
	}

	res := cat.Search(query, nil)
	return res.Entries, res.More, nil
}

func writeEntries(w io.Writer, entries []catalog.Entry, more int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no matching timezones")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-32s %s\n", e.ID, e.Label); err != nil {
			return err
		}
	}
	if more > 0 {
		_, err := fmt.Fprintf(w, "… %d more (use --all)\n", more)
		return err
	}
	return nil
}
