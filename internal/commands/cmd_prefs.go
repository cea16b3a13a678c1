package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/prefs"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/iojson"
)

type PrefsCmd struct {
	flags *Flags
	app   *workspace.App

	input iojson.FileReader[prefs.Data]
}

// NewPrefsCmd creates a new prefs command
func NewPrefsCmd(flags *Flags, app *workspace.App) *PrefsCmd {
	return &PrefsCmd{flags: flags, app: app}
}

// Register adds the prefs command to the application
func (cmd *PrefsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "prefs",
		Usage: "Export, import or reset the stored selection and labels",
		Commands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "Write the preferences document as JSON",
				UsageText: "tzc prefs export > prefs.json",
				Action:    cmd.runExport,
			},
			{
				Name:      "import",
				Usage:     "Replace the preferences with a JSON document",
				UsageText: "tzc prefs import -f prefs.json",
				Description: `Reads a document in the format written by 'tzc prefs export'. Every
selected zone must be a known IANA identifier; nothing is stored otherwise.`,
				Flags:  []cli.Flag{cmd.input.Flag()},
				Action: cmd.runImport,
			},
			{
				Name:   "reset",
				Usage:  "Delete the stored preferences and return to the default zones",
				Action: cmd.runReset,
			},
		},
	})

	return app
}

func (cmd *PrefsCmd) runExport(ctx context.Context, c *cli.Command) error {
	ws := cmd.app.Workspace(ctx, nil)
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, ws.Data())
}

func (cmd *PrefsCmd) runImport(ctx context.Context, c *cli.Command) error {
	data, err := cmd.input.Read()
	if err != nil {
		return err
	}

	ws := cmd.app.Workspace(ctx, nil)
	if err := ws.Import(ctx, data); err != nil {
		return fmt.Errorf("import preferences: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "imported %d zones\n", len(ws.Zones())-1)
	return nil
}

func (cmd *PrefsCmd) runReset(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.Prefs.Reset(ctx); err != nil {
		return err
	}

	ws := cmd.app.Workspace(ctx, nil)
	ids := make([]string, 0, len(ws.Zones()))
	for _, id := range ws.Zones()[1:] {
		ids = append(ids, string(id))
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "preferences reset, defaults: %s\n", strings.Join(ids, ", "))
	return nil
}
