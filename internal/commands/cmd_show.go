package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *workspace.App

	// flags
	at         string
	markdown   bool
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *workspace.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print the selected timezones at an instant",
		UsageText: "tzc show [--at TIME] [--markdown | --json]",
		Description: `Prints one line per selected timezone with its offset and wall-clock time.

--at accepts RFC 3339, 2006-01-02T15:04 or 15:04; the last two are read in
the local timezone.`,
		Flags: []cli.Flag{
			atFlag(&cmd.at),
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"m"},
				Usage:       "render a markdown table",
				Destination: &cmd.markdown,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func atFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "at",
		Usage:       "instant to show instead of now",
		Destination: dest,
	}
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	ws, err := loadWorkspace(ctx, cmd.app, cmd.at)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		return iojson.WriteWith(out, c.Root().ErrWriter, buildZoneInfos(ws))
	case cmd.markdown:
		return writeMarkdown(out, markdownTable(ws))
	default:
		return writeTable(out, ws)
	}
}

// writeMarkdown renders md with glamour when w is a terminal and writes the
// raw markdown otherwise.
func writeMarkdown(w io.Writer, md string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}
