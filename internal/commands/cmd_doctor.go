package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/doctor"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/hay-kot/tzc/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *workspace.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *workspace.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your tzc setup",
		UsageText:   "tzc doctor [options]",
		Description: "Runs diagnostic checks on configuration, storage, selected timezones and clipboard support.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "remove selected timezones that no longer resolve",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	ws := cmd.app.Workspace(ctx, nil)

	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewStorageCheck(cmd.flags.Config.Storage.Driver, cmd.app.StoreLocation(), cmd.app.StoreErr, cmd.app.Prefs),
		doctor.NewZonesCheck(ws, cmd.autofix),
		doctor.NewClipboardCheck(),
	}
	results := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c.Root().Writer, results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	var (
		successStyle = lipgloss.NewStyle().Foreground(styles.ColorSuccess)
		warningStyle = lipgloss.NewStyle().Foreground(styles.ColorWarning)
		errorStyle   = lipgloss.NewStyle().Foreground(styles.ColorError)
	)

	_, _ = fmt.Fprintln(w, styles.TitleStyle.Render("tzc doctor"))
	_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(strings.Repeat("─", 40)))
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = successStyle.Render("✔")
			case doctor.StatusWarn:
				icon = warningStyle.Render("●")
			case doctor.StatusFail:
				icon = errorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		successStyle.Render(fmt.Sprintf("%d passed", passed)),
		warningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		errorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	if fixable := doctor.CountFixable(results); !cmd.autofix && fixable > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.MutedStyle.Render(fmt.Sprintf("Run 'tzc doctor --autofix' to fix %d issue(s)", fixable)))
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
