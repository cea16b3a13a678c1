package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "tzc config validate [options]",
				Description: "Validates the configuration file, glob patterns, default zones and directories.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validateResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validateResult{Valid: true}
	if err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		result.Valid = false
		result.Errors = splitErrors(err)
	}

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		for _, e := range result.Errors {
			_, _ = fmt.Fprintln(out, styles.ErrorStyle.Render("✗ ")+e)
		}
		if result.Valid {
			_, _ = fmt.Fprintln(out, styles.CopiedStyle.Render("✓ ")+"configuration is valid")
		} else {
			_, _ = fmt.Fprintf(out, "\n%d error(s) found\n", len(result.Errors))
		}
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// splitErrors turns a validation error into one message per field.
func splitErrors(err error) []string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field+": "+fe.Err.Error())
	}
	return out
}
