package commands

import (
	"context"
	"time"

	"github.com/hay-kot/tzc/internal/workspace"
)

// loadWorkspace builds a workspace for a one-shot command. A non-empty at
// moves the instant without persisting it.
func loadWorkspace(ctx context.Context, app *workspace.App, at string) (*workspace.Workspace, error) {
	now := time.Now()
	ws := app.Workspace(ctx, func() time.Time { return now })
	if at == "" {
		return ws, nil
	}

	loc, err := app.Converter.Location(app.Local)
	if err != nil {
		loc = time.UTC
	}
	t, err := parseAt(at, now, loc)
	if err != nil {
		return nil, err
	}
	ws.At(t)
	return ws, nil
}
