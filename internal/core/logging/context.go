package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	zoneKey    contextKey = "zone"
)

// WithCommand adds the name of the running subcommand to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithZone adds the timezone an operation acts on to the context.
func WithZone(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, zoneKey, id)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// GetZone retrieves the timezone from the context.
// Returns empty string if not present.
func GetZone(ctx context.Context) string {
	if id, ok := ctx.Value(zoneKey).(string); ok {
		return id
	}
	return ""
}
