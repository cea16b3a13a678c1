package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger from the global logger with a component
// identifier.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ComponentOf derives a component logger from parent.
func ComponentOf(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}
