// Package logging provides structured logging for libhours using zerolog.
// Console output is used when stderr is a terminal, JSON everywhere else.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("institution", 1647).Msg("Fetching hours")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	ctx = logging.WithLocation(ctx, "annenberg")
//	logging.FromContext(ctx).Warn().Msg("Hours data unavailable")
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger holds the process-wide logger used when a context carries none.
var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(ConfigFromEnv())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return Default().Info()
}
