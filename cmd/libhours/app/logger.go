package app

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/upenn-libraries/libhours/pkg/logging"
)

// logLevel is the outcome of resolving the CLI's verbosity settings.
type logLevel struct {
	level zerolog.Level
	// requested is set when the user asked for a level by flag or environment.
	requested bool
	warning   string
}

// String returns the zerolog name of the level.
func (l logLevel) String() string {
	return l.level.String()
}

// resolveLogLevel applies, in order: --log-level, -q, -v, then info.
// LOG_LEVEL arrives through config.LogLevel. Levels zerolog knows but the CLI
// does not offer (fatal, panic, disabled) are treated as invalid.
func resolveLogLevel(config *Config) logLevel {
	if name := strings.ToLower(strings.TrimSpace(config.LogLevel)); name != "" {
		lvl, err := zerolog.ParseLevel(name)
		if err == nil && lvl >= zerolog.TraceLevel && lvl <= zerolog.ErrorLevel {
			return logLevel{level: lvl, requested: true}
		}
		return logLevel{level: zerolog.InfoLevel, warning: "unknown log level " + config.LogLevel + ", using info"}
	}

	switch {
	case config.Verbose && config.Quiet:
		return logLevel{level: zerolog.WarnLevel, requested: true, warning: "both --verbose and --quiet given, using --quiet"}
	case config.Quiet:
		return logLevel{level: zerolog.WarnLevel, requested: true}
	case config.Verbose:
		return logLevel{level: zerolog.DebugLevel, requested: true}
	}
	return logLevel{level: zerolog.InfoLevel}
}

// NewLogger builds the CLI logger. Callers are only added at debug and
// trace, where a line usually needs to be traced back to a placeholder.
func NewLogger(config *Config) zerolog.Logger {
	resolved := resolveLogLevel(config)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     resolved.String(),
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: resolved.level <= zerolog.DebugLevel,
	})
	if resolved.warning != "" {
		logger.Warn().Msg(resolved.warning)
	}
	return logger
}

// reportLogger returns the logger for a render whose report is printed.
// The report already lists every unresolved entry and unknown key, so their
// per-placeholder warnings are dropped unless a level was requested.
func reportLogger(base *zerolog.Logger, config *Config) *zerolog.Logger {
	if resolveLogLevel(config).requested {
		return base
	}
	logger := base.Level(zerolog.ErrorLevel)
	return &logger
}
