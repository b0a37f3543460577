package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/upenn-libraries/libhours/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or off.
	Level string

	// Format is json, console or auto (console on a terminal).
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	// NoColor disables color in console output.
	NoColor bool

	// AddCaller includes file:line in every event.
	AddCaller bool

	// Fields are attached to every event.
	Fields map[string]any
}

// DefaultConfig logs at info level to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "auto",
		Output: "stderr",
	}
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR.
// DEBUG set to anything non-empty means debug when LOG_LEVEL is unset.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	cfg.NoColor = os.Getenv("NO_COLOR") != ""
	return cfg
}

// NewLoggerFromConfig builds a logger. A nil cfg means DefaultConfig.
// The zerolog global level follows the configured level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	zctx := zerolog.New(writer(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		zctx = zctx.Caller()
	}
	for k, v := range cfg.Fields {
		zctx = addField(zctx, k, v)
	}
	return zctx.Logger()
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// writer resolves the output destination and wraps it for console format.
func writer(cfg *Config) io.Writer {
	var out io.Writer
	var fd uintptr
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out, fd = os.Stderr, os.Stderr.Fd()
	case "stdout":
		out, fd = os.Stdout, os.Stdout.Fd()
	case "discard", "none":
		return io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out, fd = os.Stderr, os.Stderr.Fd()
		} else {
			out, fd = f, f.Fd()
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}

// parseLevel maps a level name to zerolog, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
