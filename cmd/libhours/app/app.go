// Package app provides the application context and dependency management
// for the libhours CLI. It centralizes configuration, logging and the
// libhours client so commands receive them through one interface.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/cmd/application"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// App represents the libhours application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client libhours.Client
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// ReportLogger returns the logger used while a render report is printed.
func (a *App) ReportLogger() *zerolog.Logger {
	return reportLogger(a.logger, a.config)
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// RegistryPath returns the configured registry file.
func (a *App) RegistryPath() string {
	return a.config.Registry
}

// Client returns the libhours client. Without options the shared instance
// is returned, created on first use; with options a new client is built.
func (a *App) Client(opts ...libhours.Option) (libhours.Client, error) {
	if len(opts) > 0 {
		c, err := libhours.New(append(a.clientOptions(), opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "client", "with custom options", err)
		}
		return c, nil
	}

	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := libhours.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []libhours.Option {
	var opts []libhours.Option

	if a.config.Registry != "" {
		opts = append(opts, libhours.WithRegistryFile(a.config.Registry))
	}
	if a.config.Institution > 0 {
		opts = append(opts, libhours.WithInstitution(a.config.Institution))
	}
	if a.config.Endpoint != "" {
		opts = append(opts, libhours.WithEndpoint(a.config.Endpoint))
	}
	if a.config.Timeout > 0 {
		opts = append(opts, libhours.WithTimeout(a.config.Timeout))
	}
	if a.config.Namespace != "" {
		opts = append(opts, libhours.WithNamespace(a.config.Namespace))
	}
	if a.config.MoreInfoURL != "" {
		opts = append(opts, libhours.WithMoreInfoURL(a.config.MoreInfoURL))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c libhours.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
