// Package application provides the application interface for libhours commands.
//
// Commands accept an Application rather than the concrete App type so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...libhours.Option) (libhours.Client, error) {
//	        return libhours.New(append(opts, libhours.WithFetcher(hours.Static()))...)
//	    },
//	}
//	cmd := render.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/upenn-libraries/libhours"
)

// Application provides what commands need from the application layer.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns a libhours client configured from the application
	// config. Extra options are applied after the configured ones.
	Client(opts ...libhours.Option) (libhours.Client, error)

	// RegistryPath returns the configured registry file, or "" for the
	// embedded registry.
	RegistryPath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// ReportLogger returns the logger for a render that prints its report.
	// Diagnostics the report already lists are not logged again unless a
	// log level was requested.
	ReportLogger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
