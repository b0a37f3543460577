// Package constants provides shared constants used throughout the libhours codebase.
// This includes timeouts, limits, file permissions, and the defaults that tie
// the renderer to the LibCal hours service.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for the hours service request
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxResponseBytes caps the hours payload read from the remote service (4 MB)
	MaxResponseBytes = 4 << 20

	// MaxDocumentBytes caps the HTML document read by the CLI (32 MB)
	MaxDocumentBytes = 32 << 20
)

// LibCal defaults
const (
	// DefaultEndpoint is the LibCal "today's hours" endpoint
	DefaultEndpoint = "https://api3.libcal.com/api_hours_today.php"

	// DefaultInstitution is the institution id used by the embedded registry
	DefaultInstitution = 1647

	// ServiceName identifies the hours service in errors and logs
	ServiceName = "libcal"
)

// Page defaults
const (
	// DefaultNamespace is the reserved class prefix for placeholders
	DefaultNamespace = "libhours"

	// DefaultMoreInfoURL is the target of the chart's trailing "more info" entry
	DefaultMoreInfoURL = "http://www.library.upenn.edu/locations/"
)

// Path constants
const (
	// DefaultConfigName is the config file base name searched in $HOME and "."
	DefaultConfigName = ".libhours"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "LIBHOURS"
)
