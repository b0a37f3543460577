package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Hours configuration
	Registry    string
	Institution int
	Endpoint    string
	Timeout     time.Duration
	Namespace   string
	MoreInfoURL string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (LIBHOURS_*)
// 3. .env files
// 4. Config file (~/.libhours.yaml or ./.libhours.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv("LIBHOURS_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("namespace", constants.DefaultNamespace)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "cannot read config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Registry:    v.GetString("registry"),
		Institution: v.GetInt("institution"),
		Endpoint:    v.GetString("endpoint"),
		Timeout:     v.GetDuration("timeout"),
		Namespace:   v.GetString("namespace"),
		MoreInfoURL: v.GetString("more_info_url"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), os.Getenv("LOG_FORMAT"), "auto"),
		LogOutput: firstNonEmpty(v.GetString("log_output"), os.Getenv("LOG_OUTPUT"), "stderr"),
	}

	if config.Institution < 0 {
		return nil, errors.NewValidationError("institution", config.Institution, "must not be negative")
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// merge copies settings from a config file into c. Settings whose flag
// was given on the command line are kept.
func (c *Config) merge(file *Config, changed func(flag string) bool) {
	c.ConfigFile = file.ConfigFile
	if !changed("registry") && file.Registry != "" {
		c.Registry = file.Registry
	}
	if !changed("endpoint") && file.Endpoint != "" {
		c.Endpoint = file.Endpoint
	}
	if !changed("institution") && file.Institution != 0 {
		c.Institution = file.Institution
	}
	if !changed("timeout") && file.Timeout != 0 {
		c.Timeout = file.Timeout
	}
	if !changed("format") && file.Format != "" {
		c.Format = file.Format
	}
	if !changed("log-level") && file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.Namespace != "" {
		c.Namespace = file.Namespace
	}
	if file.MoreInfoURL != "" {
		c.MoreInfoURL = file.MoreInfoURL
	}
	c.Verbose = c.Verbose || file.Verbose
	c.Quiet = c.Quiet || file.Quiet
	c.NoColor = c.NoColor || file.NoColor
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
