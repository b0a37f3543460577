package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/upenn-libraries/libhours/cmd/libhours/cmd/locations"
	"github.com/upenn-libraries/libhours/cmd/libhours/cmd/render"
	"github.com/upenn-libraries/libhours/cmd/libhours/cmd/validate"
	"github.com/upenn-libraries/libhours/cmd/libhours/cmd/version"
	"github.com/upenn-libraries/libhours/internal/cmd/output"
)

// Execute runs the libhours CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "libhours",
		Short:   "Library hours page decorator",
		Version: a.version,
		Long: `Libhours fills library web pages with today's opening hours.

Pages mark where hours belong with elements whose class starts with
"libhours-". A single location renders as one hours line; the chart
placeholder renders a two-column list of locations. Hours come from
the LibCal "today's hours" service and are fetched once per run.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.libhours.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringVar(&a.config.Registry, "registry", a.config.Registry, "location registry file (default is the embedded registry)")
	flags.StringVar(&a.config.Endpoint, "endpoint", a.config.Endpoint, "hours service endpoint")
	flags.IntVar(&a.config.Institution, "institution", a.config.Institution, "hours service institution id (overrides the registry)")
	flags.DurationVar(&a.config.Timeout, "timeout", a.config.Timeout, "hours request timeout")

	rootCmd.SetVersionTemplate("libhours {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Persistent flags are defined in createRootCommand, so lookup errors are programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	if cmd.Flags().Changed("config") {
		fileConfig, err := loadConfig(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config.merge(fileConfig, cmd.Flags().Changed)
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	// Flags may have changed client settings
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(render.NewCommand(a))
	rootCmd.AddCommand(locations.NewCommand(a))

	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
