// Package validate implements the validate command, which checks a
// location registry file.
package validate

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/cmd/application"
	"github.com/upenn-libraries/libhours/internal/cmd/output"
	"github.com/upenn-libraries/libhours/internal/embedded"
	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/registry"
	"github.com/upenn-libraries/libhours/pkg/render"
)

// Summary describes a registry that passed validation.
type Summary struct {
	Source      string `json:"source" yaml:"source"`
	Institution int    `json:"institution" yaml:"institution"`
	Locations   int    `json:"locations" yaml:"locations"`
	Tracked     int    `json:"tracked" yaml:"tracked"`
	Manual      int    `json:"manual" yaml:"manual"`
	Chart       int    `json:"chart" yaml:"chart"`
	Unmatched   int    `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Unresolved  int    `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:     "validate [file]",
		GroupID: "management",
		Short:   "Validate a location registry",
		Long: `Validate checks a location registry file: required fields,
unique keys and lids, URLs, and that every chart id names a location.

Without a file argument the configured registry is checked, or the
embedded registry when none is configured. With --remote the hours
service is queried once and locations it does not know are reported.`,
		Example: `  libhours validate
  libhours validate ./locations.yaml
  libhours validate --remote -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.RegistryPath()
			if len(args) == 1 {
				path = args[0]
			}

			summary, cfg, err := check(path)
			if err != nil {
				return err
			}

			if remote {
				if err := checkRemote(cmd.Context(), app, cfg, summary); err != nil {
					return err
				}
			}

			app.Logger().Info().Str("source", summary.Source).Msg("Registry is valid")

			format := output.DetectFormat(app.OutputFormat())
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.FormatAny(cmd.OutOrStdout(), summary, format)
			default:
				return output.FormatAny(cmd.OutOrStdout(), []Summary{*summary}, format)
			}
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "also check the registry against the hours service")

	return cmd
}

// check loads and validates the registry at path, or the embedded one.
func check(path string) (*Summary, *registry.Config, error) {
	var (
		cfg    *registry.Config
		err    error
		source = path
	)
	if path == "" {
		source = "embedded:" + embedded.RegistryPath
		cfg, err = embedded.Registry()
	} else {
		cfg, err = registry.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}

	s := &Summary{
		Source:      source,
		Institution: cfg.Institution,
		Locations:   len(cfg.Locations),
		Chart:       len(cfg.Chart),
	}
	for _, loc := range cfg.Locations {
		if loc.LID != nil {
			s.Tracked++
		}
		if loc.Manual != nil {
			s.Manual++
		}
	}
	return s, cfg, nil
}

// checkRemote fetches hours once and counts records and tracked locations
// that could not be paired.
func checkRemote(ctx context.Context, app application.Application, cfg *registry.Config, s *Summary) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()
	ctx = logging.WithLogger(ctx, app.Logger())

	client, err := app.Client(libhours.WithRegistry(cfg))
	if err != nil {
		return err
	}

	_, report, err := client.Locations(ctx)
	if err != nil {
		return err
	}
	if report.Count(render.FetchFailure) > 0 {
		var errs []error
		for _, d := range report.Diagnostics {
			if d.Kind == render.FetchFailure {
				errs = append(errs, stderrors.New(d.Message))
			}
		}
		return fmt.Errorf("hours service: %w", stderrors.Join(errs...))
	}

	s.Unmatched = report.Count(render.UnmatchedRemoteRecord)
	s.Unresolved = report.Count(render.UnresolvedEntry)
	return nil
}
