// Package locations implements the locations command.
package locations

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upenn-libraries/libhours/cmd/application"
	"github.com/upenn-libraries/libhours/internal/cmd/output"
	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/logging"
)

// NewCommand creates the locations command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		chartOnly  bool
		unresolved bool
	)

	cmd := &cobra.Command{
		Use:     "locations",
		GroupID: "core",
		Aliases: []string{"ls"},
		Short:   "List registry locations with today's hours",
		Long: `Locations fetches today's hours once and lists every registry
location in definition order with the hours text a page would show.`,
		Example: `  libhours locations
  libhours locations --chart -o wide
  libhours locations --unresolved -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			ctx = logging.WithLogger(ctx, app.Logger())

			client, err := app.Client()
			if err != nil {
				return err
			}

			locs, report, err := client.Locations(ctx)
			if err != nil {
				return err
			}

			filtered := locs[:0:0]
			for _, l := range locs {
				if chartOnly && !l.InChart {
					continue
				}
				if unresolved && l.Resolved {
					continue
				}
				filtered = append(filtered, l)
			}

			app.Logger().Debug().
				Int("locations", len(filtered)).
				Int("diagnostics", len(report.Diagnostics)).
				Str("date", report.Date).
				Msg("Listed locations")

			format := output.DetectFormat(app.OutputFormat())
			if err := output.FormatLocations(cmd.OutOrStdout(), filtered, format); err != nil {
				return fmt.Errorf("format locations: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&chartOnly, "chart", false, "only list locations shown in the hours chart")
	cmd.Flags().BoolVar(&unresolved, "unresolved", false, "only list locations without hours data")

	return cmd
}
