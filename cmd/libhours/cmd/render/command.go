// Package render implements the render command, which fills the hours
// placeholders of an HTML page.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/cmd/application"
	"github.com/upenn-libraries/libhours/internal/cmd/output"
	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/document/htmldoc"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
	pagerender "github.com/upenn-libraries/libhours/pkg/render"
)

// dateLayout is the format accepted by --date.
const dateLayout = "2006-01-02"

// Flags holds the render command flags.
type Flags struct {
	In       string
	Out      string
	Fragment bool
	Date     string
	Report   bool
	Strict   bool
}

// NewCommand creates the render command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "render [file]",
		GroupID: "core",
		Short:   "Fill hours placeholders in an HTML page",
		Long: `Render reads an HTML page, fetches today's hours once and fills
every placeholder whose class starts with "libhours-".

The page is read from the given file (or --in, or stdin) and written to
--out (or stdout). Placeholders that are already filled are left alone,
so rendering a page twice gives the same result.

--date only changes the date shown next to the hours. LibCal always
answers with today's hours.`,
		Example: `  libhours render index.html > out.html
  libhours render --in index.html --out index.html --report
  libhours render --fragment --date 2024-05-06 < snippet.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if flags.In != "" && flags.In != args[0] {
					return errors.NewValidationError("in", flags.In, "conflicts with file argument")
				}
				flags.In = args[0]
			}
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.In, "in", "i", "", "input HTML file (default stdin)")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output HTML file (default stdout)")
	cmd.Flags().BoolVar(&flags.Fragment, "fragment", false, "treat the input as a body fragment instead of a full document")
	cmd.Flags().StringVar(&flags.Date, "date", "", "label the hours with this day (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&flags.Report, "report", false, "print the render report to stderr")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "exit with an error when any diagnostic is recorded")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
	defer cancel()
	logger := app.Logger()
	if flags.Report {
		logger = app.ReportLogger()
	}
	ctx = logging.WithLogger(ctx, logger)

	var opts []libhours.Option
	if flags.Date != "" {
		day, err := time.ParseInLocation(dateLayout, flags.Date, time.Local)
		if err != nil {
			return errors.NewValidationError("date", flags.Date, "must be YYYY-MM-DD")
		}
		opts = append(opts, libhours.WithClock(func() time.Time { return day }))
	}

	client, err := app.Client(opts...)
	if err != nil {
		return err
	}

	data, err := readInput(cmd.InOrStdin(), flags.In)
	if err != nil {
		return err
	}

	var doc *htmldoc.Document
	if flags.Fragment {
		doc, err = htmldoc.ParseFragment(bytes.NewReader(data))
	} else {
		doc, err = htmldoc.Parse(bytes.NewReader(data))
	}
	if err != nil {
		return err
	}

	report, err := client.Render(ctx, doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return errors.WrapResource("render", "document", flags.In, err)
	}
	if err := writeOutput(cmd.OutOrStdout(), flags.Out, buf.Bytes()); err != nil {
		return err
	}

	if flags.Report {
		format := output.DetectFormat(app.OutputFormat())
		if err := output.FormatReport(cmd.ErrOrStderr(), report, format); err != nil {
			return err
		}
	}

	if report.Failed() {
		return fmt.Errorf("render failed for %d placeholder(s)", report.Outcomes()[pagerender.OutcomeFailed])
	}
	if flags.Strict && len(report.Diagnostics) > 0 {
		return fmt.Errorf("render recorded %d diagnostic(s)", len(report.Diagnostics))
	}
	return nil
}

// readInput reads the page from path, or from stdin when path is "" or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	r := stdin
	name := "stdin"
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapIO("open", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
		name = path
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxDocumentBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	if len(data) > constants.MaxDocumentBytes {
		return nil, errors.NewValidationError("in", name, "document exceeds size limit")
	}
	return data, nil
}

// writeOutput writes the page to path, or to stdout when path is "" or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return errors.WrapIO("write", "stdout", err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
