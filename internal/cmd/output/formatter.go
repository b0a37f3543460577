// Package output writes command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/upenn-libraries/libhours/internal/cmd/table"
)

// Format names an output encoding.
type Format string

// Supported formats. Wide is a table with extra columns.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatWide  Format = "wide"
)

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format. Unknown and table formats
// share the table formatter.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat validates a user supplied format name. "" is allowed and
// means "detect".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
}

// DetectFormat returns the explicit format, or table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// JSONFormatter writes indented JSON without HTML escaping, so markup in
// location names stays readable.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter writes block-style YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter renders table.Data, or a slice of structs with one column
// per field. Anything else falls back to JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if d, ok := data.(table.Data); ok {
		return renderTable(w, d)
	}
	if d, ok := structRows(data); ok {
		return renderTable(w, d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

var twAlign = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func renderTable(w io.Writer, d table.Data) error {
	cfg := tablewriter.Config{}
	if len(d.ColumnAlignment) > 0 {
		per := make([]tw.Align, len(d.ColumnAlignment))
		for i, a := range d.ColumnAlignment {
			if ta, ok := twAlign[a]; ok {
				per[i] = ta
			} else {
				per[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(d.Headers) > 0 {
		tbl.Header(toAny(d.Headers)...)
	}
	for _, row := range d.Rows {
		if err := tbl.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// structRows turns a non-empty slice of structs into table data. Headers
// come from json tag names, title cased.
func structRows(data any) (table.Data, bool) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Len() == 0 || v.Index(0).Kind() != reflect.Struct {
		return table.Data{}, false
	}

	typ := v.Index(0).Type()
	title := cases.Title(language.English)
	headers := make([]string, typ.NumField())
	for i := range headers {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = field.Name
		}
		headers[i] = title.String(strings.ReplaceAll(name, "_", " "))
	}

	rows := make([][]string, v.Len())
	for i := range rows {
		elem := v.Index(i)
		row := make([]string, elem.NumField())
		for j := range row {
			row[j] = fmt.Sprint(elem.Field(j).Interface())
		}
		rows[i] = row
	}
	return table.Data{Headers: headers, Rows: rows}, true
}
