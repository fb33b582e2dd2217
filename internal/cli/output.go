package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cxp-platform/cxp-cli/internal/iam"
)

// outputFormat is the rendering selected with --output
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputTable, outputJSON:
		return f, nil
	default:
		return "", &iam.UsageError{
			Message: fmt.Sprintf("output must be one of: %s, %s", outputTable, outputJSON),
		}
	}
}

// printer renders list and show views for the read-only commands. JSON
// output encodes the typed view; table output uses its rows or fields.
type printer struct {
	out    io.Writer
	format outputFormat
}

func newPrinter(out io.Writer, format string) (*printer, error) {
	f, err := parseOutputFormat(format)
	if err != nil {
		return nil, err
	}
	return &printer{out: out, format: f}, nil
}

// tabular is a list view with one row per item
type tabular interface {
	headers() []string
	rows() [][]string
}

// list prints v as an aligned table, or as JSON
func (p *printer) list(v tabular) error {
	if p.format == outputJSON {
		return p.json(v)
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(v.headers(), "\t"))
	for _, row := range v.rows() {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// field is one labelled line of a show view
type field struct {
	label string
	value string
}

// detailed is a show view of a single object
type detailed interface {
	title() string
	fields() []field
}

// show prints v as an indented label/value block, or as JSON. Empty values
// are left out of the table.
func (p *printer) show(v detailed) error {
	if p.format == outputJSON {
		return p.json(v)
	}

	_, _ = fmt.Fprintln(p.out, v.title())
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, f := range v.fields() {
		if f.value == "" {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s:\t%s\n", f.label, f.value)
	}
	return w.Flush()
}

func (p *printer) json(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
