package app

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vk/optionkit/options"
	"golang.org/x/term"
)

// Finding is one problem found in a schema.
type Finding struct {
	Schema  string `json:"schema"`
	Option  string `json:"option,omitempty"`
	Problem string `json:"problem"`
}

// Report is the result of linting a catalog.
type Report struct {
	Schemas  int       `json:"schemas"`
	Findings []Finding `json:"findings"`
}

func (r *Report) add(schema string, err error) {
	f := Finding{Schema: schema, Problem: err.Error()}

	var invalid *options.InvalidOptionValueError
	if errors.As(err, &invalid) {
		f.Option = invalid.Option
		f.Problem = "default: " + invalid.Error()
	}
	r.Findings = append(r.Findings, f)
}

// Render writes the report in the given format, "table" or "json".
func (r *Report) Render(w io.Writer, format string, noColor bool) error {
	switch format {
	case "json":
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		if r.Findings == nil {
			r.Findings = []Finding{}
		}
		return enc.Encode(r)
	case "table", "":
		return r.renderTable(w, noColor)
	default:
		return errors.Errorf("unsupported report format %q", format)
	}
}

func (r *Report) renderTable(w io.Writer, noColor bool) error {
	if len(r.Findings) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Schema", "Option", "Problem"})
		for _, f := range r.Findings {
			t.AppendRow(table.Row{f.Schema, f.Option, f.Problem})
		}
		t.Render()
	}

	summary := fmt.Sprintf("%d schema(s) checked, %d finding(s)", r.Schemas, len(r.Findings))
	switch {
	case noColor:
	case len(r.Findings) > 0:
		summary = color.Red.Sprint(summary)
	default:
		summary = color.Green.Sprint(summary)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// isTerminal reports whether w is a terminal. Colour is only written to
// terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
