// Package reports renders what happened during a crawl and its export
package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/foomo/exporter/vo"
	"gopkg.in/yaml.v3"
)

const (
	FormatConsole = "console"
	FormatHTML    = "html"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

var ErrUnknownFormat = errors.New("unknown report format")

type SummaryItem struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Registry collects the tables and summary lines of one run
type Registry struct {
	tables  []*SuperTable
	summary []SummaryItem
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) AddTable(t *SuperTable) {
	r.tables = append(r.tables, t)
}

func (r *Registry) Tables() []*SuperTable {
	return r.tables
}

// Table by apl code
func (r *Registry) Table(aplCode string) (*SuperTable, bool) {
	for _, t := range r.tables {
		if t.AplCode == aplCode {
			return t, true
		}
	}
	return nil, false
}

func (r *Registry) AddSummary(label, value string) {
	r.summary = append(r.summary, SummaryItem{Label: label, Value: value})
}

func (r *Registry) Summary() []SummaryItem {
	return r.summary
}

// AddExportSummary always reports where the export went and how long it took
func (r *Registry) AddExportSummary(s vo.Summary) {
	r.AddSummary("export dir", s.ExportDir)
	r.AddSummary("export duration", s.Duration.String())
	r.AddSummary("exported", strconv.Itoa(s.Exported))
	r.AddSummary("skipped", strconv.Itoa(s.Skipped))
}

// Write renders all tables in the given format
func (r *Registry) Write(w io.Writer, format string) error {
	switch format {
	case FormatConsole, "":
		return r.ConsoleOutput(w)
	case FormatHTML:
		return r.HTMLOutput(w)
	case FormatJSON:
		return r.JSONOutput(w)
	case FormatYAML:
		return r.YAMLOutput(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func printers(w io.Writer) (printh func(header ...interface{}), println func(a ...interface{}), printsep func()) {
	printsep = func() {
		fmt.Fprintln(w, "-----------------------------------------------------------------------------")
	}
	println = func(a ...interface{}) { fmt.Fprintln(w, a...) }
	printh = func(header ...interface{}) {
		println()
		println(color.New(color.Bold).Sprint(header...))
		printsep()
	}
	return
}

func (r *Registry) ConsoleOutput(w io.Writer) error {
	printh, println, _ := printers(w)
	for _, t := range r.tables {
		println()
		if _, err := io.WriteString(w, t.ConsoleOutput()); err != nil {
			return err
		}
	}
	if len(r.summary) > 0 {
		printh("summary")
		for _, item := range r.summary {
			println(item.Label+":", item.Value)
		}
	}
	return nil
}

func (r *Registry) HTMLOutput(w io.Writer) error {
	sb := &strings.Builder{}
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>export report</title></head>\n<body>\n")
	for _, t := range r.tables {
		if t.Position == PositionBeforeURLTable {
			sb.WriteString(t.HTMLOutput())
		}
	}
	for _, t := range r.tables {
		if t.Position != PositionBeforeURLTable {
			sb.WriteString(t.HTMLOutput())
		}
	}
	if len(r.summary) > 0 {
		sb.WriteString("<h2>summary</h2>\n<dl>\n")
		for _, item := range r.summary {
			fmt.Fprintf(sb, "<dt>%s</dt><dd>%s</dd>\n", html.EscapeString(item.Label), html.EscapeString(item.Value))
		}
		sb.WriteString("</dl>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

type projection struct {
	Tables  []jsonTable   `json:"tables" yaml:"tables"`
	Summary []SummaryItem `json:"summary" yaml:"summary"`
}

func (r *Registry) projection() projection {
	p := projection{
		Tables:  make([]jsonTable, len(r.tables)),
		Summary: r.summary,
	}
	for i, t := range r.tables {
		p.Tables[i] = t.projection()
	}
	return p
}

func (r *Registry) JSONOutput(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.projection())
}

func (r *Registry) YAMLOutput(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(r.projection())
}
