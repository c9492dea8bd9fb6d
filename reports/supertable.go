package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Position of a table relative to the url table of a report
type Position string

const (
	PositionBeforeURLTable Position = "before-url-table"
	PositionAfterURLTable  Position = "after-url-table"
)

// Row maps column keys to raw values, sorting works on the raw values
type Row map[string]any

type Column struct {
	Key   string
	Name  string
	Width int
	// Formatter turns the raw value into text for all outputs
	Formatter func(value any) string
	// Renderer produces trusted html for a cell, it sees the whole row
	Renderer func(row Row) string
}

func (c *Column) format(row Row) string {
	value := row[c.Key]
	if c.Formatter != nil {
		return c.Formatter(value)
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

var (
	ErrNoColumns         = errors.New("a table needs at least one column")
	ErrInvalidColumn     = errors.New("columns must not be nil and need a key")
	ErrDuplicateColumn   = errors.New("duplicate column key")
	ErrUnknownSortColumn = errors.New("unknown sort column")
)

const ellipsis = "…"

// SuperTable is a sortable table, that renders to html, console and json
type SuperTable struct {
	ID           string
	AplCode      string
	Title        string
	EmptyMessage string
	Position     Position
	Columns      []*Column
	Rows         []Row

	sortColumn string
	direction  Direction
}

func NewSuperTable(
	aplCode, title, emptyMessage string,
	columns []*Column,
	sortColumn string,
	direction Direction,
) (t *SuperTable, err error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	keys := map[string]bool{}
	for _, c := range columns {
		if c == nil || c.Key == "" {
			return nil, ErrInvalidColumn
		}
		if keys[c.Key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Key)
		}
		keys[c.Key] = true
	}
	if sortColumn != "" && !keys[sortColumn] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSortColumn, sortColumn)
	}
	return &SuperTable{
		ID:           uuid.NewString(),
		AplCode:      aplCode,
		Title:        title,
		EmptyMessage: emptyMessage,
		Position:     PositionAfterURLTable,
		Columns:      columns,
		Rows:         []Row{},
		sortColumn:   sortColumn,
		direction:    direction,
	}, nil
}

// SetData replaces all rows and sorts them
func (t *SuperTable) SetData(rows []Row) {
	t.Rows = append([]Row{}, rows...)
	t.sort()
}

// SortBy changes the sort order and re-sorts
func (t *SuperTable) SortBy(column string, direction Direction) error {
	if t.column(column) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSortColumn, column)
	}
	t.sortColumn = column
	t.direction = direction
	t.sort()
	return nil
}

func (t *SuperTable) column(key string) *Column {
	for _, c := range t.Columns {
		if c.Key == key {
			return c
		}
	}
	return nil
}

func (t *SuperTable) sort() {
	if t.sortColumn == "" {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		cmp := compare(t.Rows[i][t.sortColumn], t.Rows[j][t.sortColumn])
		if t.direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compare is a three way comparison of raw values, nil comes first
func compare(a, b any) int {
	if a == nil || b == nil {
		switch true {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	fa, okA := number(a)
	fb, okB := number(b)
	if okA && okB {
		switch true {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case time.Duration:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// HTMLOutput a table, clicking a header re-sorts the rows in the browser
func (t *SuperTable) HTMLOutput() string {
	sb := &strings.Builder{}
	esc := html.EscapeString
	fmt.Fprintf(sb, "<section class=\"super-table\" id=\"%s\" data-apl-code=\"%s\">\n", esc(t.ID), esc(t.AplCode))
	fmt.Fprintf(sb, "<h2>%s</h2>\n", esc(t.Title))
	if len(t.Rows) == 0 {
		fmt.Fprintf(sb, "<p class=\"empty\">%s</p>\n</section>\n", esc(t.EmptyMessage))
		return sb.String()
	}
	sb.WriteString("<table>\n<thead><tr>")
	for i, c := range t.Columns {
		dir := ""
		if c.Key == t.sortColumn {
			dir = t.direction.String()
		}
		fmt.Fprintf(sb, "<th data-key=\"%s\" data-dir=\"%s\" onclick=\"sortSuperTable('%s', %d)\">%s</th>", esc(c.Key), dir, esc(t.ID), i, esc(c.Name))
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, c := range t.Columns {
			raw := ""
			if v, ok := row[c.Key]; ok && v != nil {
				raw = fmt.Sprint(v)
			}
			cell := esc(c.format(row))
			if c.Renderer != nil {
				cell = c.Renderer(row)
			}
			fmt.Fprintf(sb, "<td data-value=\"%s\">%s</td>", esc(raw), cell)
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
	sb.WriteString(sortScript)
	sb.WriteString("</section>\n")
	return sb.String()
}

const sortScript = `<script>
function sortSuperTable(id, index) {
	var table = document.getElementById(id).querySelector("table");
	var th = table.tHead.rows[0].cells[index];
	var asc = th.getAttribute("data-dir") !== "asc";
	Array.prototype.forEach.call(table.tHead.rows[0].cells, function(c) { c.setAttribute("data-dir", ""); });
	th.setAttribute("data-dir", asc ? "asc" : "desc");
	var rows = Array.prototype.slice.call(table.tBodies[0].rows);
	rows.sort(function(a, b) {
		var x = a.cells[index].getAttribute("data-value"), y = b.cells[index].getAttribute("data-value");
		var nx = parseFloat(x), ny = parseFloat(y);
		var cmp = (!isNaN(nx) && !isNaN(ny)) ? nx - ny : x.localeCompare(y);
		return asc ? cmp : -cmp;
	});
	rows.forEach(function(r) { table.tBodies[0].appendChild(r); });
}
</script>
`

// ConsoleOutput fixed width text, values wider than their column are cut
func (t *SuperTable) ConsoleOutput() string {
	sb := &strings.Builder{}
	sb.WriteString(color.New(color.Bold).Sprint(t.Title) + "\n")
	sb.WriteString(strings.Repeat("-", runewidth.StringWidth(t.Title)) + "\n")
	if len(t.Rows) == 0 {
		sb.WriteString(t.EmptyMessage + "\n")
		return sb.String()
	}
	cells := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = pad(c.Name, c.Width)
	}
	sb.WriteString(color.New(color.FgCyan).Sprint(strings.TrimRight(strings.Join(cells, " | "), " ")) + "\n")
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			cells[i] = pad(c.format(row), c.Width)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " | "), " ") + "\n")
	}
	return sb.String()
}

func pad(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

type jsonColumn struct {
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Width int    `json:"width" yaml:"width"`
}

type jsonTable struct {
	ID           string              `json:"id" yaml:"id"`
	AplCode      string              `json:"aplCode" yaml:"aplCode"`
	Title        string              `json:"title" yaml:"title"`
	EmptyMessage string              `json:"emptyMessage" yaml:"emptyMessage"`
	Position     Position            `json:"position" yaml:"position"`
	Columns      []jsonColumn        `json:"columns" yaml:"columns"`
	Rows         []map[string]string `json:"rows" yaml:"rows"`
}

func (t *SuperTable) projection() jsonTable {
	p := jsonTable{
		ID:           t.ID,
		AplCode:      t.AplCode,
		Title:        t.Title,
		EmptyMessage: t.EmptyMessage,
		Position:     t.Position,
		Columns:      make([]jsonColumn, len(t.Columns)),
		Rows:         make([]map[string]string, len(t.Rows)),
	}
	for i, c := range t.Columns {
		p.Columns[i] = jsonColumn{Key: c.Key, Name: c.Name, Width: c.Width}
	}
	for i, row := range t.Rows {
		p.Rows[i] = map[string]string{}
		for _, c := range t.Columns {
			p.Rows[i][c.Key] = c.format(row)
		}
	}
	return p
}

func (t *SuperTable) JSONOutput() ([]byte, error) {
	return json.Marshal(t.projection())
}
