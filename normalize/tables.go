package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

var (
	tableRegex      = regexp.MustCompile(`(?is)<table\b.*?</table>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	inertEscaper    = strings.NewReplacer("<", "&lt;", ">", "&gt;", "|", `\|`)
)

// ConvertTables replaces every html table with a pipe table. The first row is
// the header, short rows are padded. Fragments without a parsable table stay
// untouched.
func ConvertTables(content string) string {
	return tableRegex.ReplaceAllStringFunc(content, convertTable)
}

// TableGuard holds the pipe tables ProtectTables cut out of a html document
type TableGuard struct {
	token  string
	tables []string
}

// ProtectTables converts the tables of a html document before it goes to a
// converter. Every table is replaced by a paragraph with a placeholder, that
// survives any converter, Restore puts the pipe tables back. Selectors
// excluded at conversion can not address the table element itself anymore.
func ProtectTables(content string) (string, *TableGuard) {
	g := &TableGuard{
		token: "exportertable" + strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	protected := tableRegex.ReplaceAllStringFunc(content, func(fragment string) string {
		table := convertTable(fragment)
		if table == fragment {
			return fragment
		}
		g.tables = append(g.tables, table)
		return "<p>" + g.placeholder(len(g.tables)-1) + "</p>"
	})
	return protected, g
}

func (g *TableGuard) placeholder(i int) string {
	return fmt.Sprintf("%sx%dx", g.token, i)
}

// Restore replaces the placeholders in converted markdown with their tables
func (g *TableGuard) Restore(markdown string) string {
	for i, table := range g.tables {
		markdown = strings.Replace(markdown, g.placeholder(i), table, 1)
	}
	return markdown
}

func convertTable(fragment string) string {
	doc, errDoc := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if errDoc != nil {
		return fragment
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return fragment
	}
	// script and style become visible text, they must never run
	table.Find("script, style").Each(func(i int, s *goquery.Selection) {
		outer, errOuter := goquery.OuterHtml(s)
		if errOuter != nil {
			outer = ""
		}
		s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: outer})
	})

	rows := [][]string{}
	maxCols := 0
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		row := []string{}
		tr.ChildrenFiltered("th, td").Each(func(i int, cell *goquery.Selection) {
			text := strings.TrimSpace(whitespaceRegex.ReplaceAllString(cell.Text(), " "))
			row = append(row, inertEscaper.Replace(text))
		})
		if len(row) == 0 {
			return
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
		rows = append(rows, row)
	})
	if len(rows) == 0 {
		return fragment
	}

	var sb strings.Builder
	sb.WriteString("\n")
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < maxCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(rows[0])
	separator := make([]string, maxCols)
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(separator)
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return sb.String()
}
