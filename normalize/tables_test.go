package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTables(t *testing.T) {
	in := `<p>before</p><TABLE class="x"><tr><th>A</th><th>B</th><th>C</th></tr><tr><td>1</td><td>2</td><td>3</td></tr></TABLE><p>after</p>`
	out := ConvertTables(in)
	assert.Equal(t, "<p>before</p>\n| A | B | C |\n| --- | --- | --- |\n| 1 | 2 | 3 |\n<p>after</p>", out)

	lines := []string{}
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "|") {
			lines = append(lines, l)
		}
	}
	assert.Len(t, lines, 3)
}

func TestConvertTablesPadsShortRows(t *testing.T) {
	in := "<table>\n<tr><td>a</td></tr>\n<tr><td>b</td><td>c</td></tr>\n</table>"
	assert.Equal(t, "\n| a |  |\n| --- | --- |\n| b | c |\n", ConvertTables(in))
}

func TestConvertTablesEscapesScripts(t *testing.T) {
	in := "<table><tr><td>x<script>alert(1)</script></td><td><style>b{}</style></td></tr></table>"
	out := ConvertTables(in)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "&lt;style&gt;")
}

func TestConvertTablesWithoutRows(t *testing.T) {
	in := "<table></table>"
	assert.Equal(t, in, ConvertTables(in))
	assert.Equal(t, "no tables here", ConvertTables("no tables here"))
}

func TestProtectTables(t *testing.T) {
	in := `<p>before</p><table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table><table></table>`
	protected, guard := ProtectTables(in)
	assert.NotContains(t, protected, "<th>")
	assert.Contains(t, protected, "<table></table>")

	// a converter, that squeezes all whitespace, must not hurt the table
	converted := strings.Join(strings.Fields(strings.NewReplacer("<p>", "\n\n", "</p>", "\n\n").Replace(protected)), " ")
	restored := guard.Restore(converted)
	assert.Contains(t, restored, "\n| A | B |\n| --- | --- |\n| 1 | 2 |\n")
	assert.True(t, strings.HasPrefix(restored, "before "), restored)
}

func TestProtectTablesWithoutTables(t *testing.T) {
	protected, guard := ProtectTables("<p>plain</p>")
	assert.Equal(t, "<p>plain</p>", protected)
	assert.Equal(t, "plain", guard.Restore("plain"))
}
