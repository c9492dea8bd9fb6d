package normalize

import "regexp"

var (
	flagCellRegex  = regexp.MustCompile(`\|[ \t]+(--?[A-Za-z][\w-]*)[ \t]+\|`)
	blankRunsRegex = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// WrapFlagCells formats table cells, that only hold a cli flag, as code
func WrapFlagCells(content string) string {
	// neighbouring cells share a pipe, so repeat until nothing changes
	for {
		next := flagCellRegex.ReplaceAllString(content, "| `$1` |")
		if next == content {
			return next
		}
		content = next
	}
}

// CollapseBlankLines limits runs of empty lines to one blank line
func CollapseBlankLines(content string) string {
	return blankRunsRegex.ReplaceAllString(content, "\n\n")
}
