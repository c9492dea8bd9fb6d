package normalize

import (
	"regexp"
	"strings"
)

var (
	listContinuationRegex = regexp.MustCompile(`\\[ \t]*\n[ \t]*\n[ \t]*-[ \t]+`)
	listItemRegex         = regexp.MustCompile(`^[ \t]*(?:[-*+]|\d+[.)])[ \t]+`)
	fenceRegex            = regexp.MustCompile("^[ \t]*(```|~~~)")
)

// CollapseListContinuations joins "text\" + blank line + "- item" into one line
func CollapseListContinuations(content string) string {
	return listContinuationRegex.ReplaceAllString(content, " - ")
}

// StripBlankAfterFence removes blank lines directly after an opening code fence
func StripBlankAfterFence(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inFence := false
	skipBlank := false
	for _, line := range lines {
		if fenceRegex.MatchString(line) {
			inFence = !inFence
			skipBlank = inFence
			result = append(result, line)
			continue
		}
		if skipBlank && isBlank(line) {
			continue
		}
		skipBlank = false
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isListItem(line string) bool {
	return listItemRegex.MatchString(line)
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// TightenLists removes blank lines between items of the same list. Blank lines
// ending a list and blank lines outside of lists are kept, code blocks are not
// touched.
func TightenLists(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inFence := false
	inList := false
	for i, line := range lines {
		if fenceRegex.MatchString(line) {
			inFence = !inFence
			inList = false
			result = append(result, line)
			continue
		}
		if inFence {
			result = append(result, line)
			continue
		}
		if !isBlank(line) {
			switch true {
			case isListItem(line):
				inList = true
			case !isIndented(line):
				inList = false
			}
			result = append(result, line)
			continue
		}
		if inList && nextNonBlankIsListItem(lines, i) {
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

func nextNonBlankIsListItem(lines []string, from int) bool {
	for _, line := range lines[from+1:] {
		if isBlank(line) {
			continue
		}
		return isListItem(line)
	}
	return false
}
