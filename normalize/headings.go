package normalize

import (
	"regexp"
	"strings"
)

var headingRegex = regexp.MustCompile(`^(#{1,3})[ \t]+\S`)

// ReorderHeadings moves everything in front of the first top level heading to
// the end of the document, behind a horizontal rule. Navigation and other
// boilerplate usually lives there.
func ReorderHeadings(content string) string {
	lines := strings.Split(content, "\n")
	first := map[int]int{}
	inFence := false
	for i, line := range lines {
		if fenceRegex.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, ok := first[len(m[1])]; !ok {
			first[len(m[1])] = i
		}
	}
	index := -1
	for level := 1; level <= 3; level++ {
		if i, ok := first[level]; ok {
			index = i
			break
		}
	}
	if index <= 0 {
		return content
	}
	before := strings.Trim(strings.Join(lines[:index], "\n"), "\n")
	if isBlank(before) {
		return content
	}
	rest := strings.TrimRight(strings.Join(lines[index:], "\n"), "\n")
	return rest + "\n\n---\n\n" + before
}
