package normalize

import (
	"regexp"
	"strings"
)

type language struct {
	name     string
	patterns []*regexp.Regexp
}

func newLanguage(name string, exprs ...string) language {
	l := language{name: name}
	for _, expr := range exprs {
		l.patterns = append(l.patterns, regexp.MustCompile(expr))
	}
	return l
}

// order matters, on equal scores the first one wins
var languages = []language{
	newLanguage("php",
		`<\?php`, `\$[a-zA-Z_]\w*\s*=`, `->\w+\(`, `\bnamespace\s+[\w\\]+;`,
		`(?m)^\s*use\s+[\w\\]+;`, `\becho\s`, `\bpublic\s+function\b`,
	),
	newLanguage("javascript",
		`\bconst\s+\w+\s*=`, `\blet\s+\w+\s*=`, `=>\s*[{(]`, `\bfunction\s*\w*\s*\(`,
		`\bconsole\.log\(`, `\brequire\(['"]`, `\bdocument\.\w+`, `\bexport\s+default\b`,
	),
	newLanguage("typescript",
		`:\s*(?:string|number|boolean|any|void)\b`, `\binterface\s+\w+\s*\{`,
		`\btype\s+\w+\s*=`, `\bimport\s+.*\s+from\s+['"]`, `\benum\s+\w+\s*\{`,
	),
	newLanguage("python",
		`(?m)^\s*def\s+\w+\(.*\):`, `(?m)^\s*import\s+\w+`, `(?m)^\s*from\s+[\w.]+\s+import\b`,
		`\bself\.\w+`, `\bprint\(`, `(?m)^\s*class\s+\w+(?:\(.*\))?:`, `\belif\b`, `\bNone\b`,
	),
	newLanguage("go",
		`(?m)^package\s+\w+`, `\bfunc\s+(?:\(\w+\s+\*?\w+\)\s*)?\w+\(`, `:=`,
		`\bfmt\.\w+\(`, `\berr\s*!=\s*nil\b`, `\bgo\s+func\b`, `\bchan\s+\w+`,
	),
	newLanguage("java",
		`\bpublic\s+(?:static\s+)?(?:final\s+)?class\s+\w+`, `\bSystem\.out\.print`,
		`\bpublic\s+static\s+void\s+main\b`, `@Override\b`, `\bprivate\s+final\s+\w+`, `\bimport\s+java\.`,
	),
	newLanguage("csharp",
		`\busing\s+System`, `\bConsole\.Write`, `\bpublic\s+async\s+Task\b`,
		`\{\s*get;\s*set;\s*\}`, `\bvar\s+\w+\s*=\s*new\b`,
	),
	newLanguage("c",
		`#include\s*<\w+\.h>`, `\bint\s+main\s*\(`, `\bprintf\s*\(`, `\bmalloc\s*\(`,
		`\bstruct\s+\w+\s*\{`,
	),
	newLanguage("cpp",
		`#include\s*<(?:iostream|vector|string|map|memory)>`, `\bstd::\w+`, `\bcout\s*<<`,
		`\btemplate\s*<`, `\bnullptr\b`,
	),
	newLanguage("rust",
		`\bfn\s+\w+\s*[(<]`, `\blet\s+mut\s+\w+`, `\bimpl\s+(?:<.*>\s*)?\w+`, `\bprintln!\(`,
		`\buse\s+\w+::`, `\bpub\s+fn\b`, `&mut\s+\w+`,
	),
	newLanguage("ruby",
		`(?m)^\s*def\s+\w+[?!]?(?:\(.*\))?\s*$`, `(?m)^\s*end\s*$`, `\bputs\s`,
		`\brequire\s+['"]`, `\.each\s+do\s*\|`, `\battr_accessor\b`,
	),
	newLanguage("swift",
		`\bimport\s+(?:UIKit|Foundation|SwiftUI)\b`, `\bfunc\s+\w+\(.*\)\s*->`, `\bguard\s+let\b`,
		`\bif\s+let\b`, `\bstruct\s+\w+\s*:\s*View\b`,
	),
	newLanguage("kotlin",
		`\bfun\s+\w+\(`, `\bval\s+\w+\s*=`, `\bdata\s+class\b`, `\bprintln\(`, `\bcompanion\s+object\b`,
	),
	newLanguage("scala",
		`\bobject\s+\w+\s+extends\b`, `\bdef\s+\w+\(.*\)\s*:\s*\w+\s*=`, `\bcase\s+class\b`,
		`\bval\s+\w+\s*:\s*\w+\s*=`, `\bimplicit\b`,
	),
	newLanguage("sql",
		`(?is)\bSELECT\b.+?\bFROM\b`, `(?i)\bINSERT\s+INTO\b`, `(?i)\bUPDATE\s+\w+\s+SET\b`,
		`(?i)\bCREATE\s+(?:TABLE|INDEX|VIEW)\b`, `(?i)\bWHERE\b`, `(?i)\b(?:INNER|LEFT|RIGHT)\s+JOIN\b`,
		`(?i)\bDELETE\s+FROM\b`,
	),
	newLanguage("bash",
		`(?m)^#!/(?:usr/)?bin/(?:env\s+)?(?:ba)?sh`,
		`(?m)^\s*(?:sudo\s+)?(?:apt|apt-get|yum|brew|npm|pip|composer|docker|git|curl|wget|cd|mkdir|chmod|export)\s`,
		`(?m)^\s*if\s+\[`, `(?m)^\s*fi\s*$`, `\|\s*grep\b`, `(?m)^\$\s+\w+`,
	),
	newLanguage("powershell",
		`\b(?:Get|Set|New|Remove|Write)-[A-Z]\w+`, `-ErrorAction\b`, `\|\s*Where-Object\b`, `\$PSVersionTable\b`,
	),
	newLanguage("html",
		`(?i)<!DOCTYPE\s+html>`, `(?i)<(?:html|head|body|div|span|p|a|ul|li|script|link)\b[^>]*>`,
		`(?i)</(?:div|span|p|a|ul|li|body|html)>`,
	),
	newLanguage("xml",
		`<\?xml\s`, `xmlns(?::\w+)?=`, `<!\[CDATA\[`,
	),
	newLanguage("css",
		`(?m)^\s*[.#]?[\w-]+(?:\s*[,>+~]\s*[.#]?[\w-]+)*\s*\{`, `(?m)^\s*[\w-]+\s*:\s*[^;{]+;\s*$`,
		`@media\b`, `!important\b`, `\b\d+(?:px|em|rem|vh|vw)\b`,
	),
	newLanguage("scss",
		`(?m)^\s*\$[\w-]+\s*:\s*[^;]+;`, `@mixin\s+\w+`, `@include\s+\w+`, `&:\w+`, `@extend\s`,
	),
	newLanguage("json",
		`(?m)^\s*[{\[]\s*$`, `"[\w-]+"\s*:\s*(?:"|\d|true|false|null|\{|\[)`,
	),
	newLanguage("yaml",
		`(?m)^[\w-]+:\s*$`, `(?m)^\s*[\w-]+:\s+[^{}\n]+$`, `(?m)^\s*-\s+[\w-]+:\s`, `(?m)^---\s*$`,
	),
	newLanguage("dockerfile",
		`(?m)^FROM\s+\S+`, `(?m)^RUN\s`, `(?m)^(?:COPY|ADD)\s`, `(?m)^(?:CMD|ENTRYPOINT)\s`,
		`(?m)^(?:ENV|EXPOSE|WORKDIR|ARG)\s`,
	),
	newLanguage("ini",
		`(?m)^\[[\w.\s-]+\]\s*$`, `(?m)^\w+\s*=\s*.+$`, `(?m)^;`,
	),
	newLanguage("lua",
		`\blocal\s+\w+\s*=`, `\bfunction\s+\w+[.:]?\w*\(`, `\bthen\b`, `\.\.\s*["']`, `\bnil\b`,
	),
}

var openFenceRegex = regexp.MustCompile("^([ \t]*)(```+|~~~+)[ \t]*([^`\\s]*)[^`]*$")

// DetectLanguage scores code against every language, one point per pattern
// match, and returns the best one or "" when nothing matched
func DetectLanguage(code string) string {
	best := ""
	bestScore := 0
	for _, l := range languages {
		score := 0
		for _, p := range l.patterns {
			score += len(p.FindAllStringIndex(code, -1))
		}
		if score > bestScore {
			best = l.name
			bestScore = score
		}
	}
	return best
}

// DetectCodeLanguages tags fenced code blocks, that have no language yet
func DetectCodeLanguages(content string) string {
	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		m := openFenceRegex.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		end := closingFence(lines, i+1, m[2])
		if end < 0 {
			break
		}
		if m[3] == "" {
			if lang := DetectLanguage(strings.Join(lines[i+1:end], "\n")); lang != "" {
				lines[i] = m[1] + m[2] + lang
			}
		}
		i = end
	}
	return strings.Join(lines, "\n")
}

func closingFence(lines []string, from int, fence string) int {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
			return i
		}
	}
	return -1
}
