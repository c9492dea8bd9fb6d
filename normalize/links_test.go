package normalize

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteLinkExtensions(t *testing.T) {
	ignore := []*regexp.Regexp{regexp.MustCompile(`^https?://`)}
	tests := map[string]string{
		"[a](docs/intro.html)":               "[a](docs/intro.md)",
		"[a](intro.html#setup)":              "[a](intro.md#setup)",
		`[a](intro.html "Intro")`:            `[a](intro.md "Intro")`,
		"[a](https://example.com/x.html)":    "[a](https://example.com/x.html)",
		"[![i](img/a.png)](../page.html)":    "[![i](img/a.png)](../page.md)",
		"[a](intro.htm)":                     "[a](intro.htm)",
		"see [a](a.html) and [b](b.html#c).": "see [a](a.md) and [b](b.md#c).",
	}
	for in, exp := range tests {
		assert.Equal(t, exp, RewriteLinkExtensions(in, ignore), in)
	}
}

func TestStripImages(t *testing.T) {
	assert.Equal(t, "a  b", StripImages("a [![x](i.png)](big.png) b"))
	assert.Equal(t, "a  b", StripImages("a ![x](i.png) b"))
	assert.Equal(t, "[link](page.md)", StripImages("[link](page.md)"))
}

func TestStripFileLinks(t *testing.T) {
	ignore := []*regexp.Regexp{regexp.MustCompile(`keep\.zip$`)}
	tests := map[string]string{
		"Get [the manual](files/manual.pdf) now.": "Get now.",
		"[manual](files/manual.pdf) first":        " first",
		"see [page](page.md)":                     "see [page](page.md)",
		"see ![logo](img/logo.PNG)":               "see ![logo](img/logo.PNG)",
		"see [remote](https://x.com/a.pdf)":       "see [remote](https://x.com/a.pdf)",
		"see [zip](dl/keep.zip)":                  "see [zip](dl/keep.zip)",
		"see [dir](docs/)":                        "see [dir](docs/)",
		"see [zip](dl/a.zip?v=1).":                "see .",
	}
	for in, exp := range tests {
		assert.Equal(t, exp, StripFileLinks(in, ignore), in)
	}
}

func TestRemoveEmptyLinks(t *testing.T) {
	assert.Equal(t, "", RemoveEmptyLinks("[text]()"))
	assert.Equal(t, "", RemoveEmptyLinks(RemoveEmptyLinks("[text]()")))
	assert.Equal(t, "a  b", RemoveEmptyLinks("a ![img]() b"))
	assert.Equal(t, "[x](y)", RemoveEmptyLinks("[x](y)"))
}

func TestRepairSplitLinks(t *testing.T) {
	assert.Equal(t, "[![a](a.png)](a.md)", RepairSplitLinks("[\n![a](a.png)\n](a.md)"))
}
