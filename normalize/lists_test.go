package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseListContinuations(t *testing.T) {
	assert.Equal(t, "Menu - Home", CollapseListContinuations("Menu\\\n\n- Home"))
	assert.Equal(t, "a\n\n- b", CollapseListContinuations("a\n\n- b"))
}

func TestStripBlankAfterFence(t *testing.T) {
	assert.Equal(t, "```go\nx := 1\n```", StripBlankAfterFence("```go\n\n\nx := 1\n```"))
	assert.Equal(t, "```\ncode\n```", StripBlankAfterFence("```\n  \ncode\n```"))
	assert.Equal(t, "```\ncode\n```\n\ntext", StripBlankAfterFence("```\ncode\n```\n\ntext"))
}

func TestTightenLists(t *testing.T) {
	tests := []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "unordered",
			in:   "- a\n\n- b\n\n- c",
			exp:  "- a\n- b\n- c",
		},
		{
			name: "ordered and nested",
			in:   "1. one\n\n   - sub\n\n2. two",
			exp:  "1. one\n   - sub\n2. two",
		},
		{
			name: "list end is kept",
			in:   "- a\n\n- b\n\nParagraph\n\n- c",
			exp:  "- a\n- b\n\nParagraph\n\n- c",
		},
		{
			name: "continuation paragraph",
			in:   "- a\n\n  more on a\n\n- b",
			exp:  "- a\n\n  more on a\n- b",
		},
		{
			name: "code blocks are untouched",
			in:   "```\n- a\n\n- b\n```",
			exp:  "```\n- a\n\n- b\n```",
		},
		{
			name: "no lists",
			in:   "a\n\nb",
			exp:  "a\n\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, TightenLists(tt.in))
		})
	}
}
