package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapFlagCells(t *testing.T) {
	assert.Equal(t, "| `--foo` | `-f` | text |", WrapFlagCells("| --foo | -f | text |"))
	assert.Equal(t, "| --- | --- |", WrapFlagCells("| --- | --- |"))
	assert.Equal(t, "| `--a` |", WrapFlagCells(WrapFlagCells("| --a |")))
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\n\nb"))
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\n\n\n\n\nb"))
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n  \n\t\n\nb"))
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\nb"))
	assert.Equal(t, "a\nb", CollapseBlankLines("a\nb"))
}
