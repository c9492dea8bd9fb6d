package exporter

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextConverter(t *testing.T) {
	c := &TextConverter{}
	md, err := c.Convert(context.Background(), `<html><body><nav>menu</nav><p>Hello World</p></body></html>`, []string{"nav"})
	require.NoError(t, err)
	assert.Contains(t, md, "Hello World")
	assert.NotContains(t, md, "menu")

	_, err = c.Convert(context.Background(), `<html><body><nav>menu</nav></body></html>`, []string{"nav"})
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestCommandConverter(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no shell around")
	}
	ctx := context.Background()
	echo := &CommandConverter{Command: "sh", Args: []string{"-c", `cat; printf ' %s' "$@"`, "sh"}}
	md, err := echo.Convert(ctx, "# hello", []string{"nav", ".footer"})
	require.NoError(t, err)
	assert.Equal(t, "# hello --exclude nav --exclude .footer", md)

	silent := &CommandConverter{Command: "sh", Args: []string{"-c", "cat > /dev/null"}}
	_, err = silent.Convert(ctx, "<p>x</p>", nil)
	assert.ErrorIs(t, err, ErrNoOutput)

	failing := &CommandConverter{Command: "sh", Args: []string{"-c", "echo broken >&2; exit 3"}}
	_, err = failing.Convert(ctx, "<p>x</p>", nil)
	assert.ErrorContains(t, err, "broken")
}
