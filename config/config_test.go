package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	confComplete = `
---
target: https://www.bestbytes.de
exportdir: /tmp/export
disableimages: false
disablefiles: true
storeonlyurls:
  - /docs/
excludeselectors:
  - nav
  - .cookie-banner
contentreplace:
  - "Copyright -> (c)"
queryreplace:
  - "/page=(\\d+)/i -> p$1"
ignorestoreerrors: true
crawldomains:
  - "*.bestbytes.de"
staticdomains:
  - cdn.example.com
ignorepatterns:
  - "^https?://"
converter:
  command: html2markdown
  args:
    - --gfm
reports: json
...
`
	confMinimal = `
---
target: https://www.bestbytes.de
...
`
	confNoTarget = `
---
exportdir: out
...
`
)

func TestLoad(t *testing.T) {
	cnf, errCnf := Load([]byte(confComplete))
	require.NoError(t, errCnf)
	assert.Equal(t, "https://www.bestbytes.de", cnf.Target)
	assert.Equal(t, "/tmp/export", cnf.ExportDir)
	assert.True(t, cnf.DisableFiles)
	assert.True(t, cnf.IgnoreStoreErrors)
	assert.Equal(t, []string{"nav", ".cookie-banner"}, cnf.ExcludeSelectors)
	assert.Equal(t, "html2markdown", cnf.Converter.Command)
	assert.Equal(t, []string{"--gfm"}, cnf.Converter.Args)
	assert.Equal(t, "json", cnf.Reports)
	assert.True(t, cnf.Enabled())

	cnf, errCnf = Load([]byte(confMinimal))
	require.NoError(t, errCnf)
	assert.Equal(t, "console", cnf.Reports)
	assert.False(t, cnf.Enabled())

	_, errCnf = Load([]byte(confNoTarget))
	assert.ErrorIs(t, errCnf, ErrMissingTarget)
}

func TestPolicy(t *testing.T) {
	cnf, errCnf := Load([]byte(confComplete))
	require.NoError(t, errCnf)
	p, errPolicy := NewPolicy(cnf)
	require.NoError(t, errPolicy)
	assert.Equal(t, "www.bestbytes.de", p.InitialURL().Host)
	assert.True(t, p.IsExternalHostAllowedForCrawl("shop.bestbytes.de"))
	assert.True(t, p.IsExternalHostAllowedForCrawl("Shop.BestBytes.de"))
	assert.False(t, p.IsExternalHostAllowedForCrawl("cdn.example.com"))
	assert.True(t, p.IsStaticFileAllowedForHost("cdn.example.com"))
	assert.False(t, p.IsStaticFileAllowedForHost("evil.com"))
	require.Len(t, p.IgnorePatterns(), 1)
	assert.True(t, p.IgnorePatterns()[0].MatchString("https://foo"))
}

func TestCompileRegexpsModifiers(t *testing.T) {
	res, err := CompileRegexps([]string{`/^b.c$/ms`, `#ABC#i`, `^plain$`})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.True(t, res[0].MatchString("a\nb\nc"), "s lets . match newlines, m anchors per line")
	assert.True(t, res[1].MatchString("abc"))
	assert.True(t, res[2].MatchString("plain"))

	_, err = CompileRegexps([]string{`/a/x`})
	assert.Error(t, err)
}
