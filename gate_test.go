package exporter

import (
	"testing"

	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, conf *config.Config) *Gate {
	t.Helper()
	policy, err := config.NewPolicy(conf)
	require.NoError(t, err)
	g, err := NewGate(conf, policy)
	require.NoError(t, err)
	return g
}

func page(url string) vo.VisitedResource {
	return vo.VisitedResource{
		UqID:        url,
		URL:         url,
		StatusCode:  200,
		ContentType: vo.ContentTypeHTML,
		SourceAttr:  vo.SourceAHref,
	}
}

func TestGateRejectsRobotsTxt(t *testing.T) {
	g := newTestGate(t, &config.Config{
		Target:        "https://example.com/",
		StoreOnlyURLs: []string{".*"},
	})
	robots := page("https://example.com/robots.txt")
	robots.ContentType = vo.ContentTypeDocument
	assert.True(t, g.Exportable(robots))
	assert.False(t, g.ShouldExport(robots))
	assert.False(t, g.ShouldExport(page("https://example.com/robots.txt?x=1")))
	assert.True(t, g.ShouldExport(page("https://example.com/robots")))
}

func TestGateExternalHosts(t *testing.T) {
	g := newTestGate(t, &config.Config{
		Target:        "https://example.com/",
		CrawlDomains:  []string{"*.example.org"},
		StaticDomains: []string{"cdn.example.net"},
	})
	image := vo.VisitedResource{
		URL:         "https://cdn.example.net/logo.png",
		StatusCode:  200,
		ContentType: vo.ContentTypeImage,
		SourceAttr:  vo.SourceImgSrc,
	}
	tests := []struct {
		name string
		res  vo.VisitedResource
		exp  bool
	}{
		{name: "initial host", res: page("https://example.com/about"), exp: true},
		{name: "initial host other case", res: page("https://EXAMPLE.com/about"), exp: true},
		{name: "external page", res: page("https://other.com/"), exp: false},
		{name: "crawl domain", res: page("https://docs.example.org/"), exp: true},
		{name: "page on static domain", res: page("https://cdn.example.net/"), exp: false},
		{name: "static file on static domain", res: image, exp: true},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, g.ShouldExport(test.res), test.name)
	}
}

func TestGateStoreOnlyURLs(t *testing.T) {
	g := newTestGate(t, &config.Config{
		Target:        "https://example.com/",
		StoreOnlyURLs: []string{`/docs/`, `#/blog/\d+#`},
	})
	assert.True(t, g.ShouldExport(page("https://example.com/docs/intro")))
	assert.True(t, g.ShouldExport(page("https://example.com/blog/2024")))
	assert.False(t, g.ShouldExport(page("https://example.com/blog/latest")))
	assert.False(t, g.ShouldExport(page("https://example.com/")))
}

func TestGateExportable(t *testing.T) {
	g := newTestGate(t, &config.Config{Target: "https://example.com/"})
	res := func(ct vo.ContentType, status int, source vo.SourceAttr) vo.VisitedResource {
		return vo.VisitedResource{
			URL:         "https://example.com/x",
			StatusCode:  status,
			ContentType: ct,
			SourceAttr:  source,
		}
	}
	assert.True(t, g.Exportable(res(vo.ContentTypeHTML, 200, vo.SourceAHref)))
	assert.True(t, g.Exportable(res(vo.ContentTypeRedirect, 200, vo.SourceRedirect)))
	assert.False(t, g.Exportable(res(vo.ContentTypeHTML, 404, vo.SourceAHref)))
	assert.False(t, g.Exportable(res(vo.ContentTypeHTML, 301, vo.SourceAHref)))
	assert.True(t, g.Exportable(res(vo.ContentTypeImage, 200, vo.SourceImgSrc)))
	assert.True(t, g.Exportable(res(vo.ContentTypeImage, 200, vo.SourceAHref)))
	assert.False(t, g.Exportable(res(vo.ContentTypeImage, 200, vo.SourceCSSURL)))
	assert.False(t, g.Exportable(res(vo.ContentTypeImage, 200, vo.SourceSourceSrcset)))
	assert.True(t, g.Exportable(res(vo.ContentTypeDocument, 200, vo.SourceAHref)))
	assert.False(t, g.Exportable(res(vo.ContentTypeScript, 200, vo.SourceScriptSrc)))
	assert.False(t, g.Exportable(res(vo.ContentTypeStylesheet, 200, vo.SourceLinkHref)))

	disabled := newTestGate(t, &config.Config{
		Target:        "https://example.com/",
		DisableImages: true,
		DisableFiles:  true,
	})
	assert.False(t, disabled.Exportable(res(vo.ContentTypeImage, 200, vo.SourceImgSrc)))
	assert.False(t, disabled.Exportable(res(vo.ContentTypeDocument, 200, vo.SourceAHref)))
	assert.True(t, disabled.Exportable(res(vo.ContentTypeHTML, 200, vo.SourceAHref)))
}
