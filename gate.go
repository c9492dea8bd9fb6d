package exporter

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/vo"
)

const robotsTxt = "robots.txt"

type filterFunc func(res vo.VisitedResource) bool
type filterChain []filterFunc

// Gate decides which visited resources end up in the export
type Gate struct {
	initialHost   string
	disableImages bool
	disableFiles  bool
	chain         filterChain
}

func NewGate(conf *config.Config, policy Policy) (g *Gate, err error) {
	storeOnly, errCompile := config.CompileRegexps(conf.StoreOnlyURLs)
	if errCompile != nil {
		return nil, errCompile
	}
	g = &Gate{
		initialHost:   strings.ToLower(policy.InitialURL().Hostname()),
		disableImages: conf.DisableImages,
		disableFiles:  conf.DisableFiles,
	}
	g.chain = getFilterChain(g.initialHost, storeOnly, policy)
	return g, nil
}

func getFilterChain(initialHost string, storeOnly []*regexp.Regexp, policy Policy) filterChain {
	chain := filterChain{}
	if len(storeOnly) > 0 {
		chain = append(chain, func(res vo.VisitedResource) bool {
			for _, re := range storeOnly {
				if re.MatchString(res.URL) {
					return true
				}
			}
			return false
		})
	}
	chain = append(chain, func(res vo.VisitedResource) bool {
		host, external := externalHost(res, initialHost)
		if !external {
			return true
		}
		return policy.IsExternalHostAllowedForCrawl(host) ||
			(res.IsStaticFile() && policy.IsStaticFileAllowedForHost(host))
	})
	// robots.txt never makes it into an export, no matter what was configured before
	chain = append(chain, func(res vo.VisitedResource) bool {
		return res.BaseName() != robotsTxt
	})
	return chain
}

func externalHost(res vo.VisitedResource, initialHost string) (host string, external bool) {
	u, errParse := url.Parse(res.URL)
	if errParse != nil {
		return "", res.IsExternal
	}
	host = strings.ToLower(u.Hostname())
	if host == "" {
		return host, res.IsExternal
	}
	return host, res.IsExternal || host != initialHost
}

// Exportable is the pre filter: successful responses of a content type, that
// is enabled. Images only count, when they were referenced by <img src> or
// <a href>.
func (g *Gate) Exportable(res vo.VisitedResource) bool {
	if res.StatusCode != 200 {
		return false
	}
	switch res.ContentType {
	case vo.ContentTypeHTML, vo.ContentTypeRedirect:
		return true
	case vo.ContentTypeImage:
		if g.disableImages {
			return false
		}
		return res.SourceAttr == vo.SourceImgSrc || res.SourceAttr == vo.SourceAHref
	case vo.ContentTypeDocument:
		return !g.disableFiles
	}
	return false
}

// ShouldExport runs the filter chain, the first rejecting filter wins
func (g *Gate) ShouldExport(res vo.VisitedResource) bool {
	for _, filter := range g.chain {
		if !filter(res) {
			return false
		}
	}
	return true
}
