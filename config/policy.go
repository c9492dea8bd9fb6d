package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Policy is the crawl policy the export has to respect
type Policy struct {
	initialURL     *url.URL
	crawlDomains   []glob.Glob
	staticDomains  []glob.Glob
	ignorePatterns []*regexp.Regexp
}

// NewPolicy compiles domain wildcards like *.example.com and ignore patterns
func NewPolicy(conf *Config) (p *Policy, err error) {
	initialURL, errParse := url.Parse(conf.Target)
	if errParse != nil {
		return nil, fmt.Errorf("target %q: %w", conf.Target, errParse)
	}
	if initialURL.Host == "" {
		return nil, fmt.Errorf("target %q has no host", conf.Target)
	}
	p = &Policy{initialURL: initialURL}
	p.crawlDomains, err = compileDomains(conf.CrawlDomains)
	if err != nil {
		return nil, err
	}
	p.staticDomains, err = compileDomains(conf.StaticDomains)
	if err != nil {
		return nil, err
	}
	p.ignorePatterns, err = CompileRegexps(conf.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func compileDomains(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, errCompile := glob.Compile(strings.ToLower(pattern), '.')
		if errCompile != nil {
			return nil, fmt.Errorf("domain pattern %q: %w", pattern, errCompile)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// CompileRegexps accepts plain go expressions as well as /delimited/ims ones
func CompileRegexps(exprs []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		var (
			re         *regexp.Regexp
			errCompile error
		)
		if inner, modifiers, ok := splitDelimited(expr); ok {
			re, errCompile = compileDelimited(inner, modifiers)
		} else {
			re, errCompile = regexp.Compile(expr)
		}
		if errCompile != nil {
			return nil, fmt.Errorf("pattern %q: %w", expr, errCompile)
		}
		res = append(res, re)
	}
	return res, nil
}

func matchDomain(globs []glob.Glob, host string) bool {
	host = strings.ToLower(host)
	for _, g := range globs {
		if g.Match(host) {
			return true
		}
	}
	return false
}

func (p *Policy) IsExternalHostAllowedForCrawl(host string) bool {
	return matchDomain(p.crawlDomains, host)
}

func (p *Policy) IsStaticFileAllowedForHost(host string) bool {
	return matchDomain(p.staticDomains, host) || matchDomain(p.crawlDomains, host)
}

func (p *Policy) InitialURL() *url.URL {
	u := *p.initialURL
	return &u
}

func (p *Policy) IgnorePatterns() []*regexp.Regexp {
	return p.ignorePatterns
}
