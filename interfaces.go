package exporter

import (
	"context"
	"net/url"
	"regexp"

	"github.com/foomo/exporter/vo"
)

// ResourceStore holds the outcome of a finished crawl
type ResourceStore interface {
	All() []vo.VisitedResource
	Body(uqID string) (body string, ok bool)
	URLByID(uqID string) (u string, ok bool)
}

// Policy is what the crawl was allowed to do
type Policy interface {
	IsExternalHostAllowedForCrawl(host string) bool
	IsStaticFileAllowedForHost(host string) bool
	InitialURL() *url.URL
	IgnorePatterns() []*regexp.Regexp
}

// Converter turns html into markdown
type Converter interface {
	Convert(ctx context.Context, html string, excludeSelectors []string) (markdown string, err error)
}

// ContentHook mutates html and redirect bodies before they are stored
type ContentHook interface {
	ApplyContentChanges(content string, contentType vo.ContentType, u *url.URL, offline bool) string
}
