package vo

import (
	"path"
	"strings"
	"time"
)

// ContentType classifies what a visited url returned
type ContentType int

const (
	ContentTypeOther ContentType = iota
	ContentTypeHTML
	ContentTypeRedirect
	ContentTypeImage
	ContentTypeScript
	ContentTypeStylesheet
	ContentTypeFont
	ContentTypeDocument
)

var contentTypeNames = map[ContentType]string{
	ContentTypeOther:      "other",
	ContentTypeHTML:       "html",
	ContentTypeRedirect:   "redirect",
	ContentTypeImage:      "image",
	ContentTypeScript:     "script",
	ContentTypeStylesheet: "stylesheet",
	ContentTypeFont:       "font",
	ContentTypeDocument:   "document",
}

func (ct ContentType) String() string {
	name, ok := contentTypeNames[ct]
	if !ok {
		return "other"
	}
	return name
}

// IsStaticFile everything, that is not a page or a redirect
func (ct ContentType) IsStaticFile() bool {
	switch ct {
	case ContentTypeImage, ContentTypeScript, ContentTypeStylesheet, ContentTypeFont, ContentTypeDocument:
		return true
	}
	return false
}

// ParseContentType maps a Content-Type header value
func ParseContentType(header string) ContentType {
	header = strings.ToLower(header)
	switch true {
	case strings.Contains(header, "html"):
		return ContentTypeHTML
	case strings.HasPrefix(header, "image/"):
		return ContentTypeImage
	case strings.Contains(header, "javascript"):
		return ContentTypeScript
	case strings.Contains(header, "text/css"):
		return ContentTypeStylesheet
	case strings.HasPrefix(header, "font/"), strings.Contains(header, "font-"):
		return ContentTypeFont
	case strings.HasPrefix(header, "application/pdf"),
		strings.Contains(header, "msword"),
		strings.Contains(header, "officedocument"),
		strings.Contains(header, "zip"),
		strings.HasPrefix(header, "text/plain"):
		return ContentTypeDocument
	}
	return ContentTypeOther
}

// RefKind is the attribute flavour a reference was found in
type RefKind int

const (
	RefHref RefKind = iota
	RefSrc
)

// SourceAttr where in the referencing document an url was found
type SourceAttr int

const (
	SourceInitURL SourceAttr = iota
	SourceAHref
	SourceImgSrc
	SourceImgSrcset
	SourceInputSrc
	SourceSourceSrcset
	SourceCSSURL
	SourceJSURL
	SourceRedirect
	SourceLinkHref
	SourceScriptSrc
)

// Kind src like attributes point to embedded files, everything else is navigation
func (sa SourceAttr) Kind() RefKind {
	switch sa {
	case SourceImgSrc, SourceImgSrcset, SourceInputSrc, SourceSourceSrcset, SourceCSSURL, SourceScriptSrc:
		return RefSrc
	}
	return RefHref
}

// VisitedResource is the recorded outcome of one crawled url
type VisitedResource struct {
	UqID        string
	URL         string
	StatusCode  int
	ContentType ContentType
	IsExternal  bool
	SourceUqID  string
	SourceAttr  SourceAttr
	Size        int
	Duration    time.Duration
}

func (r VisitedResource) IsStaticFile() bool {
	return r.ContentType.IsStaticFile()
}

// BaseName of the url path without query or fragment
func (r VisitedResource) BaseName() string {
	u := r.URL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
		slash := strings.Index(u, "/")
		if slash < 0 {
			return ""
		}
		u = u[slash:]
	}
	return path.Base(u)
}
