package exporter

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/urlpath"
	"github.com/foomo/exporter/vo"
)

type reference struct {
	selector string
	attr     string
	kind     vo.RefKind
	srcset   bool
}

var references = []reference{
	{selector: "a[href]", attr: "href", kind: vo.RefHref},
	{selector: "area[href]", attr: "href", kind: vo.RefHref},
	{selector: "link[href]", attr: "href", kind: vo.RefHref},
	{selector: "img[src]", attr: "src", kind: vo.RefSrc},
	{selector: "script[src]", attr: "src", kind: vo.RefSrc},
	{selector: "input[src]", attr: "src", kind: vo.RefSrc},
	{selector: "source[src]", attr: "src", kind: vo.RefSrc},
	{selector: "img[srcset]", attr: "srcset", kind: vo.RefSrc, srcset: true},
	{selector: "source[srcset]", attr: "srcset", kind: vo.RefSrc, srcset: true},
}

var refreshRegex = regexp.MustCompile(`(?i)^(\s*\d*\s*;\s*url\s*=\s*)['"]?([^'"]*)['"]?\s*$`)

// extensions of urls, that serve documents
var pageExtensions = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
	".shtml": true,
	".php":   true,
	".asp":   true,
	".aspx":  true,
	".jsp":   true,
	".cfm":   true,
	".cgi":   true,
}

func isDocument(ct vo.ContentType) bool {
	return ct == vo.ContentTypeHTML || ct == vo.ContentTypeRedirect
}

// refKind is the one rule deciding, how a resource is stored and linked
func refKind(ct vo.ContentType) vo.RefKind {
	if isDocument(ct) {
		return vo.RefHref
	}
	return vo.RefSrc
}

// ContentTypeLookup tells the content type of a visited url
type ContentTypeLookup func(u *url.URL) (vo.ContentType, bool)

// ReferenceRewriter points all references of a document to their local files
type ReferenceRewriter struct {
	resolver     *urlpath.Resolver
	policy       Policy
	contentTypes ContentTypeLookup
}

// NewReferenceRewriter contentTypes may be nil, then every target is guessed
// from its attribute and extension
func NewReferenceRewriter(resolver *urlpath.Resolver, policy Policy, contentTypes ContentTypeLookup) *ReferenceRewriter {
	return &ReferenceRewriter{
		resolver:     resolver,
		policy:       policy,
		contentTypes: contentTypes,
	}
}

// kind of a reference, visited targets are linked the way they were stored
func (r *ReferenceRewriter) kind(base *url.URL, target string, attrKind vo.RefKind) vo.RefKind {
	ref, errRef := url.Parse(strings.TrimSpace(target))
	if errRef != nil {
		return attrKind
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	abs.RawFragment = ""
	if r.contentTypes != nil {
		if ct, ok := r.contentTypes(abs); ok {
			return refKind(ct)
		}
	}
	ext := strings.ToLower(urlpath.Extension(abs.Path))
	if attrKind == vo.RefHref && ext != "" && !pageExtensions[ext] {
		return vo.RefSrc
	}
	return attrKind
}

func (r *ReferenceRewriter) ApplyContentChanges(content string, contentType vo.ContentType, u *url.URL, offline bool) string {
	if !offline || u == nil || !isDocument(contentType) {
		return content
	}
	doc, errDoc := goquery.NewDocumentFromReader(strings.NewReader(content))
	if errDoc != nil {
		return content
	}
	initialURL := r.policy.InitialURL().String()
	baseURL := u.String()
	resolve := func(target string, attrKind vo.RefKind) string {
		res, errResolve := r.resolver.Resolve(initialURL, baseURL, target, r.policy, r.kind(u, target, attrKind))
		if errResolve != nil {
			return target
		}
		return res.RelativeURL
	}
	for _, ref := range references {
		ref := ref
		doc.Find(ref.selector).Each(func(i int, s *goquery.Selection) {
			value, _ := s.Attr(ref.attr)
			if ref.srcset {
				s.SetAttr(ref.attr, rewriteSrcset(value, func(target string) string {
					return resolve(target, ref.kind)
				}))
				return
			}
			s.SetAttr(ref.attr, resolve(value, ref.kind))
		})
	}
	doc.Find("meta[http-equiv][content]").Each(func(i int, s *goquery.Selection) {
		if equiv, _ := s.Attr("http-equiv"); !strings.EqualFold(equiv, "refresh") {
			return
		}
		value, _ := s.Attr("content")
		m := refreshRegex.FindStringSubmatch(value)
		if m == nil || m[2] == "" {
			return
		}
		s.SetAttr("content", m[1]+resolve(m[2], vo.RefHref))
	})
	html, errHTML := doc.Html()
	if errHTML != nil {
		return content
	}
	return html
}

// rewriteSrcset "a.png 1x, b.png 2x"
func rewriteSrcset(srcset string, resolve func(target string) string) string {
	candidates := []string{}
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		fields[0] = resolve(fields[0])
		candidates = append(candidates, strings.Join(fields, " "))
	}
	return strings.Join(candidates, ", ")
}

// ContentReplacer applies the first matching content replace rule to documents
type ContentReplacer struct {
	Rules []config.Rule
}

func (c *ContentReplacer) ApplyContentChanges(content string, contentType vo.ContentType, u *url.URL, offline bool) string {
	if !isDocument(contentType) {
		return content
	}
	replaced, _ := config.ApplyFirst(c.Rules, content)
	return replaced
}
