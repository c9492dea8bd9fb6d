package urlpath

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/vo"
)

// HostPolicy decides which foreign hosts end up in the export
type HostPolicy interface {
	IsStaticFileAllowedForHost(host string) bool
	IsExternalHostAllowedForCrawl(host string) bool
}

// Parts of a resolved target url
type Parts struct {
	Scheme   string
	Host     string
	Path     string
	Query    string
	Fragment string
}

type Result struct {
	RelativeURL string
	Target      Parts
	Relation    Relation
}

// Resolver maps urls to local paths; QueryRules replace query strings, when
// none of them matches, the query is hashed
type Resolver struct {
	QueryRules []config.Rule
}

func NewResolver(queryRules []config.Rule) *Resolver {
	return &Resolver{QueryRules: queryRules}
}

// Resolve targetURL referenced from baseURL to a path relative to the local
// file of baseURL.
func (r *Resolver) Resolve(
	initialURL, baseURL, targetURL string,
	policy HostPolicy,
	kind vo.RefKind,
) (res Result, err error) {
	res.Relation = Classify(initialURL, baseURL, targetURL)
	res.RelativeURL = targetURL

	trimmedTarget := strings.TrimSpace(targetURL)
	if trimmedTarget == "" || strings.HasPrefix(trimmedTarget, "#") {
		return res, nil
	}
	base, errBase := url.Parse(strings.TrimSpace(baseURL))
	if errBase != nil {
		return res, fmt.Errorf("base url %q: %w", baseURL, errBase)
	}
	ref, errRef := url.Parse(trimmedTarget)
	if errRef != nil {
		return res, fmt.Errorf("target url %q: %w", targetURL, errRef)
	}
	if ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https" {
		// mailto:, tel:, data:, javascript: ...
		return res, nil
	}
	initial, errInitial := url.Parse(strings.TrimSpace(initialURL))
	if errInitial != nil {
		return res, fmt.Errorf("initial url %q: %w", initialURL, errInitial)
	}

	target := base.ResolveReference(ref)
	res.Target = Parts{
		Scheme:   target.Scheme,
		Host:     target.Hostname(),
		Path:     target.Path,
		Query:    target.RawQuery,
		Fragment: target.Fragment,
	}

	if !res.Relation.SameInitial() && !hostAllowed(policy, target.Hostname(), kind) {
		// not part of the export, stays absolute
		res.RelativeURL = target.String()
		return res, nil
	}

	initialHost := initial.Hostname()
	baseDir := path.Dir(r.LocalPath(base, vo.RefHref, initialHost))
	rel := Relative(baseDir, r.LocalPath(target, kind, initialHost))
	if res.Relation.SameInitial() {
		rel = StripRootEscapes(rel, depth(baseDir))
	}
	if target.Fragment != "" {
		rel += "#" + target.Fragment
	}
	res.RelativeURL = rel
	return res, nil
}

func hostAllowed(policy HostPolicy, host string, kind vo.RefKind) bool {
	if policy == nil {
		return false
	}
	if policy.IsExternalHostAllowedForCrawl(host) {
		return true
	}
	return kind == vo.RefSrc && policy.IsStaticFileAllowedForHost(host)
}

// LocalPath is the path of u below the export root. Everything, that writes
// files, must use it, so that links and files match. Documents (RefHref)
// always end in .html, static files keep their name.
func (r *Resolver) LocalPath(u *url.URL, kind vo.RefKind, initialHost string) string {
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	p = SanitizePath(p)
	if p == "" {
		p = "index.html"
	}
	dir, name := path.Split(p)
	ext := Extension(name)
	stem := strings.TrimSuffix(name, ext)
	if kind == vo.RefHref && ext != ExtHTML {
		// v1.2 or contact.php are documents too, their suffix is part of the name
		stem += ext
		ext = ExtHTML
	}
	if u.RawQuery != "" {
		if q := r.querySuffix(u.RawQuery); q != "" {
			stem += "." + q
		}
	}
	p = dir + stem + ext
	if host := u.Hostname(); host != "" && !sameHost(host, initialHost) {
		p = PrefixHost(p, host)
	}
	return p
}

func (r *Resolver) querySuffix(rawQuery string) string {
	replaced, ok := config.ApplyFirst(r.QueryRules, rawQuery)
	if !ok {
		return HashQuery(rawQuery)
	}
	return SanitizeSegment(strings.NewReplacer("&", "-", "=", "-", "/", "-").Replace(replaced))
}

// Relative walks up from dir with ../ until the common root and then down to target
func Relative(dir, target string) string {
	fromSegments := splitSegments(dir)
	toSegments := splitSegments(target)
	common := 0
	for common < len(fromSegments) && common < len(toSegments)-1 &&
		fromSegments[common] == toSegments[common] {
		common++
	}
	rel := strings.Repeat("../", len(fromSegments)-common)
	return rel + strings.Join(toSegments[common:], "/")
}

func splitSegments(p string) []string {
	p = path.Clean("/" + p)
	if p == "/" {
		return []string{}
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

func depth(dir string) int {
	return len(splitSegments(dir))
}
