// Package urlpath maps crawled urls onto an offline directory layout and
// computes relative references between them.
package urlpath

import (
	"net/url"
	"strings"
)

// Relation of a target host to the initial host and the host of the referencing document
type Relation int

const (
	SameInitialSameBase Relation = iota
	SameInitialDifferentBase
	DifferentInitialSameBase
	DifferentInitialDifferentBase
)

var relationNames = map[Relation]string{
	SameInitialSameBase:           "same-initial-same-base",
	SameInitialDifferentBase:      "same-initial-different-base",
	DifferentInitialSameBase:      "different-initial-same-base",
	DifferentInitialDifferentBase: "different-initial-different-base",
}

func (r Relation) String() string {
	return relationNames[r]
}

func (r Relation) SameInitial() bool {
	return r == SameInitialSameBase || r == SameInitialDifferentBase
}

func (r Relation) SameBase() bool {
	return r == SameInitialSameBase || r == DifferentInitialSameBase
}

// Classify compares host names only, case insensitive, ignoring scheme and port.
// Relative targets inherit the host of the base url. Anything that does not
// parse is considered different.
func Classify(initialURL, baseURL, targetURL string) Relation {
	initialHost := hostname(initialURL)
	baseHost := ""
	targetHost := ""
	base, errBase := url.Parse(strings.TrimSpace(baseURL))
	if errBase == nil {
		baseHost = base.Hostname()
	}
	target, errTarget := url.Parse(strings.TrimSpace(targetURL))
	if errTarget == nil {
		if target.Host == "" && errBase == nil {
			target = base.ResolveReference(target)
		}
		targetHost = target.Hostname()
	}
	sameInitial := sameHost(initialHost, targetHost)
	sameBase := sameHost(baseHost, targetHost)
	switch true {
	case sameInitial && sameBase:
		return SameInitialSameBase
	case sameInitial:
		return SameInitialDifferentBase
	case sameBase:
		return DifferentInitialSameBase
	}
	return DifferentInitialDifferentBase
}

func hostname(rawURL string) string {
	u, errParse := url.Parse(strings.TrimSpace(rawURL))
	if errParse != nil {
		return ""
	}
	return u.Hostname()
}

func sameHost(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
