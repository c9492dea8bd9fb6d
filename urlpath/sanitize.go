package urlpath

import (
	"crypto/sha1"
	"encoding/hex"
	"path"
	"regexp"
	"strings"
)

const (
	illegalChars   = `\:*?"<>|`
	queryHashLen   = 10
	segmentHashLen = 6
)

// ExtHTML is the extension of every local document
const ExtHTML = ".html"

var extensionRegex = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// SanitizeSegment makes a single path segment safe on common file systems
func SanitizeSegment(segment string) string {
	var sb strings.Builder
	replaced := false
	for _, r := range segment {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(illegalChars, r) || r == '/' {
			if !replaced {
				sb.WriteRune('_')
			}
			replaced = true
			continue
		}
		replaced = false
		sb.WriteRune(r)
	}
	// windows does not like trailing dots and spaces
	return strings.TrimRight(sb.String(), ". ")
}

// SanitizePath sanitizes every segment and drops empty, . and .. segments.
// A segment, that had to be changed, gets a short hash of its original
// spelling in front of its extension, so a:b and a*b stay apart.
func SanitizePath(p string) string {
	segments := []string{}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		sanitized := SanitizeSegment(segment)
		if sanitized == "" {
			continue
		}
		if sanitized != segment {
			ext := Extension(sanitized)
			sanitized = strings.TrimSuffix(sanitized, ext) + "-" + segmentHash(segment) + ext
		}
		segments = append(segments, sanitized)
	}
	return strings.Join(segments, "/")
}

func segmentHash(segment string) string {
	sum := sha1.Sum([]byte(segment))
	return hex.EncodeToString(sum[:])[:segmentHashLen]
}

// Extension returns a recognizable file extension including the dot or ""
func Extension(p string) string {
	ext := path.Ext(p)
	if extensionRegex.MatchString(ext) {
		return ext
	}
	return ""
}

// HashQuery a short stable replacement for a query string
func HashQuery(rawQuery string) string {
	sum := sha1.Sum([]byte(rawQuery))
	return hex.EncodeToString(sum[:])[:queryHashLen]
}

// PrefixHost puts paths of foreign hosts into a _host folder, calling it again
// on an already prefixed path does not nest
func PrefixHost(p, host string) string {
	prefix := "_" + SanitizeSegment(strings.ToLower(host))
	if p == prefix || strings.HasPrefix(p, prefix+"/") {
		return p
	}
	if p == "" {
		return prefix
	}
	return prefix + "/" + p
}

// StripRootEscapes removes ../ segments that would leave the export root when
// resolved from a directory depth levels below it
func StripRootEscapes(rel string, depth int) string {
	escapes := 0
	for strings.HasPrefix(rel[escapes*3:], "../") {
		escapes++
	}
	if escapes <= depth {
		return rel
	}
	return strings.Repeat("../", depth) + rel[escapes*3:]
}
