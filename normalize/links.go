package normalize

import (
	"regexp"
	"strings"
)

var (
	linkTargetRegex    = regexp.MustCompile(`\]\(([^)\s]+)((?:\s+"[^"]*")?)\)`)
	htmlExtensionRegex = regexp.MustCompile(`^(.*)\.html(#[^#]*)?$`)
	imageInLinkRegex   = regexp.MustCompile(`\[!\[[^\]]*\]\([^)]*\)\]\([^)]*\)`)
	imageRegex         = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	fileLinkRegex      = regexp.MustCompile(`( ?)(!?\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\))( ?)`)
	fileExtensionRegex = regexp.MustCompile(`\.([A-Za-z0-9]{1,10})$`)
	emptyLinkRegex     = regexp.MustCompile(`!?\[[^\]]*\]\(\s*\)`)
	splitOpenRegex     = regexp.MustCompile(`\[[ \t]*\n\s*!\[`)
	splitCloseRegex    = regexp.MustCompile(`\)[ \t]*\n\s*\]\(`)
)

// allowed file links, when files are stripped
var keptFileExtensions = map[string]bool{
	"md":   true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"avif": true,
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// RewriteLinkExtensions points links to .html documents to their .md siblings
func RewriteLinkExtensions(content string, ignore []*regexp.Regexp) string {
	return linkTargetRegex.ReplaceAllStringFunc(content, func(match string) string {
		parts := linkTargetRegex.FindStringSubmatch(match)
		target, title := parts[1], parts[2]
		if matchesAny(ignore, target) {
			return match
		}
		m := htmlExtensionRegex.FindStringSubmatch(target)
		if m == nil {
			return match
		}
		return "](" + m[1] + ".md" + m[2] + title + ")"
	})
}

// StripImages removes linked and plain images
func StripImages(content string) string {
	content = imageInLinkRegex.ReplaceAllString(content, "")
	return imageRegex.ReplaceAllString(content, "")
}

// StripFileLinks removes links to local files, unless they are markdown or
// images, keeping the surrounding text single spaced
func StripFileLinks(content string, ignore []*regexp.Regexp) string {
	return fileLinkRegex.ReplaceAllStringFunc(content, func(match string) string {
		parts := fileLinkRegex.FindStringSubmatch(match)
		before, target, after := parts[1], parts[3], parts[4]
		if isRemoteTarget(target) || matchesAny(ignore, target) {
			return match
		}
		ext := fileExtensionRegex.FindStringSubmatch(stripQueryAndFragment(target))
		if ext == nil || keptFileExtensions[strings.ToLower(ext[1])] {
			return match
		}
		if before != "" && after != "" {
			return " "
		}
		return before + after
	})
}

func isRemoteTarget(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:")
}

func stripQueryAndFragment(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i]
	}
	return target
}

// RemoveEmptyLinks drops [text]() leftovers
func RemoveEmptyLinks(content string) string {
	return emptyLinkRegex.ReplaceAllString(content, "")
}

// RepairSplitLinks joins "[" or ")" that converters put on their own line
// with the following image or link target
func RepairSplitLinks(content string) string {
	content = splitOpenRegex.ReplaceAllString(content, "[![")
	return splitCloseRegex.ReplaceAllString(content, ")](")
}
