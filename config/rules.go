package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Rule replaces parts of a string
type Rule interface {
	// Apply returns the replaced string and whether the rule matched at all
	Apply(s string) (string, bool)
}

// LiteralRule str_replace like substitution
type LiteralRule struct {
	From string
	To   string
}

func (r LiteralRule) Apply(s string) (string, bool) {
	if r.From == "" || !strings.Contains(s, r.From) {
		return s, false
	}
	return strings.ReplaceAll(s, r.From, r.To), true
}

// PatternRule regular expression substitution, To may use $1 style groups
type PatternRule struct {
	Pattern *regexp.Regexp
	To      string
}

func (r PatternRule) Apply(s string) (string, bool) {
	if !r.Pattern.MatchString(s) {
		return s, false
	}
	return r.Pattern.ReplaceAllString(s, r.To), true
}

const (
	ruleSeparator   = "->"
	ruleDelimiters  = "/#~%|!@"
	ruleModifiers   = "imsuU"
	ruleUnsupported = "xADXJ"
)

var ErrEmptyRule = errors.New("rule must not be empty")

// ParseRule parses "from -> to". A from part wrapped in delimiters with optional
// modifiers, like /foo(\d+)/i, becomes a PatternRule, everything else is literal.
// A literal that happens to look like /a/ is read as a pattern.
func ParseRule(raw string) (Rule, error) {
	from, to := raw, ""
	if i := strings.Index(raw, ruleSeparator); i >= 0 {
		from, to = raw[:i], raw[i+len(ruleSeparator):]
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" {
		return nil, ErrEmptyRule
	}
	expr, modifiers, isPattern := splitDelimited(from)
	if !isPattern {
		return LiteralRule{From: from, To: to}, nil
	}
	re, errCompile := compileDelimited(expr, modifiers)
	if errCompile != nil {
		return nil, fmt.Errorf("rule %q: %w", raw, errCompile)
	}
	return PatternRule{Pattern: re, To: to}, nil
}

// ParseRules keeps declaration order
func ParseRules(raw []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(raw))
	for _, r := range raw {
		rule, errParse := ParseRule(r)
		if errParse != nil {
			return nil, errParse
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ApplyFirst applies the first matching rule only
func ApplyFirst(rules []Rule, s string) (string, bool) {
	for _, rule := range rules {
		if replaced, ok := rule.Apply(s); ok {
			return replaced, true
		}
	}
	return s, false
}

// compileDelimited maps pcre style modifiers to go flags, u is implied
func compileDelimited(expr, modifiers string) (*regexp.Regexp, error) {
	flags := ""
	for _, m := range modifiers {
		switch true {
		case m == 'u':
		case strings.ContainsRune(ruleModifiers, m):
			flags += string(m)
		default:
			return nil, fmt.Errorf("unsupported modifier %q", m)
		}
	}
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}
	return regexp.Compile(expr)
}

func splitDelimited(s string) (expr, modifiers string, ok bool) {
	if len(s) < 3 || !strings.ContainsRune(ruleDelimiters, rune(s[0])) {
		return "", "", false
	}
	end := strings.LastIndexByte(s, s[0])
	if end <= 1 {
		return "", "", false
	}
	modifiers = s[end+1:]
	for _, m := range modifiers {
		if !strings.ContainsRune(ruleModifiers+ruleUnsupported, m) {
			return "", "", false
		}
	}
	return s[1:end], modifiers, true
}
