// Package rules holds the cleanup rules and answers which cleanup type applies
// to a domain or to a single cookie of a domain.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidExpression is returned for rule expressions that cannot be matched.
var ErrInvalidExpression = errors.New("invalid rule expression")

// Expression is a parsed rule expression of the form [cookieName@]domainPattern.
type Expression struct {
	// Raw is the normalized expression text.
	Raw string
	// CookieName is empty for domain-wide rules.
	CookieName string
	// DomainPattern is the hostname pattern. "*" matches any run of characters.
	DomainPattern string

	re *regexp.Regexp
}

// NormalizeExpression trims and lowercases an expression. Two expressions are
// the same rule when their normalized forms are equal.
func NormalizeExpression(expr string) string {
	return strings.ToLower(strings.TrimSpace(expr))
}

// IsValidExpression reports whether expr can be used as a rule expression.
func IsValidExpression(expr string) bool {
	_, err := ParseExpression(expr)
	return err == nil
}

// ParseExpression validates and compiles a rule expression.
func ParseExpression(expr string) (*Expression, error) {
	raw := NormalizeExpression(expr)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	if strings.Count(raw, "@") > 1 {
		return nil, fmt.Errorf("%w: %q has more than one '@'", ErrInvalidExpression, expr)
	}
	name, domain, hasName := strings.Cut(raw, "@")
	if !hasName {
		name, domain = "", raw
	} else if !validCookieName(name) {
		return nil, fmt.Errorf("%w: bad cookie name in %q", ErrInvalidExpression, expr)
	}
	if !validDomainPattern(domain) {
		return nil, fmt.Errorf("%w: bad domain in %q", ErrInvalidExpression, expr)
	}
	return &Expression{
		Raw:           raw,
		CookieName:    name,
		DomainPattern: domain,
		re:            regexp.MustCompile(patternToRegexp(domain)),
	}, nil
}

// MatchesDomain reports whether the domain pattern matches domain. A single
// leading dot of domain is ignored.
func (e *Expression) MatchesDomain(domain string) bool {
	return e.re.MatchString(strings.ToLower(strings.TrimPrefix(domain, ".")))
}

// MatchesCookie reports whether a cookie-specific expression matches the
// cookie name on the domain. Domain-wide expressions never match here.
func (e *Expression) MatchesCookie(domain, name string) bool {
	return e.CookieName != "" && strings.EqualFold(e.CookieName, name) && e.MatchesDomain(domain)
}

func validCookieName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t;,=\"")
}

func validDomainPattern(domain string) bool {
	if domain == "" || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	for _, r := range domain {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_', r == '*':
		default:
			return false
		}
	}
	return true
}

// patternToRegexp converts a domain pattern to an anchored regular expression.
// "*.example.com" also matches "example.com".
func patternToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	if rest, ok := strings.CutPrefix(pattern, "*."); ok {
		b.WriteString(`(?:.*\.)?`)
		pattern = rest
	}
	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString("$")
	return b.String()
}
