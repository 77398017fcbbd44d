package rules

import (
	"fmt"
	"strings"

	"github.com/crumbsapp/crumbs/internal/cleanup"
)

// Rule assigns a cleanup type to every domain (and optionally cookie name)
// matched by its expression.
type Rule struct {
	Expression string       `json:"expression"`
	Type       cleanup.Type `json:"type"`
	// Temporary rules are dropped by ClearTemporary when the browser restarts.
	Temporary bool `json:"temporary,omitempty"`
}

// Options are the global settings consulted when no rule matches.
type Options struct {
	// FallbackType applies to domains no rule matches.
	FallbackType cleanup.Type `json:"fallbackType"`
	// WhitelistNoTLD protects hosts without a dot (intranet names, localhost).
	WhitelistNoTLD bool `json:"whitelistNoTLD"`
	// WhitelistFileSystem protects cookies with an empty domain (file:// pages).
	WhitelistFileSystem bool `json:"whitelistFileSystem"`
}

// DefaultOptions returns the options used before the user changes anything.
func DefaultOptions() Options {
	return Options{
		FallbackType:        cleanup.Leave,
		WhitelistNoTLD:      false,
		WhitelistFileSystem: true,
	}
}

type compiledRule struct {
	Rule
	expr *Expression
}

// Settings is an immutable snapshot of rules and options. It is safe for
// concurrent use.
type Settings struct {
	rules   []compiledRule
	byExpr  map[string]int
	options Options
}

// NewSettings compiles rules into a Settings snapshot. Later rules with the
// same normalized expression replace earlier ones.
func NewSettings(rules []Rule, opts Options) (*Settings, error) {
	if !opts.FallbackType.Valid() {
		return nil, fmt.Errorf("invalid fallback type: %w", cleanup.ErrUnknownType)
	}
	s := &Settings{
		byExpr:  make(map[string]int, len(rules)),
		options: opts,
	}
	for _, r := range rules {
		expr, err := ParseExpression(r.Expression)
		if err != nil {
			return nil, err
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("rule %q: %w", r.Expression, cleanup.ErrUnknownType)
		}
		r.Expression = expr.Raw
		cr := compiledRule{Rule: r, expr: expr}
		if i, ok := s.byExpr[expr.Raw]; ok {
			s.rules[i] = cr
			continue
		}
		s.byExpr[expr.Raw] = len(s.rules)
		s.rules = append(s.rules, cr)
	}
	return s, nil
}

// Options returns the options of the snapshot.
func (s *Settings) Options() Options {
	return s.options
}

// WithOptions returns a snapshot sharing the rules of s with different options.
func (s *Settings) WithOptions(opts Options) *Settings {
	c := *s
	c.options = opts
	return &c
}

// Rules returns a copy of the rules in insertion order.
func (s *Settings) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Rule
	}
	return out
}

// FindExact looks a rule up by expression, ignoring case and surrounding space.
func (s *Settings) FindExact(expression string) (Rule, bool) {
	i, ok := s.byExpr[NormalizeExpression(expression)]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i].Rule, true
}

// MatchingRules returns the rules that apply to a domain, or to a cookie of
// the domain when name is not empty. Cookie-specific rules are listed first.
func (s *Settings) MatchingRules(domain, name string) []Rule {
	var cookieRules, domainRules []Rule
	for _, r := range s.rules {
		switch {
		case r.expr.CookieName == "":
			if r.expr.MatchesDomain(domain) {
				domainRules = append(domainRules, r.Rule)
			}
		case name != "" && r.expr.MatchesCookie(domain, name):
			cookieRules = append(cookieRules, r.Rule)
		}
	}
	return append(cookieRules, domainRules...)
}

// ClassifyDomain returns the cleanup type of a domain as a whole.
func (s *Settings) ClassifyDomain(domain string) cleanup.Type {
	domain = strings.TrimPrefix(domain, ".")
	if domain == "" && s.options.WhitelistFileSystem {
		return cleanup.Never
	}
	if s.options.WhitelistNoTLD && domain != "" && !strings.Contains(domain, ".") {
		return cleanup.Never
	}
	var types []cleanup.Type
	for _, r := range s.rules {
		if r.expr.CookieName == "" && r.expr.MatchesDomain(domain) {
			types = append(types, r.Type)
		}
	}
	if t, ok := cleanup.MostProtective(types...); ok {
		return t
	}
	return s.options.FallbackType
}

// ClassifyCookie returns the cleanup type of one cookie. Cookie-specific rules
// take precedence over the classification of the domain.
func (s *Settings) ClassifyCookie(domain, name string) cleanup.Type {
	var types []cleanup.Type
	for _, r := range s.rules {
		if r.expr.MatchesCookie(domain, name) {
			types = append(types, r.Type)
		}
	}
	if t, ok := cleanup.MostProtective(types...); ok {
		return t
	}
	return s.ClassifyDomain(domain)
}
