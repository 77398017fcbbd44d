package rules

import (
	"errors"
	"testing"

	"github.com/crumbsapp/crumbs/internal/cleanup"
)

func mustSettings(t *testing.T, rules []Rule, opts Options) *Settings {
	t.Helper()
	s, err := NewSettings(rules, opts)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	return s
}

func TestClassifyDomain_Precedence(t *testing.T) {
	s := mustSettings(t, []Rule{
		{Expression: "*.example.com", Type: cleanup.Instantly},
		{Expression: "www.example.com", Type: cleanup.Startup},
		{Expression: "*.example.com", Type: cleanup.Leave},
		{Expression: "keep.example.com", Type: cleanup.Never},
	}, DefaultOptions())

	tests := []struct {
		domain string
		want   cleanup.Type
	}{
		{"example.com", cleanup.Leave},
		{"www.example.com", cleanup.Startup},
		{".keep.example.com", cleanup.Never},
		{"other.org", cleanup.Leave},
	}
	for _, tt := range tests {
		if got := s.ClassifyDomain(tt.domain); got != tt.want {
			t.Errorf("ClassifyDomain(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}

func TestClassifyDomain_Fallback(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackType = cleanup.Instantly
	s := mustSettings(t, nil, opts)
	if got := s.ClassifyDomain("example.com"); got != cleanup.Instantly {
		t.Errorf("expected fallback Instantly, got %v", got)
	}
}

func TestClassifyDomain_Whitelists(t *testing.T) {
	opts := DefaultOptions()
	opts.WhitelistNoTLD = true
	s := mustSettings(t, []Rule{{Expression: "localhost", Type: cleanup.Instantly}}, opts)
	if got := s.ClassifyDomain("localhost"); got != cleanup.Never {
		t.Errorf("expected no-TLD host to be protected, got %v", got)
	}
	if got := s.ClassifyDomain(""); got != cleanup.Never {
		t.Errorf("expected file system cookies to be protected, got %v", got)
	}

	opts.WhitelistFileSystem = false
	opts.WhitelistNoTLD = false
	s = mustSettings(t, []Rule{{Expression: "localhost", Type: cleanup.Instantly}}, opts)
	if got := s.ClassifyDomain("localhost"); got != cleanup.Instantly {
		t.Errorf("expected rule to apply, got %v", got)
	}
	if got := s.ClassifyDomain(""); got != cleanup.Leave {
		t.Errorf("expected fallback for empty domain, got %v", got)
	}
}

func TestClassifyCookie(t *testing.T) {
	s := mustSettings(t, []Rule{
		{Expression: "example.com", Type: cleanup.Never},
		{Expression: "tracker@*.example.com", Type: cleanup.Instantly},
		{Expression: "pref@example.com", Type: cleanup.Startup},
	}, DefaultOptions())

	tests := []struct {
		domain, name string
		want         cleanup.Type
	}{
		{"example.com", "tracker", cleanup.Instantly},
		{"example.com", "TRACKER", cleanup.Instantly},
		{"example.com", "pref", cleanup.Startup},
		{"example.com", "session", cleanup.Never},
		{"other.org", "tracker", cleanup.Leave},
	}
	for _, tt := range tests {
		if got := s.ClassifyCookie(tt.domain, tt.name); got != tt.want {
			t.Errorf("ClassifyCookie(%q, %q) = %v, want %v", tt.domain, tt.name, got, tt.want)
		}
	}
	// Cookie rules never influence the domain classification.
	if got := s.ClassifyDomain("example.com"); got != cleanup.Never {
		t.Errorf("ClassifyDomain = %v, want Never", got)
	}
}

func TestClassify_Stable(t *testing.T) {
	s := mustSettings(t, []Rule{{Expression: "*.a.com", Type: cleanup.Startup}}, DefaultOptions())
	first := s.ClassifyCookie("x.a.com", "n")
	for i := 0; i < 10; i++ {
		if got := s.ClassifyCookie("x.a.com", "n"); got != first {
			t.Fatalf("classification changed between calls: %v != %v", got, first)
		}
	}
}

func TestFindExact(t *testing.T) {
	s := mustSettings(t, []Rule{
		{Expression: "*.Example.com", Type: cleanup.Leave},
		{Expression: "*.example.com ", Type: cleanup.Never, Temporary: true},
	}, DefaultOptions())
	if n := len(s.Rules()); n != 1 {
		t.Fatalf("expected duplicate expression to collapse, got %d rules", n)
	}
	r, ok := s.FindExact("  *.EXAMPLE.COM")
	if !ok {
		t.Fatal("expected rule to be found")
	}
	if r.Type != cleanup.Never || !r.Temporary {
		t.Errorf("expected later rule to win, got %+v", r)
	}
	if _, ok := s.FindExact("example.com"); ok {
		t.Error("expected no exact match for a different expression")
	}
}

func TestMatchingRules(t *testing.T) {
	s := mustSettings(t, []Rule{
		{Expression: "*.example.com", Type: cleanup.Leave},
		{Expression: "sid@example.com", Type: cleanup.Never},
		{Expression: "other.org", Type: cleanup.Instantly},
	}, DefaultOptions())
	got := s.MatchingRules("example.com", "sid")
	if len(got) != 2 || got[0].Expression != "sid@example.com" {
		t.Fatalf("unexpected matching rules: %+v", got)
	}
	if got := s.MatchingRules("example.com", ""); len(got) != 1 {
		t.Errorf("expected only domain rule without a cookie name, got %+v", got)
	}
}

func TestNewSettings_Invalid(t *testing.T) {
	if _, err := NewSettings([]Rule{{Expression: "a@b@c", Type: cleanup.Leave}}, DefaultOptions()); !errors.Is(err, ErrInvalidExpression) {
		t.Errorf("expected ErrInvalidExpression, got %v", err)
	}
	if _, err := NewSettings([]Rule{{Expression: "a.com", Type: cleanup.Type(7)}}, DefaultOptions()); !errors.Is(err, cleanup.ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
	opts := DefaultOptions()
	opts.FallbackType = cleanup.Type(-1)
	if _, err := NewSettings(nil, opts); err == nil {
		t.Error("expected error for invalid fallback type")
	}
}

func TestWithOptions(t *testing.T) {
	s := mustSettings(t, []Rule{{Expression: "example.com", Type: cleanup.Never}}, DefaultOptions())
	opts := DefaultOptions()
	opts.FallbackType = cleanup.Instantly
	o := s.WithOptions(opts)

	if o.ClassifyDomain("other.org") != cleanup.Instantly {
		t.Errorf("new fallback not applied")
	}
	if s.ClassifyDomain("other.org") != cleanup.Leave {
		t.Errorf("original snapshot changed")
	}
	if o.ClassifyDomain("example.com") != cleanup.Never {
		t.Errorf("rules must be shared")
	}
}
