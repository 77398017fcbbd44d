package cookies

import (
	"reflect"
	"testing"
	"time"
)

func TestParseFirefox_AllDomains(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{Name: "sid", Value: "abc", Host: ".example.com", Path: "/", Expiry: future, IsSecure: 1, IsHttpOnly: 1},
		{Name: "pref", Value: "x", Host: "other.org", Path: "/", Expiry: future},
	})

	cookies, err := parseFirefox(dbPath, "", "Firefox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"sid", "pref"}) {
		t.Fatalf("unexpected cookies: %v", got)
	}
	c := cookies[0]
	if !c.Secure || !c.HttpOnly || c.Domain != ".example.com" || c.Value != "abc" {
		t.Errorf("unexpected cookie fields: %+v", c)
	}
	if c.Expiry.Unix() != future {
		t.Errorf("expected expiry %d, got %d", future, c.Expiry.Unix())
	}
	if c.StoreID != "firefox-default" {
		t.Errorf("expected firefox-default store, got %q", c.StoreID)
	}
}

func TestParseFirefox_DomainFilter(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{Name: "a", Host: "example.com", Path: "/", Expiry: future},
		{Name: "b", Host: ".example.com", Path: "/", Expiry: future},
		{Name: "c", Host: "www.example.com", Path: "/", Expiry: future},
		{Name: "d", Host: "notexample.com", Path: "/", Expiry: future},
	})
	cookies, err := parseFirefox(dbPath, "example.com", "Firefox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("unexpected cookies: %v", got)
	}
}

func TestParseFirefox_SkipsExpired(t *testing.T) {
	now := time.Now()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{Name: "old", Host: "a.com", Path: "/", Expiry: now.Add(-time.Hour).Unix()},
		{Name: "oldms", Host: "a.com", Path: "/", Expiry: now.Add(-time.Hour).UnixMilli()},
		{Name: "newms", Host: "a.com", Path: "/", Expiry: now.Add(time.Hour).UnixMilli()},
	})
	cookies, err := parseFirefox(dbPath, "", "Firefox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "newms" {
		t.Fatalf("unexpected cookies: %v", names(cookies))
	}
	if d := cookies[0].Expiry.Sub(now); d < 59*time.Minute || d > 61*time.Minute {
		t.Errorf("millisecond expiry not converted, got %v", cookies[0].Expiry)
	}
}

func TestParseFirefox_StoreIDs(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{Name: "a", Host: "a.com", Path: "/", Expiry: future},
		{Name: "b", Host: "a.com", Path: "/", Expiry: future, OriginAttributes: "^userContextId=2"},
		{Name: "c", Host: "a.com", Path: "/", Expiry: future, OriginAttributes: "^privateBrowsingId=1"},
	})
	cookies, err := parseFirefox(dbPath, "", "LibreWolf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"librewolf-default", "librewolf-container-2", "librewolf-private"}
	for i, c := range cookies {
		if c.StoreID != want[i] {
			t.Errorf("cookie %s: expected store %q, got %q", c.Name, want[i], c.StoreID)
		}
	}
}

func TestFirefoxStoreID(t *testing.T) {
	tests := map[string]string{
		"":                                   "firefox-default",
		"^userContextId=0":                   "firefox-default",
		"^firstPartyDomain=example.com":      "firefox-default",
		"^userContextId=5&firstPartyDomain=x": "firefox-container-5",
		"^privateBrowsingId=1":               "firefox-private",
	}
	for in, want := range tests {
		if got := firefoxStoreID("Firefox", in); got != want {
			t.Errorf("firefoxStoreID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFirefox_FileNotFound(t *testing.T) {
	if _, err := parseFirefox("/nonexistent/cookies.sqlite", "", "Firefox"); err == nil {
		t.Fatal("expected error for missing database")
	}
}
