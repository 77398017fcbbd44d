package cookies

import (
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"
)

func TestChromeTimeConversion(t *testing.T) {
	unix := int64(1_700_000_000)
	if got := chromeToUnix(unixToChromeTime(unix)); got != unix {
		t.Errorf("round trip: want %d, got %d", unix, got)
	}
	if got := chromeToUnix(0); got != -chromeEpochOffsetSeconds {
		t.Errorf("unexpected epoch conversion: %d", got)
	}
}

func TestParseChrome_AllDomains(t *testing.T) {
	future := unixToChromeTime(time.Now().Add(24 * time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"sid", "abc123", nil, ".example.com", "/", future, 1, 1},
		{"lang", "en", nil, "other.org", "/", future, 0, 0},
		{"session", "s", nil, "other.org", "/", 0, 0, 0},
	})
	cookies, err := parseChrome(dbPath, "", "chrome-default", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"sid", "lang", "session"}) {
		t.Fatalf("unexpected cookies: %v", got)
	}
	if !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Errorf("expected secure httpOnly cookie: %+v", cookies[0])
	}
	if !cookies[2].Session() {
		t.Errorf("expected session cookie, got expiry %v", cookies[2].Expiry)
	}
	for _, c := range cookies {
		if c.StoreID != "chrome-default" {
			t.Errorf("expected chrome-default store, got %q", c.StoreID)
		}
	}
}

func TestParseChrome_SkipsExpired(t *testing.T) {
	past := unixToChromeTime(time.Now().Add(-time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"old", "v", nil, "a.com", "/", past, 0, 0},
	})
	cookies, err := parseChrome(dbPath, "", "chrome-default", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 0 {
		t.Errorf("expected expired cookie to be skipped, got %v", names(cookies))
	}
}

func TestParseChrome_DomainFilter(t *testing.T) {
	future := unixToChromeTime(time.Now().Add(time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"a", "1", nil, "example.com", "/", future, 0, 0},
		{"b", "2", nil, "sub.example.com", "/", future, 0, 0},
		{"c", "3", nil, "example.org", "/", future, 0, 0},
	})
	cookies, err := parseChrome(dbPath, "example.com", "chrome-default", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("unexpected cookies: %v", got)
	}
}

func TestParseChrome_DomainFilterLiteral(t *testing.T) {
	future := unixToChromeTime(time.Now().Add(time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"a", "1", nil, "my_site.com", "/", future, 0, 0},
		{"b", "2", nil, "a.myXsite.com", "/", future, 0, 0},
		{"c", "3", nil, ".Sub.My_Site.COM", "/", future, 0, 0},
		{"d", "4", nil, "a.my%site.com", "/", future, 0, 0},
		{"e", "5", nil, ".MY_SITE.com", "/", future, 0, 0},
	})
	cookies, err := parseChrome(dbPath, "My_Site.com", "chrome-default", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := names(cookies)
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"a", "c", "e"}) {
		t.Errorf("unexpected cookies: %v", got)
	}
}

func TestParseChrome_EncryptedValues(t *testing.T) {
	future := unixToChromeTime(time.Now().Add(time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"enc", "", []byte("v10garbage"), "a.com", "/", future, 0, 0},
	})

	cookies, err := parseChrome(dbPath, "", "chrome-default", fakeDecrypter{plain: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Value != "secret" || cookies[0].Encrypted {
		t.Errorf("expected decrypted cookie, got %+v", cookies)
	}

	cookies, err = parseChrome(dbPath, "", "chrome-default", fakeDecrypter{err: errors.New("no key")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Value != "" || !cookies[0].Encrypted {
		t.Errorf("expected undecryptable cookie to be kept as encrypted, got %+v", cookies)
	}
}

func TestChromeStoreID(t *testing.T) {
	tests := map[string]string{
		"":       "chrome-default",
		"Chrome": "chrome-default",
		"Edge":   "edge-default",
		"My Br":  "my-br-default",
	}
	for in, want := range tests {
		if got := chromeStoreID(in); got != want {
			t.Errorf("chromeStoreID(%q) = %q, want %q", in, got, want)
		}
	}
}
