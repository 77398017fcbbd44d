package cookies

import "time"

// CookieFormat identifies the format of a browser cookie store.
type CookieFormat int

const (
	// FormatUnknown means the cookie store format could not be detected.
	FormatUnknown CookieFormat = 0
	// FormatFirefox means the cookie store uses the Firefox moz_cookies SQLite schema.
	FormatFirefox CookieFormat = 1
	// FormatChrome means the cookie store uses the Chrome cookies SQLite schema.
	FormatChrome CookieFormat = 2
	// FormatNetscape means the cookie store uses the Netscape tab-separated text format.
	FormatNetscape CookieFormat = 3
)

func (f CookieFormat) String() string {
	switch f {
	case FormatFirefox:
		return "firefox"
	case FormatChrome:
		return "chrome"
	case FormatNetscape:
		return "netscape"
	}
	return "unknown"
}

// Cookie is a single cookie read from a browser cookie store.
// Value is SENSITIVE and must never be logged or written to disk.
type Cookie struct {
	Name string `json:"name"`
	// Value is empty when the cookie is Encrypted and no key was available.
	Value string `json:"-"`
	// Domain may have a leading dot for subdomain-inclusive cookies.
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expiry   time.Time `json:"expiry"`
	Secure   bool      `json:"secure"`
	HttpOnly bool      `json:"httpOnly"`
	// StoreID identifies the storage partition, e.g. "firefox-default",
	// "firefox-container-2" or "chrome-default".
	StoreID string `json:"storeId"`
	// Encrypted is set when the stored value could not be decrypted.
	Encrypted bool `json:"encrypted,omitempty"`
}

// Session reports whether the cookie expires with the browser session.
func (c Cookie) Session() bool {
	return c.Expiry.IsZero() || c.Expiry.Unix() <= 0
}

// CookieSource describes where cookies were read from.
type CookieSource struct {
	// Path is the filesystem path to the cookie store file.
	Path string `json:"path"`
	// Format is the detected cookie store format.
	Format CookieFormat `json:"-"`
	// Browser is the browser name (e.g., "Firefox", "Chrome", "Netscape").
	Browser string `json:"browser"`
}
