package cookies

import (
	"context"
	"fmt"
	"strings"

	"github.com/crumbsapp/crumbs/pkg/logger"
)

// Reader reads browser cookie stores.
type Reader struct {
	log logger.Logger
	// newDecrypter returns the decrypter for a Chromium-family browser.
	newDecrypter func(browser string) Decrypter
}

// NewReader returns a Reader logging to l. A nil l discards log output.
func NewReader(l logger.Logger) *Reader {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Reader{
		log: l,
		newDecrypter: func(browser string) Decrypter {
			return NewChromeDecrypter(browser)
		},
	}
}

// ReadAll reads every unexpired cookie of the store at sourcePath.
func (r *Reader) ReadAll(sourcePath string) ([]Cookie, *CookieSource, error) {
	return r.importAs(sourcePath, "", "")
}

// importAs reads a store; browser overrides the browser name derived from
// the file format.
func (r *Reader) importAs(sourcePath, domain, browser string) ([]Cookie, *CookieSource, error) {
	format, err := DetectFormat(sourcePath)
	if err != nil {
		return nil, nil, err
	}
	source := &CookieSource{Path: sourcePath, Format: format, Browser: browser}

	var cookies []Cookie
	switch format {
	case FormatFirefox:
		if source.Browser == "" {
			source.Browser = "Firefox"
		}
		cookies, err = importSQLite(sourcePath, func(p string) ([]Cookie, error) {
			return parseFirefox(p, domain, source.Browser)
		})
	case FormatChrome:
		if source.Browser == "" {
			source.Browser = "Chrome"
		}
		dec := r.newDecrypter(source.Browser)
		storeID := chromeStoreID(source.Browser)
		cookies, err = importSQLite(sourcePath, func(p string) ([]Cookie, error) {
			return parseChrome(p, domain, storeID, dec)
		})
	case FormatNetscape:
		if source.Browser == "" {
			source.Browser = "Netscape"
		}
		cookies, err = parseNetscape(sourcePath, domain, strings.ToLower(source.Browser)+"-default", r.log)
	default:
		return nil, nil, fmt.Errorf("error: unsupported cookie database schema at %s", sourcePath)
	}
	if err != nil {
		return nil, nil, err
	}

	encrypted := 0
	for _, c := range cookies {
		if c.Encrypted {
			encrypted++
		}
	}
	if encrypted > 0 {
		r.log.Warning("%d of %d %s cookies could not be decrypted", encrypted, len(cookies), source.Browser)
	}
	return cookies, source, nil
}

// importSQLite copies a SQLite cookie file safely and parses the copy.
func importSQLite(sourcePath string, parse func(string) ([]Cookie, error)) ([]Cookie, error) {
	copied, cleanup, err := SafeCopy(sourcePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return parse(copied)
}

// Snapshot reads every given store and returns the concatenated cookies.
// A non-empty domain limits the read to that domain and its subdomains.
// Stores that fail to read are logged and skipped; an error is returned only
// when no store could be read or ctx is done.
func (r *Reader) Snapshot(ctx context.Context, stores []Store, domain string) ([]Cookie, []CookieSource, error) {
	var (
		all     []Cookie
		sources []CookieSource
		lastErr error
	)
	for _, s := range stores {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		cookies, source, err := r.importAs(s.Path, domain, s.Browser)
		if err != nil {
			r.log.Warning("skipping %s cookie store: %v", s.Browser, err)
			lastErr = err
			continue
		}
		r.log.Info("read %d cookies from %s", len(cookies), source.Browser)
		all = append(all, cookies...)
		sources = append(sources, *source)
	}
	if len(sources) == 0 && lastErr != nil {
		return nil, nil, lastErr
	}
	return all, sources, nil
}
