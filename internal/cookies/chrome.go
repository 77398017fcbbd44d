package cookies

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpochOffsetSeconds is the number of seconds between the Windows NT epoch
// (1601-01-01 00:00:00 UTC) and the Unix epoch (1970-01-01 00:00:00 UTC).
const chromeEpochOffsetSeconds int64 = 11_644_473_600

func chromeToUnix(chromeUSec int64) int64 {
	return (chromeUSec / 1_000_000) - chromeEpochOffsetSeconds
}

func unixToChromeTime(unixSec int64) int64 {
	return (unixSec + chromeEpochOffsetSeconds) * 1_000_000
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// domainClause returns an SQL condition restricting column to domain, its
// dot-prefixed form and its subdomains, ignoring case like matchesDomain.
// An empty domain selects everything.
func domainClause(column, domain string) (string, []any) {
	if domain == "" {
		return "1 = 1", nil
	}
	domain = strings.ToLower(domain)
	return fmt.Sprintf(`(lower(%[1]s) = ? OR lower(%[1]s) = ? OR lower(%[1]s) LIKE ? ESCAPE '\')`, column),
		[]any{domain, "." + domain, "%." + likeEscaper.Replace(domain)}
}

// parseChrome reads the unexpired cookies of a Chrome Cookies database.
// Session cookies (expires_utc = 0) are kept. Encrypted values are decrypted
// with dec when possible; otherwise the cookie is returned with Encrypted set.
// dbPath should point to a copy of the database, not the live file.
func parseChrome(dbPath, domain, storeID string, dec Decrypter) ([]Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open Chrome cookie database: %w", err)
	}
	defer db.Close()

	where, args := domainClause("host_key", domain)
	args = append(args, unixToChromeTime(time.Now().Unix()))
	rows, err := db.Query(`
        SELECT name, value, encrypted_value, host_key, path, expires_utc, is_secure, is_httponly
        FROM cookies
        WHERE `+where+`
          AND (expires_utc = 0 OR expires_utc > ?)
        ORDER BY host_key ASC, name ASC
    `, args...)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query Chrome cookies: %w", err)
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			name, value, hostKey, path string
			encrypted                  []byte
			expiresUTC                 int64
			isSecure, isHttpOnly       int
		)
		if err := rows.Scan(&name, &value, &encrypted, &hostKey, &path, &expiresUTC, &isSecure, &isHttpOnly); err != nil {
			return nil, fmt.Errorf("error: failed to scan Chrome cookie row: %w", err)
		}
		c := Cookie{
			Name:     name,
			Value:    value,
			Domain:   hostKey,
			Path:     path,
			Secure:   isSecure != 0,
			HttpOnly: isHttpOnly != 0,
			StoreID:  storeID,
		}
		if expiresUTC != 0 {
			c.Expiry = time.Unix(chromeToUnix(expiresUTC), 0)
		}
		if value == "" && len(encrypted) > 0 {
			c.Encrypted = true
			if dec != nil {
				if plain, err := dec.Decrypt(hostKey, encrypted); err == nil {
					c.Value = plain
					c.Encrypted = false
				}
			}
		}
		cookies = append(cookies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate Chrome cookie rows: %w", err)
	}
	return cookies, nil
}

// chromeStoreID derives a store identifier from a browser name.
func chromeStoreID(browser string) string {
	if browser == "" {
		browser = "chrome"
	}
	return strings.ToLower(strings.ReplaceAll(browser, " ", "-")) + "-default"
}
