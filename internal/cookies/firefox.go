package cookies

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// firefoxMillisThreshold separates second and millisecond expiry values;
// newer Firefox versions store milliseconds.
const firefoxMillisThreshold int64 = 100_000_000_000

// parseFirefox reads the unexpired cookies of a Firefox cookies.sqlite file.
// Containers and private browsing are reported through Cookie.StoreID.
// dbPath should point to a copy of the database, not the live file.
func parseFirefox(dbPath, domain, browser string) ([]Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open Firefox cookie database: %w", err)
	}
	defer db.Close()

	attrs := "''"
	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('moz_cookies') WHERE name = 'originAttributes'`).Scan(&n)
	if err == nil && n > 0 {
		attrs = "originAttributes"
	}

	now := time.Now()
	where, args := domainClause("host", domain)
	args = append(args, now.Unix(), now.UnixMilli())
	rows, err := db.Query(`
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly, `+attrs+`
        FROM moz_cookies
        WHERE `+where+`
          AND (expiry > ?)
          AND (expiry < `+fmt.Sprint(firefoxMillisThreshold)+` OR expiry > ?)
        ORDER BY host ASC, name ASC
    `, args...)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query Firefox cookies: %w", err)
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			name, value, host, path, originAttributes string
			expiry                                    int64
			isSecure, isHttpOnly                      int
		)
		if err := rows.Scan(&name, &value, &host, &path, &expiry, &isSecure, &isHttpOnly, &originAttributes); err != nil {
			return nil, fmt.Errorf("error: failed to scan Firefox cookie row: %w", err)
		}
		if expiry >= firefoxMillisThreshold {
			expiry /= 1000
		}
		cookies = append(cookies, Cookie{
			Name:     name,
			Value:    value,
			Domain:   host,
			Path:     path,
			Expiry:   time.Unix(expiry, 0),
			Secure:   isSecure != 0,
			HttpOnly: isHttpOnly != 0,
			StoreID:  firefoxStoreID(browser, originAttributes),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate Firefox cookie rows: %w", err)
	}
	return cookies, nil
}

// firefoxStoreID maps an originAttributes suffix such as
// "^userContextId=2&firstPartyDomain=x" to a store identifier.
func firefoxStoreID(browser, originAttributes string) string {
	prefix := strings.ToLower(browser)
	if prefix == "" {
		prefix = "firefox"
	}
	q, err := url.ParseQuery(strings.TrimPrefix(originAttributes, "^"))
	if err != nil {
		return prefix + "-default"
	}
	if id := q.Get("privateBrowsingId"); id != "" && id != "0" {
		return prefix + "-private"
	}
	if id := q.Get("userContextId"); id != "" && id != "0" {
		return prefix + "-container-" + id
	}
	return prefix + "-default"
}
