package cookies

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crumbsapp/crumbs/pkg/logger"
)

const httpOnlyPrefix = "#HttpOnly_"

// parseNetscape reads cookies from a Netscape-format cookie text file.
// Lines starting with # are skipped, except #HttpOnly_ which sets the HttpOnly
// flag. Malformed lines are skipped with a warning. An empty domain reads all
// cookies.
func parseNetscape(filePath, domain, storeID string, log logger.Logger) ([]Cookie, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error: cannot open Netscape cookie file: %w", err)
	}
	defer f.Close()

	now := time.Now()
	var cookies []Cookie

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		httpOnly := strings.HasPrefix(line, httpOnlyPrefix)
		if httpOnly {
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			log.Warning("skipping malformed Netscape cookie line %d", lineNo)
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			log.Warning("skipping cookie with invalid expiry on line %d: %q", lineNo, fields[4])
			continue
		}
		if domain != "" && !matchesDomain(fields[0], domain) {
			continue
		}
		// expiry 0 marks a session cookie
		if expiry > 0 && time.Unix(expiry, 0).Before(now) {
			continue
		}

		c := Cookie{
			Name:     fields[5],
			Value:    fields[6],
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			HttpOnly: httpOnly,
			StoreID:  storeID,
		}
		if expiry > 0 {
			c.Expiry = time.Unix(expiry, 0)
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to read Netscape cookie file: %w", err)
	}
	return cookies, nil
}

// matchesDomain reports whether cookieDomain is domain, its dot-prefixed form
// or one of its subdomains, ignoring case.
func matchesDomain(cookieDomain, domain string) bool {
	cookieDomain = strings.ToLower(strings.TrimPrefix(cookieDomain, "."))
	domain = strings.ToLower(domain)
	return cookieDomain == domain || strings.HasSuffix(cookieDomain, "."+domain)
}
