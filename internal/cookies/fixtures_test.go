package cookies

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

type firefoxRow struct {
	Name             string
	Value            string
	Host             string
	Path             string
	Expiry           int64
	IsSecure         int
	IsHttpOnly       int
	OriginAttributes string
}

// createFirefoxFixture creates a cookies.sqlite with the moz_cookies schema in dir.
func createFirefoxFixture(t *testing.T, dir string, rows []firefoxRow) string {
	t.Helper()
	dbPath := filepath.Join(dir, "cookies.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE moz_cookies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        originAttributes TEXT NOT NULL DEFAULT '',
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        host TEXT NOT NULL,
        path TEXT NOT NULL DEFAULT '/',
        expiry INTEGER NOT NULL DEFAULT 0,
        isSecure INTEGER NOT NULL DEFAULT 0,
        isHttpOnly INTEGER NOT NULL DEFAULT 0
    )`)
	if err != nil {
		t.Fatalf("failed to create moz_cookies table: %v", err)
	}
	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO moz_cookies (originAttributes, name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.OriginAttributes, r.Name, r.Value, r.Host, r.Path, r.Expiry, r.IsSecure, r.IsHttpOnly)
		if err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return dbPath
}

type chromeRow struct {
	Name           string
	Value          string
	EncryptedValue []byte
	HostKey        string
	Path           string
	ExpiresUTC     int64 // microseconds since 1601-01-01
	IsSecure       int
	IsHttpOnly     int
}

// createChromeFixture creates a Cookies database with the Chrome schema in dir.
func createChromeFixture(t *testing.T, dir string, rows []chromeRow) string {
	t.Helper()
	dbPath := filepath.Join(dir, "Cookies")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE cookies (
        creation_utc INTEGER NOT NULL,
        host_key TEXT NOT NULL,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        encrypted_value BLOB NOT NULL DEFAULT x'',
        path TEXT NOT NULL DEFAULT '/',
        expires_utc INTEGER NOT NULL DEFAULT 0,
        is_secure INTEGER NOT NULL DEFAULT 0,
        is_httponly INTEGER NOT NULL DEFAULT 0
    )`)
	if err != nil {
		t.Fatalf("failed to create cookies table: %v", err)
	}
	for _, r := range rows {
		enc := r.EncryptedValue
		if enc == nil {
			enc = []byte{}
		}
		_, err = db.Exec(`INSERT INTO cookies (creation_utc, host_key, name, value, encrypted_value, path, expires_utc, is_secure, is_httponly) VALUES (0, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.HostKey, r.Name, r.Value, enc, r.Path, r.ExpiresUTC, r.IsSecure, r.IsHttpOnly)
		if err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return dbPath
}

func writeNetscapeFile(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "cookies.txt")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return p
}

type fakeDecrypter struct {
	plain string
	err   error
}

func (f fakeDecrypter) Decrypt(string, []byte) (string, error) {
	return f.plain, f.err
}

func names(cookies []Cookie) []string {
	out := make([]string, len(cookies))
	for i, c := range cookies {
		out[i] = c.Name
	}
	return out
}
