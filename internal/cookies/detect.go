package cookies

import (
	"bufio"
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

var netscapeHeaders = []string{"# Netscape HTTP Cookie File", "# HTTP Cookie File"}

// DetectFormat determines the cookie store format of the file at path.
func DetectFormat(path string) (CookieFormat, error) {
	if err := checkStoreFile(path); err != nil {
		return FormatUnknown, err
	}
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("error: cannot open cookie file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := br.Peek(len(sqliteMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return FormatUnknown, fmt.Errorf("error: cannot read cookie file: %w", err)
	}
	if bytes.Equal(header, sqliteMagic) {
		return detectSQLiteFormat(path)
	}

	firstLine, _ := br.ReadString('\n')
	firstLine = strings.TrimRight(firstLine, "\r\n")
	for _, h := range netscapeHeaders {
		if firstLine == h {
			return FormatNetscape, nil
		}
	}
	return FormatUnknown, fmt.Errorf("error: unsupported cookie database schema at %s", path)
}

// checkStoreFile rejects missing files, directories and empty files.
func checkStoreFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error: cookie file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("error: %s is a directory, expected a cookie file path or 'auto'", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("error: cookie file at %s is empty or corrupted", path)
	}
	return nil
}

// detectSQLiteFormat opens the SQLite file and checks which cookie table exists.
func detectSQLiteFormat(path string) (CookieFormat, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return FormatUnknown, fmt.Errorf("error: cannot open SQLite database: %w", err)
	}
	defer db.Close()

	for _, t := range []struct {
		table  string
		format CookieFormat
	}{
		{"moz_cookies", FormatFirefox},
		{"cookies", FormatChrome},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, t.table).Scan(&name)
		if err == nil {
			return t.format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("error: unsupported cookie database schema at %s", path)
}
