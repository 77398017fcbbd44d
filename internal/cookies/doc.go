// Package cookies reads the cookie jars of locally installed browsers.
// It supports Firefox (moz_cookies SQLite), Chromium-family browsers
// (cookies SQLite, decrypting v10/v11 values when a key is available) and
// Netscape text files. SQLite stores are copied before reading so the browser
// keeps its lock.
//
// Cookie values are never persisted or logged. Only names, domains and store
// identifiers may appear in debug output.
package cookies
