package nativehost

// Published extension IDs. Empty until the extension is listed in the
// Chrome Web Store and on addons.mozilla.org.
const (
	OfficialChromeExtensionID  = ""
	OfficialFirefoxExtensionID = ""
)

// HasOfficialExtensions reports whether an official extension ID is set.
// Package install hooks skip manifest registration otherwise.
func HasOfficialExtensions() bool {
	return hasExtensions(OfficialChromeExtensionID, OfficialFirefoxExtensionID)
}

func hasExtensions(chromeID, firefoxID string) bool {
	return chromeID != "" || firefoxID != ""
}
