// Package common holds the method names and message types exchanged between
// the browser extension and the crumbs native host.
package common

// Method names a native messaging request may carry.
type Method string

const (
	METHOD_VERSION         Method = "version"
	METHOD_COOKIE_GROUPS   Method = "cookies.groups"
	METHOD_RULES_LIST      Method = "rules.list"
	METHOD_RULES_ADD       Method = "rules.add"
	METHOD_RULES_REMOVE    Method = "rules.remove"
	METHOD_RULES_FIND      Method = "rules.find"
	METHOD_RULES_VALIDATE  Method = "rules.validate"
	METHOD_RULES_CLEAR_TMP Method = "rules.clearTemporary"
	METHOD_OPTIONS_SET     Method = "options.set"
	METHOD_CLASSIFY        Method = "classify"
	METHOD_BADGE           Method = "badge"
)

// MaxMessageSize is the largest native messaging frame Chrome accepts from
// a host.
const MaxMessageSize = 1 << 20
