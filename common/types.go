package common

import (
	"github.com/crumbsapp/crumbs/internal/browse"
	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"github.com/crumbsapp/crumbs/internal/rules"
)

type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// GroupsParams selects the cookie stores to read. Stores holds browser
// names; empty means the configured default. Domain limits the read to one
// site and its subdomains. Offset and Limit page through the sorted groups;
// a zero Limit returns every group from Offset on.
type GroupsParams struct {
	Query  string   `json:"query,omitempty"`
	Stores []string `json:"stores,omitempty"`
	Domain string   `json:"domain,omitempty"`
	Offset int      `json:"offset,omitempty"`
	Limit  int      `json:"limit,omitempty"`
}

// GroupsResponse holds one page of groups. Total and TotalGroups count the
// whole filtered list, so the extension knows when it has read every page.
type GroupsResponse struct {
	Groups       []browse.Group         `json:"groups"`
	Offset       int                    `json:"offset"`
	Total        int                    `json:"total"`
	TotalGroups  int                    `json:"totalGroups"`
	FirstParties []string               `json:"firstParties"`
	Sources      []cookies.CookieSource `json:"sources"`
}

type RulesResponse struct {
	Rules   []rules.Rule  `json:"rules"`
	Options rules.Options `json:"options"`
}

type RuleParams struct {
	Expression string       `json:"expression"`
	Type       cleanup.Type `json:"type"`
	Temporary  bool         `json:"temporary,omitempty"`
	// Replace overwrites a rule with the same expression instead of
	// failing with "rule exists".
	Replace bool `json:"replace,omitempty"`
}

type RuleResponse struct {
	Rule     rules.Rule `json:"rule"`
	Replaced bool       `json:"replaced"`
	// Previous is the replaced rule's type.
	Previous *cleanup.Type `json:"previous,omitempty"`
}

type ExpressionParams struct {
	Expression string `json:"expression"`
}

type FindResponse struct {
	Found bool        `json:"found"`
	Rule  *rules.Rule `json:"rule,omitempty"`
}

type ValidateResponse struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
}

type ClearResponse struct {
	Removed int64 `json:"removed"`
}

type OptionsParams struct {
	FallbackType        *cleanup.Type `json:"fallbackType,omitempty"`
	WhitelistNoTLD      *bool         `json:"whitelistNoTLD,omitempty"`
	WhitelistFileSystem *bool         `json:"whitelistFileSystem,omitempty"`
}

type ClassifyParams struct {
	Domain string `json:"domain"`
	Name   string `json:"name,omitempty"`
}

type ClassifyResponse struct {
	Domain   string        `json:"domain"`
	Name     string        `json:"name,omitempty"`
	Type     cleanup.Type  `json:"type"`
	Badge    cleanup.Badge `json:"badge"`
	Matching []rules.Rule  `json:"matching"`
}

type BadgeParams struct {
	Type cleanup.Type `json:"type"`
}
