package browse

import (
	"strings"

	"github.com/samber/lo"
)

// Filter keeps the groups matching query, compared case-insensitively as a
// substring. A group whose domain or first-party domain matches is kept
// whole; otherwise only its cookies whose name matches are kept, and the
// group is dropped when none do. An empty query returns groups unchanged.
func Filter(groups []Group, query string) []Group {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return groups
	}
	return lo.FilterMap(groups, func(g Group, _ int) (Group, bool) {
		if strings.Contains(strings.ToLower(g.Domain), q) ||
			strings.Contains(strings.ToLower(g.FirstPartyDomain), q) {
			return g, true
		}
		g.Cookies = lo.Filter(g.Cookies, func(e Entry, _ int) bool {
			return strings.Contains(strings.ToLower(e.Name), q)
		})
		return g, len(g.Cookies) > 0
	})
}

// Count returns the number of cookie entries across groups.
func Count(groups []Group) int {
	return lo.SumBy(groups, func(g Group) int { return len(g.Cookies) })
}

// FirstParties returns the distinct first-party domains of groups in order.
func FirstParties(groups []Group) []string {
	return lo.Uniq(lo.Map(groups, func(g Group, _ int) string { return g.FirstPartyDomain }))
}

// Page returns up to limit groups starting at offset. A zero limit returns
// every group from offset on.
func Page(groups []Group, offset, limit int) []Group {
	if offset >= len(groups) {
		return []Group{}
	}
	if limit <= 0 || limit > len(groups)-offset {
		limit = len(groups) - offset
	}
	return lo.Subset(groups, offset, uint(limit))
}
