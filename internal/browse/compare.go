package browse

import "strings"

// Ordering is the result of comparing two groups or entries.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "invalid"
}

func compareFold(a, b string) Ordering {
	return Ordering(strings.Compare(strings.ToLower(a), strings.ToLower(b)))
}

// CompareGroups orders groups by first-party domain, then domain,
// ignoring case.
func CompareGroups(a, b Group) Ordering {
	if o := compareFold(a.FirstPartyDomain, b.FirstPartyDomain); o != Equal {
		return o
	}
	return compareFold(a.Domain, b.Domain)
}

// CompareEntries orders cookies by name, ignoring case.
func CompareEntries(a, b Entry) Ordering {
	return compareFold(a.Name, b.Name)
}
