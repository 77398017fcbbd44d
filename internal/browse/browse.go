// Package browse groups a cookie snapshot by domain and annotates every
// group and cookie with the cleanup type the rules resolve for it.
package browse

import (
	"errors"
	"net"
	"reflect"
	"slices"
	"strings"

	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"golang.org/x/net/publicsuffix"
)

// ErrNoClassifier is returned by Build when no classifier is supplied,
// including a nil pointer of a classifier type.
var ErrNoClassifier = errors.New("browse: no classifier")

// Classifier resolves cleanup types. *rules.Settings implements it.
type Classifier interface {
	ClassifyDomain(domain string) cleanup.Type
	ClassifyCookie(domain, name string) cleanup.Type
}

// Resolver returns the first-party (registrable) domain of a host.
type Resolver func(domain string) (string, error)

// PublicSuffixResolver resolves the eTLD+1 using the public suffix list.
// IP addresses are their own first party.
func PublicSuffixResolver(domain string) (string, error) {
	if net.ParseIP(domain) != nil {
		return domain, nil
	}
	return publicsuffix.EffectiveTLDPlusOne(domain)
}

// Entry is one cookie with its own cleanup type.
type Entry struct {
	cookies.Cookie
	Type cleanup.Type `json:"type"`
}

// Group holds the cookies of one domain. Leading-dot and bare forms of a
// domain share a group.
type Group struct {
	FirstPartyDomain string `json:"firstPartyDomain"`
	// Domain is the grouping key: the cookie domain without its leading dot.
	Domain string `json:"domain"`
	// OriginalDomain is the domain of the first cookie seen, as stored.
	OriginalDomain string       `json:"originalDomain"`
	Type           cleanup.Type `json:"type"`
	Cookies        []Entry      `json:"cookies"`
}

// Build groups cs by domain and classifies every group and cookie with c.
// Groups are ordered by first-party domain then domain, cookies by name,
// both case-insensitively. A nil resolve uses PublicSuffixResolver.
func Build(cs []cookies.Cookie, c Classifier, resolve Resolver) ([]Group, error) {
	if isNil(c) {
		return nil, ErrNoClassifier
	}
	if resolve == nil {
		resolve = PublicSuffixResolver
	}

	groups := []Group{}
	index := make(map[string]int)
	for _, ck := range cs {
		domain := strings.TrimPrefix(ck.Domain, ".")
		i, ok := index[domain]
		if !ok {
			i = len(groups)
			index[domain] = i
			groups = append(groups, Group{
				FirstPartyDomain: firstParty(resolve, domain),
				Domain:           domain,
				OriginalDomain:   ck.Domain,
				Type:             c.ClassifyDomain(domain),
			})
		}
		groups[i].Cookies = append(groups[i].Cookies, Entry{
			Cookie: ck,
			Type:   c.ClassifyCookie(domain, ck.Name),
		})
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Cookies, func(a, b Entry) int {
			return int(CompareEntries(a, b))
		})
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return int(CompareGroups(a, b))
	})
	return groups, nil
}

func firstParty(resolve Resolver, domain string) string {
	fp, err := resolve(domain)
	if err != nil || fp == "" {
		return domain
	}
	return fp
}

func isNil(c Classifier) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
