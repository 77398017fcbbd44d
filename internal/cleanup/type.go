// Package cleanup defines the cleanup classifications a rule can assign to a
// domain or cookie, and how each classification is presented to the user.
package cleanup

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a cleanup classification.
//
// The numeric order is significant: a lower value is more protective. When
// several rules match the same domain, the most protective one wins.
type Type int

const (
	// Never means cookies are never removed.
	Never Type = iota
	// Startup means cookies are removed when the browser starts.
	Startup
	// Leave means cookies are removed after the last tab of the domain closes.
	Leave
	// Instantly means cookies are removed as soon as they are set.
	Instantly
)

// ErrUnknownType is returned when a cleanup type name cannot be parsed.
var ErrUnknownType = errors.New("unknown cleanup type")

var typeNames = [...]string{
	Never:     "never",
	Startup:   "startup",
	Leave:     "leave",
	Instantly: "instantly",
}

// Types returns all cleanup types from most to least protective.
func Types() []Type {
	return []Type{Never, Startup, Leave, Instantly}
}

// Valid reports whether t is one of the known cleanup types.
func (t Type) Valid() bool {
	return t >= Never && t <= Instantly
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType parses a cleanup type name. Matching is case-insensitive and
// accepts "leaving" and "leavingdomain" as aliases of "leave".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return Never, nil
	case "startup":
		return Startup, nil
	case "leave", "leaving", "leavingdomain":
		return Leave, nil
	case "instantly":
		return Instantly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MostProtective returns the most protective of the given types. ok is false
// when types is empty.
func MostProtective(types ...Type) (t Type, ok bool) {
	for i, c := range types {
		if i == 0 || c < t {
			t = c
		}
	}
	return t, len(types) > 0
}

// MarshalText encodes the type as its lowercase name.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText decodes a type name produced by MarshalText.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
