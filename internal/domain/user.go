package domain

import (
	"strings"
	"unicode"
)

// Registration is the terminal result of a successful registration request.
type Registration struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// NormalizeUsername maps a raw username to its canonical identity: every
// whitespace character becomes an underscore and the result is lower-cased.
// Pure and idempotent, so two raw inputs that normalize to the same string
// always map to the same identity.
func NormalizeUsername(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, raw)
	return strings.ToLower(mapped)
}
