package check

import (
	"regexp"
	"strings"
)

// addressPattern is the structural gate applied before any network
// activity: one or more of [alnum . _ % + -] before the @, one or more of
// [alnum . -] after it, ending in a dot followed by 2+ letters.
var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidFormat reports whether s is structurally plausible as an email
// address. Leading and trailing whitespace is trimmed internally, so
// callers may pass raw cell values as-is. Pure and total: malformed input
// yields false, never a panic.
func ValidFormat(s string) bool {
	return addressPattern.MatchString(strings.TrimSpace(s))
}
