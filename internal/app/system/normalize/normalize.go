// Package normalize canonicalizes the string inputs the dashboard
// compares or stores: operator account fields and panel filter values.
package normalize

import "strings"

// Email trims and lowercases an email address. Every email comparison
// in the app goes through this first.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims an operator display name. Case is preserved; the folded
// comparison key is derived separately.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status trims and lowercases an account status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a panel filter value taken from the URL query.
// Filters stay case-preserving; the stores match case-insensitively.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
