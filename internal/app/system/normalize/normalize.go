// Package normalize provides canonical forms for user-supplied strings
// before validation and storage. Lookup keys (email, role, status) fold
// to lower case; display values (names, search terms) keep their case.
package normalize

import "strings"

// Email trims and lowercases an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a subscription status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
// Matching downstream is case-insensitive, so folding here would only
// obscure what the user typed.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
