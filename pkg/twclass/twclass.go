// Package twclass assembles Tailwind CSS class lists for Go templates
// and view code. Inputs are split on whitespace into class tokens;
// order and duplicates are preserved, since utility-class semantics can
// depend on both.
//
// The helpers compose:
//
//	twclass.Join(
//		"px-4 py-2 text-sm",
//		twclass.When(active, "bg-blue-600 text-white"),
//		twclass.Unless(active, "bg-gray-200 text-gray-900"),
//	)
package twclass

import "strings"

// Tokens splits every part on whitespace and returns the class tokens
// in order. Empty parts contribute nothing.
func Tokens(parts ...string) []string {
	var tokens []string
	for _, part := range parts {
		tokens = append(tokens, strings.Fields(part)...)
	}
	return tokens
}

// Join builds a single space-separated class attribute from the parts,
// collapsing any run of whitespace inside them.
func Join(parts ...string) string {
	return strings.Join(Tokens(parts...), " ")
}

// When returns classes when cond holds, otherwise an empty string that
// vanishes inside Join or Tokens.
func When(cond bool, classes string) string {
	if cond {
		return classes
	}
	return ""
}

// Unless returns classes when cond does not hold.
func Unless(cond bool, classes string) string {
	return When(!cond, classes)
}
