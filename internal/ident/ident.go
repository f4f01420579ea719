// Package ident provides case-insensitive identifier comparison helpers.
//
// DWScript, like Object Pascal, treats identifiers as case-insensitive:
// `MyVar`, `myvar` and `MYVAR` all name the same symbol. Every symbol
// table lookup and scope comparison in the compiler funnels through
// this package so that normalization stays in one place.
package ident

import "strings"

// Normalize folds an identifier to its canonical comparison form.
// Callers use the normalized form as a map key; the original spelling
// is preserved separately wherever display matters (errors, codegen).
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Equal reports whether a and b name the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare orders a and b by their normalized form, returning -1, 0 or 1.
// It is suitable for sort.Slice over identifier-keyed collections where
// deterministic ordering matters (diagnostics, generated code).
func Compare(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}
