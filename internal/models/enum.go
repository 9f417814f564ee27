package models

import "strings"

// Parse looks raw up in allowed after trimming and lowercasing.
func Parse[T ~string](raw string, allowed []T) (T, bool) {
	norm := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range allowed {
		if v == norm {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Coerce is Parse with a fallback: unknown input becomes def.
func Coerce[T ~string](raw string, allowed []T, def T) T {
	if v, ok := Parse(raw, allowed); ok {
		return v
	}
	return def
}
