package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName trims s and collapses internal whitespace runs to one space.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StudentKey returns the join identity of a student name. Names that differ
// only in case or spacing share a key.
func StudentKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}
