package models

import "fmt"

// Term identifies one grading period.
type Term struct {
	// Number is the 1-based position of the term.
	Number int `json:"number"`
	// ID is the suffix used in merged column names (e.g. "B1").
	ID string `json:"id"`
	// Label is the human-readable sub-header (e.g. "1ºBi").
	Label string `json:"label"`
}

// NewTerm returns the term at 1-based position n with default naming.
func NewTerm(n int) Term {
	return Term{
		Number: n,
		ID:     fmt.Sprintf("B%d", n),
		Label:  fmt.Sprintf("%dºBi", n),
	}
}

// SubjectColumn is one (subject, term) column of a merged table.
type SubjectColumn struct {
	// Subject is the canonical subject name.
	Subject string `json:"subject"`
	// Term is the term the column belongs to.
	Term Term `json:"term"`
}

// Name returns the merged column name, "{subject}_{term}".
func (c SubjectColumn) Name() string {
	return c.Subject + "_" + c.Term.ID
}
