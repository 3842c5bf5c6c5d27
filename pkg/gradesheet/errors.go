package gradesheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrNoTerms indicates a run was started without input sheets.
var ErrNoTerms = errors.New("no term sheets given")

// ErrInvalidOptions indicates options failed validation.
var ErrInvalidOptions = errors.New("invalid options")

// Re-exported so callers can match pipeline failures without importing parser.
var (
	ErrHeaderNotFound = parser.ErrHeaderNotFound
	ErrNoGradeColumns = parser.ErrNoGradeColumns
)

// HeaderNotFoundError reports a sheet without the student-list marker.
type HeaderNotFoundError = parser.HeaderNotFoundError

// NoValidGradeColumnsError reports a term whose columns were all dropped.
type NoValidGradeColumnsError = parser.NoValidGradeColumnsError

// TermError represents a failure while processing one term file.
type TermError struct {
	Term   int
	Source string
	Stage  string // "read", "normalize"
	Err    error
}

func (e *TermError) Error() string {
	return fmt.Sprintf("term %d (%s) %s failed: %v", e.Term, e.Source, e.Stage, e.Err)
}

func (e *TermError) Unwrap() error {
	return e.Err
}

// NewTermError creates a new TermError.
func NewTermError(term int, source, stage string, err error) *TermError {
	return &TermError{
		Term:   term,
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
