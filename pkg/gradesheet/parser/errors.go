package parser

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound indicates no row holds the student-list marker.
var ErrHeaderNotFound = errors.New("header row not found")

// ErrNoGradeColumns indicates a term kept no subject column.
var ErrNoGradeColumns = errors.New("no valid grade columns")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// HeaderNotFoundError reports a sheet without the student-list marker.
type HeaderNotFoundError struct {
	Source string
	Marker string
	// Scanned is the number of rows searched.
	Scanned int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: no row contains %q in %q (%d rows scanned)", ErrHeaderNotFound, e.Marker, e.Source, e.Scanned)
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// NoValidGradeColumnsError reports a term whose columns were all dropped.
type NoValidGradeColumnsError struct {
	Source string
	// Considered is the number of non-key columns examined.
	Considered int
}

func (e *NoValidGradeColumnsError) Error() string {
	return fmt.Sprintf("%s in %q (%d columns considered)", ErrNoGradeColumns, e.Source, e.Considered)
}

func (e *NoValidGradeColumnsError) Unwrap() error {
	return ErrNoGradeColumns
}
