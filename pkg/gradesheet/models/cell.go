// Package models defines data structures for grade sheet normalization.
package models

import (
	"strconv"
	"strings"
)

// CellKind classifies a raw cell value.
type CellKind int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellText is a cell holding free-form text.
	CellText
	// CellNumber is a cell whose text parses as a number.
	CellNumber
)

// Cell is a single raw spreadsheet value.
type Cell struct {
	// Kind is the detected value kind.
	Kind CellKind `json:"kind"`
	// Text is the cell's text representation as read from the file.
	Text string `json:"text,omitempty"`
	// Number holds the numeric value when Kind is CellNumber.
	Number float64 `json:"number,omitempty"`
}

// TextCell returns a cell for s, classifying it as empty, number or text.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellEmpty}
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Cell{Kind: CellNumber, Text: s, Number: f}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the text representation of the cell.
func (c Cell) String() string {
	return c.Text
}
