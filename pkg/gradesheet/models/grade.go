package models

import (
	"encoding/json"
	"strconv"
)

// MinGrade and MaxGrade bound the accepted grade scale.
const (
	MinGrade = 0
	MaxGrade = 10
)

// Grade is the outcome of reading one grade cell: either a value in
// [MinGrade, MaxGrade] or missing. A zero Grade is missing, so the zero value
// can never be mistaken for a failing grade of 0.
type Grade struct {
	// Value is the grade when Valid is true.
	Value int
	// Valid reports whether a grade was recorded.
	Valid bool
}

// GradeOf returns a recorded grade.
func GradeOf(v int) Grade {
	return Grade{Value: v, Valid: true}
}

// Missing returns the no-data sentinel.
func Missing() Grade {
	return Grade{}
}

// Fails reports whether the grade is recorded and strictly below threshold.
// Missing grades never fail.
func (g Grade) Fails(threshold float64) bool {
	return g.Valid && float64(g.Value) < threshold
}

// Render returns the grade as text, or missing when no grade was recorded.
func (g Grade) Render(missing string) string {
	if !g.Valid {
		return missing
	}
	return strconv.Itoa(g.Value)
}

// MarshalJSON encodes missing grades as null.
func (g Grade) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(g.Value)
}

// UnmarshalJSON decodes null as a missing grade.
func (g *Grade) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = Missing()
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = GradeOf(v)
	return nil
}
