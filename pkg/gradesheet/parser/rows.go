package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
)

// StudentRow is a data row accepted as a student.
type StudentRow struct {
	// Index is the zero-based position of the row in its input.
	Index int
	// Name is the normalized student name.
	Name string
	// Cells holds the full row.
	Cells []models.Cell
}

// IsStudentName reports whether v looks like a student's full name: at least
// two whitespace-separated tokens made only of letters, the first longer than
// two letters. Short first tokens are usually administrative codes such as
// attendance markers. This is a heuristic; short real first names are lost
// and long administrative strings are kept.
func IsStudentName(v string) bool {
	tokens := strings.Fields(v)
	if len(tokens) < 2 {
		return false
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return utf8.RuneCountInString(tokens[0]) > 2
}

// FilterStudents returns the rows whose keyCol cell passes IsStudentName.
func FilterStudents(rows [][]models.Cell, keyCol int) []StudentRow {
	var out []StudentRow
	for i, row := range rows {
		if keyCol < 0 || keyCol >= len(row) {
			continue
		}
		v := row[keyCol]
		if v.IsEmpty() || !IsStudentName(v.Text) {
			continue
		}
		out = append(out, StudentRow{Index: i, Name: models.NormalizeName(v.Text), Cells: row})
	}
	return out
}
