// Package merge joins per-term grade tables into one wide table.
package merge

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
)

// ErrNoTables indicates Terms was called without input.
var ErrNoTables = errors.New("no term tables to merge")

// Options configures the join.
type Options struct {
	// KeyLabel is the header of the student column.
	KeyLabel string
	// FillAllTerms emits a column for every (subject, term) pair, even for
	// terms that never had the subject.
	FillAllTerms bool
}

// Terms is TermsWith using default options.
func Terms(tables ...*models.TermTable) (*models.MergedTable, error) {
	return TermsWith(Options{}, tables...)
}

// TermsWith performs a full outer join of tables on student key, in the given
// term order. Rows follow the first table's order, then students first seen
// in later tables in order of appearance. Columns are grouped by subject in
// order of first appearance, then by term. Grades a student lacks are Missing.
func TermsWith(opts Options, tables ...*models.TermTable) (*models.MergedTable, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	terms := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("term table %d is nil", i+1)
		}
		if terms[t.Term.ID] {
			return nil, fmt.Errorf("term %q appears more than once", t.Term.ID)
		}
		terms[t.Term.ID] = true
	}

	columns := buildColumns(tables, opts.FillAllTerms)
	colIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		colIndex[c.Name()] = i
	}

	merged := &models.MergedTable{KeyLabel: opts.KeyLabel, Columns: columns}
	rowIndex := make(map[string]int)
	for _, t := range tables {
		for _, r := range t.Rows {
			key := models.StudentKey(r.Student)
			pos, ok := rowIndex[key]
			if !ok {
				pos = len(merged.Rows)
				rowIndex[key] = pos
				cells := make([]models.Grade, len(columns))
				for i := range cells {
					cells[i] = models.Missing()
				}
				merged.Rows = append(merged.Rows, models.MergedRow{Student: r.Student, Cells: cells})
			}
			for _, subject := range t.Subjects {
				col := models.SubjectColumn{Subject: subject, Term: t.Term}
				merged.Rows[pos].Cells[colIndex[col.Name()]] = r.Grades[subject]
			}
		}
	}

	return merged, nil
}

func buildColumns(tables []*models.TermTable, fillAll bool) []models.SubjectColumn {
	var subjects []string
	present := make(map[string]map[string]bool)
	for _, t := range tables {
		for _, s := range t.Subjects {
			if present[s] == nil {
				present[s] = make(map[string]bool)
				subjects = append(subjects, s)
			}
			present[s][t.Term.ID] = true
		}
	}

	var columns []models.SubjectColumn
	for _, s := range subjects {
		for _, t := range tables {
			if fillAll || present[s][t.Term.ID] {
				columns = append(columns, models.SubjectColumn{Subject: s, Term: t.Term})
			}
		}
	}
	return columns
}
