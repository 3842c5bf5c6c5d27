package output

import (
	"encoding/json"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
)

type tableView struct {
	KeyLabel string    `json:"key_label"`
	Columns  []string  `json:"columns"`
	Rows     []rowView `json:"rows"`
}

type rowView struct {
	Student string `json:"student"`
	// Grades is aligned with Columns; missing grades are null.
	Grades []models.Grade `json:"grades"`
}

// ToJSON renders table as JSON with column names in merged order.
func ToJSON(table *models.MergedTable, pretty bool) ([]byte, error) {
	view := tableView{
		KeyLabel: table.KeyLabel,
		Columns:  make([]string, len(table.Columns)),
		Rows:     make([]rowView, len(table.Rows)),
	}
	for i, c := range table.Columns {
		view.Columns[i] = c.Name()
	}
	for i, r := range table.Rows {
		view.Rows[i] = rowView{Student: r.Student, Grades: r.Cells}
	}

	if pretty {
		return json.MarshalIndent(view, "", "  ")
	}
	return json.Marshal(view)
}
