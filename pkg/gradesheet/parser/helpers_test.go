package parser

import "github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"

// grid builds a raw sheet from text rows.
func grid(rows ...[]string) models.RawSheet {
	sheet := models.RawSheet{Name: "Sheet1", Source: "test.xlsx"}
	for _, r := range rows {
		cells := make([]models.Cell, len(r))
		for i, v := range r {
			cells[i] = models.TextCell(v)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}
