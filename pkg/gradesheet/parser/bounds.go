package parser

import (
	"fmt"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/xuri/excelize/v2"
)

// DataBounds returns the bounding box of the non-empty cells of sheet as a
// 1-based area. The boolean is false for a sheet without data.
func DataBounds(sheet models.RawSheet) (models.PrintArea, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(sheet.Rows)
	if minRow < 0 {
		return models.PrintArea{}, false
	}
	return models.PrintArea{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// RangeRef renders an area as an absolute reference such as $A$1:$D$10.
func RangeRef(area models.PrintArea) (string, error) {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", start, end), nil
}

// TrimSheet drops trailing empty rows and the trailing empty cells of every
// row. Leading blank rows are kept so row indexes match the source file.
func TrimSheet(sheet models.RawSheet) models.RawSheet {
	_, maxRow, _, _ := findDataBounds(sheet.Rows)
	trimmed := models.RawSheet{Name: sheet.Name, Source: sheet.Source}
	if maxRow < 0 {
		return trimmed
	}
	trimmed.Rows = make([][]models.Cell, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		row := sheet.Rows[i]
		end := len(row)
		for end > 0 && row[end-1].IsEmpty() {
			end--
		}
		trimmed.Rows[i] = row[:end]
	}
	return trimmed
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]models.Cell) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
