package parser

import (
	"strings"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
)

// DefaultMarker is the header text of the student-name column.
const DefaultMarker = "ALUNO"

// LocateHeader returns the zero-based index of the first row with a cell
// containing marker, ignoring case and accents. Later rows repeating the
// marker are ignored.
func LocateHeader(sheet models.RawSheet, marker string) (int, error) {
	row, _, err := LocateHeaderCell(sheet, marker, 0)
	return row, err
}

// LocateHeaderCell is LocateHeader that also returns the column of the
// matching cell. When maxRows is positive only the first maxRows rows are
// searched.
func LocateHeaderCell(sheet models.RawSheet, marker string, maxRows int) (row, col int, err error) {
	needle := Fold(strings.TrimSpace(marker))
	scanned := 0
	for r, cells := range sheet.Rows {
		if maxRows > 0 && r >= maxRows {
			break
		}
		scanned++
		if needle == "" {
			continue
		}
		for c, cell := range cells {
			if cell.IsEmpty() {
				continue
			}
			if strings.Contains(Fold(cell.Text), needle) {
				return r, c, nil
			}
		}
	}
	return -1, -1, &HeaderNotFoundError{Source: sheet.Source, Marker: marker, Scanned: scanned}
}

// KeyColumn returns the column of the first cell in row containing marker.
func KeyColumn(sheet models.RawSheet, row int, marker string) (int, bool) {
	if row < 0 || row >= len(sheet.Rows) {
		return -1, false
	}
	for c, cell := range sheet.Rows[row] {
		if !cell.IsEmpty() && ContainsFold(cell.Text, marker) {
			return c, true
		}
	}
	return -1, false
}

// HeaderNames promotes row to column names, trimmed and whitespace-collapsed.
// The result spans the full sheet width so every data column has a name.
func HeaderNames(sheet models.RawSheet, row int) []string {
	names := make([]string, sheet.Width())
	for c := range names {
		names[c] = models.NormalizeName(sheet.At(row, c).Text)
	}
	return names
}
