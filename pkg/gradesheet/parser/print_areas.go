package parser

import (
	"strings"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/xuri/excelize/v2"
)

// PrintAreaName is the defined name Excel uses for print areas.
const PrintAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) (map[string][]models.PrintArea, error) {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, PrintAreaName) {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result, nil
}

// SetPrintArea defines area as the print area of sheet.
func SetPrintArea(f *excelize.File, sheet string, area models.PrintArea) error {
	ref, err := RangeRef(area)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     PrintAreaName,
		RefersTo: "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + ref,
		Scope:    sheet,
	})
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea

	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.ReplaceAll(strings.Trim(part[:idx], "'"), "''", "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area := parseRangeToArea(part[idx+1:]); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to PrintArea.
func parseRangeToArea(rangeStr string) *models.PrintArea {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.PrintArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}
}
