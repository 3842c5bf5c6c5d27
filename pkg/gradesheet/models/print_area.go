package models

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Clip returns the part of sheet covered by the area.
func (a PrintArea) Clip(sheet RawSheet) RawSheet {
	clipped := RawSheet{Name: sheet.Name, Source: sheet.Source}
	for r := a.R1 - 1; r < a.R2 && r < len(sheet.Rows); r++ {
		if r < 0 {
			continue
		}
		src := sheet.Rows[r]
		var row []Cell
		for c := a.C1 - 1; c < a.C2 && c < len(src); c++ {
			if c < 0 {
				continue
			}
			row = append(row, src[c])
		}
		clipped.Rows = append(clipped.Rows, row)
	}
	return clipped
}
