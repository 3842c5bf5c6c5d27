package models

// RawSheet is the as-uploaded grid of one spreadsheet, with no assumed header.
// It is read once and never modified afterwards.
type RawSheet struct {
	// Name is the worksheet name the grid was read from.
	Name string `json:"name"`
	// Source identifies the originating file (base name, no path).
	Source string `json:"source"`
	// Rows holds the grid top to bottom. Rows may have different lengths.
	Rows [][]Cell `json:"rows"`
}

// At returns the cell at the zero-based row and column, or an empty cell
// when the position lies outside the grid.
func (s RawSheet) At(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return Cell{}
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// Width returns the length of the longest row.
func (s RawSheet) Width() int {
	w := 0
	for _, r := range s.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Strings returns the grid as text, the form excelize uses for row access.
func (s RawSheet) Strings() [][]string {
	out := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		row := make([]string, len(r))
		for j, c := range r {
			row[j] = c.Text
		}
		out[i] = row
	}
	return out
}
