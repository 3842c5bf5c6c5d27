// Package output serializes merged grade tables.
package output

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/parser"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is the worksheet the merged table is written to.
	DefaultSheetName = "Notas"
	// DefaultFailFontColor is the font color of failing grades.
	DefaultFailFontColor = "FF0000"
	// DefaultPassThreshold is the lowest passing grade.
	DefaultPassThreshold = 5.0
)

// XLSXOptions configures spreadsheet export.
type XLSXOptions struct {
	// SheetName names the output worksheet.
	SheetName string
	// KeyLabel overrides the table's student column header.
	KeyLabel string
	// PassThreshold is the lowest passing grade. Grades strictly below it are
	// marked. Nil means DefaultPassThreshold; zero marks nothing.
	PassThreshold *float64
	// MissingText is written where a student has no grade. Empty leaves the
	// cell blank.
	MissingText string
	// GroupedHeader writes two header rows: subjects spanning their term
	// columns, then term labels.
	GroupedHeader bool
	// FailFontColor is the RGB font color of failing grades.
	FailFontColor string
	// FailFillColor optionally fills failing cells with an RGB color.
	FailFillColor string
}

func (o XLSXOptions) sheetName() string {
	if o.SheetName == "" {
		return DefaultSheetName
	}
	return o.SheetName
}

func (o XLSXOptions) threshold() float64 {
	if o.PassThreshold == nil {
		return DefaultPassThreshold
	}
	return *o.PassThreshold
}

// ThresholdOf returns a pass threshold for XLSXOptions.
func ThresholdOf(v float64) *float64 {
	return &v
}

func (o XLSXOptions) keyLabel(table *models.MergedTable) string {
	switch {
	case o.KeyLabel != "":
		return o.KeyLabel
	case table.KeyLabel != "":
		return table.KeyLabel
	default:
		return parser.DefaultMarker
	}
}

// HeaderRows returns the number of header rows written for opts.
func (o XLSXOptions) HeaderRows() int {
	if o.GroupedHeader {
		return 2
	}
	return 1
}

// ToXLSX renders table as an xlsx document.
func ToXLSX(table *models.MergedTable, opts XLSXOptions) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := WriteXLSX(buf, table, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders table as an xlsx document into w. The workbook is
// released whether or not writing succeeds.
func WriteXLSX(w io.Writer, table *models.MergedTable, opts XLSXOptions) error {
	f, err := BuildXLSX(table, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// BuildXLSX returns an in-memory workbook holding table. The caller owns the
// file and must Close it.
func BuildXLSX(table *models.MergedTable, opts XLSXOptions) (*excelize.File, error) {
	if table == nil {
		return nil, errors.New("nil merged table")
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, table, opts); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, table *models.MergedTable, opts XLSXOptions) error {
	sheet := opts.sheetName()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	failStyle, err := f.NewStyle(failStyleFor(opts))
	if err != nil {
		return err
	}

	if opts.GroupedHeader {
		err = writeGroupedHeader(f, sheet, table, opts.keyLabel(table))
	} else {
		err = writeFlatHeader(f, sheet, table, opts.keyLabel(table))
	}
	if err != nil {
		return err
	}

	headerRows := opts.HeaderRows()
	lastCol := len(table.Columns) + 1
	if err := setRowRangeStyle(f, sheet, 1, headerRows, lastCol, headerStyle); err != nil {
		return err
	}

	threshold := opts.threshold()
	for i, row := range table.Rows {
		r := headerRows + i + 1
		if err := setCell(f, sheet, 1, r, row.Student); err != nil {
			return err
		}
		for j, g := range row.Cells {
			if !g.Valid {
				if opts.MissingText != "" {
					if err := setCell(f, sheet, j+2, r, opts.MissingText); err != nil {
						return err
					}
				}
				continue
			}
			if err := setCell(f, sheet, j+2, r, g.Value); err != nil {
				return err
			}
			if g.Fails(threshold) {
				cell, _ := excelize.CoordinatesToCellName(j+2, r)
				if err := f.SetCellStyle(sheet, cell, cell, failStyle); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      headerRows,
		TopLeftCell: topLeft(headerRows),
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	area := models.PrintArea{R1: 1, C1: 1, R2: headerRows + len(table.Rows), C2: lastCol}
	return parser.SetPrintArea(f, sheet, area)
}

func writeFlatHeader(f *excelize.File, sheet string, table *models.MergedTable, keyLabel string) error {
	if err := setCell(f, sheet, 1, 1, keyLabel); err != nil {
		return err
	}
	for i, c := range table.Columns {
		if err := setCell(f, sheet, i+2, 1, c.Name()); err != nil {
			return err
		}
	}
	return nil
}

// writeGroupedHeader writes subjects on row 1, merged across their term
// columns, and term labels on row 2.
func writeGroupedHeader(f *excelize.File, sheet string, table *models.MergedTable, keyLabel string) error {
	if err := setCell(f, sheet, 1, 2, keyLabel); err != nil {
		return err
	}
	for _, g := range table.SubjectGroups() {
		first := g.Start + 2
		last := first + len(g.Columns) - 1
		if err := setCell(f, sheet, first, 1, g.Subject); err != nil {
			return err
		}
		if last > first {
			start, _ := excelize.CoordinatesToCellName(first, 1)
			end, _ := excelize.CoordinatesToCellName(last, 1)
			if err := f.MergeCell(sheet, start, end); err != nil {
				return err
			}
		}
		for i, c := range g.Columns {
			if err := setCell(f, sheet, first+i, 2, c.Term.Label); err != nil {
				return err
			}
		}
	}
	return nil
}

func failStyleFor(opts XLSXOptions) *excelize.Style {
	color := strings.TrimPrefix(opts.FailFontColor, "#")
	if color == "" {
		color = DefaultFailFontColor
	}
	style := &excelize.Style{Font: &excelize.Font{Bold: true, Color: color}}
	if fill := strings.TrimPrefix(opts.FailFillColor, "#"); fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1}
	}
	return style
}

func setRowRangeStyle(f *excelize.File, sheet string, fromRow, toRow, lastCol, style int) error {
	start, err := excelize.CoordinatesToCellName(1, fromRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(lastCol, toRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func topLeft(headerRows int) string {
	cell, _ := excelize.CoordinatesToCellName(2, headerRows+1)
	return cell
}
