package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ReadOptions selects which part of a workbook is read.
type ReadOptions struct {
	// SheetName selects the worksheet. Empty means the active sheet.
	SheetName string
	// RespectPrintArea clips the grid to the sheet's first print area.
	RespectPrintArea bool
}

// ReadFile reads one worksheet of an xlsx file, or a csv file, into a raw grid.
func ReadFile(path string, opts ReadOptions) (models.RawSheet, error) {
	source := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return models.RawSheet{}, err
		}
		defer f.Close()
		return ReadCSV(f, source)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RawSheet{}, err
	}
	defer f.Close()

	return ReadWorkbook(f, source, opts)
}

// ReadXLSX reads one worksheet of an xlsx stream into a raw grid.
func ReadXLSX(r io.Reader, source string, opts ReadOptions) (models.RawSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RawSheet{}, err
	}
	defer f.Close()

	return ReadWorkbook(f, source, opts)
}

// ReadWorkbook reads one worksheet of an open workbook into a raw grid.
// Numeric cells keep their stored value regardless of number format.
// Trailing empty rows and cells are dropped.
func ReadWorkbook(f *excelize.File, source string, opts ReadOptions) (models.RawSheet, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return models.RawSheet{}, fmt.Errorf("%w: %q in %q", ErrSheetNotFound, sheetName, source)
	}

	// Stored values, not display text: a grade of 4.6 formatted "0" shows as 5.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.RawSheet{}, err
	}

	sheet := models.RawSheet{
		Name:   sheetName,
		Source: source,
		Rows:   make([][]models.Cell, len(rows)),
	}
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = parseValue(cellValue)
		}
		sheet.Rows[rowIdx] = cells
	}

	if opts.RespectPrintArea {
		areas, err := ExtractPrintAreas(f)
		if err == nil && len(areas[sheetName]) > 0 {
			sheet = areas[sheetName][0].Clip(sheet)
		}
	}

	return TrimSheet(sheet), nil
}

// ReadCSV reads a delimited text export into a raw grid. Input that is not
// valid UTF-8 is decoded as Windows-1252, and the delimiter is ';' when the
// first line holds more semicolons than commas.
func ReadCSV(r io.Reader, source string) (models.RawSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.RawSheet{}, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return models.RawSheet{}, fmt.Errorf("decode %q: %w", source, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return models.RawSheet{}, fmt.Errorf("read %q: %w", source, err)
	}

	sheet := models.RawSheet{
		Name:   strings.TrimSuffix(source, filepath.Ext(source)),
		Source: source,
		Rows:   make([][]models.Cell, len(records)),
	}
	for i, record := range records {
		cells := make([]models.Cell, len(record))
		for j, v := range record {
			cells[j] = parseValue(v)
		}
		sheet.Rows[i] = cells
	}

	return TrimSheet(sheet), nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// parseValue classifies a cell's text as empty, number or text.
func parseValue(s string) models.Cell {
	return models.TextCell(s)
}
