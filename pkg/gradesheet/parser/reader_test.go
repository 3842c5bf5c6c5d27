package parser

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/xuri/excelize/v2"
)

func writeTermWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "ESCOLA ESTADUAL")
	f.SetCellValue(sheetName, "A3", "ALUNO")
	f.SetCellValue(sheetName, "B3", "Matemática")
	f.SetCellValue(sheetName, "C3", "Obs")
	f.SetCellValue(sheetName, "A4", "Ana Silva")
	f.SetCellValue(sheetName, "B4", 4)
	f.SetCellValue(sheetName, "C4", "faltou")
	f.SetCellValue(sheetName, "A5", "Bruno Costa")
	f.SetCellValue(sheetName, "B5", 7.5)
	f.SetCellValue(sheetName, "A7", "Assinatura")

	tmpFile := filepath.Join(t.TempDir(), "term1.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))
	return tmpFile
}

func TestReadFile(t *testing.T) {
	path := writeTermWorkbook(t)

	sheet, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, "term1.xlsx", sheet.Source)
	require.Len(t, sheet.Rows, 7)
	assert.Equal(t, "ESCOLA ESTADUAL", sheet.At(0, 0).Text)
	assert.True(t, sheet.At(1, 0).IsEmpty())
	assert.Equal(t, "ALUNO", sheet.At(2, 0).Text)

	four := sheet.At(3, 1)
	assert.Equal(t, models.CellNumber, four.Kind)
	assert.Equal(t, 4.0, four.Number)
	assert.Equal(t, models.CellText, sheet.At(3, 2).Kind)
	assert.Equal(t, 7.5, sheet.At(4, 1).Number)
	assert.Equal(t, "Assinatura", sheet.At(6, 0).Text)

	row, err := LocateHeader(sheet, DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
}

func TestReadFileMissingSheet(t *testing.T) {
	path := writeTermWorkbook(t)

	_, err := ReadFile(path, ReadOptions{SheetName: "Notas"})
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestReadFileRespectPrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "ESCOLA")
	f.SetCellValue("Sheet1", "A2", "ALUNO")
	f.SetCellValue("Sheet1", "B2", "Artes")
	f.SetCellValue("Sheet1", "A3", "Ana Silva")
	f.SetCellValue("Sheet1", "B3", 9)
	f.SetCellValue("Sheet1", "A9", "fora da área")
	require.NoError(t, SetPrintArea(f, "Sheet1", models.PrintArea{R1: 2, C1: 1, R2: 3, C2: 2}))

	areas, err := ExtractPrintAreas(f)
	require.NoError(t, err)
	assert.Equal(t, []models.PrintArea{{R1: 2, C1: 1, R2: 3, C2: 2}}, areas["Sheet1"])

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	sheet, err := ReadXLSX(&buf, "area.xlsx", ReadOptions{RespectPrintArea: true})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ALUNO", sheet.At(0, 0).Text)
	assert.Equal(t, "9", sheet.At(1, 1).Text)
}

func TestParsePrintAreaReference(t *testing.T) {
	sheet, areas := parsePrintAreaReference("'Notas do 1º'!$A$1:$D$10,'Notas do 1º'!$F$1:$G$2")
	assert.Equal(t, "Notas do 1º", sheet)
	assert.Equal(t, []models.PrintArea{
		{R1: 1, C1: 1, R2: 10, C2: 4},
		{R1: 1, C1: 6, R2: 2, C2: 7},
	}, areas)

	_, areas = parsePrintAreaReference("Sheet1!A1")
	assert.Empty(t, areas)
}

func TestReadCSV(t *testing.T) {
	// Windows-1252 encoded, semicolon separated.
	data := []byte("Turma;7A\nALUNO;Matem\xe1tica;Situa\xe7\xe3o\nAna Silva;4;Reprovado\nBruno Costa;7;Aprovado\n;;\n")

	sheet, err := ReadCSV(bytes.NewReader(data), "term2.csv")
	require.NoError(t, err)

	assert.Equal(t, "term2", sheet.Name)
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "Matemática", sheet.At(1, 1).Text)
	assert.Equal(t, "Situação", sheet.At(1, 2).Text)
	assert.Equal(t, 4.0, sheet.At(2, 1).Number)
}

func TestReadCSVUTF8WithBOM(t *testing.T) {
	data := "\xef\xbb\xbfALUNO,Ciências\nAna Silva,\"8, rec\"\n"

	sheet, err := ReadCSV(strings.NewReader(data), "term3.csv")
	require.NoError(t, err)
	assert.Equal(t, "ALUNO", sheet.At(0, 0).Text)
	assert.Equal(t, "Ciências", sheet.At(0, 1).Text)
	assert.Equal(t, models.GradeOf(8), ExtractGrade(sheet.At(1, 1)))
}

func TestReadFileIgnoresNumberFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "ALUNO")
	f.SetCellValue("Sheet1", "B1", "Matemática")
	f.SetCellValue("Sheet1", "A2", "Ana Silva")
	f.SetCellValue("Sheet1", "B2", 4.6)
	f.SetCellValue("Sheet1", "A3", "Bruno Costa")
	f.SetCellValue("Sheet1", "B3", 9.5)
	whole, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B3", whole))

	display, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	require.Equal(t, "5", display)

	path := filepath.Join(t.TempDir(), "formatted.xlsx")
	require.NoError(t, f.SaveAs(path))

	sheet, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4.6, sheet.At(1, 1).Number)
	assert.Equal(t, models.GradeOf(4), ExtractGrade(sheet.At(1, 1)))
	assert.True(t, ExtractGrade(sheet.At(1, 1)).Fails(5))
	assert.Equal(t, models.GradeOf(9), ExtractGrade(sheet.At(2, 1)))
}
