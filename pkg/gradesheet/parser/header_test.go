package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateHeader(t *testing.T) {
	sheet := grid(
		[]string{"ESCOLA ESTADUAL"},
		[]string{},
		[]string{"Turma: 7º A", "", "Bimestre: 1"},
		[]string{"Nº", "ALUNO", "Matemática"},
		[]string{"1", "Ana Silva", "7"},
	)

	row, err := LocateHeader(sheet, "ALUNO")
	require.NoError(t, err)
	assert.Equal(t, 3, row)
}

func TestLocateHeaderCaseAndAccentInsensitive(t *testing.T) {
	sheet := grid(
		[]string{"Relatório"},
		[]string{"Nome do Álunó", "Nota"},
	)

	row, col, err := LocateHeaderCell(sheet, "aluno", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestLocateHeaderFirstMatchWins(t *testing.T) {
	sheet := grid(
		[]string{"x"},
		[]string{"", "ALUNO", "Artes"},
		[]string{"", "Ana Silva", "8"},
		[]string{"", "ALUNO", "Artes"},
	)

	row, col, err := LocateHeaderCell(sheet, "ALUNO", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestLocateHeaderNotFound(t *testing.T) {
	sheet := grid(
		[]string{"Nome", "Nota"},
		[]string{"Ana Silva", "7"},
	)

	_, err := LocateHeader(sheet, "ALUNO")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderNotFound))

	var hnf *HeaderNotFoundError
	require.True(t, errors.As(err, &hnf))
	assert.Equal(t, "ALUNO", hnf.Marker)
	assert.Equal(t, "test.xlsx", hnf.Source)
	assert.Equal(t, 2, hnf.Scanned)
}

func TestLocateHeaderScanLimit(t *testing.T) {
	sheet := grid(
		[]string{"a"},
		[]string{"b"},
		[]string{"c"},
		[]string{"ALUNO"},
	)

	_, _, err := LocateHeaderCell(sheet, "ALUNO", 3)
	var hnf *HeaderNotFoundError
	require.True(t, errors.As(err, &hnf))
	assert.Equal(t, 3, hnf.Scanned)

	row, _, err := LocateHeaderCell(sheet, "ALUNO", 4)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
}

func TestHeaderNames(t *testing.T) {
	sheet := grid(
		[]string{"ALUNO", "  Língua \n Portuguesa ", ""},
		[]string{"Ana Silva", "7", "8", "9"},
	)

	assert.Equal(t, []string{"ALUNO", "Língua Portuguesa", "", ""}, HeaderNames(sheet, 0))
}
