package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeZeroValueIsMissing(t *testing.T) {
	var g Grade
	assert.False(t, g.Valid)
	assert.Equal(t, Missing(), g)
	assert.NotEqual(t, GradeOf(0), g)
}

func TestGradeFails(t *testing.T) {
	tests := []struct {
		grade     Grade
		threshold float64
		want      bool
	}{
		{GradeOf(4), 5, true},
		{GradeOf(5), 5, false},
		{GradeOf(0), 5, true},
		{GradeOf(5), 6, true},
		{GradeOf(10), 6, false},
		{Missing(), 5, false},
		{Missing(), 11, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.grade.Fails(tt.threshold), "%+v < %v", tt.grade, tt.threshold)
	}
}

func TestGradeRender(t *testing.T) {
	assert.Equal(t, "7", GradeOf(7).Render("-"))
	assert.Equal(t, "0", GradeOf(0).Render("-"))
	assert.Equal(t, "-", Missing().Render("-"))
}

func TestGradeJSON(t *testing.T) {
	data, err := json.Marshal([]Grade{GradeOf(4), Missing(), GradeOf(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `[4, null, 0]`, string(data))

	var back []Grade
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Grade{GradeOf(4), Missing(), GradeOf(0)}, back)
}

func TestTextCell(t *testing.T) {
	assert.Equal(t, CellEmpty, TextCell("").Kind)
	assert.Equal(t, CellEmpty, TextCell("   ").Kind)

	n := TextCell("7.5")
	assert.Equal(t, CellNumber, n.Kind)
	assert.Equal(t, 7.5, n.Number)
	assert.Equal(t, "7.5", n.Text)

	s := TextCell("7 (rec)")
	assert.Equal(t, CellText, s.Kind)
	assert.Equal(t, "7 (rec)", s.String())

	assert.Equal(t, "4", NumberCell(4).Text)
}
