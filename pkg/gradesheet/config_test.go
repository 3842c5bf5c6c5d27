package gradesheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, 5.0, opts.Threshold())
	assert.Equal(t, "ALUNO", opts.Layout().Marker)
	assert.Equal(t, "ALUNO", opts.MergeOptions().KeyLabel)

	var zero Options
	assert.Equal(t, DefaultPassThreshold, zero.Threshold())
	assert.Equal(t, "ALUNO", zero.Layout().Marker)
}

func TestLoadOptionsFromProfileAndEnv(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`
pass_threshold: 6
deny_list:
  - Situação
  - Total
min_valid_fraction: 0.8
grouped_header: true
missing_text: "n/a"
fail_fill_color: "#FFC7CE"
`), 0644))

	t.Setenv("GRADESHEET_MISSING_TEXT", "-")
	t.Setenv("GRADESHEET_HEADER_ROW", "12")

	opts, err := LoadOptions(profile)
	require.NoError(t, err)

	require.NotNil(t, opts.PassThreshold)
	assert.Equal(t, 6.0, *opts.PassThreshold)
	assert.Equal(t, 6.0, opts.Threshold())
	assert.Equal(t, []string{"Situação", "Total"}, opts.DenyList)
	assert.Equal(t, 0.8, opts.MinValidFraction)
	assert.True(t, opts.GroupedHeader)
	assert.Equal(t, "-", opts.MissingText)
	assert.Equal(t, 12, opts.HeaderRow)
	assert.Equal(t, "ALUNO", opts.Marker)
	assert.Equal(t, "FFC7CE", opts.XLSXOptions().FailFillColor)
}

func TestLoadOptionsInvalid(t *testing.T) {
	t.Setenv("GRADESHEET_PASS_THRESHOLD", "11")
	_, err := LoadOptions("")
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestLoadOptionsZeroThreshold(t *testing.T) {
	t.Setenv("GRADESHEET_PASS_THRESHOLD", "0")

	opts, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, opts.Threshold())
	require.NotNil(t, opts.XLSXOptions().PassThreshold)
	assert.Equal(t, 0.0, *opts.XLSXOptions().PassThreshold)
}

func TestLoadOptionsMissingProfile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateColors(t *testing.T) {
	opts := DefaultOptions()
	opts.FailFontColor = "#C00000"
	assert.NoError(t, opts.Validate())

	opts.FailFontColor = "red"
	assert.True(t, errors.Is(opts.Validate(), ErrInvalidOptions))
}
