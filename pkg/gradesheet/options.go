// Package gradesheet normalizes per-term grade spreadsheet exports, merges
// them by student and re-exports one sheet with failing grades highlighted.
package gradesheet

import (
	"strings"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/merge"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/output"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/parser"
	"go.uber.org/zap"
)

// DefaultPassThreshold is the lowest passing grade.
const DefaultPassThreshold = output.DefaultPassThreshold

// Options configures a pipeline run. Start from DefaultOptions; zero values
// fall back to the documented defaults.
type Options struct {
	// Marker is the header text of the student column.
	Marker string `yaml:"marker" envconfig:"MARKER"`
	// KeyLabel is the student column header in the output.
	KeyLabel string `yaml:"key_label" envconfig:"KEY_LABEL"`
	// PassThreshold is the lowest passing grade. Nil means
	// DefaultPassThreshold; zero marks nothing.
	PassThreshold *float64 `yaml:"pass_threshold" envconfig:"PASS_THRESHOLD" validate:"omitempty,gte=0,lte=10"`
	// DenyList holds header substrings of columns that are never grades,
	// compared ignoring case and accents.
	DenyList []string `yaml:"deny_list" envconfig:"DENY_LIST"`
	// StripTokens are removed from headers when deriving subject names.
	StripTokens []string `yaml:"strip_tokens" envconfig:"STRIP_TOKENS"`
	// MinValidFraction is the share of non-empty cells that must hold a
	// grade for a column to be kept. Zero keeps any column with one grade.
	MinValidFraction float64 `yaml:"min_valid_fraction" envconfig:"MIN_VALID_FRACTION" validate:"gte=0,lte=1"`
	// MissingText is written where a student has no grade.
	MissingText string `yaml:"missing_text" envconfig:"MISSING_TEXT"`
	// GroupedHeader writes a two-row subject/term header.
	GroupedHeader bool `yaml:"grouped_header" envconfig:"GROUPED_HEADER"`
	// FillAllTerms emits every (subject, term) column, even when a term never
	// had the subject.
	FillAllTerms bool `yaml:"fill_all_terms" envconfig:"FILL_ALL_TERMS"`
	// FailFontColor is the RGB font color of failing grades, without '#'.
	FailFontColor string `yaml:"fail_font_color" envconfig:"FAIL_FONT_COLOR" validate:"omitempty,hexadecimal,len=6"`
	// FailFillColor optionally fills failing cells, RGB without '#'.
	FailFillColor string `yaml:"fail_fill_color" envconfig:"FAIL_FILL_COLOR" validate:"omitempty,hexadecimal,len=6"`
	// SheetName selects the input worksheet. Empty means the active sheet.
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	// OutputSheet names the output worksheet.
	OutputSheet string `yaml:"output_sheet" envconfig:"OUTPUT_SHEET"`
	// HeaderRow fixes the 1-based header row. Zero searches for Marker.
	HeaderRow int `yaml:"header_row" envconfig:"HEADER_ROW" validate:"gte=0"`
	// MaxHeaderScanRows bounds the marker search. Zero searches every row.
	MaxHeaderScanRows int `yaml:"max_header_scan_rows" envconfig:"MAX_HEADER_SCAN_ROWS" validate:"gte=0"`
	// RespectPrintArea clips input sheets to their print area.
	RespectPrintArea bool `yaml:"respect_print_area" envconfig:"RESPECT_PRINT_AREA"`
	// Logger receives pipeline logs. Nil disables logging.
	Logger *zap.Logger `yaml:"-" ignored:"true" validate:"-"`
}

// DefaultOptions returns default pipeline options.
func DefaultOptions() Options {
	return Options{
		Marker:        parser.DefaultMarker,
		KeyLabel:      parser.DefaultMarker,
		PassThreshold: output.ThresholdOf(DefaultPassThreshold),
		FailFontColor: output.DefaultFailFontColor,
	}
}

// Threshold returns the pass threshold.
func (o Options) Threshold() float64 {
	if o.PassThreshold == nil {
		return DefaultPassThreshold
	}
	return *o.PassThreshold
}

func (o Options) marker() string {
	if o.Marker == "" {
		return parser.DefaultMarker
	}
	return o.Marker
}

func (o Options) keyLabel() string {
	if o.KeyLabel == "" {
		return o.marker()
	}
	return o.KeyLabel
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Layout returns the parser layout described by o.
func (o Options) Layout() parser.Layout {
	return parser.Layout{
		Marker:            o.marker(),
		HeaderRow:         o.HeaderRow,
		MaxHeaderScanRows: o.MaxHeaderScanRows,
		DenyList:          o.DenyList,
		StripTokens:       o.StripTokens,
		MinValidFraction:  o.MinValidFraction,
	}
}

// ReadOptions returns the input selection described by o.
func (o Options) ReadOptions() parser.ReadOptions {
	return parser.ReadOptions{
		SheetName:        o.SheetName,
		RespectPrintArea: o.RespectPrintArea,
	}
}

// MergeOptions returns the join options described by o.
func (o Options) MergeOptions() merge.Options {
	return merge.Options{
		KeyLabel:     o.keyLabel(),
		FillAllTerms: o.FillAllTerms,
	}
}

// XLSXOptions returns the export options described by o.
func (o Options) XLSXOptions() output.XLSXOptions {
	return output.XLSXOptions{
		SheetName:     o.OutputSheet,
		KeyLabel:      o.keyLabel(),
		PassThreshold: output.ThresholdOf(o.Threshold()),
		MissingText:   o.MissingText,
		GroupedHeader: o.GroupedHeader,
		FailFontColor: strings.TrimPrefix(o.FailFontColor, "#"),
		FailFillColor: strings.TrimPrefix(o.FailFillColor, "#"),
	}
}
