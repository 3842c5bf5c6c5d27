// Package main provides the CLI entry point for gradesheet-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/output"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultOutput = "notas_unificadas.xlsx"

var (
	outputPath       string
	format           string
	pretty           bool
	configPath       string
	threshold        float64
	denyList         []string
	missingText      string
	groupedHeader    bool
	fillAllTerms     bool
	minValidFraction float64
	sheetName        string
	headerRow        int
	summary          bool
	logLevel         string
	verbose          bool

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gradesheet term1.xlsx [term2.xlsx [term3.xlsx ...]]",
		Short: "Merge per-term grade spreadsheets into one highlighted sheet",
		Long: `gradesheet reads one spreadsheet export per term, finds the student list,
keeps the grade columns, joins the terms by student name and writes a single
spreadsheet with grades below the pass threshold highlighted.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(logLevel, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", defaultOutput, "Output file path (- for stdout; json defaults to stdout)")
	flags.StringVar(&format, "format", "xlsx", "Output format: xlsx, json")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVarP(&configPath, "config", "c", "", "YAML layout profile")
	flags.Float64Var(&threshold, "threshold", gradesheet.DefaultPassThreshold, "Lowest passing grade")
	flags.StringSliceVar(&denyList, "deny", nil, "Header substrings of columns to drop (repeatable)")
	flags.StringVar(&missingText, "missing", "", "Text written where a grade is missing")
	flags.BoolVar(&groupedHeader, "grouped-header", false, "Write a two-row subject/term header")
	flags.BoolVar(&fillAllTerms, "fill-all-terms", false, "Emit every subject for every term")
	flags.Float64Var(&minValidFraction, "min-valid-fraction", 0, "Share of non-empty cells that must be grades to keep a column")
	flags.StringVar(&sheetName, "sheet", "", "Input worksheet name (default: active sheet)")
	flags.IntVar(&headerRow, "header-row", 0, "Fixed 1-based header row (default: search for the marker)")
	flags.BoolVar(&summary, "summary", false, "Print per-column statistics to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := gradesheet.LoadOptions(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &opts)
	opts.Logger = logger
	if err := opts.Validate(); err != nil {
		return err
	}

	table, err := gradesheet.NormalizeFiles(args, opts)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	if summary {
		summaries, err := report.Summarize(table, opts.Threshold())
		if err != nil {
			return err
		}
		if err := report.Write(os.Stderr, summaries); err != nil {
			return err
		}
	}

	switch strings.ToLower(format) {
	case "json":
		return writeJSON(table, cmd.Flags().Changed("output"))
	case "xlsx":
		return writeXLSX(table, opts)
	default:
		return fmt.Errorf("invalid format: %s (must be xlsx or json)", format)
	}
}

// applyFlags overrides loaded options with flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *gradesheet.Options) {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		opts.PassThreshold = &threshold
	}
	if flags.Changed("deny") {
		opts.DenyList = append(opts.DenyList, denyList...)
	}
	if flags.Changed("missing") {
		opts.MissingText = missingText
	}
	if flags.Changed("grouped-header") {
		opts.GroupedHeader = groupedHeader
	}
	if flags.Changed("fill-all-terms") {
		opts.FillAllTerms = fillAllTerms
	}
	if flags.Changed("min-valid-fraction") {
		opts.MinValidFraction = minValidFraction
	}
	if flags.Changed("sheet") {
		opts.SheetName = sheetName
	}
	if flags.Changed("header-row") {
		opts.HeaderRow = headerRow
	}
}

func writeJSON(table *models.MergedTable, explicitOutput bool) error {
	target, err := jsonTarget(outputPath, explicitOutput)
	if err != nil {
		return err
	}
	jsonData, err := output.ToJSON(table, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if target == "" {
		fmt.Println(string(jsonData))
		return nil
	}
	if err := os.WriteFile(target, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// jsonTarget returns the file JSON is written to, or "" for stdout. Without
// an explicit -o, JSON goes to stdout.
func jsonTarget(path string, explicit bool) (string, error) {
	if !explicit || path == "-" {
		return "", nil
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "", fmt.Errorf("refusing to write json to %s: use a .json path or -", path)
	}
	return path, nil
}

// newLogger builds the CLI logger. Debug level uses the development config.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(lvl)

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return built, nil
}

func writeXLSX(table *models.MergedTable, opts gradesheet.Options) error {
	if outputPath == "-" {
		return output.WriteXLSX(os.Stdout, table, opts.XLSXOptions())
	}
	if err := gradesheet.ExportFile(outputPath, table, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("merged sheet written",
		zap.String("path", outputPath),
		zap.Int("students", len(table.Rows)),
		zap.Int("columns", len(table.Columns)))
	return nil
}
