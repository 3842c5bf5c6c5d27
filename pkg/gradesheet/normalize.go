package gradesheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/merge"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/output"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/parser"
	"go.uber.org/zap"
)

// Normalize turns raw sheets into one merged table. sheets[i] holds term i+1.
// The first failing term aborts the run with a *TermError naming it.
func Normalize(sheets []models.RawSheet, opts Options) (*models.MergedTable, error) {
	if len(sheets) == 0 {
		return nil, ErrNoTerms
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.logger().With(zap.String("run_id", uuid.NewString()))
	layout := opts.Layout()

	tables := make([]*models.TermTable, 0, len(sheets))
	for i, sheet := range sheets {
		term := models.NewTerm(i + 1)
		table, err := parser.BuildTermTable(sheet, term, layout, log.With(zap.String("term", term.ID)))
		if err != nil {
			log.Warn("term rejected", zap.String("source", sheet.Source), zap.Error(err))
			return nil, NewTermError(term.Number, sheet.Source, "normalize", err)
		}
		tables = append(tables, table)
	}

	merged, err := merge.TermsWith(opts.MergeOptions(), tables...)
	if err != nil {
		return nil, err
	}
	log.Info("terms merged",
		zap.Int("terms", len(tables)),
		zap.Int("students", len(merged.Rows)),
		zap.Int("columns", len(merged.Columns)))
	return merged, nil
}

// NormalizeFiles reads each file once, in term order, and normalizes them.
func NormalizeFiles(paths []string, opts Options) (*models.MergedTable, error) {
	if len(paths) == 0 {
		return nil, ErrNoTerms
	}
	sheets := make([]models.RawSheet, 0, len(paths))
	for i, path := range paths {
		sheet, err := readTerm(path, opts)
		if err != nil {
			return nil, NewTermError(i+1, filepath.Base(path), "read", err)
		}
		sheets = append(sheets, sheet)
	}
	return Normalize(sheets, opts)
}

func readTerm(path string, opts Options) (models.RawSheet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return models.RawSheet{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.RawSheet{}, err
	}
	sheet, err := parser.ReadFile(path, opts.ReadOptions())
	if err != nil {
		if errors.Is(err, parser.ErrSheetNotFound) {
			return models.RawSheet{}, err
		}
		return models.RawSheet{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return sheet, nil
}

// Export renders table as xlsx bytes with failing grades marked.
func Export(table *models.MergedTable, opts Options) ([]byte, error) {
	return output.ToXLSX(table, opts.XLSXOptions())
}

// ExportFile writes table as xlsx to path. The file is written to a temporary
// sibling and renamed into place once complete, so path never holds a
// partial document.
func ExportFile(path string, table *models.MergedTable, opts Options) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gradesheet-*.xlsx")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = output.WriteXLSX(tmp, table, opts.XLSXOptions()); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
