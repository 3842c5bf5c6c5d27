// Package report summarizes merged grade tables.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/montanaflynn/stats"
	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
)

// ColumnSummary describes one (subject, term) column.
type ColumnSummary struct {
	Column  string  `json:"column"`
	Graded  int     `json:"graded"`
	Missing int     `json:"missing"`
	Failing int     `json:"failing"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
}

// Summarize computes per-column counts and central tendency. Grades strictly
// below threshold count as failing; Missing grades are only counted as such.
func Summarize(table *models.MergedTable, threshold float64) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, len(table.Columns))
	for j, c := range table.Columns {
		s := ColumnSummary{Column: c.Name()}
		var values stats.Float64Data
		for _, r := range table.Rows {
			g := r.Cells[j]
			if !g.Valid {
				s.Missing++
				continue
			}
			s.Graded++
			if g.Fails(threshold) {
				s.Failing++
			}
			values = append(values, float64(g.Value))
		}
		if len(values) > 0 {
			mean, err := values.Mean()
			if err != nil {
				return nil, fmt.Errorf("mean of %s: %w", s.Column, err)
			}
			median, err := values.Median()
			if err != nil {
				return nil, fmt.Errorf("median of %s: %w", s.Column, err)
			}
			s.Mean, _ = stats.Round(mean, 2)
			s.Median = median
		}
		out[j] = s
	}
	return out, nil
}

// Write prints summaries as an aligned text table.
func Write(w io.Writer, summaries []ColumnSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tGRADED\tMISSING\tFAILING\tMEAN\tMEDIAN")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%.1f\n", s.Column, s.Graded, s.Missing, s.Failing, s.Mean, s.Median)
	}
	return tw.Flush()
}
