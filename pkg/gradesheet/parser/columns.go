package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gradesheet-go/pkg/gradesheet/models"
	"go.uber.org/zap"
)

// termMarker matches term labels such as "1ºBi", "2º Bimestre", "3o Bim."
// and "(B1)".
var (
	digitRun       = regexp.MustCompile(`[0-9]+`)
	trailingNumber = regexp.MustCompile(`[\s._\-/ºª°]*[0-9]+\s*$`)
	termMarker     = regexp.MustCompile(`(?i)[(\[]?\s*(?:[0-9]+\s*[ºª°o]?\s*bi(?:m(?:estre)?)?\b\.?|[0-9]+\s*[ºª°]|\bb\s*[0-9]+\b)\s*[)\]]?`)
	emptyBrackets  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
)

// Layout describes how a term export is laid out and which columns count as
// grades.
type Layout struct {
	// Marker is the header text of the student column.
	Marker string
	// HeaderRow fixes the 1-based header row. Zero searches for Marker.
	HeaderRow int
	// MaxHeaderScanRows bounds the marker search. Zero searches every row.
	MaxHeaderScanRows int
	// DenyList holds header substrings of columns that are never grades.
	DenyList []string
	// StripTokens are removed from headers when deriving subject names.
	StripTokens []string
	// MinValidFraction is the share of non-empty cells that must hold a
	// grade for a column to be kept. Zero keeps any column with one grade.
	MinValidFraction float64
}

// GradeColumn is a retained grade column of one term.
type GradeColumn struct {
	// Index is the column position in the raw sheet.
	Index int
	// Header is the raw header text.
	Header string
	// Subject is the canonical subject name.
	Subject string
	// Grades holds one grade per student row.
	Grades []models.Grade
}

// ExtractGrade reads a grade from a cell: the first run of decimal digits in
// its text, accepted only inside [0, 10]. Anything else is Missing, so trailing
// annotations are ignored and decimals are truncated.
func ExtractGrade(c models.Cell) models.Grade {
	if c.IsEmpty() {
		return models.Missing()
	}
	m := digitRun.FindString(c.Text)
	if m == "" {
		return models.Missing()
	}
	v, err := strconv.Atoi(m)
	if err != nil || v < models.MinGrade || v > models.MaxGrade {
		return models.Missing()
	}
	return models.GradeOf(v)
}

// CanonicalSubject derives a subject name from a header: term labels such as
// "1ºBi" or "(B1)" are removed, then the first digit run and any trailing
// numeric suffix, then stripTokens, then empty brackets and surrounding
// punctuation. A header reduced to nothing keeps its own text.
func CanonicalSubject(header string, stripTokens []string) string {
	name := termMarker.ReplaceAllString(header, " ")
	if loc := digitRun.FindStringIndex(name); loc != nil {
		name = name[:loc[0]] + " " + name[loc[1]:]
	}
	name = trailingNumber.ReplaceAllString(name, "")
	for _, tok := range stripTokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		name = regexp.MustCompile(`(?i)`+regexp.QuoteMeta(tok)).ReplaceAllString(name, " ")
	}
	name = emptyBrackets.ReplaceAllString(name, " ")
	name = strings.Trim(models.NormalizeName(name), " -_.:/|")
	if name == "" {
		return models.NormalizeName(header)
	}
	return name
}

// NormalizeColumns picks the grade columns of a term. Columns are dropped when
// the header is blank or deny-listed, when no student has a grade in them, or
// when fewer than layout.MinValidFraction of their non-empty cells are grades.
// A subject seen twice keeps its first column.
func NormalizeColumns(header []string, keyCol int, students []StudentRow, layout Layout, log *zap.Logger) []GradeColumn {
	if log == nil {
		log = zap.NewNop()
	}

	var cols []GradeColumn
	seen := make(map[string]bool)
	for idx, h := range header {
		if idx == keyCol {
			continue
		}
		if h == "" {
			log.Debug("dropping column without header", zap.Int("column", idx+1))
			continue
		}
		if ContainsAnyFold(h, layout.DenyList) {
			log.Debug("dropping deny-listed column", zap.String("header", h))
			continue
		}

		grades := make([]models.Grade, len(students))
		valid, nonEmpty := 0, 0
		for i, s := range students {
			var c models.Cell
			if idx < len(s.Cells) {
				c = s.Cells[idx]
			}
			if !c.IsEmpty() {
				nonEmpty++
			}
			grades[i] = ExtractGrade(c)
			if grades[i].Valid {
				valid++
			}
		}
		if valid == 0 {
			log.Debug("dropping column without grades", zap.String("header", h))
			continue
		}
		if layout.MinValidFraction > 0 && float64(valid)/float64(nonEmpty) < layout.MinValidFraction {
			log.Debug("dropping sparse column",
				zap.String("header", h),
				zap.Int("valid", valid),
				zap.Int("non_empty", nonEmpty))
			continue
		}

		subject := CanonicalSubject(h, layout.StripTokens)
		if seen[Fold(subject)] {
			log.Warn("duplicate subject column ignored", zap.String("header", h), zap.String("subject", subject))
			continue
		}
		seen[Fold(subject)] = true
		cols = append(cols, GradeColumn{Index: idx, Header: h, Subject: subject, Grades: grades})
	}
	return cols
}

// BuildTermTable runs header location, student filtering and column
// normalization over one raw sheet.
func BuildTermTable(sheet models.RawSheet, term models.Term, layout Layout, log *zap.Logger) (*models.TermTable, error) {
	if log == nil {
		log = zap.NewNop()
	}
	marker := layout.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	headerRow, keyCol, err := findHeader(sheet, marker, layout)
	if err != nil {
		return nil, err
	}

	header := HeaderNames(sheet, headerRow)
	students := FilterStudents(sheet.Rows[headerRow+1:], keyCol)
	cols := NormalizeColumns(header, keyCol, students, layout, log)
	if len(cols) == 0 {
		considered := 0
		for i := range header {
			if i != keyCol {
				considered++
			}
		}
		return nil, &NoValidGradeColumnsError{Source: sheet.Source, Considered: considered}
	}

	subjects := make([]string, len(cols))
	for i, c := range cols {
		subjects[i] = c.Subject
	}
	table := models.NewTermTable(term, subjects...)
	table.Source = sheet.Source
	for i, s := range students {
		grades := make(map[string]models.Grade, len(cols))
		for _, c := range cols {
			grades[c.Subject] = c.Grades[i]
		}
		if !table.Add(s.Name, grades) {
			log.Warn("duplicate student row ignored",
				zap.String("student", s.Name),
				zap.Int("row", headerRow+s.Index+2))
		}
	}

	log.Info("term normalized",
		zap.String("source", sheet.Source),
		zap.String("term", term.ID),
		zap.Int("header_row", headerRow+1),
		zap.Int("students", len(table.Rows)),
		zap.Strings("subjects", subjects))

	return table, nil
}

func findHeader(sheet models.RawSheet, marker string, layout Layout) (row, col int, err error) {
	if layout.HeaderRow > 0 {
		row = layout.HeaderRow - 1
		if col, ok := KeyColumn(sheet, row, marker); ok {
			return row, col, nil
		}
		return -1, -1, &HeaderNotFoundError{Source: sheet.Source, Marker: marker, Scanned: 1}
	}
	return LocateHeaderCell(sheet, marker, layout.MaxHeaderScanRows)
}
