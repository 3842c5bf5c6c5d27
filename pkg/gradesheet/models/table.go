package models

// TermRow is one student's grades within a term.
type TermRow struct {
	// Student is the normalized student name as first seen.
	Student string `json:"student"`
	// Grades maps canonical subject name to grade.
	Grades map[string]Grade `json:"grades"`
}

// TermTable holds the normalized grades of one term, keyed by student.
type TermTable struct {
	// Term is the grading period the table belongs to.
	Term Term `json:"term"`
	// Source identifies the originating file.
	Source string `json:"source,omitempty"`
	// Subjects lists the retained canonical subject names in column order.
	Subjects []string `json:"subjects"`
	// Rows lists students in their original order.
	Rows []TermRow `json:"rows"`

	index map[string]int
}

// NewTermTable returns an empty table for term with the given subjects.
func NewTermTable(term Term, subjects ...string) *TermTable {
	return &TermTable{
		Term:     term,
		Subjects: subjects,
		index:    make(map[string]int),
	}
}

// Add appends a student row. It returns false, leaving the table unchanged,
// when a student with the same key is already present.
func (t *TermTable) Add(student string, grades map[string]Grade) bool {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Rows))
		for i, r := range t.Rows {
			t.index[StudentKey(r.Student)] = i
		}
	}
	key := StudentKey(student)
	if _, ok := t.index[key]; ok {
		return false
	}
	if grades == nil {
		grades = make(map[string]Grade)
	}
	t.index[key] = len(t.Rows)
	t.Rows = append(t.Rows, TermRow{Student: NormalizeName(student), Grades: grades})
	return true
}

// Grade returns the grade of student in subject. Unknown students or
// subjects yield Missing.
func (t *TermTable) Grade(student, subject string) Grade {
	for _, r := range t.Rows {
		if StudentKey(r.Student) == StudentKey(student) {
			return r.Grades[subject]
		}
	}
	return Missing()
}

// MergedRow is one student's row of a merged table.
type MergedRow struct {
	// Student is the student name as first seen across terms.
	Student string `json:"student"`
	// Cells holds one grade per merged column, Missing where no data exists.
	Cells []Grade `json:"cells"`
}

// MergedTable is the outer join of all term tables on student key.
type MergedTable struct {
	// KeyLabel is the header of the student column.
	KeyLabel string `json:"key_label"`
	// Columns lists the (subject, term) columns, grouped by subject.
	Columns []SubjectColumn `json:"columns"`
	// Rows lists students in roster order.
	Rows []MergedRow `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1.
func (m *MergedTable) ColumnIndex(name string) int {
	for i, c := range m.Columns {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// Lookup returns the grade of student in the named column. The boolean is
// false when either the student or the column is unknown.
func (m *MergedTable) Lookup(student, column string) (Grade, bool) {
	col := m.ColumnIndex(column)
	if col < 0 {
		return Missing(), false
	}
	key := StudentKey(student)
	for _, r := range m.Rows {
		if StudentKey(r.Student) == key {
			return r.Cells[col], true
		}
	}
	return Missing(), false
}

// Students returns the student names in row order.
func (m *MergedTable) Students() []string {
	out := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		out[i] = r.Student
	}
	return out
}

// SubjectGroup is a run of adjacent columns sharing a subject.
type SubjectGroup struct {
	Subject string
	// Start is the index of the first column of the run.
	Start int
	// Columns are the columns of the run, in term order.
	Columns []SubjectColumn
}

// SubjectGroups splits the columns into runs of the same subject.
func (m *MergedTable) SubjectGroups() []SubjectGroup {
	var groups []SubjectGroup
	for i, c := range m.Columns {
		if n := len(groups); n > 0 && groups[n-1].Subject == c.Subject {
			groups[n-1].Columns = append(groups[n-1].Columns, c)
			continue
		}
		groups = append(groups, SubjectGroup{Subject: c.Subject, Start: i, Columns: []SubjectColumn{c}})
	}
	return groups
}
