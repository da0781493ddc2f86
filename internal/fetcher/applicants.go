package fetcher

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pakuni/merit-cli/internal/validate"
)

// Sheet column names, matched case-insensitively. Spaces and dashes in
// headers are treated as underscores.
const (
	ColName        = "name"
	ColMatricMarks = "matric_marks"
	ColMatricTotal = "matric_total"
	ColInterMarks  = "inter_marks"
	ColInterTotal  = "inter_total"
	ColTestMarks   = "test_marks"
	ColTestTotal   = "test_total"
	ColHafiz       = "hafiz"
)

var requiredColumns = []string{ColMatricMarks, ColMatricTotal, ColInterMarks, ColInterTotal}

// Applicant is one sheet row mapped onto a calculator form.
type Applicant struct {
	Row   int           `json:"row"` // 1-based sheet row, header included
	Name  string        `json:"name"`
	Form  validate.Form `json:"form"`
	Hafiz bool          `json:"hafiz"`
}

// ApplicantOptions configures header mapping.
type ApplicantOptions struct {
	HafizColumn string // default ColHafiz
}

// ParseApplicants maps rows (header first) to applicants. Blank rows are
// skipped. Cell values are passed through untouched so the validator sees
// exactly what was entered.
func ParseApplicants(rows [][]string, opts ApplicantOptions) ([]Applicant, error) {
	if len(rows) == 0 {
		return nil, eris.New("fetcher: sheet is empty")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("fetcher: sheet missing columns: %s", strings.Join(missing, ", "))
	}

	hafizCol := ColHafiz
	if opts.HafizColumn != "" {
		hafizCol = normalizeHeader(opts.HafizColumn)
	}

	_, hasMarks := cols[ColTestMarks]
	_, hasTotal := cols[ColTestTotal]
	hasTest := hasMarks || hasTotal

	var out []Applicant
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		a := Applicant{
			Row:  i + 2,
			Name: strings.TrimSpace(cell(ColName)),
			Form: validate.Form{
				MatricMarks: cell(ColMatricMarks),
				MatricTotal: cell(ColMatricTotal),
				InterMarks:  cell(ColInterMarks),
				InterTotal:  cell(ColInterTotal),
			},
			Hafiz: parseFlag(cell(hafizCol)),
		}
		if hasTest {
			a.Form.EntryTest = &validate.ScorePair{Marks: cell(ColTestMarks), Total: cell(ColTestTotal)}
		}
		out = append(out, a)
	}

	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseFlag accepts the usual spreadsheet spellings of yes.
func parseFlag(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "y", "yes", "x":
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
