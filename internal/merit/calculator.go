package merit

import (
	"github.com/rotisserie/eris"

	"github.com/pakuni/merit-cli/internal/validate"
)

// ErrInvalidForm is returned by Calculate when the form fails validation.
// The accompanying FormResult lists every field error.
var ErrInvalidForm = eris.New("merit: invalid form")

// Options carries applicant facts that affect the aggregate but are not
// scores.
type Options struct {
	Hafiz bool `json:"hafiz"`
}

// Component is one weighted term of the aggregate.
type Component struct {
	Obtained     float64 `json:"obtained"`
	Total        float64 `json:"total"`
	Percent      float64 `json:"percent"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown is a full merit calculation for one applicant and formula.
type Breakdown struct {
	Formula   Formula    `json:"formula"`
	Matric    Component  `json:"matric"`
	Inter     Component  `json:"inter"`
	EntryTest *Component `json:"entry_test,omitempty"`
	Bonus     float64    `json:"bonus"`
	Aggregate float64    `json:"aggregate"`
	// MissingEntryTest is set when the formula weights an entry test the
	// form did not include; that term contributed nothing.
	MissingEntryTest bool `json:"missing_entry_test"`
}

// Scores returns the percentages that produced the breakdown.
func (b *Breakdown) Scores() Scores {
	s := Scores{MatricPercent: b.Matric.Percent, InterPercent: b.Inter.Percent}
	if b.EntryTest != nil {
		p := b.EntryTest.Percent
		s.EntryTestPercent = &p
	}
	return s
}

// Calculator validates forms and applies formulas from a Table.
type Calculator struct {
	table     *Table
	validator *validate.Validator
}

// NewCalculator creates a Calculator. A nil validator uses validate.Default.
func NewCalculator(table *Table, validator *validate.Validator) *Calculator {
	if validator == nil {
		validator = validate.Default()
	}
	return &Calculator{table: table, validator: validator}
}

// Table returns the calculator's formula table.
func (c *Calculator) Table() *Table { return c.table }

// Validator returns the calculator's validator.
func (c *Calculator) Validator() *validate.Validator { return c.validator }

// Calculate validates form and evaluates it under the formula formulaID.
// The FormResult is always returned; on validation failure the error wraps
// ErrInvalidForm and the Breakdown is nil.
func (c *Calculator) Calculate(form validate.Form, formulaID string, opts Options) (*Breakdown, validate.FormResult, error) {
	f, err := c.table.Get(formulaID)
	if err != nil {
		return nil, validate.FormResult{}, err
	}

	res := c.validator.ValidateCalculatorForm(form)
	if !res.Valid {
		return nil, res, eris.Wrapf(ErrInvalidForm, "%d field(s) failed", len(res.Errors))
	}

	return Apply(res, f, opts), res, nil
}

// Apply evaluates an already valid FormResult under f.
func Apply(res validate.FormResult, f Formula, opts Options) *Breakdown {
	if !opts.Hafiz {
		f = f.WithoutBonus()
	}

	b := &Breakdown{
		Formula: f,
		Matric:  component(res, validate.FieldMatricMarks, validate.FieldMatricTotal, f.MatricWeight),
		Inter:   component(res, validate.FieldInterMarks, validate.FieldInterTotal, f.InterWeight),
		Bonus:   f.HafizBonus,
	}
	if _, ok := res.Value(validate.FieldEntryTestTotal); ok {
		et := component(res, validate.FieldEntryTestMarks, validate.FieldEntryTestTotal, f.EntryTestWeight)
		b.EntryTest = &et
	} else if f.HasEntryTest() {
		b.MissingEntryTest = true
	}

	b.Aggregate = Evaluate(b.Scores(), f)
	return b
}

func component(res validate.FormResult, marksKey, totalKey string, weight float64) Component {
	obtained, _ := res.Value(marksKey)
	total, _ := res.Value(totalKey)
	pct := Percent(obtained, total)
	return Component{
		Obtained:     obtained,
		Total:        total,
		Percent:      pct,
		Weight:       weight,
		Contribution: pct * weight,
	}
}
