package validate

import "strings"

// Field names used as keys in FormResult.Errors.
const (
	FieldMatricMarks    = "matricMarks"
	FieldMatricTotal    = "matricTotal"
	FieldInterMarks     = "interMarks"
	FieldInterTotal     = "interTotal"
	FieldEntryTestMarks = "entryTestMarks"
	FieldEntryTestTotal = "entryTestTotal"
)

// ScorePair is an obtained/total pair as typed by the user.
type ScorePair struct {
	Marks string `json:"marks"`
	Total string `json:"total"`
}

// Blank reports whether both sides of the pair are empty.
func (p ScorePair) Blank() bool {
	return strings.TrimSpace(p.Marks) == "" && strings.TrimSpace(p.Total) == ""
}

// Form holds the raw inputs for one merit calculation. EntryTest is nil for
// programs without an entry test.
type Form struct {
	MatricMarks string     `json:"matricMarks"`
	MatricTotal string     `json:"matricTotal"`
	InterMarks  string     `json:"interMarks"`
	InterTotal  string     `json:"interTotal"`
	EntryTest   *ScorePair `json:"entryTest,omitempty"`
}

// HasEntryTest reports whether the entry test pair applies to this form.
// A pair left entirely blank counts as not applicable.
func (f Form) HasEntryTest() bool {
	return f.EntryTest != nil && !f.EntryTest.Blank()
}

// FormResult aggregates every field error of a form. Valid is true exactly
// when Errors is empty. Values holds the parsed number of every field that
// passed on its own.
type FormResult struct {
	Valid  bool               `json:"valid"`
	Errors map[string]string  `json:"errors"`
	Values map[string]float64 `json:"values,omitempty"`
}

// Value returns the parsed value of field, if it validated.
func (r FormResult) Value(field string) (float64, bool) {
	v, ok := r.Values[field]
	return v, ok
}

type collector struct {
	errs map[string]string
	vals map[string]float64
}

func (c *collector) record(field string, r Result) {
	if r.Valid {
		c.vals[field] = r.Value
		return
	}
	c.errs[field] = r.Error
}

func (c *collector) fail(field, msg string) {
	delete(c.vals, field)
	c.errs[field] = msg
}

// ValidateCalculatorForm validates f using the default validator.
func ValidateCalculatorForm(f Form) FormResult { return std.ValidateCalculatorForm(f) }

// ValidateCalculatorForm validates every field of f and collects all errors.
// It never stops at the first failure.
func (v *Validator) ValidateCalculatorForm(f Form) FormResult {
	c := &collector{errs: make(map[string]string), vals: make(map[string]float64)}

	v.validatePair(c, FieldMatricMarks, FieldMatricTotal, f.MatricMarks, f.MatricTotal)
	v.validatePair(c, FieldInterMarks, FieldInterTotal, f.InterMarks, f.InterTotal)

	if f.HasEntryTest() {
		v.validateEntryTest(c, *f.EntryTest)
	}

	return FormResult{Valid: len(c.errs) == 0, Errors: c.errs, Values: c.vals}
}

// validatePair validates total against [1, maxTotal] and marks against
// [0, total]. When total itself is bad, marks fall back to [0, maxTotal].
// Marks above a valid total are reported through the obtained-vs-total rule.
func (v *Validator) validatePair(c *collector, marksKey, totalKey, marksRaw, totalRaw string) {
	total := v.ValidateMarks(totalRaw, Constraints{Min: 1, Max: v.maxTotal})
	c.record(totalKey, total)

	bound := v.maxTotal
	if total.Valid {
		bound = total.Value
	}

	marks := v.ValidateMarks(marksRaw, Constraints{Min: 0, Max: bound})
	switch {
	case marks.Kind == KindAboveMaximum && total.Valid:
		// reported by the relational check below
	case !marks.Valid || !total.Valid:
		c.record(marksKey, marks)
		return
	}

	if rel := v.ValidateObtainedVsTotal(marksRaw, totalRaw); !rel.Valid {
		c.fail(marksKey, rel.Error)
		return
	}
	c.record(marksKey, marks)
}

// validateEntryTest handles the entry test pair, including the case where
// only one side was filled in.
func (v *Validator) validateEntryTest(c *collector, p ScorePair) {
	marksBlank := strings.TrimSpace(p.Marks) == ""
	totalBlank := strings.TrimSpace(p.Total) == ""

	switch {
	case marksBlank:
		c.fail(FieldEntryTestMarks, v.messages.EntryMarksNeeded())
		c.record(FieldEntryTestTotal, v.ValidateMarks(p.Total, Constraints{Min: 1, Max: v.maxTotal}))
	case totalBlank:
		c.fail(FieldEntryTestTotal, v.messages.EntryTotalNeeded())
		c.record(FieldEntryTestMarks, v.ValidateMarks(p.Marks, Constraints{Min: 0, Max: v.maxTotal}))
	default:
		v.validatePair(c, FieldEntryTestMarks, FieldEntryTestTotal, p.Marks, p.Total)
	}
}
