// Package merit computes admission merit aggregates from validated scores
// and per-university weighting formulas.
package merit

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrFormulaNotFound is returned when a formula lookup has no match.
var ErrFormulaNotFound = eris.New("merit: formula not found")

// weightSumTolerance bounds how far a formula's weights may drift from 1.0
// before the table loader warns about it.
const weightSumTolerance = 0.001

// Formula is one university/program-category weighting. Weights are
// fractions applied to percentages; HafizBonus is added in aggregate points.
type Formula struct {
	ID              string  `yaml:"id" json:"id"`
	University      string  `yaml:"university" json:"university"`
	Category        string  `yaml:"category" json:"category"`
	EntryTestName   string  `yaml:"entry_test_name,omitempty" json:"entry_test_name,omitempty"`
	MatricWeight    float64 `yaml:"matric_weight" json:"matric_weight"`
	InterWeight     float64 `yaml:"inter_weight" json:"inter_weight"`
	EntryTestWeight float64 `yaml:"entry_test_weight" json:"entry_test_weight"`
	HafizBonus      float64 `yaml:"hafiz_bonus,omitempty" json:"hafiz_bonus,omitempty"`
	ClosingMerit    float64 `yaml:"closing_merit,omitempty" json:"closing_merit,omitempty"`
	Year            int     `yaml:"year,omitempty" json:"year,omitempty"`
}

// WeightSum returns the sum of the three component weights.
func (f Formula) WeightSum() float64 {
	return f.MatricWeight + f.InterWeight + f.EntryTestWeight
}

// HasEntryTest reports whether the entry test contributes to the aggregate.
func (f Formula) HasEntryTest() bool {
	return f.EntryTestWeight > 0
}

// Balanced reports whether the weights sum to 1.0 within tolerance.
func (f Formula) Balanced() bool {
	return math.Abs(f.WeightSum()-1) <= weightSumTolerance
}

// WithoutBonus returns a copy of f with no hafiz bonus.
func (f Formula) WithoutBonus() Formula {
	f.HafizBonus = 0
	return f
}
