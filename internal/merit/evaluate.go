package merit

import "math"

// Scores are validated percentages for one applicant. EntryTestPercent is
// nil when the applicant has no entry test result.
type Scores struct {
	MatricPercent    float64  `json:"matric_percent"`
	InterPercent     float64  `json:"inter_percent"`
	EntryTestPercent *float64 `json:"entry_test_percent,omitempty"`
}

// Evaluate returns the weighted aggregate for s under f:
//
//	matric*matric_weight + inter*inter_weight + test*entry_test_weight + hafiz_bonus
//
// Weights are used as given; they are not renormalized. A missing entry
// test contributes nothing.
func Evaluate(s Scores, f Formula) float64 {
	aggregate := s.MatricPercent*f.MatricWeight + s.InterPercent*f.InterWeight
	if s.EntryTestPercent != nil {
		aggregate += *s.EntryTestPercent * f.EntryTestWeight
	}
	return aggregate + f.HafizBonus
}

// Percent converts obtained/total marks to a percentage. A non-positive
// total yields 0.
func Percent(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return obtained / total * 100
}

// Round rounds v to the given number of decimal places for display.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// RequiredEntryTestPercent solves for the entry test percentage needed to
// reach target given matric and inter percentages. ok is false when f has no
// entry test weight or the requirement exceeds 100%. A requirement below
// zero is reported as 0.
func RequiredEntryTestPercent(target, matricPercent, interPercent float64, f Formula) (float64, bool) {
	if !f.HasEntryTest() {
		return 0, false
	}
	base := Evaluate(Scores{MatricPercent: matricPercent, InterPercent: interPercent}, f)
	need := (target - base) / f.EntryTestWeight
	if need > 100 {
		return need, false
	}
	return math.Max(need, 0), true
}

// Likelihood classifies an aggregate against a recorded closing merit.
type Likelihood string

const (
	LikelihoodHigh     Likelihood = "high"
	LikelihoodModerate Likelihood = "moderate"
	LikelihoodLow      Likelihood = "low"
	LikelihoodUnknown  Likelihood = "unknown"
)

// Chance compares aggregate with closing: at or above closing is high,
// within margin points below is moderate, anything lower is low. A closing
// merit of 0 means none was recorded.
func Chance(aggregate, closing, margin float64) Likelihood {
	switch {
	case closing <= 0:
		return LikelihoodUnknown
	case aggregate >= closing:
		return LikelihoodHigh
	case aggregate >= closing-margin:
		return LikelihoodModerate
	default:
		return LikelihoodLow
	}
}
