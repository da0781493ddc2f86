// Package validate checks user-entered academic scores and the merit
// calculator form built from them.
//
// Failures are returned as data (a Result or FormResult carrying a
// user-facing message); nothing in this package returns an error or panics
// on bad input.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxTotal is the largest total marks any board awards for a single
// certificate, used as the upper bound for *Total fields.
const DefaultMaxTotal = 1200

// Constraints declares the inclusive range a score must fall within.
type Constraints struct {
	Min float64
	Max float64
	// Messages overrides the default text for individual failure kinds.
	Messages map[Kind]string
}

// Result is the outcome of validating one field. Value is meaningful only
// when Valid is true; Error only when it is false.
type Result struct {
	Valid bool    `json:"valid"`
	Value float64 `json:"value"`
	Kind  Kind    `json:"kind"`
	Error string  `json:"error,omitempty"`
}

// Validator validates scores using a fixed message table and total bound.
type Validator struct {
	messages MessageTable
	maxTotal float64
}

// NewValidator creates a Validator. A non-positive maxTotal falls back to
// DefaultMaxTotal.
func NewValidator(messages MessageTable, maxTotal float64) *Validator {
	if maxTotal <= 0 {
		maxTotal = DefaultMaxTotal
	}
	return &Validator{messages: messages, maxTotal: maxTotal}
}

// MaxTotal returns the upper bound applied to *Total fields.
func (v *Validator) MaxTotal() float64 { return v.maxTotal }

// Messages returns the validator's message table.
func (v *Validator) Messages() MessageTable { return v.messages }

var std = NewValidator(DefaultMessages(), DefaultMaxTotal)

// Default returns the English validator with DefaultMaxTotal.
func Default() *Validator { return std }

// ValidateMarks validates raw against c using the default validator.
func ValidateMarks(raw string, c Constraints) Result { return std.ValidateMarks(raw, c) }

// ValidatePercentage validates raw as a 0-100 percentage using the default validator.
func ValidatePercentage(raw string) Result { return std.ValidatePercentage(raw) }

// ValidateObtainedVsTotal checks obtained <= total using the default validator.
func ValidateObtainedVsTotal(obtainedRaw, totalRaw string) Result {
	return std.ValidateObtainedVsTotal(obtainedRaw, totalRaw)
}

// ValidateMarks parses raw and checks it against the inclusive range in c.
// An empty or whitespace-only raw is reported as a missing required field.
func (v *Validator) ValidateMarks(raw string, c Constraints) Result {
	if strings.TrimSpace(raw) == "" {
		return v.fail(KindRequired, c, v.messages.Required())
	}

	n, ok := parseNumber(raw)
	if !ok {
		return v.fail(KindInvalid, c, v.messages.Invalid())
	}
	if n < c.Min {
		return v.fail(KindBelowMinimum, c, v.messages.TooLow(c.Min))
	}
	if n > c.Max {
		return v.fail(KindAboveMaximum, c, v.messages.TooHigh(c.Max))
	}

	return Result{Valid: true, Value: n}
}

// ValidatePercentage validates raw as a percentage in [0, 100].
func (v *Validator) ValidatePercentage(raw string) Result {
	return v.ValidateMarks(raw, Constraints{
		Min: 0,
		Max: 100,
		Messages: map[Kind]string{
			KindAboveMaximum: v.messages.PercentTooHigh(),
		},
	})
}

// ValidateObtainedVsTotal checks only the relation obtained <= total. Range
// checks belong to ValidateMarks; text that does not parse is reported as
// invalid.
func (v *Validator) ValidateObtainedVsTotal(obtainedRaw, totalRaw string) Result {
	obtained, ok := parseNumber(obtainedRaw)
	if !ok {
		return Result{Kind: KindInvalid, Error: v.messages.Invalid()}
	}
	total, ok := parseNumber(totalRaw)
	if !ok {
		return Result{Kind: KindInvalid, Error: v.messages.Invalid()}
	}
	if obtained > total {
		return Result{Kind: KindExceedsTotal, Error: v.messages.ExceedsTotal()}
	}
	return Result{Valid: true, Value: obtained}
}

func (v *Validator) fail(kind Kind, c Constraints, fallback string) Result {
	msg := fallback
	if override, ok := c.Messages[kind]; ok && override != "" {
		msg = override
	}
	return Result{Kind: kind, Error: msg}
}

var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber accepts plain decimal notation only. Hex floats, "NaN",
// "Inf" and out-of-range exponents are rejected.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
