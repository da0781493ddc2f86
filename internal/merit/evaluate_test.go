package merit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scores  Scores
		formula Formula
		want    float64
	}{
		{
			name:    "three components",
			scores:  Scores{MatricPercent: 80, InterPercent: 70, EntryTestPercent: ptr(60)},
			formula: Formula{MatricWeight: 0.1, InterWeight: 0.4, EntryTestWeight: 0.5},
			want:    8 + 28 + 30,
		},
		{
			name:    "no entry test",
			scores:  Scores{MatricPercent: 90, InterPercent: 80},
			formula: Formula{MatricWeight: 0.3, InterWeight: 0.7},
			want:    27 + 56,
		},
		{
			name:    "absent entry test ignores its weight",
			scores:  Scores{MatricPercent: 90, InterPercent: 80},
			formula: Formula{MatricWeight: 0.1, InterWeight: 0.4, EntryTestWeight: 0.5},
			want:    9 + 32,
		},
		{
			name:    "bonus added",
			scores:  Scores{MatricPercent: 50, InterPercent: 50},
			formula: Formula{MatricWeight: 0.5, InterWeight: 0.5, HafizBonus: 2},
			want:    52,
		},
		{
			name:    "weights not renormalized",
			scores:  Scores{MatricPercent: 100, InterPercent: 100, EntryTestPercent: ptr(100)},
			formula: Formula{MatricWeight: 0.5, InterWeight: 0.5, EntryTestWeight: 0.5},
			want:    150,
		},
		{
			name:    "all zero",
			scores:  Scores{EntryTestPercent: ptr(0)},
			formula: Formula{MatricWeight: 0.1, InterWeight: 0.4, EntryTestWeight: 0.5},
			want:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Evaluate(tt.scores, tt.formula), 1e-9)
		})
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 81.8181818, Percent(900, 1100), 1e-6)
	assert.Equal(t, 100.0, Percent(550, 550))
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 0.0, Percent(10, -5))
}

func TestRound(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 81.82, Round(81.818181, 2))
	assert.Equal(t, 82.0, Round(81.5, 0))
	assert.Equal(t, 81.818181, Round(81.818181, -1))
}

func TestRequiredEntryTestPercent(t *testing.T) {
	t.Parallel()

	f := Formula{MatricWeight: 0.1, InterWeight: 0.4, EntryTestWeight: 0.5}

	need, ok := RequiredEntryTestPercent(70, 80, 70, f)
	assert.True(t, ok)
	assert.InDelta(t, 68, need, 1e-9) // (70 - 8 - 28) / 0.5

	need, ok = RequiredEntryTestPercent(95, 80, 70, f)
	assert.False(t, ok, "needs more than 100 percent")
	assert.InDelta(t, 118, need, 1e-9)

	need, ok = RequiredEntryTestPercent(20, 80, 70, f)
	assert.True(t, ok)
	assert.Equal(t, 0.0, need)

	_, ok = RequiredEntryTestPercent(70, 80, 70, Formula{MatricWeight: 0.3, InterWeight: 0.7})
	assert.False(t, ok)
}

func TestRequiredEntryTestPercent_RoundTrip(t *testing.T) {
	t.Parallel()

	f := Formula{MatricWeight: 0.17, InterWeight: 0.5, EntryTestWeight: 0.33, HafizBonus: 2}
	need, ok := RequiredEntryTestPercent(75, 85, 78, f)
	assert.True(t, ok)
	got := Evaluate(Scores{MatricPercent: 85, InterPercent: 78, EntryTestPercent: &need}, f)
	assert.InDelta(t, 75, got, 1e-9)
}

func TestChance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		aggregate, closing float64
		want               Likelihood
	}{
		{aggregate: 80, closing: 78.5, want: LikelihoodHigh},
		{aggregate: 78.5, closing: 78.5, want: LikelihoodHigh},
		{aggregate: 77, closing: 78.5, want: LikelihoodModerate},
		{aggregate: 76.5, closing: 78.5, want: LikelihoodModerate},
		{aggregate: 76.4, closing: 78.5, want: LikelihoodLow},
		{aggregate: 90, closing: 0, want: LikelihoodUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Chance(tt.aggregate, tt.closing, 2), "aggregate %v closing %v", tt.aggregate, tt.closing)
	}
}

func TestFormula_Helpers(t *testing.T) {
	t.Parallel()

	f := Formula{MatricWeight: 0.1, InterWeight: 0.4, EntryTestWeight: 0.5, HafizBonus: 3}
	assert.InDelta(t, 1.0, f.WeightSum(), 1e-9)
	assert.True(t, f.Balanced())
	assert.True(t, f.HasEntryTest())
	assert.Equal(t, 0.0, f.WithoutBonus().HafizBonus)
	assert.Equal(t, 3.0, f.HafizBonus, "WithoutBonus returns a copy")

	skewed := Formula{MatricWeight: 0.5, InterWeight: 0.6}
	assert.False(t, skewed.Balanced())
	assert.False(t, skewed.HasEntryTest())
}
