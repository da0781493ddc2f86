package merit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tbl, err := DefaultTable()
	require.NoError(t, err)
	require.Greater(t, tbl.Len(), 0)

	for _, f := range tbl.All() {
		assert.True(t, f.Balanced(), "default formula %s should be balanced", f.ID)
		assert.NotEmpty(t, f.University)
		assert.NotEmpty(t, f.Category)
	}

	uet, err := tbl.Get("uet-lahore-engineering")
	require.NoError(t, err)
	assert.Equal(t, "ECAT", uet.EntryTestName)
	assert.InDelta(t, 0.33, uet.EntryTestWeight, 1e-9)
}

func TestParseTable(t *testing.T) {
	data := []byte(`
formulas:
  - id: a-eng
    university: Alpha University
    category: engineering
    matric_weight: 0.1
    inter_weight: 0.4
    entry_test_weight: 0.5
    hafiz_bonus: 2
    closing_merit: 80
    year: 2023
  - id: a-arts
    university: Alpha University
    category: arts
    matric_weight: 0.3
    inter_weight: 0.7
    entry_test_weight: 0
  - id: b-med
    university: Beta College
    category: medical
    matric_weight: 0.1
    inter_weight: 0.4
    entry_test_weight: 0.5
`)

	tbl, err := ParseTable(data)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	f, err := tbl.Get("a-eng")
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.HafizBonus)
	assert.Equal(t, 80.0, f.ClosingMerit)
	assert.Equal(t, 2023, f.Year)

	f, err = tbl.Lookup("alpha university", "ARTS")
	require.NoError(t, err)
	assert.Equal(t, "a-arts", f.ID)

	assert.Len(t, tbl.ForUniversity("Alpha University"), 2)
	assert.Len(t, tbl.ForUniversity(""), 3)
	assert.Empty(t, tbl.ForUniversity("Gamma"))
	assert.Equal(t, []string{"Alpha University", "Beta College"}, tbl.Universities())
}

func TestParseTable_NotFound(t *testing.T) {
	tbl, err := NewTable([]Formula{{ID: "x", University: "U", Category: "c", MatricWeight: 1}})
	require.NoError(t, err)

	_, err = tbl.Get("missing")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrFormulaNotFound))

	_, err = tbl.Lookup("U", "other")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrFormulaNotFound))
}

func TestParseTable_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "empty document",
			yaml: ``,
			want: "invalid formula table",
		},
		{
			name: "missing weights",
			yaml: `
formulas:
  - id: x
    university: U
    category: c
`,
			want: "matric_weight",
		},
		{
			name: "weight above one",
			yaml: `
formulas:
  - id: x
    university: U
    category: c
    matric_weight: 10
    inter_weight: 40
    entry_test_weight: 50
`,
			want: "invalid formula table",
		},
		{
			name: "negative bonus",
			yaml: `
formulas:
  - id: x
    university: U
    category: c
    matric_weight: 0.5
    inter_weight: 0.5
    entry_test_weight: 0
    hafiz_bonus: -1
`,
			want: "hafiz_bonus",
		},
		{
			name: "unknown key",
			yaml: `
formulas:
  - id: x
    university: U
    category: c
    matric_weight: 0.5
    inter_weight: 0.5
    entry_test_weight: 0
    fsc_weight: 0.2
`,
			want: "invalid formula table",
		},
		{
			name: "weight is text",
			yaml: `
formulas:
  - id: x
    university: U
    category: c
    matric_weight: "ten"
    inter_weight: 0.5
    entry_test_weight: 0
`,
			want: "matric_weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseTable_MalformedYAML(t *testing.T) {
	_, err := ParseTable([]byte("formulas: [\n  - id: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse formula table")
}

func TestParseTable_DuplicateID(t *testing.T) {
	data := []byte(`
formulas:
  - {id: x, university: U, category: c, matric_weight: 0.5, inter_weight: 0.5, entry_test_weight: 0}
  - {id: x, university: V, category: d, matric_weight: 0.5, inter_weight: 0.5, entry_test_weight: 0}
`)
	_, err := ParseTable(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate formula id "x"`)
}

func TestParseTable_UnbalancedWeightsAccepted(t *testing.T) {
	data := []byte(`
formulas:
  - {id: x, university: U, category: c, matric_weight: 0.5, inter_weight: 0.5, entry_test_weight: 0.5}
`)
	tbl, err := ParseTable(data)
	require.NoError(t, err)
	f, err := tbl.Get("x")
	require.NoError(t, err)
	assert.False(t, f.Balanced())
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formulas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
formulas:
  - {id: x, university: U, category: c, matric_weight: 0.3, inter_weight: 0.7, entry_test_weight: 0}
`), 0644))

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoadTable_FileNotFound(t *testing.T) {
	_, err := LoadTable("/nonexistent/formulas.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read formula table")
}

func TestTable_AllReturnsCopy(t *testing.T) {
	tbl, err := NewTable([]Formula{{ID: "x", University: "U", Category: "c", MatricWeight: 1}})
	require.NoError(t, err)

	all := tbl.All()
	all[0].MatricWeight = 0

	f, err := tbl.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.MatricWeight)
}
