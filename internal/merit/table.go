package merit

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed formulas.yaml
var defaultTable []byte

//go:embed formulas.schema.json
var tableSchema string

// Table is an immutable set of formulas indexed by ID.
type Table struct {
	formulas []Formula
	byID     map[string]int
}

// DefaultTable returns the formula table compiled into the binary.
func DefaultTable() (*Table, error) {
	t, err := ParseTable(defaultTable)
	if err != nil {
		return nil, eris.Wrap(err, "merit: default table")
	}
	return t, nil
}

// LoadTable reads a formula table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "merit: read formula table %s", path)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, eris.Wrapf(err, "merit: load %s", path)
	}
	zap.L().Info("merit: formula table loaded",
		zap.String("path", path),
		zap.Int("formulas", t.Len()),
	)
	return t, nil
}

// ParseTable decodes a YAML formula table. The document is checked against
// the table schema before it is decoded, and IDs must be unique. Formulas
// whose weights do not sum to 1 are accepted with a warning.
func ParseTable(data []byte) (*Table, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "merit: parse formula table")
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var wrapper struct {
		Formulas []Formula `yaml:"formulas"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "merit: decode formula table")
	}

	return NewTable(wrapper.Formulas)
}

// NewTable builds a Table from formulas, rejecting empty or duplicate IDs.
func NewTable(formulas []Formula) (*Table, error) {
	t := &Table{
		formulas: make([]Formula, 0, len(formulas)),
		byID:     make(map[string]int, len(formulas)),
	}
	for _, f := range formulas {
		if f.ID == "" {
			return nil, eris.New("merit: formula with empty id")
		}
		if _, dup := t.byID[f.ID]; dup {
			return nil, eris.Errorf("merit: duplicate formula id %q", f.ID)
		}
		if !f.Balanced() {
			zap.L().Warn("merit: formula weights do not sum to 1",
				zap.String("id", f.ID),
				zap.Float64("weight_sum", f.WeightSum()),
			)
		}
		t.byID[f.ID] = len(t.formulas)
		t.formulas = append(t.formulas, f)
	}
	return t, nil
}

func validateDocument(doc any) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(tableSchema))
	if err != nil {
		return eris.Wrap(err, "merit: compile table schema")
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return eris.Wrap(err, "merit: validate formula table")
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return eris.Errorf("merit: invalid formula table: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Len returns the number of formulas.
func (t *Table) Len() int { return len(t.formulas) }

// All returns the formulas in table order.
func (t *Table) All() []Formula {
	out := make([]Formula, len(t.formulas))
	copy(out, t.formulas)
	return out
}

// Get returns the formula with the given ID.
func (t *Table) Get(id string) (Formula, error) {
	i, ok := t.byID[id]
	if !ok {
		return Formula{}, eris.Wrapf(ErrFormulaNotFound, "id %q", id)
	}
	return t.formulas[i], nil
}

// Lookup finds the formula for a university and program category, matching
// both case-insensitively.
func (t *Table) Lookup(university, category string) (Formula, error) {
	for _, f := range t.formulas {
		if strings.EqualFold(f.University, university) && strings.EqualFold(f.Category, category) {
			return f, nil
		}
	}
	return Formula{}, eris.Wrapf(ErrFormulaNotFound, "university %q category %q", university, category)
}

// ForUniversity returns every formula of a university. An empty name
// returns the whole table.
func (t *Table) ForUniversity(university string) []Formula {
	if university == "" {
		return t.All()
	}
	var out []Formula
	for _, f := range t.formulas {
		if strings.EqualFold(f.University, university) {
			out = append(out, f)
		}
	}
	return out
}

// Universities returns the distinct university names, sorted.
func (t *Table) Universities() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range t.formulas {
		if !seen[f.University] {
			seen[f.University] = true
			out = append(out, f.University)
		}
	}
	sort.Strings(out)
	return out
}
