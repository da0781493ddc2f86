package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/pakuni/merit-cli/internal/merit"
	"github.com/pakuni/merit-cli/internal/validate"
)

// fieldOrder is the display order of form fields.
var fieldOrder = []string{
	validate.FieldMatricMarks,
	validate.FieldMatricTotal,
	validate.FieldInterMarks,
	validate.FieldInterTotal,
	validate.FieldEntryTestMarks,
	validate.FieldEntryTestTotal,
}

var fieldLabels = map[string]string{
	validate.FieldMatricMarks:    "Matric marks",
	validate.FieldMatricTotal:    "Matric total",
	validate.FieldInterMarks:     "Inter marks",
	validate.FieldInterTotal:     "Inter total",
	validate.FieldEntryTestMarks: "Entry test marks",
	validate.FieldEntryTestTotal: "Entry test total",
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

// formatFormResult writes every field's status to w, errors included.
func formatFormResult(out io.Writer, res validate.FormResult) {
	if res.Valid {
		_, _ = fmt.Fprintln(out, "Form is valid.")
	} else {
		_, _ = fmt.Fprintf(out, "Form has %d error(s):\n", len(res.Errors))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FIELD\tSTATUS\tDETAIL")
	_, _ = fmt.Fprintln(w, "-----\t------\t------")
	for _, field := range fieldOrder {
		if msg, ok := res.Errors[field]; ok {
			_, _ = fmt.Fprintf(w, "%s\terror\t%s\n", fieldLabels[field], msg)
			continue
		}
		if v, ok := res.Value(field); ok {
			_, _ = fmt.Fprintf(w, "%s\tok\t%s\n", fieldLabels[field], formatNumber(v))
		}
	}
	_ = w.Flush()
}

// joinErrors flattens field errors into one line in display order.
func joinErrors(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for _, field := range fieldOrder {
		if msg, ok := errs[field]; ok {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// calcReport is a breakdown plus the admission outlook derived from it.
type calcReport struct {
	*merit.Breakdown
	Chance            merit.Likelihood `json:"chance"`
	Target            float64          `json:"target,omitempty"`
	RequiredEntryTest *float64         `json:"required_entry_test_percent,omitempty"`
	TargetReachable   *bool            `json:"target_reachable,omitempty"`
}

// newCalcReport rounds b for display and evaluates chance and the entry
// test requirement against target. A zero target uses the formula's closing
// merit.
func newCalcReport(b *merit.Breakdown, target float64, decimals int, margin float64) calcReport {
	r := calcReport{
		Chance: merit.Chance(b.Aggregate, b.Formula.ClosingMerit, margin),
	}
	if target <= 0 {
		target = b.Formula.ClosingMerit
	}
	if target > 0 && b.Formula.HasEntryTest() {
		need, ok := merit.RequiredEntryTestPercent(target, b.Matric.Percent, b.Inter.Percent, b.Formula)
		need = merit.Round(need, decimals)
		r.Target = target
		r.RequiredEntryTest = &need
		r.TargetReachable = &ok
	}
	r.Breakdown = roundBreakdown(b, decimals)
	return r
}

func roundBreakdown(b *merit.Breakdown, decimals int) *merit.Breakdown {
	out := *b
	roundComponent := func(c *merit.Component) {
		c.Percent = merit.Round(c.Percent, decimals)
		c.Contribution = merit.Round(c.Contribution, decimals)
	}
	roundComponent(&out.Matric)
	roundComponent(&out.Inter)
	if b.EntryTest != nil {
		et := *b.EntryTest
		roundComponent(&et)
		out.EntryTest = &et
	}
	out.Aggregate = merit.Round(out.Aggregate, decimals)
	return &out
}

// formatBreakdown writes a human-readable calculation to w.
func formatBreakdown(out io.Writer, r calcReport, decimals int) {
	f := r.Formula
	num := func(v float64) string { return fmt.Sprintf("%.*f", decimals, v) }

	_, _ = fmt.Fprintf(out, "Formula: %s / %s (%s)\n\n", f.University, f.Category, f.ID)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPONENT\tOBTAINED\tTOTAL\tPERCENT\tWEIGHT\tCONTRIBUTION")
	_, _ = fmt.Fprintln(w, "---------\t--------\t-----\t-------\t------\t------------")
	row := func(name string, c merit.Component) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s%%\t%s\n",
			name, formatNumber(c.Obtained), formatNumber(c.Total),
			num(c.Percent), formatNumber(c.Weight*100), num(c.Contribution))
	}
	row("Matric", r.Matric)
	row("Inter", r.Inter)
	if r.EntryTest != nil {
		name := "Entry test"
		if f.EntryTestName != "" {
			name = f.EntryTestName
		}
		row(name, *r.EntryTest)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if r.Bonus > 0 {
		_, _ = fmt.Fprintf(w, "Hafiz bonus:\t+%s\n", formatNumber(r.Bonus))
	}
	_, _ = fmt.Fprintf(w, "Aggregate:\t%s\n", num(r.Aggregate))
	if f.ClosingMerit > 0 {
		closing := num(f.ClosingMerit)
		if f.Year > 0 {
			closing = fmt.Sprintf("%s (%d)", closing, f.Year)
		}
		_, _ = fmt.Fprintf(w, "Closing merit:\t%s\n", closing)
	}
	_, _ = fmt.Fprintf(w, "Chance:\t%s\n", r.Chance)
	if r.RequiredEntryTest != nil {
		if *r.TargetReachable {
			_, _ = fmt.Fprintf(w, "Entry test needed:\t%s%% for %s\n", num(*r.RequiredEntryTest), num(r.Target))
		} else {
			_, _ = fmt.Fprintf(w, "Entry test needed:\tout of reach for %s\n", num(r.Target))
		}
	}
	_ = w.Flush()

	if r.MissingEntryTest {
		name := f.EntryTestName
		if name == "" {
			name = "an entry test"
		}
		_, _ = fmt.Fprintf(out, "\nWarning: this formula weights %s (%s%%) but no entry test score was given.\n",
			name, formatNumber(f.EntryTestWeight*100))
	}
}

// formatFormulas writes the formula table to w.
func formatFormulas(out io.Writer, formulas []merit.Formula) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tUNIVERSITY\tCATEGORY\tMATRIC\tINTER\tTEST\tBONUS\tCLOSING")
	_, _ = fmt.Fprintln(w, "--\t----------\t--------\t------\t-----\t----\t-----\t-------")
	for _, f := range formulas {
		test := formatNumber(f.EntryTestWeight*100) + "%"
		if f.EntryTestName != "" && f.HasEntryTest() {
			test += " " + f.EntryTestName
		}
		closing := "-"
		if f.ClosingMerit > 0 {
			closing = formatNumber(f.ClosingMerit)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s%%\t%s\t%s\t%s\n",
			f.ID, f.University, f.Category,
			formatNumber(f.MatricWeight*100), formatNumber(f.InterWeight*100), test,
			formatNumber(f.HafizBonus), closing)
	}
	_ = w.Flush()
}

// formatNumber renders v without trailing zeros, capped at two decimals.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
