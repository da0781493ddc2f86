package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pakuni/merit-cli/internal/fetcher"
	"github.com/pakuni/merit-cli/internal/merit"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Calculate aggregates for a sheet of applicants",
	Long: `Read applicants from a CSV or XLSX sheet and compute each aggregate
under one merit formula. The header row maps columns by name:

  name, matric_marks, matric_total, inter_marks, inter_total,
  test_marks, test_total, hafiz

Rows that fail validation are written with status "invalid" and their
field errors; they are never dropped.

Examples:
  batch --input applicants.xlsx --formula nust-engineering --output results.csv`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "applicant sheet (.csv or .xlsx)")
	f.String("formula", "", "merit formula ID (see 'formulas')")
	f.String("output", "", "output CSV path (default: stdout)")
	f.String("hafiz-column", fetcher.ColHafiz, "header of the Hafiz-e-Quran yes/no column")
	_ = batchCmd.MarkFlagRequired("input")
	_ = batchCmd.MarkFlagRequired("formula")

	rootCmd.AddCommand(batchCmd)
}

// batchResult is one applicant's outcome. Exactly one of Breakdown and
// Errors is set.
type batchResult struct {
	Applicant fetcher.Applicant
	Breakdown *merit.Breakdown
	Errors    map[string]string
}

func runBatch(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	formulaID, _ := cmd.Flags().GetString("formula")
	outputPath, _ := cmd.Flags().GetString("output")
	hafizCol, _ := cmd.Flags().GetString("hafiz-column")

	runID := uuid.New().String()
	log := zap.L().With(
		zap.String("command", "batch"),
		zap.String("run_id", runID),
		zap.String("formula", formulaID),
	)

	calc, err := newCalculator(cfg)
	if err != nil {
		return err
	}

	rows, err := fetcher.ReadRows(input)
	if err != nil {
		return eris.Wrapf(err, "batch: read %s", input)
	}
	applicants, err := fetcher.ParseApplicants(rows, fetcher.ApplicantOptions{HafizColumn: hafizCol})
	if err != nil {
		return eris.Wrapf(err, "batch: parse %s", input)
	}

	log.Info("starting batch", zap.String("input", input), zap.Int("applicants", len(applicants)))

	results, err := scoreApplicants(calc, formulaID, applicants)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Errors != nil {
			log.Debug("row failed validation",
				zap.Int("row", r.Applicant.Row),
				zap.String("name", r.Applicant.Name),
				zap.String("errors", joinErrors(r.Errors)),
			)
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if err := writeBatchCSV(w, runID, results, cfg.Calculator.Decimals, cfg.Calculator.ChanceMargin); err != nil {
		return err
	}

	valid, invalid := countBatch(results)
	log.Info("batch complete",
		zap.Int("total", len(results)),
		zap.Int("valid", valid),
		zap.Int("invalid", invalid),
	)
	if outputPath != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows (%d invalid) to %s\n", len(results), invalid, outputPath)
	}
	return nil
}

// scoreApplicants runs every applicant through calc. Only an unknown
// formula is an error; invalid forms are recorded per row.
func scoreApplicants(calc *merit.Calculator, formulaID string, applicants []fetcher.Applicant) ([]batchResult, error) {
	if _, err := calc.Table().Get(formulaID); err != nil {
		return nil, eris.Wrap(err, "batch")
	}

	results := make([]batchResult, 0, len(applicants))
	for _, a := range applicants {
		b, res, err := calc.Calculate(a.Form, formulaID, merit.Options{Hafiz: a.Hafiz})
		r := batchResult{Applicant: a}
		switch {
		case err == nil:
			r.Breakdown = b
		case eris.Is(err, merit.ErrInvalidForm):
			r.Errors = res.Errors
		default:
			return nil, eris.Wrapf(err, "batch: row %d", a.Row)
		}
		results = append(results, r)
	}
	return results, nil
}

func countBatch(results []batchResult) (valid, invalid int) {
	for _, r := range results {
		if r.Breakdown != nil {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}

var batchHeader = []string{
	"run_id", "row", "name", "status",
	"matric_percent", "inter_percent", "entry_test_percent",
	"bonus", "aggregate", "chance", "errors",
}

func writeBatchCSV(w io.Writer, runID string, results []batchResult, decimals int, margin float64) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(batchHeader); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}

	num := func(v float64) string { return strconv.FormatFloat(merit.Round(v, decimals), 'f', decimals, 64) }

	for _, r := range results {
		row := []string{runID, strconv.Itoa(r.Applicant.Row), r.Applicant.Name}
		if b := r.Breakdown; b != nil {
			entry := ""
			if b.EntryTest != nil {
				entry = num(b.EntryTest.Percent)
			}
			chance := merit.Chance(b.Aggregate, b.Formula.ClosingMerit, margin)
			row = append(row, "ok",
				num(b.Matric.Percent), num(b.Inter.Percent), entry,
				num(b.Bonus), num(b.Aggregate), string(chance), "")
		} else {
			row = append(row, "invalid", "", "", "", "", "", "", joinErrors(r.Errors))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "batch: flush CSV")
	}
	return nil
}
