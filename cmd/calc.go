package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pakuni/merit-cli/internal/merit"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate an admission aggregate",
	Long: `Validate scores and compute the weighted aggregate for one merit formula.

Every invalid field is reported at once. When the formula records a closing
merit, the result includes the admission chance and the entry test
percentage needed to reach it (or --target).

Examples:
  # UET Lahore engineering with ECAT
  calc --formula uet-lahore-engineering \
    --matric-marks 980 --matric-total 1100 \
    --inter-marks 1010 --inter-total 1100 \
    --test-marks 280 --test-total 400

  # Hafiz applicant, JSON output
  calc --formula pu-arts --hafiz --format json \
    --matric-marks 900 --matric-total 1100 --inter-marks 850 --inter-total 1100`,
	RunE: runCalc,
}

func init() {
	addScoreFlags(calcCmd)
	f := calcCmd.Flags()
	f.String("formula", "", "merit formula ID (see 'formulas')")
	f.Bool("hafiz", false, "applicant is a Hafiz-e-Quran (applies the formula's bonus)")
	f.Float64("target", 0, "target aggregate for the entry test requirement (default: closing merit)")
	_ = calcCmd.MarkFlagRequired("formula")

	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	formulaID, _ := cmd.Flags().GetString("formula")
	hafiz, _ := cmd.Flags().GetBool("hafiz")
	target, _ := cmd.Flags().GetFloat64("target")
	format, _ := cmd.Flags().GetString("format")

	if err := checkFormat("calc", format); err != nil {
		return err
	}
	if target < 0 {
		return eris.Errorf("calc: --target must not be negative (got %g)", target)
	}

	log := zap.L().With(zap.String("command", "calc"), zap.String("formula", formulaID))

	calc, err := newCalculator(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b, res, err := calc.Calculate(formFromFlags(cmd), formulaID, merit.Options{Hafiz: hafiz})
	if err != nil {
		if !eris.Is(err, merit.ErrInvalidForm) {
			return eris.Wrap(err, "calc")
		}
		log.Debug("form rejected", zap.Int("errors", len(res.Errors)))
		if format == "json" {
			if jerr := writeJSON(out, res); jerr != nil {
				return jerr
			}
		} else {
			formatFormResult(out, res)
		}
		return eris.Wrap(err, "calc")
	}

	report := newCalcReport(b, target, cfg.Calculator.Decimals, cfg.Calculator.ChanceMargin)
	log.Debug("aggregate computed",
		zap.Float64("aggregate", b.Aggregate),
		zap.String("chance", string(report.Chance)),
	)

	if format == "json" {
		return writeJSON(out, report)
	}
	formatBreakdown(out, report, cfg.Calculator.Decimals)
	return nil
}
