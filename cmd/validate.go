package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate score inputs without calculating",
	Long: `Check matric, intermediate and optional entry test scores and report
every field error at once. Exits non-zero when any field is invalid.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat("validate", format); err != nil {
			return err
		}

		v, err := cfg.NewValidator()
		if err != nil {
			return err
		}

		res := v.ValidateCalculatorForm(formFromFlags(cmd))
		out := cmd.OutOrStdout()
		if format == "json" {
			if err := writeJSON(out, res); err != nil {
				return err
			}
		} else {
			formatFormResult(out, res)
		}

		if !res.Valid {
			return eris.Errorf("validate: %d field(s) failed", len(res.Errors))
		}
		return nil
	},
}

func init() {
	addScoreFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
