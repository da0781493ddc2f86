package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pakuni/merit-cli/internal/validate"
)

// addScoreFlags registers the raw score inputs shared by calc and validate.
// Values stay strings so the validator sees exactly what was typed.
func addScoreFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("matric-marks", "", "obtained matric (SSC) marks")
	f.String("matric-total", "", "total matric marks")
	f.String("inter-marks", "", "obtained intermediate (HSSC) marks")
	f.String("inter-total", "", "total intermediate marks")
	f.String("test-marks", "", "obtained entry test marks")
	f.String("test-total", "", "total entry test marks")
	f.String("format", "table", "output format: table or json")
}

// formFromFlags builds a calculator form. The entry test is included only
// when either of its flags was given.
func formFromFlags(cmd *cobra.Command) validate.Form {
	f := cmd.Flags()
	get := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}

	form := validate.Form{
		MatricMarks: get("matric-marks"),
		MatricTotal: get("matric-total"),
		InterMarks:  get("inter-marks"),
		InterTotal:  get("inter-total"),
	}
	if f.Changed("test-marks") || f.Changed("test-total") {
		form.EntryTest = &validate.ScorePair{
			Marks: get("test-marks"),
			Total: get("test-total"),
		}
	}
	return form
}

func checkFormat(command, format string) error {
	if format != "table" && format != "json" {
		return eris.Errorf("%s: --format must be table or json (got %q)", command, format)
	}
	return nil
}
