package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pakuni/merit-cli/internal/merit"
)

var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List merit formulas",
	Long:  "List the loaded merit formula table (embedded default, or formulas.path from config).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		university, _ := cmd.Flags().GetString("university")
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat("formulas", format); err != nil {
			return err
		}

		table, err := loadTable(cfg)
		if err != nil {
			return err
		}

		var list []merit.Formula
		if university != "" {
			list = table.ForUniversity(university)
		} else {
			list = table.All()
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, list)
		}
		if len(list) == 0 {
			_, _ = fmt.Fprintf(out, "No formulas for %q. Known universities: %v\n", university, table.Universities())
			return nil
		}
		formatFormulas(out, list)
		return nil
	},
}

func init() {
	formulasCmd.Flags().String("university", "", "only list formulas for this university (case-insensitive)")
	formulasCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(formulasCmd)
}
