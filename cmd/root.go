package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pakuni/merit-cli/internal/config"
	"github.com/pakuni/merit-cli/internal/merit"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "merit-cli",
	Short:        "Admission merit calculator for Pakistani universities",
	Long:         "Validates matric, intermediate and entry test scores and computes weighted admission aggregates from per-university merit formulas.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadTable returns the configured formula table, falling back to the
// embedded default when no path is set.
func loadTable(c *config.Config) (*merit.Table, error) {
	if c.Formulas.Path == "" {
		return merit.DefaultTable()
	}
	return merit.LoadTable(c.Formulas.Path)
}

// newCalculator wires the formula table and the configured validator.
func newCalculator(c *config.Config) (*merit.Calculator, error) {
	table, err := loadTable(c)
	if err != nil {
		return nil, err
	}
	v, err := c.NewValidator()
	if err != nil {
		return nil, err
	}
	return merit.NewCalculator(table, v), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
