package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfielding/ctlcheck/checker"
)

var rootCmd = &cobra.Command{
	Use:   "ctldemo",
	Short: "Check a named CTL formula against a Kripke structure loaded from a YAML fixture",
	RunE:  runCheck,
}

func init() {
	rootCmd.Flags().String("model", "", "path to the YAML model fixture (required)")
	rootCmd.Flags().String("formula", "", "name of the formula to check, from the fixture's formulas map (required unless --all is set)")
	rootCmd.Flags().Bool("fair", false, "check under the fixture's fairness constraints instead of plain CTL")
	rootCmd.Flags().Bool("all", false, "check every formula in the fixture instead of just --formula")
	_ = rootCmd.MarkFlagRequired("model")
}

func runCheck(cmd *cobra.Command, args []string) error {
	modelPath, _ := cmd.Flags().GetString("model")
	formulaName, _ := cmd.Flags().GetString("formula")
	useFairness, _ := cmd.Flags().GetBool("fair")
	all, _ := cmd.Flags().GetBool("all")

	m, err := loadModel(modelPath)
	if err != nil {
		return err
	}

	if !all && formulaName == "" {
		return fmt.Errorf("--formula is required unless --all is set")
	}

	names := []string{formulaName}
	if all {
		names = names[:0]
		for name := range m.Formulas {
			names = append(names, name)
		}
	}

	for _, name := range names {
		phi, ok := m.Formulas[name]
		if !ok {
			return fmt.Errorf("no formula named %q in %s", name, modelPath)
		}

		fair := m.Fairness
		if !useFairness {
			fair = nil
		}

		result, _, err := checker.ModelCheck(m.K, phi, fair)
		if err != nil {
			return fmt.Errorf("checking %q: %w", name, err)
		}
		printReport(m, name, result)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
