package cmd

import (
	"github.com/spf13/cobra"
)

// lintCmd represents the lint command.
var lintCmd = newLintCmd()

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run pattern checks without schema snapshots",
		Long: `Run heuristic pattern checks on extracted operations and models. No
schema files are required; findings cover argument shape, suspicious names,
directives, fragments and model field hygiene.`,
		RunE: runLint,
	}

	return cmd
}

func runLint(c *cobra.Command, args []string) error {
	scanArgs := baseScanArgs(args)
	scanArgs.Patterns = true

	res, err := workflow.Scan(c.Context(), scanArgs)
	if err != nil {
		return err
	}

	return ui.DisplayFindings(res.Findings)
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
