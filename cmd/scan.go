package cmd

import (
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Extract GraphQL operations and model definitions",
		Long: `Extract GraphQL operations and pydantic model definitions embedded in
Python files, plus standalone .graphql documents, and print them as tables.`,
		RunE: runScan,
	}

	return cmd
}

func runScan(c *cobra.Command, args []string) error {
	res, err := workflow.Scan(c.Context(), baseScanArgs(args))
	if err != nil {
		return err
	}

	return ui.DisplayBlocks(res.Blocks, res.Models)
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
