package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display previously saved findings",
		Long:  "Display findings persisted by an earlier run with --reports.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if reportsOutputDirFlag == "" {
				return fmt.Errorf("report requires --reports pointing at a saved run")
			}

			findings, err := reportStore.LoadFindings(m.Path(reportsOutputDirFlag))
			if err != nil {
				return fmt.Errorf("load findings: %w", err)
			}

			return ui.DisplayFindings(findings)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
