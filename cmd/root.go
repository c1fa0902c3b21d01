// Package cmd provides the root command and CLI setup for gqlscan.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/adapter"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/controller"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/domain"
	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var schemaStore adapter.SchemaStore
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	schemaStore = adapter.NewSchemaStore(fsAdapter)
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

var excludeFlags []string
var parallelFlag int
var maxFilesFlag int
var reportsOutputDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlscan [paths...]",
		Short: "GraphQL schema evolution scanner for Python codebases",
		Long: `Gqlscan extracts GraphQL operations and pydantic model definitions
embedded in Python source trees and checks them against schema snapshots.

Without a subcommand it runs the interactive mode menu on a terminal and a
plain extraction scan otherwise.

Supports path arguments:
  - .              scan current directory recursively
  - src tests      scan multiple directories
  - api/queries.py scan a single file`,
		RunE: func(c *cobra.Command, args []string) error {
			if !controller.IsTTY(os.Stdout) {
				return runScan(c, args)
			}

			return runMenu(c, args)
		},
	}
	cmd.PersistentFlags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude directories or files by name (can be repeated)")
	cmd.PersistentFlags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of parallel workers for scanning")
	cmd.PersistentFlags().IntVar(&maxFilesFlag, "max-files", 0, "cap on the number of files scanned (0 for no cap)")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "reports", "o", "", "write blocks.json and findings.json under this directory")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func baseScanArgs(args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Paths:    parsePaths(args),
		Exclude:  excludeFlags,
		MaxFiles: maxFilesFlag,
		Threads:  parallelFlag,
		Reports:  m.Path(reportsOutputDirFlag),
	}
}
