// Package controller provides output adapters for displaying scan results.
package controller

import (
	"os"

	"github.com/spf13/cobra"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// UI defines the interface for presenting scan progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	ScanStarted(files int, threads int)
	FileScanned(path m.Path, blocks int)
	DisplayBlocks(blocks []m.ExtractedBlock, models []m.ModelDefinition) error
	DisplayFindings(findings []m.Finding) error
}

// NewUI selects the UI implementation for the current terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, tty)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
