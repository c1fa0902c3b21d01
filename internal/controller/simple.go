package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
	// color controls lipgloss severity styling; disabled when the output
	// is not a terminal.
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// ScanStarted announces pool size and file count.
func (s *SimpleUI) ScanStarted(files int, threads int) {
	s.printf("scanning %d files with %d workers\n", files, threads)
}

// FileScanned is silent in the simple UI; per-file noise drowns the tables.
func (s *SimpleUI) FileScanned(_ m.Path, _ int) {}

// DisplayBlocks prints the extracted operations and model definitions.
func (s *SimpleUI) DisplayBlocks(blocks []m.ExtractedBlock, models []m.ModelDefinition) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Lines", "Kind", "Name"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, block := range blocks {
		name := block.Name
		if name == "" {
			name = "(anonymous)"
		}

		table.Append([]string{
			string(block.File),
			fmt.Sprintf("%d-%d", block.StartLine, block.EndLine),
			string(block.Kind),
			name,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Blocks %d", len(blocks)), "", "", ""})
	table.Render()
	s.printf("\n%s", buf.String())

	if len(models) == 0 {
		return nil
	}

	buf.Reset()

	modelTable := tablewriter.NewWriter(&buf)
	modelTable.SetHeader([]string{"File", "Lines", "Class", "Kind"})
	modelTable.SetBorder(false)
	modelTable.SetCenterSeparator("")

	for _, def := range models {
		modelTable.Append([]string{
			string(def.File),
			fmt.Sprintf("%d-%d", def.StartLine, def.EndLine),
			def.Name,
			string(def.Kind),
		})
	}

	modelTable.SetFooter([]string{fmt.Sprintf("Total Models %d", len(models)), "", "", ""})
	modelTable.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayFindings prints the finding table followed by per-category counts.
func (s *SimpleUI) DisplayFindings(findings []m.Finding) error {
	if len(findings) == 0 {
		s.printf("\nno issues found\n")

		return nil
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Location", "Severity", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, f := range findings {
		table.Append([]string{
			fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column),
			s.severity(f.Severity),
			f.Message,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Findings %d", len(findings)), "", ""})
	table.Render()
	s.printf("\n%s", buf.String())

	s.printCategorySummary(findings)

	return nil
}

// printCategorySummary groups finding counts by category tag.
func (s *SimpleUI) printCategorySummary(findings []m.Finding) {
	counts := make(map[m.Category]int)
	for _, f := range findings {
		counts[f.Category]++
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, string(category))
	}

	sort.Strings(categories)

	s.printf("\nby category:\n")

	for _, category := range categories {
		s.printf("  %-28s %d\n", category, counts[m.Category(category)])
	}
}

func (s *SimpleUI) severity(sev m.Severity) string {
	if !s.color {
		return string(sev)
	}

	switch sev {
	case m.SeverityError:
		return errorStyle.Render(string(sev))
	case m.SeverityWarning:
		return warningStyle.Render(string(sev))
	default:
		return infoStyle.Render(string(sev))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
