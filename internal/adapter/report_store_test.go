package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

func TestReportStore_FindingsRoundtrip(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	findings := []m.Finding{
		{
			File:      "app.py",
			Line:      12,
			Column:    5,
			Severity:  m.SeverityWarning,
			Category:  m.CategoryDeprecated,
			TypeName:  "Customer",
			FieldName: "email",
			Reason:    "is deprecated in old schema: Use defaultEmailAddress",
			Message:   "[DEPRECATED] Field 'email' in type 'Customer' is deprecated (Admin)",
			Surface:   "Admin",
		},
	}

	require.NoError(t, store.SaveFindings(dir, findings))

	loaded, err := store.LoadFindings(dir)
	require.NoError(t, err)
	assert.Equal(t, findings, loaded)
}

func TestReportStore_SaveBlocks(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	blocks := []m.ExtractedBlock{
		{Kind: m.BlockQuery, Name: "Q", Raw: "query Q { shop { name } }", File: "app.py", StartLine: 3, EndLine: 3},
	}

	require.NoError(t, store.SaveBlocks(dir, blocks))

	data, err := os.ReadFile(filepath.Join(string(dir), "blocks.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Q"`)
}

func TestReportStore_LoadFindingsMissingDir(t *testing.T) {
	store := NewReportStore()

	_, err := store.LoadFindings(m.Path(filepath.Join(t.TempDir(), "absent")))
	assert.Error(t, err)
}
