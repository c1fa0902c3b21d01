package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/adapter"
	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

type nopUI struct{}

func (nopUI) ScanStarted(int, int)    {}
func (nopUI) FileScanned(m.Path, int) {}
func (nopUI) DisplayBlocks([]m.ExtractedBlock, []m.ModelDefinition) error {
	return nil
}
func (nopUI) DisplayFindings([]m.Finding) error { return nil }

func newTestWorkflow() Workflow {
	return NewWorkflow(adapter.NewLocalSourceFSAdapter(), adapter.NewReportStore(), nopUI{})
}

func writeScanFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestWorkflow_ScanExtraction(t *testing.T) {
	dir := t.TempDir()

	writeScanFile(t, dir, "queries.py", `from gql import gql

GET_THING = gql("""
    query GetThing {
        thing(id: 1) {
            id
        }
    }
""")
`)
	writeScanFile(t, dir, "models.py", `from pydantic import BaseModel


class Thing(BaseModel):
    id: str
`)
	writeScanFile(t, dir, "ops.graphql", "query Standalone {\n  shop {\n    name\n  }\n}\n")

	res, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths:   []m.Path{m.Path(dir)},
		Threads: 2,
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if res.Files != 3 {
		t.Errorf("expected 3 files, got %d", res.Files)
	}

	if len(res.Blocks) != 2 {
		t.Errorf("expected 2 blocks, got %v", blockNames(res.Blocks))
	}

	if len(res.Models) != 1 || res.Models[0].Name != "Thing" {
		t.Errorf("expected Thing model, got %v", res.Models)
	}

	if len(res.Findings) != 0 {
		t.Errorf("extraction-only scan should not produce findings, got %v", res.Findings)
	}
}

func TestWorkflow_ScanPatterns(t *testing.T) {
	dir := t.TempDir()

	writeScanFile(t, dir, "bad.py", `DOC = gql("query Q { customer(id: 1, extraArg: 2) { id } }")
`)

	res, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths:    []m.Path{m.Path(dir)},
		Patterns: true,
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if _, ok := findCategory(res.Findings, m.CategoryExtraArgument); !ok {
		t.Errorf("expected extra argument finding, got %v", res.Findings)
	}
}

func TestWorkflow_ScanWithSurfaces(t *testing.T) {
	dir := t.TempDir()

	writeScanFile(t, dir, "app.py", `GET = gql("""
    query GetCustomer {
        customer(id: 1) {
            email
        }
    }
""")
`)

	res, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths:    []m.Path{m.Path(dir)},
		Surfaces: []schema.Surface{adminSurface(t)},
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	counts := categoriesOf(res.Findings)
	if counts[m.CategoryDeprecated] != 1 || counts[m.CategoryRemoved] != 1 {
		t.Errorf("expected DEPRECATED and REMOVED for email, got %v", counts)
	}
}

func TestWorkflow_ScanKeepsSameBlockInEachFile(t *testing.T) {
	dir := t.TempDir()

	src := `DOC = gql("query Q { shop { name } }")
`
	writeScanFile(t, dir, "a.py", src)
	writeScanFile(t, dir, "b.py", src)

	res, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths: []m.Path{m.Path(dir)},
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(res.Blocks) != 2 {
		t.Fatalf("identical operations in two files are two reference sites, got %d blocks", len(res.Blocks))
	}

	files := []string{filepath.Base(string(res.Blocks[0].File)), filepath.Base(string(res.Blocks[1].File))}
	if files[0] != "a.py" || files[1] != "b.py" {
		t.Errorf("expected deterministic file order a.py then b.py, got %v", files)
	}
}

func TestWorkflow_ScanPersistsReports(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(t.TempDir(), "reports")

	writeScanFile(t, dir, "app.py", `GET = gql("query Q { shop { name } }")
`)

	_, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths:   []m.Path{m.Path(dir)},
		Reports: m.Path(reports),
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, name := range []string{"blocks.json", "findings.json"} {
		if _, err := os.Stat(filepath.Join(reports, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestWorkflow_MaxFiles(t *testing.T) {
	dir := t.TempDir()

	writeScanFile(t, dir, "a.py", `A = gql("query A { shop { name } }")
`)
	writeScanFile(t, dir, "b.py", `B = gql("query B { shop { name } }")
`)

	res, err := newTestWorkflow().Scan(context.Background(), ScanArgs{
		Paths:    []m.Path{m.Path(dir)},
		MaxFiles: 1,
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if res.Files != 1 {
		t.Errorf("expected file cap at 1, got %d", res.Files)
	}
}
