package domain

import (
	"strings"
	"testing"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

func TestParseGraphQLDefs_SplitsDefinitions(t *testing.T) {
	raw := "query GetThing($id: ID!) {\n" +
		"  thing(id: $id) {\n" +
		"    id\n" +
		"  }\n" +
		"}\n" +
		"\n" +
		"fragment ThingFields on Thing {\n" +
		"  id\n" +
		"}\n"

	blocks := parseGraphQLDefs("api.py", raw, 10)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	query := blocks[0]
	if query.Kind != m.BlockQuery {
		t.Errorf("expected query kind, got %s", query.Kind)
	}
	if query.Name != "GetThing" {
		t.Errorf("expected name GetThing, got %q", query.Name)
	}
	if len(query.Variables) != 1 || query.Variables[0] != "id" {
		t.Errorf("expected variables [id], got %v", query.Variables)
	}
	if query.StartLine != 10 || query.EndLine != 14 {
		t.Errorf("expected span 10-14, got %d-%d", query.StartLine, query.EndLine)
	}
	if strings.Contains(query.Raw, "fragment") {
		t.Errorf("query raw bleeds into next definition: %q", query.Raw)
	}

	frag := blocks[1]
	if frag.Kind != m.BlockFragment {
		t.Errorf("expected fragment kind, got %s", frag.Kind)
	}
	if frag.Name != "ThingFields" || frag.TypeCondition != "Thing" {
		t.Errorf("unexpected fragment %q on %q", frag.Name, frag.TypeCondition)
	}
	if frag.StartLine != 16 {
		t.Errorf("expected fragment start line 16, got %d", frag.StartLine)
	}
}

func TestParseGraphQLDefs_ParseErrorYieldsUnknownBlock(t *testing.T) {
	raw := "query Broken {\n  thing(\n}"

	blocks := parseGraphQLDefs("api.py", raw, 5)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	block := blocks[0]
	if block.Kind != m.BlockUnknown {
		t.Errorf("expected unknown kind, got %s", block.Kind)
	}
	if block.ParseError == "" {
		t.Error("expected a parse error message")
	}
	if block.StartLine != 5 || block.EndLine != 7 {
		t.Errorf("expected span 5-7, got %d-%d", block.StartLine, block.EndLine)
	}
}

func TestParseGraphQLDefs_EmptyInput(t *testing.T) {
	if blocks := parseGraphQLDefs("api.py", "  \n\t", 1); blocks != nil {
		t.Errorf("expected nil for blank input, got %v", blocks)
	}
}

func TestExtractDocument(t *testing.T) {
	src := []byte("query A {\n  shop {\n    name\n  }\n}\n\nmutation B {\n  cartCreate {\n    cart {\n      id\n    }\n  }\n}\n")

	blocks := ExtractDocument("ops.graphql", src)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	if blocks[0].Name != "A" || blocks[0].StartLine != 1 {
		t.Errorf("unexpected first block %q at %d", blocks[0].Name, blocks[0].StartLine)
	}
	if blocks[1].Name != "B" || blocks[1].Kind != m.BlockMutation {
		t.Errorf("unexpected second block %q kind %s", blocks[1].Name, blocks[1].Kind)
	}
	if blocks[1].StartLine != 7 {
		t.Errorf("expected mutation start line 7, got %d", blocks[1].StartLine)
	}
}
