package domain

import (
	"strings"
	"testing"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

const oldAdminSDL = `
schema {
  query: QueryRoot
  mutation: Mutation
}
type QueryRoot {
  customer(id: ID!): Customer
  shop: Shop
}
type Mutation {
  customerUpdate(input: CustomerInput!): CustomerUpdatePayload
}
type Customer {
  id: ID!
  email: String @deprecated(reason: "Use defaultEmailAddress")
  defaultEmailAddress: String
}
type Shop { name: String! }
input CustomerInput {
  id: ID!
  email: String @deprecated(reason: "Use emailAddress input")
  emailAddress: String
}
type CustomerUpdatePayload { customer: Customer }
`

const newAdminSDL = `
schema {
  query: QueryRoot
  mutation: Mutation
}
type QueryRoot {
  customer(id: ID!): Customer
  shop: Shop
}
type Mutation {
  customerUpdate(input: CustomerInput!): CustomerUpdatePayload
}
type Customer {
  id: ID!
  defaultEmailAddress: String
  locale: String
}
type Shop { name: String! }
input CustomerInput {
  id: ID!
  emailAddress: String
}
type CustomerUpdatePayload { customer: Customer }
`

func adminSurface(t *testing.T) schema.Surface {
	t.Helper()

	return schema.Surface{
		Name: schema.SurfaceAdmin,
		Old:  mustSnapshot(t, "2024-01", oldAdminSDL),
		New:  mustSnapshot(t, "2024-04", newAdminSDL),
	}
}

func categoriesOf(findings []m.Finding) map[m.Category]int {
	counts := make(map[m.Category]int)
	for _, f := range findings {
		counts[f.Category]++
	}

	return counts
}

func TestDiffWalker_DeprecatedAndRemoved(t *testing.T) {
	raw := "query Q {\n  customer {\n    email\n  }\n}"
	doc := mustParseQuery(t, raw)

	walker := newDiffWalker("app.py", 10, adminSurface(t), nil)
	walker.WalkOperation(doc.Operations[0])

	findings := walker.Findings()
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(findings), findings)
	}

	counts := categoriesOf(findings)
	if counts[m.CategoryDeprecated] != 1 || counts[m.CategoryRemoved] != 1 {
		t.Fatalf("expected one DEPRECATED and one REMOVED, got %v", counts)
	}

	for _, f := range findings {
		if f.Line != 12 || f.Column != 5 {
			t.Errorf("expected position 12:5, got %d:%d", f.Line, f.Column)
		}

		if f.Surface != schema.SurfaceAdmin {
			t.Errorf("expected admin surface, got %q", f.Surface)
		}

		if f.Category == m.CategoryDeprecated && !strings.Contains(f.Message, "Use defaultEmailAddress") {
			t.Errorf("deprecation reason missing from message: %q", f.Message)
		}
	}
}

func TestDiffWalker_DeprecatedWithoutReason(t *testing.T) {
	oldSDL := "type Query {\n  shop: Shop\n}\ntype Shop {\n  name: String @deprecated\n}"
	newSDL := "type Query {\n  shop: Shop\n}\ntype Shop {\n  name: String @deprecated\n}"
	sur := schema.Surface{
		Name: schema.SurfaceAdmin,
		Old:  mustSnapshot(t, "2024-01", oldSDL),
		New:  mustSnapshot(t, "2024-04", newSDL),
	}

	doc := mustParseQuery(t, "query Q {\n  shop {\n    name\n  }\n}")

	walker := newDiffWalker("app.py", 1, sur, nil)
	walker.WalkOperation(doc.Operations[0])

	findings := walker.Findings()
	if len(findings) != 1 || findings[0].Category != m.CategoryDeprecated {
		t.Fatalf("expected a single DEPRECATED finding, got %v", findings)
	}

	if findings[0].Reason != "is deprecated in old schema" {
		t.Errorf("reasonless deprecation should not trail a colon, got %q", findings[0].Reason)
	}

	if strings.Contains(findings[0].Message, "schema: ") {
		t.Errorf("message carries an empty reason suffix: %q", findings[0].Message)
	}
}

func TestDiffWalker_Added(t *testing.T) {
	doc := mustParseQuery(t, "query Q {\n  customer {\n    locale\n  }\n}")

	walker := newDiffWalker("app.py", 1, adminSurface(t), nil)
	walker.WalkOperation(doc.Operations[0])

	findings := walker.Findings()
	if len(findings) != 1 || findings[0].Category != m.CategoryAdded {
		t.Fatalf("expected a single ADDED finding, got %v", findings)
	}

	if findings[0].Severity != m.SeverityWarning {
		t.Errorf("expected warning severity, got %s", findings[0].Severity)
	}
}

func TestDiffWalker_CaseInsensitiveOldLookup(t *testing.T) {
	doc := mustParseQuery(t, "query Q {\n  customer {\n    EMAIL\n  }\n}")

	walker := newDiffWalker("app.py", 1, adminSurface(t), nil)
	walker.WalkOperation(doc.Operations[0])

	counts := categoriesOf(walker.Findings())
	if counts[m.CategoryDeprecated] != 1 {
		t.Errorf("folded lookup should still flag deprecation, got %v", counts)
	}

	// The declared old name keys the new lookup, so EMAIL still counts as
	// removed rather than added.
	if counts[m.CategoryAdded] != 0 || counts[m.CategoryRemoved] != 1 {
		t.Errorf("expected REMOVED without ADDED, got %v", counts)
	}
}

func TestDiffWalker_CheckInputFields(t *testing.T) {
	raw := "mutation M {\n  customerUpdate(input: $input) {\n    customer {\n      id\n    }\n  }\n}"
	doc := mustParseQuery(t, raw)

	walker := newDiffWalker("app.py", 1, adminSurface(t), nil)
	walker.CheckInputFields(doc.Operations[0])

	findings := walker.Findings()
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(findings), findings)
	}

	f := findings[0]
	if f.Category != m.CategoryInput || f.TypeName != "CustomerInput" || f.FieldName != "email" {
		t.Errorf("unexpected finding %+v", f)
	}

	if !strings.Contains(f.Message, "customerUpdate") || !strings.Contains(f.Message, "Use emailAddress input") {
		t.Errorf("message should name the mutation and reason: %q", f.Message)
	}

	if f.Line != 2 || f.Column != 1 {
		t.Errorf("expected position 2:1, got %d:%d", f.Line, f.Column)
	}
}

func TestDiffWalker_FragmentSpreadKeepsFragmentLines(t *testing.T) {
	fragDoc := mustParseQuery(t, "fragment CustomerFields on Customer {\n  email\n}")
	fragments := map[string]fragmentEntry{
		"CustomerFields": {def: fragDoc.Fragments[0], baseLine: 50},
	}

	doc := mustParseQuery(t, "query Q {\n  customer {\n    ...CustomerFields\n  }\n}")

	walker := newDiffWalker("app.py", 1, adminSurface(t), fragments)
	walker.WalkOperation(doc.Operations[0])

	findings := walker.Findings()
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(findings), findings)
	}

	for _, f := range findings {
		if f.Line != 51 {
			t.Errorf("finding should map into the fragment block, got line %d", f.Line)
		}
	}
}

func TestDiffWalker_FragmentCycleTerminates(t *testing.T) {
	doc := mustParseQuery(t, `
fragment A on Customer {
  email
  ...B
}
fragment B on Customer {
  ...A
}
`)

	fragments := map[string]fragmentEntry{}
	for _, frag := range doc.Fragments {
		fragments[frag.Name] = fragmentEntry{def: frag, baseLine: 1}
	}

	walker := newDiffWalker("app.py", 1, adminSurface(t), fragments)
	walker.WalkFragment(fragments["A"].def)

	counts := categoriesOf(walker.Findings())
	if counts[m.CategoryDeprecated] != 1 {
		t.Errorf("cycle should still produce one deprecation, got %v", counts)
	}
}

func TestDiffWalker_UnknownRootIsSilent(t *testing.T) {
	doc := mustParseQuery(t, "subscription S { customerUpdated { id } }")

	walker := newDiffWalker("app.py", 1, adminSurface(t), nil)
	walker.WalkOperation(doc.Operations[0])

	if len(walker.Findings()) != 0 {
		t.Errorf("missing subscription root should yield nothing, got %v", walker.Findings())
	}
}
