package domain

import (
	"github.com/vektah/gqlparser/v2/ast"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

// classifyOperation returns the name of the surface whose old root type
// declares the operation's first selected field. An empty string means the
// surface is ambiguous or unknown; callers then walk every surface.
func classifyOperation(op *ast.OperationDefinition, surfaces []schema.Surface) string {
	rootField := firstFieldName(op.SelectionSet)
	if rootField == "" {
		return ""
	}

	var matched string

	count := 0

	for _, sur := range surfaces {
		root, ok := sur.Old.RootFor(m.BlockKind(op.Operation))
		if ok && root.Has(rootField) {
			matched = sur.Name
			count++
		}
	}

	if count == 1 {
		return matched
	}

	return ""
}

// classifyFragment returns the surface whose old schema defines the
// fragment's type condition, or empty when none or several do.
func classifyFragment(frag *ast.FragmentDefinition, surfaces []schema.Surface) string {
	var matched string

	count := 0

	for _, sur := range surfaces {
		if _, ok := sur.Old.Type(frag.TypeCondition); ok {
			matched = sur.Name
			count++
		}
	}

	if count == 1 {
		return matched
	}

	return ""
}

// surfacesFor maps a classification back to the surfaces to walk: the single
// match, or all of them when the classification is unknown.
func surfacesFor(name string, surfaces []schema.Surface) []schema.Surface {
	if name == "" {
		return surfaces
	}

	for _, sur := range surfaces {
		if sur.Name == name {
			return []schema.Surface{sur}
		}
	}

	return surfaces
}

func firstFieldName(set ast.SelectionSet) string {
	for _, sel := range set {
		if field, ok := sel.(*ast.Field); ok {
			return field.Name
		}
	}

	return ""
}
