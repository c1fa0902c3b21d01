// Package domain contains the extraction, diffing and validation logic of
// the scanner.
package domain

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const maxResolveDepth = 8

// parsePython builds a tree-sitter parse tree for Python source.
func parsePython(ctx context.Context, src []byte) (*sitter.Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	return p.ParseCtx(ctx, nil, src)
}

func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	return string(src[n.StartByte():n.EndByte()])
}

func nodeStartLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func nodeEndLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

// visitNodes walks the tree depth-first and calls fn for every node.
func visitNodes(n *sitter.Node, fn func(*sitter.Node)) {
	if n == nil {
		return
	}

	fn(n)

	for i := 0; i < int(n.ChildCount()); i++ {
		visitNodes(n.Child(i), fn)
	}
}

// modelAliases holds the names a file uses for model base classes and
// dataclass decorators, including import aliases.
type modelAliases struct {
	base              map[string]struct{}
	pydanticDataclass map[string]struct{}
	stdDataclass      map[string]struct{}
}

// collectModelAliases scans imports for BaseModel/RootModel and dataclass
// decorator names. Default names are assumed when the import is absent.
func collectModelAliases(root *sitter.Node, src []byte) modelAliases {
	aliases := modelAliases{
		base:              make(map[string]struct{}),
		pydanticDataclass: make(map[string]struct{}),
		stdDataclass:      make(map[string]struct{}),
	}

	var foundBase, foundRoot, foundPydantic, foundStd bool

	visitNodes(root, func(n *sitter.Node) {
		if n.Type() != "import_from_statement" {
			return
		}

		module := nodeText(n.ChildByFieldName("module_name"), src)

		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if i == 0 {
				// First named child is the module itself.
				continue
			}

			name, alias := importedName(child, src)
			if name == "" {
				continue
			}

			switch module {
			case "pydantic":
				if name == "BaseModel" {
					aliases.base[alias] = struct{}{}
					foundBase = true
				}

				if name == "RootModel" {
					aliases.base[alias] = struct{}{}
					foundRoot = true
				}
			case "pydantic.dataclasses":
				if name == "dataclass" {
					aliases.pydanticDataclass[alias] = struct{}{}
					foundPydantic = true
				}
			case "dataclasses":
				if name == "dataclass" {
					aliases.stdDataclass[alias] = struct{}{}
					foundStd = true
				}
			}
		}
	})

	if !foundBase {
		aliases.base["BaseModel"] = struct{}{}
	}

	if !foundRoot {
		aliases.base["RootModel"] = struct{}{}
	}

	if !foundPydantic {
		aliases.pydanticDataclass["dataclass"] = struct{}{}
	}

	if !foundStd {
		aliases.stdDataclass["dataclass"] = struct{}{}
	}

	return aliases
}

// importedName returns the imported name and its local alias.
func importedName(n *sitter.Node, src []byte) (name, alias string) {
	switch n.Type() {
	case "dotted_name", "identifier":
		text := nodeText(n, src)

		return text, text
	case "aliased_import":
		name = nodeText(n.ChildByFieldName("name"), src)
		alias = nodeText(n.ChildByFieldName("alias"), src)

		if alias == "" {
			alias = name
		}

		return name, alias
	default:
		return "", ""
	}
}

// collectClassBases builds the class name to base names map. Attribute-style
// bases keep only the final segment, generic bases keep the subscripted name.
func collectClassBases(root *sitter.Node, src []byte) map[string][]string {
	inheritance := make(map[string][]string)

	visitNodes(root, func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}

		name := nodeText(n.ChildByFieldName("name"), src)
		if name == "" {
			return
		}

		var bases []string

		supers := n.ChildByFieldName("superclasses")
		if supers != nil {
			for i := 0; i < int(supers.NamedChildCount()); i++ {
				if base := baseName(supers.NamedChild(i), src); base != "" {
					bases = append(bases, base)
				}
			}
		}

		inheritance[name] = bases
	})

	return inheritance
}

func baseName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "identifier":
		return nodeText(n, src)
	case "attribute":
		return nodeText(n.ChildByFieldName("attribute"), src)
	case "subscript":
		return baseName(n.ChildByFieldName("value"), src)
	default:
		return ""
	}
}

// inheritsModelBase reports whether the class transitively inherits from a
// known model base class. The seen set breaks inheritance cycles.
func inheritsModelBase(class string, inheritance map[string][]string, aliases modelAliases, seen map[string]struct{}) bool {
	if _, ok := seen[class]; ok {
		return false
	}

	seen[class] = struct{}{}

	for _, base := range inheritance[class] {
		if _, ok := aliases.base[base]; ok {
			return true
		}

		if inheritsModelBase(base, inheritance, aliases, seen) {
			return true
		}
	}

	return false
}

// collectAssignments maps variable names to the value node of their first
// simple assignment anywhere in the file.
func collectAssignments(root *sitter.Node, src []byte) map[string]*sitter.Node {
	assigns := make(map[string]*sitter.Node)

	visitNodes(root, func(n *sitter.Node) {
		if n.Type() != "assignment" {
			return
		}

		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")

		if left == nil || right == nil || left.Type() != "identifier" {
			return
		}

		name := nodeText(left, src)
		if _, ok := assigns[name]; !ok {
			assigns[name] = right
		}
	})

	return assigns
}

// resolveStringExpr resolves an expression to its string value. It handles
// plain and triple-quoted literals, f-strings with placeholder substitution,
// implicit and '+' concatenation, and identifier references to earlier
// assignments. Concatenation resolves only when every operand resolves.
func resolveStringExpr(n *sitter.Node, src []byte, assigns map[string]*sitter.Node, depth int) (string, bool) {
	if n == nil || depth > maxResolveDepth {
		return "", false
	}

	switch n.Type() {
	case "string":
		return stringLiteralValue(n, src), true
	case "concatenated_string":
		var b strings.Builder

		for i := 0; i < int(n.NamedChildCount()); i++ {
			part, ok := resolveStringExpr(n.NamedChild(i), src, assigns, depth+1)
			if !ok {
				return "", false
			}

			b.WriteString(part)
		}

		return b.String(), true
	case "binary_operator":
		op := n.ChildByFieldName("operator")
		if op == nil || nodeText(op, src) != "+" {
			return "", false
		}

		left, okLeft := resolveStringExpr(n.ChildByFieldName("left"), src, assigns, depth+1)
		right, okRight := resolveStringExpr(n.ChildByFieldName("right"), src, assigns, depth+1)

		// Both sides must resolve so a partial query never leaks out.
		if !okLeft || !okRight {
			return "", false
		}

		return left + right, true
	case "identifier":
		value, ok := assigns[nodeText(n, src)]
		if !ok || value == n {
			return "", false
		}

		return resolveStringExpr(value, src, assigns, depth+1)
	case "parenthesized_expression":
		if n.NamedChildCount() == 0 {
			return "", false
		}

		return resolveStringExpr(n.NamedChild(0), src, assigns, depth+1)
	default:
		return "", false
	}
}

// stringLiteralValue returns the content of a string literal. F-string
// interpolations become deterministic placeholders so the result stays
// parseable GraphQL.
func stringLiteralValue(n *sitter.Node, src []byte) string {
	var b strings.Builder

	sawContent := false

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		switch child.Type() {
		case "string_content", "escape_sequence":
			b.WriteString(nodeText(child, src))

			sawContent = true
		case "escape_interpolation":
			// {{ and }} inside f-strings are literal braces.
			text := nodeText(child, src)
			if len(text) == 2 {
				text = text[:1]
			}

			b.WriteString(text)

			sawContent = true
		case "interpolation":
			b.WriteString(interpolationPlaceholder(child, src))

			sawContent = true
		}
	}

	if sawContent {
		return b.String()
	}

	return stripQuotes(nodeText(n, src))
}

// interpolationPlaceholder substitutes an f-string expression with a stable
// stand-in value. user_id gets a numeric stand-in so id arguments stay valid.
func interpolationPlaceholder(n *sitter.Node, src []byte) string {
	var expr *sitter.Node

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "format_specifier" && child.Type() != "type_conversion" {
			expr = child

			break
		}
	}

	if expr == nil {
		return "placeholder"
	}

	switch expr.Type() {
	case "identifier":
		name := nodeText(expr, src)
		if name == "user_id" {
			return "1"
		}

		return "placeholder_" + name
	case "attribute":
		return "placeholder_value"
	default:
		return "placeholder"
	}
}

// stripQuotes removes string prefixes (f, r, b, u) and the surrounding
// quotes from the literal text.
func stripQuotes(raw string) string {
	s := strings.TrimLeft(raw, "fFrRbBuU")

	for _, q := range []string{`"""`, "'''"} {
		if strings.HasPrefix(s, q) {
			s = strings.TrimPrefix(s, q)

			return strings.TrimSuffix(s, q)
		}
	}

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
