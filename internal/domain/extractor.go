package domain

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// quotedAlt matches one string literal in any quote style. RE2 has no
// backreferences, so each style is its own branch; triple quotes come first.
const quotedAlt = `"""([\s\S]*?)"""|'''([\s\S]*?)'''|"((?:[^"\\\n]|\\.)*)"|'((?:[^'\\\n]|\\.)*)'`

// Extractor pulls GraphQL blocks and model definitions out of Python files.
type Extractor struct {
	gqlCall    *regexp.Regexp
	opAssign   *regexp.Regexp
	returnOp   *regexp.Regexp
	dynamicRef []*regexp.Regexp
}

// NewExtractor compiles the extraction patterns once.
func NewExtractor() *Extractor {
	return &Extractor{
		gqlCall:  regexp.MustCompile(`gql\s*\(\s*(?:` + quotedAlt + `)\s*\)`),
		opAssign: regexp.MustCompile(`(?im)^[ \t]*(?:query|mutation|subscription)\s*=\s*(?:` + quotedAlt + `)`),
		returnOp: regexp.MustCompile(`(?i)return\s+(?:"""(\s*(?:query|mutation|subscription|fragment)[\s\S]*?)"""|'''(\s*(?:query|mutation|subscription|fragment)[\s\S]*?)'''|"(\s*(?:query|mutation|subscription|fragment)(?:[^"\\\n]|\\.)*)"|'(\s*(?:query|mutation|subscription|fragment)(?:[^'\\\n]|\\.)*)')`),
		dynamicRef: []*regexp.Regexp{
			regexp.MustCompile(`gql\s*\(\s*(\w+)\s*\.\s*query\s*\)`),
			regexp.MustCompile(`gql\s*\(\s*(\w+)\s*\[\s*['"]query['"]\s*\]\s*\)`),
			regexp.MustCompile(`gql\s*\(\s*(\w+)\s*\)`),
		},
	}
}

// Extract runs every strategy over a Python file and returns the GraphQL
// blocks and model definitions it found. Strategies overlap on purpose; the
// deduplicator collapses repeats.
func (e *Extractor) Extract(ctx context.Context, file m.Path, src []byte) ([]m.ExtractedBlock, []m.ModelDefinition) {
	source := string(src)

	var blocks []m.ExtractedBlock

	blocks = append(blocks, e.matchQuoted(e.gqlCall, file, source)...)
	blocks = append(blocks, e.matchQuoted(e.opAssign, file, source)...)

	tree, err := parsePython(ctx, src)
	if err != nil || tree == nil {
		blocks = append(blocks, e.matchQuoted(e.returnOp, file, source)...)

		return blocks, nil
	}

	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// Broken Python: keep to the regex strategies, as the tree is
		// unreliable.
		blocks = append(blocks, e.matchQuoted(e.returnOp, file, source)...)

		return blocks, nil
	}

	assigns := collectAssignments(root, src)

	blocks = append(blocks, e.treeStrings(file, src, root, assigns)...)
	blocks = append(blocks, e.dynamicRefs(file, source, src, assigns)...)

	models, fieldBlocks := e.modelScan(file, src, root, assigns)
	blocks = append(blocks, fieldBlocks...)

	return blocks, models
}

// matchQuoted applies a pattern whose capture groups follow quotedAlt and
// parses each captured string body.
func (e *Extractor) matchQuoted(re *regexp.Regexp, file m.Path, source string) []m.ExtractedBlock {
	var blocks []m.ExtractedBlock

	for _, match := range re.FindAllStringSubmatchIndex(source, -1) {
		start, body := quotedGroup(source, match)
		if start < 0 {
			continue
		}

		blocks = append(blocks, parseGraphQLDefs(file, body, lineOf(source, start))...)
	}

	return blocks
}

// quotedGroup returns the offset and text of the first matched quote branch.
func quotedGroup(source string, match []int) (int, string) {
	for group := 1; group*2+1 < len(match); group++ {
		start, end := match[group*2], match[group*2+1]
		if start >= 0 {
			return start, source[start:end]
		}
	}

	return -1, ""
}

// treeStrings extracts GraphQL from resolved string expressions: plain and
// annotated assignments plus return statements.
func (e *Extractor) treeStrings(file m.Path, src []byte, root *sitter.Node, assigns map[string]*sitter.Node) []m.ExtractedBlock {
	var blocks []m.ExtractedBlock

	visitNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "assignment":
			left := n.ChildByFieldName("left")
			right := n.ChildByFieldName("right")

			if left == nil || right == nil || left.Type() != "identifier" {
				return
			}

			value, ok := resolveStringExpr(right, src, assigns, 0)
			if !ok {
				return
			}

			annotated := n.ChildByFieldName("type") != nil
			if annotated && !operationShaped(nodeText(left, src), value) {
				return
			}

			if !balancedBraces(value) {
				return
			}

			blocks = append(blocks, parseGraphQLDefs(file, value, nodeStartLine(right))...)
		case "return_statement":
			if n.NamedChildCount() == 0 {
				return
			}

			expr := n.NamedChild(0)

			// return gql("...") resolves through the call argument.
			if expr.Type() == "call" && nodeText(expr.ChildByFieldName("function"), src) == "gql" {
				args := expr.ChildByFieldName("arguments")
				if args == nil || args.NamedChildCount() == 0 {
					return
				}

				expr = args.NamedChild(0)
			}

			value, ok := resolveStringExpr(expr, src, assigns, 0)
			if !ok || !hasOperationKeyword(value) {
				return
			}

			blocks = append(blocks, parseGraphQLDefs(file, value, nodeStartLine(expr))...)
		}
	})

	return blocks
}

// dynamicRefs resolves gql(variable), gql(variable.query) and
// gql(variable["query"]) against earlier literal assignments. Unresolvable
// references are skipped silently.
func (e *Extractor) dynamicRefs(file m.Path, source string, src []byte, assigns map[string]*sitter.Node) []m.ExtractedBlock {
	var blocks []m.ExtractedBlock

	for _, re := range e.dynamicRef {
		for _, match := range re.FindAllStringSubmatchIndex(source, -1) {
			name := source[match[2]:match[3]]

			value, ok := assigns[name]
			if !ok {
				continue
			}

			resolved, ok := resolveStringExpr(value, src, assigns, 0)
			if !ok || !hasOperationKeyword(resolved) {
				continue
			}

			blocks = append(blocks, parseGraphQLDefs(file, resolved, nodeStartLine(value))...)
		}
	}

	return blocks
}

// modelScan detects model classes and extracts operation-shaped strings from
// their field defaults, including Field(default=...).
func (e *Extractor) modelScan(file m.Path, src []byte, root *sitter.Node, assigns map[string]*sitter.Node) ([]m.ModelDefinition, []m.ExtractedBlock) {
	aliases := collectModelAliases(root, src)
	inheritance := collectClassBases(root, src)

	var models []m.ModelDefinition

	var blocks []m.ExtractedBlock

	visitNodes(root, func(n *sitter.Node) {
		if n.Type() != "class_definition" {
			return
		}

		name := nodeText(n.ChildByFieldName("name"), src)
		if name == "" {
			return
		}

		kind, isModel := classifyClass(n, name, src, inheritance, aliases)
		if !isModel {
			return
		}

		models = append(models, m.ModelDefinition{
			Name:      name,
			Raw:       strings.TrimSpace(nodeText(n, src)),
			File:      file,
			StartLine: nodeStartLine(n),
			EndLine:   nodeEndLine(n),
			Kind:      kind,
		})

		if kind == m.ModelPydantic {
			blocks = append(blocks, e.modelFieldBlocks(file, src, n, assigns)...)
		}
	})

	return models, blocks
}

// classifyClass decides whether a class is a model and which kind.
func classifyClass(n *sitter.Node, name string, src []byte, inheritance map[string][]string, aliases modelAliases) (m.ModelKind, bool) {
	if inheritsModelBase(name, inheritance, aliases, map[string]struct{}{}) {
		return m.ModelPydantic, true
	}

	parent := n.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return "", false
	}

	for i := 0; i < int(parent.NamedChildCount()); i++ {
		deco := parent.NamedChild(i)
		if deco.Type() != "decorator" {
			continue
		}

		text := strings.TrimPrefix(nodeText(deco, src), "@")
		if idx := strings.IndexByte(text, '('); idx >= 0 {
			text = text[:idx]
		}

		text = strings.TrimSpace(text)
		last := text
		dotted := false

		if idx := strings.LastIndexByte(text, '.'); idx >= 0 {
			last = text[idx+1:]
			dotted = true
		}

		// Dotted *.dataclass decorators count as the pydantic flavor, as do
		// explicit pydantic.dataclasses imports and their aliases.
		if _, ok := aliases.pydanticDataclass[text]; ok || (dotted && last == "dataclass") {
			return m.ModelPydanticDataclass, true
		}

		if _, ok := aliases.stdDataclass[text]; ok {
			return m.ModelDataclass, true
		}
	}

	return "", false
}

// modelFieldBlocks scans a model class body for field defaults that hold
// GraphQL operations.
func (e *Extractor) modelFieldBlocks(file m.Path, src []byte, class *sitter.Node, assigns map[string]*sitter.Node) []m.ExtractedBlock {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var blocks []m.ExtractedBlock

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}

		assign := stmt.NamedChild(0)
		if assign.Type() != "assignment" {
			continue
		}

		right := assign.ChildByFieldName("right")
		if right == nil {
			continue
		}

		value := right

		// Field(default="query ...") style defaults.
		if right.Type() == "call" && nodeText(right.ChildByFieldName("function"), src) == "Field" {
			value = fieldDefaultArg(right, src)
			if value == nil {
				continue
			}
		}

		resolved, ok := resolveStringExpr(value, src, assigns, 0)
		if !ok || !hasOperationKeyword(resolved) {
			continue
		}

		blocks = append(blocks, parseGraphQLDefs(file, resolved, nodeStartLine(value))...)
	}

	return blocks
}

// fieldDefaultArg finds the default= keyword argument of a Field(...) call.
func fieldDefaultArg(call *sitter.Node, src []byte) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}

		if nodeText(arg.ChildByFieldName("name"), src) == "default" {
			return arg.ChildByFieldName("value")
		}
	}

	return nil
}

// hasOperationKeyword reports whether the string starts with a GraphQL
// definition keyword, case-insensitively.
func hasOperationKeyword(s string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(s))

	for _, kw := range []string{"query", "mutation", "subscription", "fragment"} {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}

	return false
}

// operationShaped reports whether an annotated assignment looks like an
// operation: either the target is named after one or the value starts with a
// definition keyword.
func operationShaped(target, value string) bool {
	switch strings.ToLower(target) {
	case "query", "mutation", "subscription":
		return true
	}

	return hasOperationKeyword(value)
}

// balancedBraces requires a non-zero, matching brace count so fragments of
// queries never parse as whole ones.
func balancedBraces(s string) bool {
	open := strings.Count(s, "{")

	return open > 0 && open == strings.Count(s, "}")
}

func lineOf(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return strings.Count(source[:offset], "\n") + 1
}
