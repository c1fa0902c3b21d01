package domain

import (
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// parseGraphQLDefs parses a raw GraphQL string into one block per top-level
// operation or fragment. baseLine is the file line of the first character of
// raw; each block gets a precise span computed from parser byte offsets.
// Parse failure yields a single BlockUnknown entry instead of an error.
func parseGraphQLDefs(file m.Path, raw string, baseLine int) []m.ExtractedBlock {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: string(file), Input: raw})
	if err != nil {
		trimmed := strings.TrimSpace(raw)

		return []m.ExtractedBlock{{
			Kind:       m.BlockUnknown,
			Raw:        trimmed,
			File:       file,
			StartLine:  baseLine,
			EndLine:    baseLine + strings.Count(raw, "\n"),
			ParseError: err.Error(),
		}}
	}

	type defEntry struct {
		offset int
		block  m.ExtractedBlock
	}

	var defs []defEntry

	for _, op := range doc.Operations {
		offset := 0
		if op.Position != nil {
			offset = op.Position.Start
		}

		variables := make([]string, 0, len(op.VariableDefinitions))
		for _, v := range op.VariableDefinitions {
			variables = append(variables, v.Variable)
		}

		defs = append(defs, defEntry{
			offset: offset,
			block: m.ExtractedBlock{
				Kind:      m.BlockKind(op.Operation),
				Name:      op.Name,
				Variables: variables,
				File:      file,
			},
		})
	}

	for _, frag := range doc.Fragments {
		offset := 0
		if frag.Position != nil {
			offset = frag.Position.Start
		}

		defs = append(defs, defEntry{
			offset: offset,
			block: m.ExtractedBlock{
				Kind:          m.BlockFragment,
				Name:          frag.Name,
				TypeCondition: frag.TypeCondition,
				File:          file,
			},
		})
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].offset < defs[j].offset })

	blocks := make([]m.ExtractedBlock, 0, len(defs))

	for i, def := range defs {
		end := len(raw)
		if i+1 < len(defs) {
			end = defs[i+1].offset
		}

		text := strings.TrimRight(raw[def.offset:end], " \t\n\r")
		if text == "" {
			continue
		}

		block := def.block
		block.Raw = text
		block.StartLine = baseLine + strings.Count(raw[:def.offset], "\n")
		block.EndLine = block.StartLine + strings.Count(text, "\n")

		blocks = append(blocks, block)
	}

	return blocks
}

// ExtractDocument parses a whole .graphql/.gql file as one document.
func ExtractDocument(file m.Path, src []byte) []m.ExtractedBlock {
	return parseGraphQLDefs(file, string(src), 1)
}
