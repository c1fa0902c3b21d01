package domain

import (
	"regexp"
	"sort"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

var (
	commentPattern    = regexp.MustCompile(`#[^\n]*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// normalizeBody strips comments and all whitespace so formatting differences
// never defeat deduplication.
func normalizeBody(raw string) string {
	return whitespacePattern.ReplaceAllString(commentPattern.ReplaceAllString(raw, ""), "")
}

type blockKey struct {
	file m.Path
	kind m.BlockKind
	name string
	body string
}

// DedupeBlocks collapses blocks within a file that share kind, name and
// normalized body, keeping the smallest start line. The same block text in
// two different files stays two blocks, each a reference site of its own.
// The result is sorted by start line with name and file as tie-breaks.
func DedupeBlocks(blocks []m.ExtractedBlock) []m.ExtractedBlock {
	best := make(map[blockKey]m.ExtractedBlock, len(blocks))

	for _, block := range blocks {
		key := blockKey{file: block.File, kind: block.Kind, name: block.Name, body: normalizeBody(block.Raw)}

		current, ok := best[key]
		if !ok || block.StartLine < current.StartLine {
			best[key] = block
		}
	}

	out := make([]m.ExtractedBlock, 0, len(best))
	for _, block := range best {
		out = append(out, block)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}

		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].File < out[j].File
	})

	return out
}

type modelDefKey struct {
	file m.Path
	name string
	body string
	kind m.ModelKind
}

// DedupeModels collapses model definitions within a file that share name,
// normalized body and kind, keeping the smallest start line.
func DedupeModels(models []m.ModelDefinition) []m.ModelDefinition {
	best := make(map[modelDefKey]m.ModelDefinition, len(models))

	for _, def := range models {
		key := modelDefKey{file: def.File, name: def.Name, body: normalizeBody(def.Raw), kind: def.Kind}

		current, ok := best[key]
		if !ok || def.StartLine < current.StartLine {
			best[key] = def
		}
	}

	out := make([]m.ModelDefinition, 0, len(best))
	for _, def := range best {
		out = append(out, def)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}

		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].File < out[j].File
	})

	return out
}

// DedupeFindings drops findings whose key already appeared, preserving the
// first occurrence, then sorts by file, line, column and message.
func DedupeFindings(findings []m.Finding) []m.Finding {
	seen := make(map[m.FindingKey]struct{}, len(findings))

	out := make([]m.Finding, 0, len(findings))

	for _, f := range findings {
		key := f.Key()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}

		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}

		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}

		return out[i].Message < out[j].Message
	})

	return out
}
