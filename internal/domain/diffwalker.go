package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

// maxWalkDepth caps selection recursion; fragment cycles truncate silently.
const maxWalkDepth = 10

// fragmentEntry pairs a fragment definition with the file line its block
// starts at, so findings inside spread fragments keep correct positions.
type fragmentEntry struct {
	def      *ast.FragmentDefinition
	baseLine int
}

// diffWalker walks one parsed definition against the old and new snapshots
// of a surface and records DEPRECATED, REMOVED and ADDED findings.
type diffWalker struct {
	file      m.Path
	baseLine  int
	surface   schema.Surface
	fragments map[string]fragmentEntry
	seen      map[m.FindingKey]struct{}
	findings  []m.Finding
}

func newDiffWalker(file m.Path, baseLine int, sur schema.Surface, fragments map[string]fragmentEntry) *diffWalker {
	return &diffWalker{
		file:      file,
		baseLine:  baseLine,
		surface:   sur,
		fragments: fragments,
		seen:      make(map[m.FindingKey]struct{}),
	}
}

// Findings returns everything recorded so far, in walk order.
func (w *diffWalker) Findings() []m.Finding {
	return w.findings
}

// WalkOperation diffs an operation starting at the surface's root type for
// the operation kind.
func (w *diffWalker) WalkOperation(op *ast.OperationDefinition) {
	root, ok := w.surface.Old.RootFor(m.BlockKind(op.Operation))
	if !ok {
		root, ok = w.surface.New.RootFor(m.BlockKind(op.Operation))
	}

	if !ok {
		return
	}

	w.walkSet(op.SelectionSet, root.Name, 1)
}

// WalkFragment diffs a fragment definition from its type condition.
func (w *diffWalker) WalkFragment(frag *ast.FragmentDefinition) {
	if !w.typeKnown(frag.TypeCondition) {
		return
	}

	w.walkSet(frag.SelectionSet, frag.TypeCondition, 1)
}

func (w *diffWalker) typeKnown(name string) bool {
	if _, ok := w.surface.Old.Type(name); ok {
		return true
	}

	_, ok := w.surface.New.Type(name)

	return ok
}

func (w *diffWalker) walkSet(set ast.SelectionSet, parent string, depth int) {
	if depth > maxWalkDepth {
		return
	}

	for _, sel := range set {
		switch node := sel.(type) {
		case *ast.Field:
			w.walkField(node, parent, depth)
		case *ast.InlineFragment:
			condition := node.TypeCondition
			if condition == "" {
				condition = parent
			}

			if w.typeKnown(condition) {
				w.walkSet(node.SelectionSet, condition, depth+1)
			}
		case *ast.FragmentSpread:
			entry, ok := w.fragments[node.Name]
			if !ok {
				continue
			}

			if w.typeKnown(entry.def.TypeCondition) {
				saved := w.baseLine
				w.baseLine = entry.baseLine
				w.walkSet(entry.def.SelectionSet, entry.def.TypeCondition, depth+1)
				w.baseLine = saved
			}
		}
	}
}

func (w *diffWalker) walkField(field *ast.Field, parent string, depth int) {
	if strings.HasPrefix(field.Name, "__") {
		return
	}

	line, column := w.position(field.Position)

	// Old schema lookup is case-insensitive; the declared name then keys the
	// exact lookup in the new schema.
	var oldField schema.FieldDescriptor

	hasOld := false

	if oldType, ok := w.surface.Old.Type(parent); ok {
		oldField, hasOld = oldType.FieldFold(field.Name)
	}

	var newField schema.FieldDescriptor

	hasNew := false

	if newType, ok := w.surface.New.Type(parent); ok {
		if hasOld {
			newField, hasNew = newType.Field(oldField.Name)
		}

		if !hasNew {
			newField, hasNew = newType.Field(field.Name)
		}
	}

	if hasOld && (oldField.Deprecated || oldField.DeprecationReason != "") {
		reason := "is deprecated in old schema"
		if oldField.DeprecationReason != "" {
			reason = fmt.Sprintf("is deprecated in old schema: %s", oldField.DeprecationReason)
		}

		w.emit(m.Finding{
			File:      w.file,
			Line:      line,
			Column:    column,
			Severity:  m.SeverityWarning,
			Category:  m.CategoryDeprecated,
			TypeName:  parent,
			FieldName: field.Name,
			Reason:    reason,
		})
	}

	if hasOld && !hasNew {
		w.emit(m.Finding{
			File:      w.file,
			Line:      line,
			Column:    column,
			Severity:  m.SeverityWarning,
			Category:  m.CategoryRemoved,
			TypeName:  parent,
			FieldName: field.Name,
			Reason:    "was removed in new schema",
		})
	}

	if !hasOld && hasNew {
		w.emit(m.Finding{
			File:      w.file,
			Line:      line,
			Column:    column,
			Severity:  m.SeverityWarning,
			Category:  m.CategoryAdded,
			TypeName:  parent,
			FieldName: field.Name,
			Reason:    "was added in new schema",
		})
	}

	if len(field.SelectionSet) == 0 {
		return
	}

	base := oldField.TypeName
	if base == "" {
		base = newField.TypeName
	}

	if base == "" || !w.typeKnown(base) {
		return
	}

	w.walkSet(field.SelectionSet, base, depth+1)
}

// CheckInputFields flags deprecated input fields reachable through the
// argument types of a mutation's root fields.
func (w *diffWalker) CheckInputFields(op *ast.OperationDefinition) {
	if op.Operation != ast.Mutation {
		return
	}

	root, ok := w.surface.Old.RootFor(m.BlockMutation)
	if !ok {
		return
	}

	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		rootField, ok := root.FieldFold(field.Name)
		if !ok {
			continue
		}

		line, _ := w.position(field.Position)

		argTypes := make([]string, 0, len(rootField.Arguments))
		for _, typeName := range rootField.Arguments {
			argTypes = append(argTypes, typeName)
		}

		sort.Strings(argTypes)

		for _, typeName := range argTypes {
			inputType, ok := w.surface.Old.Type(typeName)
			if !ok {
				continue
			}

			for _, inputField := range inputType.Fields() {
				if !inputField.Deprecated && inputField.DeprecationReason == "" {
					continue
				}

				reason := fmt.Sprintf("input field used by mutation '%s' is deprecated", field.Name)
				if inputField.DeprecationReason != "" {
					reason = fmt.Sprintf("%s: %s", reason, inputField.DeprecationReason)
				}

				w.emit(m.Finding{
					File:      w.file,
					Line:      line,
					Column:    1,
					Severity:  m.SeverityWarning,
					Category:  m.CategoryInput,
					TypeName:  typeName,
					FieldName: inputField.Name,
					Reason:    reason,
				})
			}
		}
	}
}

// position maps a parser position inside the block back to file coordinates.
func (w *diffWalker) position(pos *ast.Position) (line, column int) {
	if pos == nil {
		return w.baseLine, 1
	}

	return w.baseLine + pos.Line - 1, pos.Column
}

func (w *diffWalker) emit(f m.Finding) {
	key := f.Key()
	if _, ok := w.seen[key]; ok {
		return
	}

	w.seen[key] = struct{}{}

	f.Surface = w.surface.Name
	f.Message = fmt.Sprintf("[%s] Field '%s' in type '%s' %s (%s)",
		f.Category, f.FieldName, f.TypeName, f.Reason, w.surface.Name)

	w.findings = append(w.findings, f)
}
