// Package schema loads and indexes GraphQL schema snapshots so the domain
// layer can compare old and new versions of a client schema.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// FieldDescriptor is one field (or input field) of a schema type.
type FieldDescriptor struct {
	Name string
	// TypeName is the unwrapped named type of the field.
	TypeName          string
	Deprecated        bool
	DeprecationReason string
	// Arguments maps argument name to its unwrapped named type.
	Arguments map[string]string
}

// TypeDescriptor is one named type of a schema snapshot.
type TypeDescriptor struct {
	Name   string
	Kind   string
	fields map[string]FieldDescriptor
	// fold maps lowercased field names to declared names.
	fold map[string]string
}

// Field returns the field with the exact declared name.
func (t *TypeDescriptor) Field(name string) (FieldDescriptor, bool) {
	f, ok := t.fields[name]

	return f, ok
}

// FieldFold returns the field matching name case-insensitively. An exact
// match wins over a folded one.
func (t *TypeDescriptor) FieldFold(name string) (FieldDescriptor, bool) {
	if f, ok := t.fields[name]; ok {
		return f, true
	}

	declared, ok := t.fold[strings.ToLower(name)]
	if !ok {
		return FieldDescriptor{}, false
	}

	return t.fields[declared], true
}

// Has reports whether the type declares the field name exactly.
func (t *TypeDescriptor) Has(name string) bool {
	_, ok := t.fields[name]

	return ok
}

// Fields returns all fields sorted by name.
func (t *TypeDescriptor) Fields() []FieldDescriptor {
	names := make([]string, 0, len(t.fields))
	for name := range t.fields {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]FieldDescriptor, 0, len(names))
	for _, name := range names {
		out = append(out, t.fields[name])
	}

	return out
}

// Snapshot is an indexed view of one schema version.
type Snapshot struct {
	Version          string
	types            map[string]*TypeDescriptor
	queryRoot        string
	mutationRoot     string
	subscriptionRoot string
}

// Type returns the named type of the snapshot.
func (s *Snapshot) Type(name string) (*TypeDescriptor, bool) {
	t, ok := s.types[name]

	return t, ok
}

// RootFor resolves the root type for an operation kind. When the schema does
// not declare a root explicitly, conventional names are tried: QueryRoot and
// Query, Mutation and MutationRoot, Subscription and SubscriptionRoot.
func (s *Snapshot) RootFor(kind m.BlockKind) (*TypeDescriptor, bool) {
	var declared string

	var fallbacks []string

	switch kind {
	case m.BlockQuery:
		declared = s.queryRoot
		fallbacks = []string{"QueryRoot", "Query"}
	case m.BlockMutation:
		declared = s.mutationRoot
		fallbacks = []string{"Mutation", "MutationRoot"}
	case m.BlockSubscription:
		declared = s.subscriptionRoot
		fallbacks = []string{"Subscription", "SubscriptionRoot"}
	default:
		return nil, false
	}

	if declared != "" {
		if t, ok := s.types[declared]; ok {
			return t, true
		}
	}

	for _, name := range fallbacks {
		if t, ok := s.types[name]; ok {
			return t, true
		}
	}

	return nil, false
}

// FromSDL parses an SDL document into a snapshot.
func FromSDL(version, input string) (*Snapshot, error) {
	sch, err := gqlparser.LoadSchema(&ast.Source{Name: version, Input: input})
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", version, err)
	}

	snap := &Snapshot{
		Version: version,
		types:   make(map[string]*TypeDescriptor, len(sch.Types)),
	}

	if sch.Query != nil {
		snap.queryRoot = sch.Query.Name
	}

	if sch.Mutation != nil {
		snap.mutationRoot = sch.Mutation.Name
	}

	if sch.Subscription != nil {
		snap.subscriptionRoot = sch.Subscription.Name
	}

	for name, def := range sch.Types {
		if def.BuiltIn {
			continue
		}

		snap.types[name] = describeType(def)
	}

	return snap, nil
}

func describeType(def *ast.Definition) *TypeDescriptor {
	t := &TypeDescriptor{
		Name:   def.Name,
		Kind:   string(def.Kind),
		fields: make(map[string]FieldDescriptor, len(def.Fields)),
		fold:   make(map[string]string, len(def.Fields)),
	}

	for _, fd := range def.Fields {
		t.addField(describeField(fd))
	}

	return t
}

func (t *TypeDescriptor) addField(f FieldDescriptor) {
	t.fields[f.Name] = f
	t.fold[strings.ToLower(f.Name)] = f.Name
}

func describeField(fd *ast.FieldDefinition) FieldDescriptor {
	f := FieldDescriptor{
		Name:     fd.Name,
		TypeName: unwrap(fd.Type),
	}

	if d := fd.Directives.ForName("deprecated"); d != nil {
		f.Deprecated = true

		if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
			f.DeprecationReason = arg.Value.Raw
		}
	}

	if len(fd.Arguments) > 0 {
		f.Arguments = make(map[string]string, len(fd.Arguments))
		for _, arg := range fd.Arguments {
			f.Arguments[arg.Name] = unwrap(arg.Type)
		}
	}

	return f
}

// unwrap strips list and non-null wrappers down to the named type.
func unwrap(t *ast.Type) string {
	for t != nil && t.Elem != nil {
		t = t.Elem
	}

	if t == nil {
		return ""
	}

	return t.NamedType
}
