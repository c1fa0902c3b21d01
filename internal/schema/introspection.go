package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Introspection JSON as returned by the standard __schema query, either the
// bare result or wrapped in a {"data": ...} envelope.

type introspectionEnvelope struct {
	Data   *introspectionResult `json:"data"`
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionResult struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *introspectionRootRef `json:"queryType"`
	MutationType     *introspectionRootRef `json:"mutationType"`
	SubscriptionType *introspectionRootRef `json:"subscriptionType"`
	Types            []introspectionType   `json:"types"`
}

type introspectionRootRef struct {
	Name string `json:"name"`
}

type introspectionType struct {
	Kind        string                `json:"kind"`
	Name        string                `json:"name"`
	Fields      []introspectionField  `json:"fields"`
	InputFields []introspectionInput  `json:"inputFields"`
}

type introspectionField struct {
	Name              string              `json:"name"`
	Args              []introspectionArg  `json:"args"`
	Type              *introspectionRef   `json:"type"`
	IsDeprecated      bool                `json:"isDeprecated"`
	DeprecationReason string              `json:"deprecationReason"`
}

type introspectionInput struct {
	Name              string            `json:"name"`
	Type              *introspectionRef `json:"type"`
	IsDeprecated      bool              `json:"isDeprecated"`
	DeprecationReason string            `json:"deprecationReason"`
}

type introspectionArg struct {
	Name string            `json:"name"`
	Type *introspectionRef `json:"type"`
}

type introspectionRef struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name"`
	OfType *introspectionRef `json:"ofType"`
}

func (r *introspectionRef) unwrap() string {
	for r != nil {
		if r.Name != "" {
			return r.Name
		}

		r = r.OfType
	}

	return ""
}

// FromIntrospection decodes an introspection JSON document into a snapshot.
func FromIntrospection(version string, data []byte) (*Snapshot, error) {
	var env introspectionEnvelope

	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode introspection %s: %w", version, err)
	}

	sch := env.Schema
	if sch == nil && env.Data != nil {
		sch = env.Data.Schema
	}

	if sch == nil {
		return nil, fmt.Errorf("introspection %s: missing __schema", version)
	}

	snap := &Snapshot{
		Version: version,
		types:   make(map[string]*TypeDescriptor, len(sch.Types)),
	}

	if sch.QueryType != nil {
		snap.queryRoot = sch.QueryType.Name
	}

	if sch.MutationType != nil {
		snap.mutationRoot = sch.MutationType.Name
	}

	if sch.SubscriptionType != nil {
		snap.subscriptionRoot = sch.SubscriptionType.Name
	}

	for _, it := range sch.Types {
		if it.Name == "" || strings.HasPrefix(it.Name, "__") {
			continue
		}

		t := &TypeDescriptor{
			Name:   it.Name,
			Kind:   it.Kind,
			fields: make(map[string]FieldDescriptor, len(it.Fields)+len(it.InputFields)),
			fold:   make(map[string]string, len(it.Fields)+len(it.InputFields)),
		}

		for _, fld := range it.Fields {
			f := FieldDescriptor{
				Name:              fld.Name,
				TypeName:          fld.Type.unwrap(),
				Deprecated:        fld.IsDeprecated,
				DeprecationReason: fld.DeprecationReason,
			}

			if len(fld.Args) > 0 {
				f.Arguments = make(map[string]string, len(fld.Args))
				for _, arg := range fld.Args {
					f.Arguments[arg.Name] = arg.Type.unwrap()
				}
			}

			t.addField(f)
		}

		for _, fld := range it.InputFields {
			t.addField(FieldDescriptor{
				Name:              fld.Name,
				TypeName:          fld.Type.unwrap(),
				Deprecated:        fld.IsDeprecated,
				DeprecationReason: fld.DeprecationReason,
			})
		}

		snap.types[it.Name] = t
	}

	return snap, nil
}
