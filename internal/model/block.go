// Package model defines the data structures shared by the scanner pipeline.
package model

// Path represents a file system path.
type Path string

// BlockKind identifies what an extracted block contains.
type BlockKind string

const (
	// BlockQuery is a GraphQL query operation.
	BlockQuery BlockKind = "query"
	// BlockMutation is a GraphQL mutation operation.
	BlockMutation BlockKind = "mutation"
	// BlockSubscription is a GraphQL subscription operation.
	BlockSubscription BlockKind = "subscription"
	// BlockFragment is a named GraphQL fragment definition.
	BlockFragment BlockKind = "fragment"
	// BlockUnknown marks text that looked like GraphQL but failed to parse.
	BlockUnknown BlockKind = "unknown"
)

// Operation reports whether the kind is an executable operation.
func (k BlockKind) Operation() bool {
	switch k {
	case BlockQuery, BlockMutation, BlockSubscription:
		return true
	default:
		return false
	}
}

// ExtractedBlock is a single GraphQL definition lifted out of a source file.
type ExtractedBlock struct {
	Kind BlockKind
	Name string
	// TypeCondition is set for fragments only.
	TypeCondition string
	// Variables holds declared variable names without the leading '$'.
	Variables []string
	Raw       string
	File      Path
	StartLine int
	EndLine   int
	// ParseError carries the parser message when Kind is BlockUnknown.
	ParseError string
}
