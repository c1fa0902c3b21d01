package model

// Severity ranks how actionable a finding is.
type Severity string

const (
	// SeverityError marks findings that break against the new schema.
	SeverityError Severity = "error"
	// SeverityWarning marks findings that need attention before they break.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks informational findings.
	SeverityInfo Severity = "info"
)

// Category tags the check that produced a finding.
type Category string

// Schema-diff categories.
const (
	CategoryDeprecated Category = "DEPRECATED"
	CategoryRemoved    Category = "REMOVED"
	CategoryAdded      Category = "ADDED"
	CategoryInput      Category = "INPUT"
)

// Pattern-lint categories.
const (
	CategoryExtraArgument    Category = "GRAPHQL_EXTRA_ARGUMENT"
	CategoryMissingArgument  Category = "GRAPHQL_MISSING_ARGUMENT"
	CategoryInvalidArgument  Category = "GRAPHQL_INVALID_ARGUMENT"
	CategoryTypeMismatch     Category = "GRAPHQL_TYPE_MISMATCH"
	CategoryNonExistentField Category = "GRAPHQL_NON_EXISTENT_FIELD"
	CategoryInvalidDirective Category = "GRAPHQL_INVALID_DIRECTIVE"
	CategoryInvalidFragment  Category = "GRAPHQL_INVALID_FRAGMENT"
	CategoryParse            Category = "GRAPHQL_PARSE"
	CategoryModelRequired    Category = "MODEL_REQUIRED_FIELD"
	CategoryModelConstraint  Category = "MODEL_CONSTRAINT"
	CategoryModelComplexType Category = "MODEL_COMPLEX_TYPE"
	CategoryModelInheritance Category = "MODEL_INHERITANCE"
)

// Finding is one issue located at an exact position in a scanned file.
type Finding struct {
	File     Path
	Line     int
	Column   int
	Severity Severity
	Category Category
	// TypeName and FieldName identify the schema location for diff findings.
	TypeName  string
	FieldName string
	// Reason carries the deprecation reason when the schema declares one.
	Reason  string
	Message string
	// Surface names the client schema the finding was produced against.
	Surface string
}

// FindingKey is the identity used to deduplicate findings.
type FindingKey struct {
	File      Path
	Line      int
	Column    int
	TypeName  string
	FieldName string
	Reason    string
	Category  Category
}

// Key returns the deduplication identity of the finding.
func (f Finding) Key() FindingKey {
	return FindingKey{
		File:      f.File,
		Line:      f.Line,
		Column:    f.Column,
		TypeName:  f.TypeName,
		FieldName: f.FieldName,
		Reason:    f.Reason,
		Category:  f.Category,
	}
}
