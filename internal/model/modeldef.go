package model

// ModelKind classifies how a data-model class was declared.
type ModelKind string

const (
	// ModelPydantic is a class inheriting BaseModel/RootModel.
	ModelPydantic ModelKind = "pydantic"
	// ModelPydanticDataclass is a class decorated with pydantic.dataclasses.dataclass.
	ModelPydanticDataclass ModelKind = "pydantic-dataclass"
	// ModelDataclass is a class decorated with the standard dataclass decorator.
	ModelDataclass ModelKind = "dataclass"
)

// ModelDefinition is a data-model class found in a scanned file.
type ModelDefinition struct {
	Name      string
	Raw       string
	File      Path
	StartLine int
	EndLine   int
	Kind      ModelKind
}
