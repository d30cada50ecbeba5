package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a deserialized OpenAPI/Swagger specification. Path and
// security-scheme iteration preserves document order so that derivation
// is deterministic across runs.
type Document struct {
	OpenAPI    string     `yaml:"openapi"`
	Swagger    string     `yaml:"swagger"`
	Info       Info       `yaml:"info"`
	Servers    []Server   `yaml:"servers"`
	Paths      PathList   `yaml:"paths"`
	Components Components `yaml:"components"`
}

// Info carries the specification's descriptive block.
type Info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// Server is one base-address candidate.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// Components holds the document's named security scheme declarations.
type Components struct {
	SecuritySchemes SchemeList `yaml:"securitySchemes"`
}

// PathEntry is one path template with its declared operations.
type PathEntry struct {
	Template string
	Item     PathItem
}

// PathList preserves the document order of path templates.
type PathList []PathEntry

// UnmarshalYAML decodes the paths mapping without losing key order.
func (p *PathList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: paths must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var template string
		if err := value.Content[i].Decode(&template); err != nil {
			return err
		}
		var item PathItem
		if err := value.Content[i+1].Decode(&item); err != nil {
			return err
		}
		*p = append(*p, PathEntry{Template: template, Item: item})
	}
	return nil
}

// PathItem declares the operations beneath one path template. Methods
// outside the supported set are not decoded; the extractor never sees
// them.
type PathItem struct {
	Get    *Operation `yaml:"get"`
	Post   *Operation `yaml:"post"`
	Put    *Operation `yaml:"put"`
	Delete *Operation `yaml:"delete"`
	Patch  *Operation `yaml:"patch"`
}

// Operation is one HTTP-method-on-path declaration.
type Operation struct {
	OperationID string       `yaml:"operationId"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description"`
	Tags        []string     `yaml:"tags"`
	Parameters  []Parameter  `yaml:"parameters"`
	RequestBody *RequestBody `yaml:"requestBody"`
}

// Parameter is one declared path/query/header/cookie parameter.
type Parameter struct {
	Name        string      `yaml:"name"`
	In          string      `yaml:"in"`
	Required    bool        `yaml:"required"`
	Description string      `yaml:"description"`
	Schema      ParamSchema `yaml:"schema"`
}

// ParamSchema is the primitive/enum schema attached to a parameter or a
// request-body property. Default presence is tracked separately from the
// zero value so absent and null defaults are distinguishable.
type ParamSchema struct {
	Type        string
	Description string
	Enum        []any
	Default     any
	HasDefault  bool
}

// UnmarshalYAML decodes only the schema fields the pipeline honors.
func (s *ParamSchema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schema must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		val := value.Content[i+1]
		switch key {
		case "type":
			if err := val.Decode(&s.Type); err != nil {
				return err
			}
		case "description":
			if err := val.Decode(&s.Description); err != nil {
				return err
			}
		case "enum":
			if err := val.Decode(&s.Enum); err != nil {
				return err
			}
		case "default":
			if err := val.Decode(&s.Default); err != nil {
				return err
			}
			s.HasDefault = true
		}
	}
	return nil
}

// RequestBody is an operation's declared request body. Only
// application/json content is honored by the pipeline.
type RequestBody struct {
	Required bool                 `yaml:"required"`
	Content  map[string]MediaType `yaml:"content"`
}

// JSONSchema returns the application/json schema, or nil when the body
// declares none.
func (b *RequestBody) JSONSchema() *BodySchema {
	if b == nil {
		return nil
	}
	media, ok := b.Content["application/json"]
	if !ok {
		return nil
	}
	return media.Schema
}

// MediaType holds the schema for one content type.
type MediaType struct {
	Schema *BodySchema `yaml:"schema"`
}

// BodySchema is a request-body schema. Object-shaped bodies carry named
// properties that are merged into the tool input schema.
type BodySchema struct {
	Type       string                 `yaml:"type"`
	Properties map[string]ParamSchema `yaml:"properties"`
	Required   []string               `yaml:"required"`
}

// NamedScheme is one declared security scheme with its map key.
type NamedScheme struct {
	Name   string
	Scheme SecurityScheme
}

// SchemeList preserves the document order of securitySchemes so that
// "first scheme wins" is deterministic.
type SchemeList []NamedScheme

// UnmarshalYAML decodes the securitySchemes mapping without losing key order.
func (l *SchemeList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: securitySchemes must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return err
		}
		var scheme SecurityScheme
		if err := value.Content[i+1].Decode(&scheme); err != nil {
			return err
		}
		*l = append(*l, NamedScheme{Name: name, Scheme: scheme})
	}
	return nil
}

// SecurityScheme is one named authentication mechanism declaration.
type SecurityScheme struct {
	Type         string `yaml:"type"`
	Name         string `yaml:"name"`
	In           string `yaml:"in"`
	Scheme       string `yaml:"scheme"`
	BearerFormat string `yaml:"bearerFormat"`
}
