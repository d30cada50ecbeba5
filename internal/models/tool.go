package models

import "time"

// Visibility values accepted by the registry.
const (
	VisibilityPrivate = "private"
	VisibilityTeam    = "team"
	VisibilityPublic  = "public"
)

// SourceOpenAPIImport tags tools created by the OpenAPI import pipeline.
const SourceOpenAPIImport = "openapi_import"

// Tool is a registered, invokable tool definition.
type Tool struct {
	ID              string            `json:"id" badgerhold:"key"`
	Name            string            `json:"name" badgerhold:"index"`
	DisplayName     string            `json:"display_name,omitempty"`
	URL             string            `json:"url"`
	Description     string            `json:"description,omitempty"`
	IntegrationType string            `json:"integration_type"`
	RequestType     string            `json:"request_type"`
	Headers         map[string]string `json:"headers,omitempty"`
	InputSchema     InputSchema       `json:"input_schema"`
	Tags            []string          `json:"tags,omitempty"`
	TeamID          string            `json:"team_id,omitempty"`
	Visibility      string            `json:"visibility"`
	Source          string            `json:"source,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// InputSchema is the JSON-schema-shaped input descriptor for a tool.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes one input parameter.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// NewInputSchema returns an empty object schema ready for property merging.
func NewInputSchema() InputSchema {
	return InputSchema{
		Type:       "object",
		Properties: map[string]Property{},
		Required:   []string{},
	}
}

// RequiredContains reports whether name is already in the required list.
func (s InputSchema) RequiredContains(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
