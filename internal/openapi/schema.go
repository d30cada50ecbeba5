package openapi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toolgate/toolgate/internal/models"
)

// pathParamRe matches {param} placeholders in a path template.
var pathParamRe = regexp.MustCompile(`\{(\w+)\}`)

// BuildInputSchema converts an operation's declared parameters and JSON
// request body into the tool's input schema.
//
// Path parameters are always required, regardless of any declared flag:
// an absent placeholder makes the address unresolvable. Query parameters
// honor their declared flag. Request-body properties are merged last and
// silently take precedence over same-named path/query entries; body and
// query/path namespaces are not expected to collide in a well-formed
// document.
func BuildInputSchema(path string, op Operation, method string) models.InputSchema {
	schema := models.NewInputSchema()

	for _, param := range op.Parameters {
		if param.In != "path" && param.In != "query" {
			continue
		}

		prop := models.Property{
			Type:        param.Schema.Type,
			Description: param.Description,
		}
		if prop.Type == "" {
			prop.Type = "string"
		}
		if len(param.Schema.Enum) > 0 {
			prop.Enum = param.Schema.Enum
		}
		if param.Schema.HasDefault {
			prop.Default = param.Schema.Default
		}
		schema.Properties[param.Name] = prop

		if param.Required || param.In == "path" {
			schema.Required = append(schema.Required, param.Name)
		}
	}

	// Path placeholders not declared in the parameters array still make
	// the address unresolvable when absent.
	for _, m := range pathParamRe.FindAllStringSubmatch(path, -1) {
		name := m[1]
		if _, ok := schema.Properties[name]; !ok {
			schema.Properties[name] = models.Property{
				Type:        "string",
				Description: fmt.Sprintf("Path parameter: %s", name),
			}
			if !schema.RequiredContains(name) {
				schema.Required = append(schema.Required, name)
			}
		}
	}

	mergeRequestBody(&schema, op.RequestBody, method)

	return schema
}

// mergeRequestBody folds an application/json request body into the
// schema for body-carrying methods.
func mergeRequestBody(schema *models.InputSchema, body *RequestBody, method string) {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH":
	default:
		return
	}

	bodySchema := body.JSONSchema()
	if bodySchema == nil {
		return
	}

	if len(bodySchema.Properties) > 0 {
		for name, prop := range bodySchema.Properties {
			p := models.Property{
				Type:        prop.Type,
				Description: prop.Description,
			}
			if p.Type == "" {
				p.Type = "string"
			}
			if len(prop.Enum) > 0 {
				p.Enum = prop.Enum
			}
			if prop.HasDefault {
				p.Default = prop.Default
			}
			schema.Properties[name] = p
		}
		schema.Required = append(schema.Required, bodySchema.Required...)
		return
	}

	// Non-object body: expose it as a single "body" property.
	bodyType := bodySchema.Type
	if bodyType == "" {
		bodyType = "object"
	}
	schema.Properties["body"] = models.Property{Type: bodyType}
	if body.Required {
		schema.Required = append(schema.Required, "body")
	}
}
