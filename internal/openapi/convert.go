package openapi

import (
	"fmt"
	"strings"

	"github.com/toolgate/toolgate/internal/models"
)

// ConvertToTools derives one registry-ready tool definition per
// extracted operation. Derivation is deterministic: the same document
// and namespace always produce the same names and schemas, and names
// are unique within a run because (path, method) pairs are unique
// within one document.
func ConvertToTools(refs []OperationRef, baseURL string, sec SecurityConfig, namespace string) ([]models.Tool, error) {
	headers := sec.Headers()

	tools := make([]models.Tool, 0, len(refs))
	for i, ref := range refs {
		name := DeriveToolName(ref, namespace)
		if name == "" {
			return nil, &ConvertError{
				Index:  i,
				Method: strings.ToUpper(ref.Method),
				Path:   ref.Path,
				Err:    fmt.Errorf("derived empty tool name"),
			}
		}

		method := strings.ToUpper(ref.Method)

		description := ref.Op.Summary
		if description == "" {
			description = ref.Op.Description
		}
		if description == "" {
			description = fmt.Sprintf("%s %s", method, ref.Path)
		}

		displayName := ref.Op.Summary
		if displayName == "" {
			displayName = name
		}

		tools = append(tools, models.Tool{
			Name:            name,
			DisplayName:     displayName,
			URL:             resolveURL(baseURL, ref.Path),
			Description:     description,
			IntegrationType: "REST",
			RequestType:     method,
			Headers:         headers,
			InputSchema:     BuildInputSchema(ref.Path, ref.Op, method),
			Tags:            ref.Op.Tags,
			Source:          models.SourceOpenAPIImport,
		})
	}

	return tools, nil
}

// resolveURL joins the base address and path template. The template's
// {param} placeholders are preserved for the dispatcher to fill.
func resolveURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
