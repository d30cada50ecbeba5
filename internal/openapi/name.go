package openapi

import (
	"regexp"
	"strings"
)

var (
	pathSeparatorRe = regexp.MustCompile(`[/\-.]`)
	braceRe         = regexp.MustCompile(`[{}]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// GenerateToolName synthesizes a tool name from an HTTP method and path
// template, e.g. GET /pet/{petId} -> get_pet_petId. Path separators,
// hyphens and dots become underscores, braces are stripped, underscore
// runs collapse, and a trailing underscore is trimmed. The optional
// namespace is prepended with an underscore.
func GenerateToolName(method, path, namespace string) string {
	clean := strings.TrimPrefix(path, "/")
	clean = pathSeparatorRe.ReplaceAllString(clean, "_")
	clean = braceRe.ReplaceAllString(clean, "")
	clean = underscoreRunRe.ReplaceAllString(clean, "_")
	clean = strings.TrimRight(clean, "_")

	name := strings.ToLower(method)
	if clean != "" {
		name = name + "_" + clean
	}

	if namespace != "" {
		name = namespace + "_" + name
	}

	return name
}

// DeriveToolName computes the tool name for one operation. An explicit
// operationId is used verbatim; otherwise the name is synthesized from
// method and path. Either form receives the namespace prefix.
func DeriveToolName(ref OperationRef, namespace string) string {
	if ref.Op.OperationID != "" {
		if namespace != "" {
			return namespace + "_" + ref.Op.OperationID
		}
		return ref.Op.OperationID
	}
	return GenerateToolName(ref.Method, ref.Path, namespace)
}
