package openapi

// OperationRef is one (path, method) unit produced by the extractor.
// It is immutable after extraction and owned by the pipeline run that
// produced it.
type OperationRef struct {
	Path   string
	Method string
	Op     Operation
}

// methodOrder fixes the walk order of methods beneath a path so that
// extraction is deterministic.
var methodOrder = []string{"get", "post", "put", "delete", "patch"}

// operations returns the path item's declared operations in walk order.
func (p PathItem) operations() []struct {
	method string
	op     *Operation
} {
	byMethod := map[string]*Operation{
		"get":    p.Get,
		"post":   p.Post,
		"put":    p.Put,
		"delete": p.Delete,
		"patch":  p.Patch,
	}
	var out []struct {
		method string
		op     *Operation
	}
	for _, m := range methodOrder {
		if byMethod[m] != nil {
			out = append(out, struct {
				method string
				op     *Operation
			}{m, byMethod[m]})
		}
	}
	return out
}

// ExtractOperations walks every declared path template and yields one
// OperationRef per (path, method) pair using a supported method.
// Unsupported methods are silently skipped; a document that yields zero
// operations fails validation, distinct from a structurally invalid one.
func ExtractOperations(doc *Document) ([]OperationRef, error) {
	if len(doc.Paths) == 0 {
		return nil, &ValidationError{Reason: "no paths defined in OpenAPI specification"}
	}

	var refs []OperationRef
	for _, entry := range doc.Paths {
		for _, item := range entry.Item.operations() {
			refs = append(refs, OperationRef{
				Path:   entry.Template,
				Method: item.method,
				Op:     *item.op,
			})
		}
	}

	if len(refs) == 0 {
		return nil, &ValidationError{Reason: "no usable endpoints in OpenAPI specification"}
	}

	return refs, nil
}
