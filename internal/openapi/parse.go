package openapi

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLineRe extracts the line number yaml.v3 embeds in its error text.
var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Parse deserializes raw YAML or JSON text into a Document and checks
// the minimal shape required to proceed: a mapping at the top level and
// a recognized version marker. Any failure aborts the run before tool
// derivation begins.
func Parse(raw []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, newParseError(err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &ValidationError{Reason: "invalid OpenAPI spec: document is empty"}
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, &ValidationError{Reason: "invalid OpenAPI spec: root must be an object"}
	}

	var doc Document
	if err := top.Decode(&doc); err != nil {
		return nil, newParseError(err)
	}

	if doc.OpenAPI == "" && doc.Swagger == "" {
		return nil, &ValidationError{Reason: "invalid OpenAPI spec: missing 'openapi' or 'swagger' version field"}
	}

	return &doc, nil
}

// newParseError wraps a yaml error, pulling out the line number when the
// error text carries one.
func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			pe.Line = line
		}
	}
	return pe
}

// BaseURL returns the first declared server address with any trailing
// slash removed. The first candidate must itself carry a usable URL.
func (d *Document) BaseURL() (string, error) {
	if len(d.Servers) == 0 {
		return "", &ValidationError{Reason: "no servers defined in OpenAPI spec, cannot determine base URL"}
	}

	base := d.Servers[0].URL
	if base == "" {
		return "", &ValidationError{Reason: "first server in OpenAPI spec has no URL"}
	}

	return strings.TrimRight(base, "/"), nil
}
