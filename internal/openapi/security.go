package openapi

import "strings"

// AuthKind is the closed set of authentication configurations the
// pipeline can derive. Kinds read from the document but outside this set
// map to AuthNone rather than silently falling through.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthAPIKeyHeader
	AuthBearer
	AuthBasic
)

func (k AuthKind) String() string {
	switch k {
	case AuthNone:
		return "none"
	case AuthAPIKeyHeader:
		return "header-api-key"
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	}
	return "unknown"
}

// Placeholder credential values. They are intentionally non-functional:
// the operator edits the registered tool after import. This pipeline
// never discovers or fetches real credentials.
const (
	placeholderAPIKey      = "PLACEHOLDER_API_KEY"
	placeholderBearerToken = "Bearer PLACEHOLDER_TOKEN"
	placeholderBasicValue  = "Basic PLACEHOLDER_CREDENTIALS"
)

// SecurityConfig is the single authentication configuration derived for
// an import run and applied identically to every tool in the batch.
type SecurityConfig struct {
	Kind         AuthKind
	HeaderName   string
	BearerFormat string
}

// DeriveSecurity inspects the document's security scheme declarations
// once per run and maps the first one encountered onto the closed
// AuthKind set. Per-operation security variation is not supported.
func DeriveSecurity(doc *Document) SecurityConfig {
	schemes := doc.Components.SecuritySchemes
	if len(schemes) == 0 {
		return SecurityConfig{Kind: AuthNone}
	}

	scheme := schemes[0].Scheme
	switch strings.ToLower(scheme.Type) {
	case "apikey":
		header := scheme.Name
		if header == "" {
			header = "X-API-KEY"
		}
		return SecurityConfig{Kind: AuthAPIKeyHeader, HeaderName: header}
	case "http":
		switch strings.ToLower(scheme.Scheme) {
		case "bearer":
			format := scheme.BearerFormat
			if format == "" {
				format = "JWT"
			}
			return SecurityConfig{Kind: AuthBearer, BearerFormat: format}
		case "basic":
			return SecurityConfig{Kind: AuthBasic}
		}
	}

	// oauth2, openIdConnect, and unrecognized types derive no config.
	return SecurityConfig{Kind: AuthNone}
}

// Headers returns the auth headers to attach to every derived tool.
// The switch is exhaustive over AuthKind.
func (c SecurityConfig) Headers() map[string]string {
	switch c.Kind {
	case AuthNone:
		return nil
	case AuthAPIKeyHeader:
		return map[string]string{c.HeaderName: placeholderAPIKey}
	case AuthBearer:
		return map[string]string{"Authorization": placeholderBearerToken}
	case AuthBasic:
		return map[string]string{"Authorization": placeholderBasicValue}
	}
	return nil
}
