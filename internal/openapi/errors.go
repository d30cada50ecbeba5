package openapi

import "fmt"

// InputError reports a caller-input problem (neither or both of url and
// content supplied). It is rejected before any pipeline stage runs.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// FetchErrorKind classifies acquisition failures.
type FetchErrorKind int

const (
	FetchTimeout FetchErrorKind = iota
	FetchStatus
	FetchTransport
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchStatus:
		return "http_status"
	case FetchTransport:
		return "transport"
	}
	return "unknown"
}

// FetchError reports a failed spec download, carrying the attempted
// location and the specific sub-cause.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchTimeout:
		return fmt.Sprintf("timed out fetching spec from %s: %v", e.URL, e.Err)
	case FetchStatus:
		return fmt.Sprintf("fetching spec from %s returned HTTP %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("failed to fetch spec from %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a deserialization failure. Line is the offending
// line when the underlying parser exposes it, 0 otherwise.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse spec (line %d): %v", e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse spec: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a document that parsed but violates a
// structural invariant (missing version marker, missing servers, no
// usable endpoints).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConvertError reports a name/schema derivation failure for a specific
// operation, identified by its position in the document walk.
type ConvertError struct {
	Index  int
	Method string
	Path   string
	Err    error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("failed to convert operation %d (%s %s): %v", e.Index, e.Method, e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }
