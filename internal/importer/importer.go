// Package importer runs the OpenAPI import pipeline: acquire the spec,
// parse and validate it, extract operations, derive tool definitions,
// and commit the batch atomically against the tool registry.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/models"
	"github.com/toolgate/toolgate/internal/openapi"
)

// ImportRequest is the caller's description of one import run. Exactly
// one of URL and Content must be set.
type ImportRequest struct {
	URL        string `json:"url,omitempty"`
	Content    string `json:"content,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}

// CreatedTool identifies one committed tool in the result.
type CreatedTool struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Method string `json:"method"`
}

// ImportError identifies one failed definition in the result.
type ImportError struct {
	Tool  string `json:"tool"`
	Error string `json:"error"`
}

// ImportResult is the outward report of one run. It is produced exactly
// once per run, whether the run succeeds or is rolled back.
type ImportResult struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	CreatedCount int           `json:"created_count"`
	FailedCount  int           `json:"failed_count"`
	Tools        []CreatedTool `json:"tools"`
	Errors       []ImportError `json:"errors"`
}

// Service converts OpenAPI documents into registered tools.
type Service struct {
	registry          interfaces.ToolStorage
	fetcher           *openapi.Fetcher
	logger            *common.Logger
	maxSpecBytes      int64
	defaultVisibility string
}

// NewService creates an import service. fetchTimeout bounds the spec
// download; maxSpecBytes caps both fetched and inline documents.
func NewService(registry interfaces.ToolStorage, logger *common.Logger, fetchTimeout time.Duration, maxSpecBytes int64, defaultVisibility string) *Service {
	if maxSpecBytes <= 0 {
		maxSpecBytes = 4 << 20
	}
	if defaultVisibility == "" {
		defaultVisibility = models.VisibilityPublic
	}
	return &Service{
		registry:          registry,
		fetcher:           openapi.NewFetcher(fetchTimeout, maxSpecBytes, logger),
		logger:            logger,
		maxSpecBytes:      maxSpecBytes,
		defaultVisibility: defaultVisibility,
	}
}

// Import runs the whole pipeline for one request. The returned result is
// always non-nil; a non-nil error classifies the failure for the caller.
// Every failure aborts the run and, after the commit stage has begun,
// leaves the registry exactly as it was before the run.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.URL == "" && req.Content == "" {
		return failedResult("either 'url' or 'content' must be provided"),
			&openapi.InputError{Msg: "either 'url' or 'content' must be provided"}
	}
	if req.URL != "" && req.Content != "" {
		return failedResult("provide either 'url' or 'content', not both"),
			&openapi.InputError{Msg: "provide either 'url' or 'content', not both"}
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = s.defaultVisibility
	}
	switch visibility {
	case models.VisibilityPrivate, models.VisibilityTeam, models.VisibilityPublic:
	default:
		msg := fmt.Sprintf("invalid visibility %q: must be private, team or public", req.Visibility)
		return failedResult(msg), &openapi.InputError{Msg: msg}
	}

	raw, err := s.acquire(ctx, req)
	if err != nil {
		return failedResult(err.Error()), err
	}

	doc, err := openapi.Parse(raw)
	if err != nil {
		return failedResult(err.Error()), err
	}

	baseURL, err := doc.BaseURL()
	if err != nil {
		return failedResult(err.Error()), err
	}

	refs, err := openapi.ExtractOperations(doc)
	if err != nil {
		return failedResult(err.Error()), err
	}

	sec := openapi.DeriveSecurity(doc)
	s.logger.Info().
		Str("title", doc.Info.Title).
		Str("base_url", baseURL).
		Int("operations", len(refs)).
		Str("auth", sec.Kind.String()).
		Msg("OpenAPI spec validated")

	tools, err := openapi.ConvertToTools(refs, baseURL, sec, req.Namespace)
	if err != nil {
		return failedResult(err.Error()), err
	}

	committed, err := s.commitAll(ctx, tools, req.TeamID, visibility)
	if err != nil {
		var ce *CommitError
		result := failedResult(err.Error())
		if errors.As(err, &ce) {
			result.FailedCount = 1
			result.Errors = []ImportError{{Tool: ce.Name, Error: ce.Err.Error()}}
		}
		return result, err
	}

	result := &ImportResult{
		Success:      true,
		Message:      fmt.Sprintf("imported %d tools", len(committed)),
		CreatedCount: len(committed),
		Tools:        make([]CreatedTool, 0, len(committed)),
		Errors:       []ImportError{},
	}
	for _, c := range committed {
		result.Tools = append(result.Tools, CreatedTool{Name: c.tool.Name, URL: c.tool.URL, Method: c.tool.RequestType})
	}

	s.logger.Info().Int("created", result.CreatedCount).Msg("OpenAPI import committed")
	return result, nil
}

// acquire obtains the raw spec text from the network location or the
// inline content, whichever the request carries.
func (s *Service) acquire(ctx context.Context, req ImportRequest) ([]byte, error) {
	if req.URL != "" {
		return s.fetcher.Fetch(ctx, req.URL)
	}
	if int64(len(req.Content)) > s.maxSpecBytes {
		return nil, &openapi.InputError{Msg: fmt.Sprintf("inline spec exceeds maximum size of %d bytes", s.maxSpecBytes)}
	}
	return []byte(req.Content), nil
}

// failedResult builds the report for a run that commits nothing.
func failedResult(message string) *ImportResult {
	return &ImportResult{
		Success: false,
		Message: message,
		Tools:   []CreatedTool{},
		Errors:  []ImportError{},
	}
}
