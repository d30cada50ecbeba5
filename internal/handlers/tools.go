package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/importer"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/openapi"
)

// ImportService runs one OpenAPI import per request.
type ImportService interface {
	Import(ctx context.Context, req importer.ImportRequest) (*importer.ImportResult, error)
}

// ImportHandler handles POST /api/tools/openapi.
type ImportHandler struct {
	service     ImportService
	logger      *common.Logger
	afterImport func()
}

// NewImportHandler creates the OpenAPI import handler. afterImport, when
// non-nil, runs after every successful import (used to refresh the MCP
// catalog).
func NewImportHandler(service ImportService, logger *common.Logger, afterImport func()) *ImportHandler {
	return &ImportHandler{
		service:     service,
		logger:      logger,
		afterImport: afterImport,
	}
}

// ServeHTTP handles the import operation. The response body is always
// the run's ImportResult; the status code classifies the failure.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req importer.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Import(r.Context(), req)
	if err != nil {
		status := importStatusCode(err)
		h.logger.Warn().
			Int("status", status).
			Str("error", err.Error()).
			Msg("OpenAPI import failed")
		WriteJSON(w, status, result)
		return
	}

	if h.afterImport != nil {
		h.afterImport()
	}

	WriteJSON(w, http.StatusOK, result)
}

// importStatusCode maps the pipeline error taxonomy onto HTTP statuses:
// input-shape 400, acquisition 502, parse/validation/conversion 422,
// name conflict 409, anything else 500.
func importStatusCode(err error) int {
	var inputErr *openapi.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}
	var fetchErr *openapi.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}
	var parseErr *openapi.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusUnprocessableEntity
	}
	var validationErr *openapi.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}
	var convertErr *openapi.ConvertError
	if errors.As(err, &convertErr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, interfaces.ErrNameConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ToolsHandler handles GET /api/tools and DELETE /api/tools/{id}.
type ToolsHandler struct {
	registry    interfaces.ToolStorage
	logger      *common.Logger
	afterDelete func()
}

// NewToolsHandler creates the registry read/delete handler.
func NewToolsHandler(registry interfaces.ToolStorage, logger *common.Logger, afterDelete func()) *ToolsHandler {
	return &ToolsHandler{
		registry:    registry,
		logger:      logger,
		afterDelete: afterDelete,
	}
}

// List handles GET /api/tools.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	tools, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("failed to list tools")
		WriteError(w, http.StatusInternalServerError, "failed to list tools")
		return
	}

	WriteJSON(w, http.StatusOK, tools)
}

// Item handles DELETE /api/tools/{id}.
func (h *ToolsHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/tools/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "tool not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tool, err := h.registry.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, interfaces.ErrToolNotFound) {
				WriteError(w, http.StatusNotFound, "tool not found")
				return
			}
			h.logger.Error().Str("id", id).Str("error", err.Error()).Msg("failed to get tool")
			WriteError(w, http.StatusInternalServerError, "failed to get tool")
			return
		}
		WriteJSON(w, http.StatusOK, tool)

	case http.MethodDelete:
		if err := h.registry.Unregister(r.Context(), id); err != nil {
			if errors.Is(err, interfaces.ErrToolNotFound) {
				WriteError(w, http.StatusNotFound, "tool not found")
				return
			}
			h.logger.Error().Str("id", id).Str("error", err.Error()).Msg("failed to delete tool")
			WriteError(w, http.StatusInternalServerError, "failed to delete tool")
			return
		}
		if h.afterDelete != nil {
			h.afterDelete()
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": id})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
