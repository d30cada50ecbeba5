package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"
	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/models"
)

// ToolStorage implements interfaces.ToolStorage using BadgerDB.
type ToolStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewToolStorage creates a new tool registry backed by BadgerDB.
func NewToolStorage(db *BadgerDB, logger *common.Logger) *ToolStorage {
	return &ToolStorage{
		db:     db,
		logger: logger,
	}
}

// validateTool applies the registry's structural checks before storage.
func validateTool(tool models.Tool) error {
	if strings.TrimSpace(tool.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", interfaces.ErrInvalidTool)
	}
	if strings.TrimSpace(tool.URL) == "" {
		return fmt.Errorf("%w: tool %q has no url", interfaces.ErrInvalidTool, tool.Name)
	}
	if strings.TrimSpace(tool.RequestType) == "" {
		return fmt.Errorf("%w: tool %q has no request type", interfaces.ErrInvalidTool, tool.Name)
	}
	switch tool.Visibility {
	case models.VisibilityPrivate, models.VisibilityTeam, models.VisibilityPublic:
	default:
		return fmt.Errorf("%w: tool %q has invalid visibility %q", interfaces.ErrInvalidTool, tool.Name, tool.Visibility)
	}
	return nil
}

// Register stores one tool definition and returns its assigned ID.
func (s *ToolStorage) Register(_ context.Context, tool models.Tool) (string, error) {
	if err := validateTool(tool); err != nil {
		return "", err
	}

	// Name uniqueness across the whole registry
	var existing models.Tool
	err := s.db.Store().FindOne(&existing, badgerhold.Where("Name").Eq(tool.Name))
	if err == nil {
		return "", fmt.Errorf("%w: %q (existing id %s)", interfaces.ErrNameConflict, tool.Name, existing.ID)
	}
	if err != badgerhold.ErrNotFound {
		return "", fmt.Errorf("failed to check name %q: %w", tool.Name, err)
	}

	if tool.ID == "" {
		tool.ID = uuid.New().String()
	}
	if tool.CreatedAt.IsZero() {
		tool.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Insert(tool.ID, &tool); err != nil {
		if err == badgerhold.ErrKeyExists {
			return "", fmt.Errorf("%w: id %s", interfaces.ErrNameConflict, tool.ID)
		}
		return "", fmt.Errorf("failed to store tool %q: %w", tool.Name, err)
	}

	s.logger.Debug().Str("id", tool.ID).Str("name", tool.Name).Msg("tool registered")
	return tool.ID, nil
}

// Unregister removes a registered tool by ID.
func (s *ToolStorage) Unregister(_ context.Context, id string) error {
	err := s.db.Store().Delete(id, models.Tool{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: id %s", interfaces.ErrToolNotFound, id)
		}
		return fmt.Errorf("failed to delete tool %s: %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("tool unregistered")
	return nil
}

// Get retrieves a tool by ID.
func (s *ToolStorage) Get(_ context.Context, id string) (*models.Tool, error) {
	var tool models.Tool
	err := s.db.Store().Get(id, &tool)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: id %s", interfaces.ErrToolNotFound, id)
		}
		return nil, fmt.Errorf("failed to get tool %s: %w", id, err)
	}
	return &tool, nil
}

// GetByName retrieves a tool by its unique name.
func (s *ToolStorage) GetByName(_ context.Context, name string) (*models.Tool, error) {
	var tool models.Tool
	err := s.db.Store().FindOne(&tool, badgerhold.Where("Name").Eq(name))
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: name %s", interfaces.ErrToolNotFound, name)
		}
		return nil, fmt.Errorf("failed to find tool %q: %w", name, err)
	}
	return &tool, nil
}

// List retrieves all registered tools.
func (s *ToolStorage) List(_ context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := s.db.Store().Find(&tools, nil); err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}
