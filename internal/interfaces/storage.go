package interfaces

import (
	"context"
	"errors"

	"github.com/toolgate/toolgate/internal/models"
)

// ErrNameConflict is returned by Register when a tool with the same name
// already exists in the registry.
var ErrNameConflict = errors.New("tool name already registered")

// ErrInvalidTool is returned by Register when a definition fails the
// registry's structural checks.
var ErrInvalidTool = errors.New("invalid tool definition")

// ErrToolNotFound is returned when a lookup or unregister misses.
var ErrToolNotFound = errors.New("tool not found")

// StorageManager provides access to domain-specific storage interfaces.
// Implementations can be swapped (BadgerDB now, centralised DB later).
type StorageManager interface {
	Tools() ToolStorage
	Close() error
}

// ToolStorage is the registration collaborator consumed by the import
// pipeline. Register and Unregister are transactional at the
// single-definition granularity; batch atomicity is layered on top by
// the importer.
type ToolStorage interface {
	// Register stores one tool definition and returns its assigned ID.
	// Fails with ErrNameConflict, ErrInvalidTool, or a storage error.
	Register(ctx context.Context, tool models.Tool) (string, error)
	// Unregister undoes a committed registration by ID.
	Unregister(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Tool, error)
	GetByName(ctx context.Context, name string) (*models.Tool, error)
	List(ctx context.Context) ([]models.Tool, error)
}
