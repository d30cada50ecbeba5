package badger

import (
	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/config"
	"github.com/toolgate/toolgate/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger.
type Manager struct {
	db     *BadgerDB
	tools  interfaces.ToolStorage
	logger *common.Logger
}

// NewManager creates a new Badger storage manager.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		tools:  NewToolStorage(db, logger),
		logger: logger,
	}

	logger.Debug().Msg("Badger storage manager initialized")

	return manager, nil
}

// Tools returns the tool registry interface.
func (m *Manager) Tools() interfaces.ToolStorage {
	return m.tools
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
