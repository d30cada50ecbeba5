package app

import (
	"context"
	"time"

	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/config"
	"github.com/toolgate/toolgate/internal/handlers"
	"github.com/toolgate/toolgate/internal/importer"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/mcp"
	"github.com/toolgate/toolgate/internal/storage"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	Importer *importer.Service

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	ImportHandler  *handlers.ImportHandler
	ToolsHandler   *handlers.ToolsHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.Storage = storageManager

	registry := storageManager.Tools()

	a.Importer = importer.NewService(
		registry,
		logger,
		time.Duration(cfg.Import.FetchTimeoutSeconds)*time.Second,
		int64(cfg.Import.MaxSpecSizeMB)<<20,
		cfg.Import.DefaultVisibility,
	)

	a.MCPHandler = mcp.NewHandler(registry, logger)

	refreshCatalog := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.MCPHandler.Refresh(ctx); err != nil {
			logger.Warn().Str("error", err.Error()).Msg("failed to refresh MCP catalog")
		}
	}

	a.HealthHandler = handlers.NewHealthHandler(logger)
	a.VersionHandler = handlers.NewVersionHandler(logger)
	a.ImportHandler = handlers.NewImportHandler(a.Importer, logger, refreshCatalog)
	a.ToolsHandler = handlers.NewToolsHandler(registry, logger, refreshCatalog)

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
