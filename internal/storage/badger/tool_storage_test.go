package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/config"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/models"
)

func testStorage(t *testing.T) *ToolStorage {
	t.Helper()

	logger := common.NewSilentLogger()
	db, err := NewBadgerDB(logger, &config.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "registry"),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewToolStorage(db, logger)
}

func sampleTool(name string) models.Tool {
	return models.Tool{
		Name:            name,
		DisplayName:     name,
		URL:             "https://api.example.com/" + name,
		Description:     "sample",
		IntegrationType: "REST",
		RequestType:     "GET",
		InputSchema:     models.NewInputSchema(),
		Visibility:      models.VisibilityPublic,
		Source:          models.SourceOpenAPIImport,
	}
}

func TestRegisterAndGet(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	id, err := storage.Register(ctx, sampleTool("get_pets"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	tool, err := storage.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tool.Name != "get_pets" {
		t.Errorf("expected get_pets, got %q", tool.Name)
	}
	if tool.CreatedAt.IsZero() {
		t.Error("expected CreatedAt set on registration")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	if _, err := storage.Register(ctx, sampleTool("get_pets")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := storage.Register(ctx, sampleTool("get_pets"))
	if !errors.Is(err, interfaces.ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestRegisterInvalidTool(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	cases := []struct {
		name string
		tool models.Tool
	}{
		{"empty name", func() models.Tool { tool := sampleTool(""); return tool }()},
		{"missing url", func() models.Tool { tool := sampleTool("x"); tool.URL = ""; return tool }()},
		{"missing request type", func() models.Tool { tool := sampleTool("x"); tool.RequestType = ""; return tool }()},
		{"bad visibility", func() models.Tool { tool := sampleTool("x"); tool.Visibility = "everyone"; return tool }()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := storage.Register(ctx, tc.tool)
			if !errors.Is(err, interfaces.ErrInvalidTool) {
				t.Errorf("expected ErrInvalidTool, got %v", err)
			}
		})
	}
}

func TestUnregister(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	id, err := storage.Register(ctx, sampleTool("get_pets"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := storage.Unregister(ctx, id); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}

	if _, err := storage.Get(ctx, id); !errors.Is(err, interfaces.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound after unregister, got %v", err)
	}

	// Name is free again after removal.
	if _, err := storage.Register(ctx, sampleTool("get_pets")); err != nil {
		t.Errorf("name should be reusable after unregister: %v", err)
	}
}

func TestUnregisterUnknownID(t *testing.T) {
	storage := testStorage(t)

	err := storage.Unregister(context.Background(), "no-such-id")
	if !errors.Is(err, interfaces.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestGetByName(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	id, err := storage.Register(ctx, sampleTool("post_pets"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tool, err := storage.GetByName(ctx, "post_pets")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if tool.ID != id {
		t.Errorf("expected id %s, got %s", id, tool.ID)
	}

	if _, err := storage.GetByName(ctx, "missing"); !errors.Is(err, interfaces.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	storage := testStorage(t)
	ctx := context.Background()

	names := []string{"get_a", "get_b", "get_c"}
	for _, name := range names {
		if _, err := storage.Register(ctx, sampleTool(name)); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	tools, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tools) != len(names) {
		t.Fatalf("expected %d tools, got %d", len(names), len(tools))
	}

	seen := map[string]bool{}
	for _, tool := range tools {
		seen[tool.Name] = true
	}
	for _, name := range names {
		if !seen[name] {
			t.Errorf("missing tool %s in list", name)
		}
	}
}
