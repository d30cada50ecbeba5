package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/toolgate/toolgate/internal/common"
	"github.com/toolgate/toolgate/internal/interfaces"
	"github.com/toolgate/toolgate/internal/models"
	"github.com/toolgate/toolgate/internal/openapi"
)

// fakeRegistry is an in-memory ToolStorage that can be told to fail the
// registration of a specific tool name.
type fakeRegistry struct {
	mu sync.Mutex

	tools      map[string]models.Tool // by id
	nextID     int
	failOnName string
	failWith   error

	registerCalls   int
	unregisterCalls []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{tools: map[string]models.Tool{}}
}

func (f *fakeRegistry) Register(_ context.Context, tool models.Tool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.registerCalls++
	if f.failOnName != "" && tool.Name == f.failOnName {
		if f.failWith != nil {
			return "", f.failWith
		}
		return "", fmt.Errorf("%w: %q", interfaces.ErrNameConflict, tool.Name)
	}
	for _, existing := range f.tools {
		if existing.Name == tool.Name {
			return "", fmt.Errorf("%w: %q", interfaces.ErrNameConflict, tool.Name)
		}
	}

	f.nextID++
	id := fmt.Sprintf("tool-%d", f.nextID)
	tool.ID = id
	f.tools[id] = tool
	return id, nil
}

func (f *fakeRegistry) Unregister(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.unregisterCalls = append(f.unregisterCalls, id)
	if _, ok := f.tools[id]; !ok {
		return fmt.Errorf("%w: id %s", interfaces.ErrToolNotFound, id)
	}
	delete(f.tools, id)
	return nil
}

func (f *fakeRegistry) Get(_ context.Context, id string) (*models.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tool, ok := f.tools[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", interfaces.ErrToolNotFound, id)
	}
	return &tool, nil
}

func (f *fakeRegistry) GetByName(_ context.Context, name string) (*models.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tool := range f.tools {
		if tool.Name == name {
			return &tool, nil
		}
	}
	return nil, fmt.Errorf("%w: name %s", interfaces.ErrToolNotFound, name)
}

func (f *fakeRegistry) List(_ context.Context) ([]models.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Tool, 0, len(f.tools))
	for _, tool := range f.tools {
		out = append(out, tool)
	}
	return out, nil
}

func (f *fakeRegistry) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tools)
}

func testService(registry interfaces.ToolStorage) *Service {
	return NewService(registry, common.NewSilentLogger(), 5*time.Second, 1<<20, models.VisibilityPublic)
}

func TestImport_EndToEnd(t *testing.T) {
	registry := newFakeRegistry()
	svc := testService(registry)

	content := `
openapi: 3.0.0
info: {title: Accounts, version: 1.0.0}
servers:
  - url: https://api.example.com
paths:
  /users/{userId}:
    get: {}
`
	result, err := svc.Import(context.Background(), ImportRequest{
		Content:   content,
		Namespace: "acct",
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.CreatedCount != 1 {
		t.Fatalf("expected 1 created tool, got %d", result.CreatedCount)
	}

	created := result.Tools[0]
	if created.Name != "acct_get_users_userId" {
		t.Errorf("expected acct_get_users_userId, got %q", created.Name)
	}
	if created.URL != "https://api.example.com/users/{userId}" {
		t.Errorf("unexpected url %q", created.URL)
	}
	if created.Method != "GET" {
		t.Errorf("expected GET, got %q", created.Method)
	}

	stored, err := registry.GetByName(context.Background(), "acct_get_users_userId")
	if err != nil {
		t.Fatalf("tool not in registry: %v", err)
	}
	if !stored.InputSchema.RequiredContains("userId") {
		t.Errorf("expected userId required, got %+v", stored.InputSchema)
	}
	if stored.Visibility != models.VisibilityPublic {
		t.Errorf("expected default public visibility, got %q", stored.Visibility)
	}
}

func TestImport_AllOrNothingRollback(t *testing.T) {
	registry := newFakeRegistry()
	registry.failOnName = "get_c"
	svc := testService(registry)

	content := `
openapi: 3.0.0
servers: [{url: https://api.example.com}]
paths:
  /a: {get: {}}
  /b: {get: {}}
  /c: {get: {}}
  /d: {get: {}}
  /e: {get: {}}
`
	result, err := svc.Import(context.Background(), ImportRequest{Content: content})
	if err == nil {
		t.Fatal("expected commit failure")
	}

	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommitError, got %v", err)
	}
	if ce.Index != 2 || ce.Name != "get_c" {
		t.Errorf("expected failure at index 2 (get_c), got %d (%s)", ce.Index, ce.Name)
	}
	if ce.RolledBack != 2 {
		t.Errorf("expected 2 rolled-back registrations, got %d", ce.RolledBack)
	}
	if !errors.Is(err, interfaces.ErrNameConflict) {
		t.Errorf("expected name conflict cause, got %v", err)
	}

	// Registry ends exactly as it began: none of the 5 tools present.
	if registry.count() != 0 {
		t.Errorf("expected empty registry after rollback, got %d tools", registry.count())
	}
	if result.Success {
		t.Error("rolled-back run must not report success")
	}
	if result.CreatedCount != 0 {
		t.Errorf("expected created_count 0, got %d", result.CreatedCount)
	}
	if result.FailedCount != 1 || len(result.Errors) != 1 || result.Errors[0].Tool != "get_c" {
		t.Errorf("expected one failure entry for get_c, got %+v", result.Errors)
	}
}

func TestImport_RollbackInReverseOrder(t *testing.T) {
	registry := newFakeRegistry()
	registry.failOnName = "get_c"
	svc := testService(registry)

	content := `
openapi: 3.0.0
servers: [{url: https://api.example.com}]
paths:
  /a: {get: {}}
  /b: {get: {}}
  /c: {get: {}}
`
	_, err := svc.Import(context.Background(), ImportRequest{Content: content})
	if err == nil {
		t.Fatal("expected commit failure")
	}
	want := []string{"tool-2", "tool-1"}
	if len(registry.unregisterCalls) != len(want) {
		t.Fatalf("expected %d undo calls, got %v", len(want), registry.unregisterCalls)
	}
	for i, w := range want {
		if registry.unregisterCalls[i] != w {
			t.Errorf("undo %d: expected %s, got %s", i, w, registry.unregisterCalls[i])
		}
	}
}

func TestImport_NeitherURLNorContent(t *testing.T) {
	registry := newFakeRegistry()
	svc := testService(registry)

	result, err := svc.Import(context.Background(), ImportRequest{})
	var ie *openapi.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if result.Success {
		t.Error("input error must not report success")
	}
	if registry.registerCalls != 0 {
		t.Errorf("no registration may occur on input error, got %d calls", registry.registerCalls)
	}
}

func TestImport_BothURLAndContent(t *testing.T) {
	svc := testService(newFakeRegistry())

	_, err := svc.Import(context.Background(), ImportRequest{
		URL:     "https://example.com/spec.yaml",
		Content: "openapi: 3.0.0",
	})
	var ie *openapi.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestImport_InvalidVisibility(t *testing.T) {
	svc := testService(newFakeRegistry())

	_, err := svc.Import(context.Background(), ImportRequest{
		Content:    "openapi: 3.0.0",
		Visibility: "everyone",
	})
	var ie *openapi.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError for bad visibility, got %v", err)
	}
}

func TestImport_MissingServersNoRegistrationCalls(t *testing.T) {
	registry := newFakeRegistry()
	svc := testService(registry)

	content := `
openapi: 3.0.0
info: {title: Serverless, version: 1.0.0}
paths:
  /a: {get: {}}
`
	result, err := svc.Import(context.Background(), ImportRequest{Content: content})
	var ve *openapi.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if result.Success {
		t.Error("validation failure must not report success")
	}
	if registry.registerCalls != 0 {
		t.Errorf("no registration may occur when validation fails, got %d calls", registry.registerCalls)
	}
}

func TestImport_FromURL(t *testing.T) {
	spec := `
openapi: 3.0.0
servers: [{url: https://api.example.com}]
paths:
  /ping: {get: {operationId: ping}}
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(spec))
	}))
	defer srv.Close()

	registry := newFakeRegistry()
	svc := testService(registry)

	result, err := svc.Import(context.Background(), ImportRequest{URL: srv.URL + "/openapi.yaml"})
	if err != nil {
		t.Fatalf("Import from URL failed: %v", err)
	}
	if result.CreatedCount != 1 || result.Tools[0].Name != "ping" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestImport_FetchFailureClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := testService(newFakeRegistry())
	_, err := svc.Import(context.Background(), ImportRequest{URL: srv.URL})

	var fe *openapi.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Kind != openapi.FetchStatus || fe.Status != http.StatusInternalServerError {
		t.Errorf("expected classified status error, got %+v", fe)
	}
}

func TestImport_TeamAndVisibilityForwarded(t *testing.T) {
	registry := newFakeRegistry()
	svc := testService(registry)

	content := `
openapi: 3.0.0
servers: [{url: https://api.example.com}]
paths:
  /a: {get: {}}
`
	_, err := svc.Import(context.Background(), ImportRequest{
		Content:    content,
		TeamID:     "team-42",
		Visibility: models.VisibilityTeam,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	stored, err := registry.GetByName(context.Background(), "get_a")
	if err != nil {
		t.Fatalf("tool not registered: %v", err)
	}
	if stored.TeamID != "team-42" {
		t.Errorf("expected team-42, got %q", stored.TeamID)
	}
	if stored.Visibility != models.VisibilityTeam {
		t.Errorf("expected team visibility, got %q", stored.Visibility)
	}
}
