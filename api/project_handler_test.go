package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wderue/portfolio-backend/catalog"
	"github.com/wderue/portfolio-backend/database"
	"github.com/wderue/portfolio-backend/models"
)

// newTestRouter wires the catalog handlers against an in-memory store.
func newTestRouter(t *testing.T, rateLimit int) (*chi.Mux, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	limiter := catalog.NewWindowLimiter(rateLimit, time.Minute)
	svc := catalog.NewService(currentDB, catalog.NewMemoryCache(), limiter, zerolog.Nop(), false)

	handler := newProjectHandler(svc)
	router := chi.NewRouter()
	router.Use(CallerIdentityMiddleware)
	router.Use(SequenceEchoMiddleware)
	router.Get("/projects", handler.getProjects())
	router.Get("/project/{projectID}", handler.getProject())
	router.Get("/filter-options", handler.getFilterOptions())
	return router, db
}

func seedTestCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	seeder := database.NewSeeder(db, zerolog.Nop())
	_, err := seeder.Load(context.Background(), []database.SeedProject{
		{
			Title:       "weather-cli",
			Description: "Terminal weather dashboard",
			LastUpdate:  "2025-06-01",
			Languages:   []string{"Rust"},
			TechStack:   database.SeedTechStack{DevOps: []string{"Docker"}},
		},
		{
			Title:       "portfolio",
			Description: "This very site",
			LastUpdate:  "2024-01-15",
			Languages:   []string{"TypeScript"},
			TechStack:   database.SeedTechStack{Frontend: []string{"NextJs"}},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed test catalog: %v", err)
	}
}

func TestGetProjects(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body ProjectCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Total != 2 {
		t.Fatalf("expected 2 projects, got %d", body.Total)
	}
	if body.Projects[0].Title != "weather-cli" {
		t.Errorf("expected newest project first, got %q", body.Projects[0].Title)
	}
}

func TestGetProjectsFiltered(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	tests := []struct {
		name      string
		query     string
		wantTotal int
	}{
		{"by language", "?language=Rust", 1},
		{"unknown token dropped", "?language=Rust,Cobol", 1},
		{"all tokens unknown matches all", "?language=Cobol", 2},
		{"by search", "?search=WEATHER", 1},
		{"no match", "?language=Rust&frontend=NextJs", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/projects"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var body ProjectCollection
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Total != tt.wantTotal {
				t.Errorf("expected %d projects, got %d", tt.wantTotal, body.Total)
			}
		})
	}
}

func TestGetProjectsRateLimited(t *testing.T) {
	router, db := newTestRouter(t, 2)
	seedTestCatalog(t, db)

	var lastCode int
	var lastHeader string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		lastCode = rec.Code
		lastHeader = rec.Header().Get("Retry-After")
	}

	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third request, got %d", lastCode)
	}
	if lastHeader == "" {
		t.Error("expected a Retry-After header on 429")
	}
}

func TestGetProject(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	projects, err := database.New(db).FindFiltered(context.Background(), "", nil)
	if err != nil || len(projects) == 0 {
		t.Fatalf("failed to list seeded projects: %v", err)
	}
	id := projects[0].ID

	req := httptest.NewRequest(http.MethodGet, "/project/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var project models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &project); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if project.ID != id {
		t.Errorf("expected project %s, got %s", id, project.ID)
	}
	if len(project.Tags) == 0 {
		t.Error("expected tags attached to the project")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	req := httptest.NewRequest(http.MethodGet, "/project/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProjectInvalidID(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/project/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetFilterOptions(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	req := httptest.NewRequest(http.MethodGet, "/filter-options", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var options map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &options); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(options["language"]) != 2 {
		t.Errorf("expected 2 languages in use, got %v", options["language"])
	}
	if len(options["database"]) != 0 {
		t.Errorf("expected no databases in use, got %v", options["database"])
	}
}

func TestSequenceEcho(t *testing.T) {
	router, db := newTestRouter(t, 100)
	seedTestCatalog(t, db)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("X-Request-Seq", "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Seq"); got != "42" {
		t.Errorf("expected sequence token echoed back, got %q", got)
	}
}
