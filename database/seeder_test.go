package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wderue/portfolio-backend/models"
)

func sampleSeeds() []SeedProject {
	return []SeedProject{
		{
			Title:       "weather-cli",
			Description: "Terminal weather dashboard",
			Github:      "https://github.com/example/weather-cli",
			LastUpdate:  "2025-06-01",
			Languages:   []string{"Rust"},
			TechStack: SeedTechStack{
				DevOps: []string{"Docker"},
			},
		},
		{
			Title:       "portfolio",
			Description: "This very site",
			LastUpdate:  "2025-01-15T10:00:00Z",
			Languages:   []string{"TypeScript"},
			TechStack: SeedTechStack{
				Database: []string{"SQLite"},
				Frontend: []string{"NextJs", "React"},
				DevOps:   []string{"Docker", "GithubActions"},
			},
		},
		{
			Title:         "notes-api",
			Description:   "Small REST API for notes",
			IsPrivate:     true,
			IsAiGenerated: true,
			Languages:     []string{"Python", "TypeScript"},
			TechStack: SeedTechStack{
				Database:   []string{"Postgresql"},
				BackendAPI: []string{"FastAPI"},
			},
		},
	}
}

func TestSeederLoad(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())
	ctx := context.Background()

	n, err := seeder.Load(ctx, sampleSeeds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 seeded projects, got %d", n)
	}

	projectRepo := NewProjectRepo(db)
	count, err := projectRepo.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 project rows, got %d", count)
	}

	tagRepo := NewProjectTagRepo(db)
	wantCounts := map[models.TagCategory]int64{
		models.CategoryLanguage: 4,
		models.CategoryDatabase: 2,
		models.CategoryBackend:  1,
		models.CategoryFrontend: 2,
		models.CategoryDevOps:   3,
	}
	for category, want := range wantCounts {
		got, err := tagRepo.CountByCategory(ctx, category)
		if err != nil {
			t.Fatalf("unexpected error counting %s: %v", category, err)
		}
		if got != want {
			t.Errorf("category %s: expected %d association rows, got %d", category, want, got)
		}
	}
}

func TestSeederRerunReplacesNotDuplicates(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())
	ctx := context.Background()

	if _, err := seeder.Load(ctx, sampleSeeds()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := seeder.Load(ctx, sampleSeeds()); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	count, err := NewProjectRepo(db).Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("re-running the seed must replace, not duplicate: got %d rows", count)
	}

	languages, err := NewProjectTagRepo(db).CountByCategory(ctx, models.CategoryLanguage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if languages != 4 {
		t.Errorf("expected 4 language rows after reseed, got %d", languages)
	}
}

func TestSeederReplacesPriorContents(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())
	ctx := context.Background()

	if _, err := seeder.Load(ctx, sampleSeeds()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	smaller := []SeedProject{{
		Title:       "solo",
		Description: "The only project now",
		Languages:   []string{"JavaScript"},
	}}
	if _, err := seeder.Load(ctx, smaller); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	projects, err := NewProjectRepo(db).FindFiltered(ctx, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "solo" {
		t.Fatalf("expected the catalog fully replaced, got %+v", projects)
	}
}

func TestSeederRejectsUnknownTags(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())

	bad := []SeedProject{{
		Title:       "ancient",
		Description: "Legacy system",
		Languages:   []string{"Cobol"},
	}}
	if _, err := seeder.Load(context.Background(), bad); err == nil {
		t.Fatal("expected an error for an out-of-vocabulary seed tag")
	}

	count, err := NewProjectRepo(db).Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected seed must not leave rows behind, got %d", count)
	}
}

func TestSeederRejectsMissingFields(t *testing.T) {
	seeder := NewSeeder(setupTestDB(t), zerolog.Nop())

	tests := []struct {
		name string
		seed SeedProject
	}{
		{"missing title", SeedProject{Description: "d"}},
		{"missing description", SeedProject{Title: "t"}},
		{"bad timestamp", SeedProject{Title: "t", Description: "d", LastUpdate: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := seeder.Load(context.Background(), []SeedProject{tt.seed}); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSeederLoadFile(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db, zerolog.Nop())

	path := filepath.Join(t.TempDir(), "projects.json")
	content := `{"projects":[{"title":"from-file","description":"Loaded from disk","languages":["Python"],"techStack":{"devOps":["GithubActions"]}}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	n, err := seeder.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 project, got %d", n)
	}

	projects, err := NewProjectRepo(db).FindFiltered(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "from-file" || len(projects[0].Tags) != 2 {
		t.Fatalf("unexpected seeded state: %+v", projects)
	}

	if _, err := seeder.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing seed file")
	}
}
