package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/wderue/portfolio-backend/models"
)

// SeedFile is the structured project list the one-shot loader reads.
type SeedFile struct {
	Projects []SeedProject `json:"projects"`
}

// SeedProject mirrors one entry of the external content source.
type SeedProject struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ImagePath     string        `json:"imagePath,omitempty"`
	Github        string        `json:"github,omitempty"`
	LastUpdate    string        `json:"lastUpdate,omitempty"`
	IsPrivate     bool          `json:"isPrivate,omitempty"`
	IsAiGenerated bool          `json:"isAiGenerated,omitempty"`
	Languages     []string      `json:"languages,omitempty"`
	TechStack     SeedTechStack `json:"techStack,omitempty"`
}

type SeedTechStack struct {
	Database   []string `json:"database,omitempty"`
	BackendAPI []string `json:"backendApi,omitempty"`
	Frontend   []string `json:"frontend,omitempty"`
	DevOps     []string `json:"devOps,omitempty"`
}

// Seeder replaces the entire catalog with the contents of a seed file. The
// catalog is read-only at runtime, so this is the only write path.
type Seeder struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewSeeder(db *gorm.DB, logger zerolog.Logger) *Seeder {
	return &Seeder{db: db, logger: logger.With().Str("component", "seeder").Logger()}
}

// LoadFile reads a JSON seed file and runs Load on its contents.
func (s *Seeder) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var file SeedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	return s.Load(ctx, file.Projects)
}

// Load wipes the project store and inserts the given projects in a single
// transaction. Re-running with the same input replaces rather than duplicates.
// Unlike filter input, seed tags are authored content, so an out-of-vocabulary
// tag is a hard error instead of being dropped.
func (s *Seeder) Load(ctx context.Context, seeds []SeedProject) (int, error) {
	projects := make([]*models.Project, 0, len(seeds))
	for i, seed := range seeds {
		project, err := buildProject(seed)
		if err != nil {
			return 0, fmt.Errorf("seed project %d (%q): %w", i, seed.Title, err)
		}
		projects = append(projects, project)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProjectTag{}).Error; err != nil {
			return fmt.Errorf("wipe project tags: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("wipe projects: %w", err)
		}

		for _, project := range projects {
			tags := project.Tags
			project.Tags = nil
			if err := tx.Create(project).Error; err != nil {
				return fmt.Errorf("insert project %q: %w", project.Title, err)
			}
			for i := range tags {
				tags[i].ProjectID = project.ID
				if err := tx.Create(&tags[i]).Error; err != nil {
					return fmt.Errorf("insert tag %s=%s for %q: %w", tags[i].Category, tags[i].Value, project.Title, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("projects", len(projects)).Msg("catalog reseeded")
	return len(projects), nil
}

func buildProject(seed SeedProject) (*models.Project, error) {
	if seed.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if seed.Description == "" {
		return nil, fmt.Errorf("description is required")
	}

	project := &models.Project{
		ID:            uuid.New(),
		Title:         seed.Title,
		Description:   seed.Description,
		IsPrivate:     seed.IsPrivate,
		IsAiGenerated: seed.IsAiGenerated,
	}
	if seed.ImagePath != "" {
		project.ImagePath = &seed.ImagePath
	}
	if seed.Github != "" {
		project.GithubLink = &seed.Github
	}
	if seed.LastUpdate != "" {
		ts, err := parseSeedTime(seed.LastUpdate)
		if err != nil {
			return nil, fmt.Errorf("lastUpdate: %w", err)
		}
		project.LastUpdate = &ts
	}

	tagSets := map[models.TagCategory][]string{
		models.CategoryLanguage: seed.Languages,
		models.CategoryDatabase: seed.TechStack.Database,
		models.CategoryBackend:  seed.TechStack.BackendAPI,
		models.CategoryFrontend: seed.TechStack.Frontend,
		models.CategoryDevOps:   seed.TechStack.DevOps,
	}
	for _, category := range models.Categories {
		for _, value := range tagSets[category] {
			if !models.ValidTagValue(category, value) {
				return nil, fmt.Errorf("%q is not in the %s vocabulary", value, category)
			}
			project.Tags = append(project.Tags, models.ProjectTag{
				ID:       uuid.New(),
				Category: category,
				Value:    value,
			})
		}
	}

	return project, nil
}

func parseSeedTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", s)
	}
	return ts, nil
}
