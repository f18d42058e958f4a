package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wderue/portfolio-backend/models"
)

type Database struct {
	projectRepo    *ProjectRepo
	projectTagRepo *ProjectTagRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance.
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:    NewProjectRepo(db),
		projectTagRepo: NewProjectTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

// Migrate creates or updates the catalog schema.
func (d Database) Migrate() error {
	return d.projectRepo.db.AutoMigrate(&models.Project{}, &models.ProjectTag{})
}

// Delegation methods so Database satisfies catalog.ProjectStore.

func (d Database) FindFiltered(ctx context.Context, search string, tags map[models.TagCategory][]string) ([]*models.Project, error) {
	return d.projectRepo.FindFiltered(ctx, search, tags)
}

func (d Database) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return d.projectRepo.FindByID(ctx, id)
}

func (d Database) DistinctTagValues(ctx context.Context, category models.TagCategory) ([]string, error) {
	return d.projectTagRepo.DistinctValues(ctx, category)
}
