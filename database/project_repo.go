package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wderue/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindFiltered returns the projects matching the given predicates, with their
// tags attached, ordered by last update descending. Projects without a last
// update sort as oldest. The predicate is an AND across categories of an OR
// over the selected values; an empty search and empty tag sets match all.
func (r *ProjectRepo) FindFiltered(ctx context.Context, search string, tags map[models.TagCategory][]string) ([]*models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Preload("Tags")

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	for _, category := range models.Categories {
		values := tags[category]
		if len(values) == 0 {
			continue
		}
		query = query.Where(
			"EXISTS (SELECT 1 FROM project_tags WHERE project_tags.project_id = projects.id AND project_tags.category = ? AND project_tags.value IN ?)",
			category, values,
		)
	}

	var projects []*models.Project
	err := query.Order("last_update DESC NULLS LAST").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or (nil, nil) when absent.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Tags").First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// Count returns the number of projects in the catalog.
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}
