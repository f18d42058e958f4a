package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/wderue/portfolio-backend/models"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// DistinctValues returns the distinct tag values in use for one category,
// sorted, for populating the filter UI.
func (r *ProjectTagRepo) DistinctValues(ctx context.Context, category models.TagCategory) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTag{}).
		Where("category = ?", category).
		Distinct("value").
		Order("value").
		Pluck("value", &values).Error
	return values, err
}

// CountByCategory returns the number of association rows for one category.
func (r *ProjectTagRepo) CountByCategory(ctx context.Context, category models.TagCategory) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTag{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}
