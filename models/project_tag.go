package models

import "github.com/google/uuid"

// ProjectTag associates one tag value with a project. A single relation
// carries all five categories; Category disambiguates, and Value must belong
// to that category's vocabulary (enforced by the seed loader).
type ProjectTag struct {
	ID        uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID   `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_tag_project_id;uniqueIndex:idx_project_tag_unique;constraint:OnDelete:CASCADE"`
	Category  TagCategory `json:"category" db:"category" gorm:"type:text;not null;index:idx_project_tag_category;uniqueIndex:idx_project_tag_unique"`
	Value     string      `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_project_tag_unique"`
}
