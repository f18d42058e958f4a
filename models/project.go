package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents one portfolio entry. The catalog is read-only at
// runtime; rows only change when the seed loader replaces the whole set.
type Project struct {
	ID            uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string       `json:"title" db:"title" gorm:"type:text;not null;unique"`
	Description   string       `json:"description" db:"description" gorm:"type:text;not null"`
	ImagePath     *string      `json:"imagePath,omitempty" db:"image_path" gorm:"type:text"`
	GithubLink    *string      `json:"github,omitempty" db:"github_link" gorm:"type:text"`
	LastUpdate    *time.Time   `json:"lastUpdate,omitempty" db:"last_update" gorm:"type:timestamp;index"`
	IsPrivate     bool         `json:"isPrivate" db:"is_private" gorm:"not null;default:false"`
	IsAiGenerated bool         `json:"isAiGenerated" db:"is_ai_generated" gorm:"not null;default:false"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null"`
	Tags          []ProjectTag `json:"tags,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// TagsByCategory groups the project's tag values per category for rendering.
func (p *Project) TagsByCategory() map[TagCategory][]string {
	grouped := make(map[TagCategory][]string, len(Categories))
	for _, tag := range p.Tags {
		grouped[tag.Category] = append(grouped[tag.Category], tag.Value)
	}
	return grouped
}
