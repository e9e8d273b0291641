package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents a reusable label shared across todos. Names are unique,
// case-sensitive, and stored trimmed. Tags outlive the todos that
// reference them; dropping the last association never deletes the row.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null;unique;index:idx_tags_name"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`

	// Many-to-Many Relations
	Todos []*Todo `json:"-" gorm:"many2many:todo_tags"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
