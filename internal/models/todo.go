package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo represents a single task item in the system.
type Todo struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index:idx_todos_created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`

	// One-to-Many Relations
	Files []TodoFile `json:"files" gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags" gorm:"many2many:todo_tags"`
}

// BeforeCreate assigns a random ID so the schema works on every
// supported driver instead of relying on a postgres-side default.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
