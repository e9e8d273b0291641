package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoFile represents a file attachment owned by exactly one todo.
// Path is the server-side storage location and never leaves the server;
// URL is the public retrieval path under the uploads root.
type TodoFile struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TodoID    uuid.UUID `json:"todoId" gorm:"not null;type:uuid;index:idx_todo_files_todo"`
	Filename  string    `json:"filename" gorm:"not null"`
	Path      string    `json:"-" gorm:"not null"`
	URL       string    `json:"url" gorm:"not null"`
	Mimetype  string    `json:"mimetype" gorm:"not null"`
	Size      int64     `json:"size" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`

	// Foreign Key Relations
	Todo *Todo `json:"-" gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE"`
}

func (f *TodoFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
