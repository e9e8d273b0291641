package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kutbudev/tododeck/internal/models"
)

// CreateTodoInput DTO for creating a new todo
type CreateTodoInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateTodoInput DTO for partially updating a todo. Every field is a
// pointer so "omitted" and "set to zero value" stay distinguishable; a
// non-nil empty Tags slice clears all tag associations.
type UpdateTodoInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Completed   *bool     `json:"completed"`
	Tags        *[]string `json:"tags"`
}

// TodoService implements todo CRUD and tag reconciliation on top of gorm.
type TodoService struct {
	db    *gorm.DB
	files *FileService
}

// NewTodoService creates a new todo service
func NewTodoService(db *gorm.DB, files *FileService) *TodoService {
	return &TodoService{db: db, files: files}
}

// List returns all todos newest-first, each with resolved tags and files.
// A non-empty tagName restricts the result to todos carrying a tag with
// exactly that name.
func (s *TodoService) List(tagName string) ([]models.Todo, error) {
	q := s.db.Preload("Files").Preload("Tags").Order("todos.created_at DESC")
	if tagName != "" {
		q = q.Joins("JOIN todo_tags ON todo_tags.todo_id = todos.id").
			Joins("JOIN tags ON tags.id = todo_tags.tag_id").
			Where("tags.name = ?", tagName)
	}

	todos := []models.Todo{}
	if err := q.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	for i := range todos {
		normalize(&todos[i])
	}
	return todos, nil
}

// Get returns a single todo with resolved tags and files.
func (s *TodoService) Get(id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.Preload("Files").Preload("Tags").First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to fetch todo: %w", err)
	}
	normalize(&todo)
	return &todo, nil
}

// normalize keeps empty relations as [] in JSON instead of null.
func normalize(todo *models.Todo) {
	if todo.Files == nil {
		todo.Files = []models.TodoFile{}
	}
	if todo.Tags == nil {
		todo.Tags = []*models.Tag{}
	}
}

// Create validates the title, reconciles the supplied tag names and
// inserts the todo with its associations.
func (s *TodoService) Create(in CreateTodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Msg: "title is required"}
	}

	var description *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		description = &d
	}

	var todo models.Todo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := reconcileTags(tx, in.Tags)
		if err != nil {
			return err
		}
		todo = models.Todo{Title: title, Description: description, Tags: tags}
		if err := tx.Create(&todo).Error; err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(todo.ID)
}

// Update applies the set fields of in to an existing todo. A non-nil
// Tags slice fully replaces the todo's tag associations; the Tag rows
// themselves are never deleted.
func (s *TodoService) Update(id uuid.UUID, in UpdateTodoInput) (*models.Todo, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.First(&todo, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoNotFound
			}
			return fmt.Errorf("failed to fetch todo: %w", err)
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			updates["description"] = strings.TrimSpace(*in.Description)
		}
		if in.Completed != nil {
			updates["completed"] = *in.Completed
		}
		if len(updates) > 0 {
			if err := tx.Model(&todo).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}
		}

		if in.Tags != nil {
			tags, err := reconcileTags(tx, *in.Tags)
			if err != nil {
				return err
			}
			assoc := tx.Model(&todo).Association("Tags")
			if len(tags) == 0 {
				if err := assoc.Clear(); err != nil {
					return fmt.Errorf("failed to clear tags: %w", err)
				}
			} else if err := assoc.Replace(tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes a todo, its tag associations and its file records.
// Stored blobs are deleted first, one per file; a blob that cannot be
// removed is logged and does not block the row deletion.
func (s *TodoService) Delete(id uuid.UUID) error {
	var todo models.Todo
	if err := s.db.Preload("Files").First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to fetch todo: %w", err)
	}

	for _, f := range todo.Files {
		if err := s.files.RemoveBlob(f.Path); err != nil {
			log.Printf("failed to delete blob %s: %v", f.Path, err)
		}
	}

	if err := s.db.Select(clause.Associations).Delete(&todo).Error; err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// reconcileTags maps raw tag names to Tag rows: names are trimmed,
// empties skipped and duplicates collapsed, then each name is resolved
// with an atomic insert-or-ignore against the unique name index.
func reconcileTags(tx *gorm.DB, names []string) ([]*models.Tag, error) {
	seen := map[string]bool{}
	tags := []*models.Tag{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		attempt := models.Tag{Name: name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&attempt).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
		}

		// Fetch whichever row owns the name, ours or a pre-existing one.
		var tag models.Tag
		if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch tag %q: %w", name, err)
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}
