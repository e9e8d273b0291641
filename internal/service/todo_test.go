package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/tododeck/internal/models"
)

func TestCreateValidatesTitle(t *testing.T) {
	todos, _, _ := newTestServices(t)

	tests := []struct {
		name  string
		title string
		want  string // "" for rejection
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"plain", "Buy milk", "Buy milk"},
		{"trimmed", "  Buy milk  ", "Buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := todos.Create(CreateTodoInput{Title: tt.title})
			if tt.want == "" {
				if !IsValidation(err) {
					t.Fatalf("Create(%q) error = %v, want ValidationError", tt.title, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tt.title, err)
			}
			if todo.Title != tt.want {
				t.Errorf("Create(%q) title = %q, want %q", tt.title, todo.Title, tt.want)
			}
			if todo.Completed {
				t.Error("new todo should not be completed")
			}
		})
	}
}

func TestCreateReconcilesTags(t *testing.T) {
	todos, _, _ := newTestServices(t)

	// Duplicates after trimming collapse, whitespace-only names drop.
	todo, err := todos.Create(CreateTodoInput{
		Title: "Tagged",
		Tags:  []string{"errand", " errand ", "home", "  ", ""},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(todo.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(todo.Tags))
	}

	// A second todo reusing a name gets the same Tag row.
	other, err := todos.Create(CreateTodoInput{Title: "Also tagged", Tags: []string{"errand"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(other.Tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(other.Tags))
	}
	if other.Tags[0].ID != tagByName(t, todo, "errand").ID {
		t.Error("tag name reuse should resolve to the same Tag id")
	}
}

func TestTagNamesAreCaseSensitive(t *testing.T) {
	todos, _, _ := newTestServices(t)

	todo, err := todos.Create(CreateTodoInput{Title: "Case", Tags: []string{"Work", "work"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(todo.Tags) != 2 {
		t.Errorf("got %d tags, want 2 distinct case-sensitive tags", len(todo.Tags))
	}
}

func TestGetNotFound(t *testing.T) {
	todos, _, _ := newTestServices(t)

	if _, err := todos.Get(uuid.New()); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Get() error = %v, want ErrTodoNotFound", err)
	}
}

func TestUpdateFieldsAreIndependent(t *testing.T) {
	todos, _, _ := newTestServices(t)

	created, err := todos.Create(CreateTodoInput{
		Title:       "Original",
		Description: strPtr("details"),
		Tags:        []string{"keep"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Toggling completed leaves title, description and tags untouched.
	updated, err := todos.Update(created.ID, UpdateTodoInput{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.Completed {
		t.Error("completed not set")
	}
	if updated.Title != "Original" || updated.Description == nil || *updated.Description != "details" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}
	if len(updated.Tags) != 1 {
		t.Errorf("tags changed on unrelated update: got %d", len(updated.Tags))
	}

	// Setting the title trims it and leaves completed alone.
	updated, err = todos.Update(created.ID, UpdateTodoInput{Title: strPtr("  Renamed ")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want %q", updated.Title, "Renamed")
	}
	if !updated.Completed {
		t.Error("completed reset by title update")
	}
}

func TestUpdateReplacesTags(t *testing.T) {
	todos, _, db := newTestServices(t)

	created, err := todos.Create(CreateTodoInput{Title: "Buy milk", Tags: []string{"errand", "home"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(created.Tags))
	}

	tags := []string{"errand"}
	updated, err := todos.Update(created.ID, UpdateTodoInput{Tags: &tags})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "errand" {
		t.Fatalf("tags after replace = %+v, want exactly [errand]", updated.Tags)
	}

	// The dropped tag survives as an orphan row, queryable by name.
	var home models.Tag
	if err := db.Where("name = ?", "home").First(&home).Error; err != nil {
		t.Errorf("orphan tag %q should still exist: %v", "home", err)
	}
}

func TestUpdateWithEmptyTagsClearsAssociations(t *testing.T) {
	todos, _, db := newTestServices(t)

	created, err := todos.Create(CreateTodoInput{Title: "Tagged", Tags: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	empty := []string{}
	updated, err := todos.Update(created.ID, UpdateTodoInput{Tags: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("got %d tags after clearing, want 0", len(updated.Tags))
	}

	var count int64
	if err := db.Model(&models.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 2 {
		t.Errorf("Tag rows = %d, want 2 (clearing associations must not delete tags)", count)
	}
}

func TestUpdateNotFound(t *testing.T) {
	todos, _, _ := newTestServices(t)

	if _, err := todos.Update(uuid.New(), UpdateTodoInput{Completed: boolPtr(true)}); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() error = %v, want ErrTodoNotFound", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	todos, _, db := newTestServices(t)

	var ids []uuid.UUID
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		todo, err := todos.Create(CreateTodoInput{Title: title})
		if err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
		// Force distinct creation times regardless of clock resolution.
		err = db.Model(&models.Todo{}).Where("id = ?", todo.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error
		if err != nil {
			t.Fatalf("failed to backdate todo: %v", err)
		}
		ids = append(ids, todo.ID)
	}

	list, err := todos.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d todos, want 3", len(list))
	}
	for i, want := range []uuid.UUID{ids[2], ids[1], ids[0]} {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestListFiltersByExactTagName(t *testing.T) {
	todos, _, _ := newTestServices(t)

	tagged, err := todos.Create(CreateTodoInput{Title: "Tagged", Tags: []string{"errand"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := todos.Create(CreateTodoInput{Title: "Plain"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := todos.List("errand")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != tagged.ID {
		t.Fatalf("filter returned %d todos, want exactly the tagged one", len(list))
	}

	// Filters match exactly, no case folding.
	list, err = todos.List("Errand")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("case-different filter returned %d todos, want 0", len(list))
	}

	// No filter returns everything.
	list, err = todos.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("unfiltered list = %d todos, want 2", len(list))
	}
}

func TestDeleteCascadesFilesAndKeepsTags(t *testing.T) {
	todos, files, db := newTestServices(t)

	created, err := todos.Create(CreateTodoInput{Title: "With file", Tags: []string{"keep"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	attached, err := files.Attach(created.ID, dataURL("text/plain", "hello"), "note.txt", "text/plain")
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if _, err := os.Stat(attached.Path); err != nil {
		t.Fatalf("blob missing after attach: %v", err)
	}

	if err := todos.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := todos.Get(created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTodoNotFound", err)
	}

	var fileCount int64
	if err := db.Model(&models.TodoFile{}).Where("todo_id = ?", created.ID).Count(&fileCount).Error; err != nil {
		t.Fatalf("count files: %v", err)
	}
	if fileCount != 0 {
		t.Errorf("TodoFile rows after delete = %d, want 0", fileCount)
	}
	if _, err := os.Stat(attached.Path); !os.IsNotExist(err) {
		t.Errorf("blob still on disk after todo delete")
	}

	var tag models.Tag
	if err := db.Where("name = ?", "keep").First(&tag).Error; err != nil {
		t.Errorf("orphan tag should survive todo deletion: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	todos, _, _ := newTestServices(t)

	if err := todos.Delete(uuid.New()); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Delete() error = %v, want ErrTodoNotFound", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	todos, _, _ := newTestServices(t)

	created, err := todos.Create(CreateTodoInput{
		Title:       "Buy milk",
		Description: strPtr("2 liters"),
		Tags:        []string{"errand", "home"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := todos.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Buy milk" || got.Description == nil || *got.Description != "2 liters" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Completed {
		t.Error("completed should default to false")
	}
	if len(got.Tags) != 2 {
		t.Errorf("got %d tags, want 2", len(got.Tags))
	}
	if len(got.Files) != 0 {
		t.Errorf("got %d files on a fresh todo, want 0", len(got.Files))
	}

	if _, err := todos.Update(created.ID, UpdateTodoInput{Completed: boolPtr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err = todos.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Completed || got.Title != "Buy milk" {
		t.Errorf("after completing: completed=%v title=%q", got.Completed, got.Title)
	}
}

func tagByName(t *testing.T, todo *models.Todo, name string) *models.Tag {
	t.Helper()
	for _, tag := range todo.Tags {
		if tag.Name == name {
			return tag
		}
	}
	t.Fatalf("tag %q not found on todo %s", name, todo.ID)
	return nil
}
