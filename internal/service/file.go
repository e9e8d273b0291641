package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kutbudev/tododeck/internal/models"
)

// dataURLPattern matches the `data:<mimetype>;base64,<payload>` envelope
// the upload endpoint accepts.
var dataURLPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+_-]+/[A-Za-z0-9.+_-]+);base64,(.+)$`)

// StoredFile describes the outcome of writing an attachment to disk.
type StoredFile struct {
	Path string // absolute server-side storage location
	URL  string // public retrieval path
	Size int64  // bytes written
}

// FileService persists attachment bytes under a single managed directory
// and keeps TodoFile metadata rows in lockstep with the blobs.
type FileService struct {
	db  *gorm.DB
	dir string
	url string
}

// NewFileService creates a new file service
func NewFileService(db *gorm.DB, dir, url string) *FileService {
	return &FileService{db: db, dir: dir, url: strings.TrimSuffix(url, "/")}
}

// Dir returns the managed uploads directory.
func (s *FileService) Dir() string {
	return s.dir
}

// EnsureDir creates the managed directory if it does not exist yet.
// Safe to call before every store.
func (s *FileService) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Store decodes a data-URL envelope and writes the payload under the
// managed directory with a freshly generated name.
func (s *FileService) Store(dataURL, filename string) (*StoredFile, error) {
	m := dataURLPattern.FindStringSubmatch(dataURL)
	if m == nil {
		return nil, &ValidationError{Msg: "invalid data URL"}
	}
	mimetype := m[1]

	raw, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, &ValidationError{Msg: "invalid base64 payload"}
	}

	if err := s.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + "." + storageExtension(filename, mimetype)
	path, err := filepath.Abs(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload path: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Path: path,
		URL:  s.url + "/" + name,
		Size: int64(len(raw)),
	}, nil
}

// RemoveBlob unlinks a stored attachment. Paths resolving outside the
// managed directory are refused with ErrOutsideUploadRoot. An already
// missing file is not an error; retried deletes hit this routinely.
func (s *FileService) RemoveBlob(path string) error {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	norm, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(norm, root+string(os.PathSeparator)) {
		return ErrOutsideUploadRoot
	}

	if err := os.Remove(norm); err != nil {
		if os.IsNotExist(err) {
			log.Printf("blob already absent: %s", norm)
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Attach stores the decoded payload and records a TodoFile row for the
// owning todo. The todo must exist.
func (s *FileService) Attach(todoID uuid.UUID, dataURL, filename, mimetype string) (*models.TodoFile, error) {
	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to fetch todo: %w", err)
	}

	stored, err := s.Store(dataURL, filename)
	if err != nil {
		return nil, err
	}

	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	file := models.TodoFile{
		TodoID:   todoID,
		Filename: filename,
		Path:     stored.Path,
		URL:      stored.URL,
		Mimetype: mimetype,
		Size:     stored.Size,
	}
	if err := s.db.Create(&file).Error; err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}
	return &file, nil
}

// Detach deletes an attachment: blob first, then the metadata row.
// A refused (outside-root) blob delete aborts and keeps the row; any
// other blob failure is logged and the row is removed anyway.
func (s *FileService) Detach(id uuid.UUID) error {
	var file models.TodoFile
	if err := s.db.First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to fetch file: %w", err)
	}

	if err := s.RemoveBlob(file.Path); err != nil {
		if errors.Is(err, ErrOutsideUploadRoot) {
			return err
		}
		log.Printf("failed to delete blob %s: %v", file.Path, err)
	}

	if err := s.db.Delete(&file).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

// storageExtension picks the stored file's extension: the suggested
// filename's extension, else the mimetype subtype, else "bin".
func storageExtension(filename, mimetype string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return filename[i+1:]
	}
	if i := strings.Index(mimetype, "/"); i >= 0 && i < len(mimetype)-1 {
		return mimetype[i+1:]
	}
	return "bin"
}
