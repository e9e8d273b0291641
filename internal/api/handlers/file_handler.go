package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/tododeck/internal/service"
)

// UploadFileInput DTO for attaching a file to a todo. File carries the
// whole payload as a data-URL envelope.
type UploadFileInput struct {
	TodoID   string `json:"todoId"`
	File     string `json:"file"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
}

// FileHandler exposes attachment upload and deletion over HTTP.
type FileHandler struct {
	files *service.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// Upload decodes the inline payload and attaches it to a todo.
func (h *FileHandler) Upload(c *gin.Context) {
	var input UploadFileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.TodoID == "" || input.File == "" || input.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	todoID, err := uuid.Parse(input.TodoID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	file, err := h.files.Attach(todoID, input.File, input.Filename, input.Mimetype)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

// Delete removes an attachment: stored bytes first, then the record.
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := h.files.Detach(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
