package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutbudev/tododeck/internal/service"
)

// TodoHandler exposes todo CRUD over HTTP.
type TodoHandler struct {
	todos *service.TodoService
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// List returns all todos, optionally filtered by exact tag name.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Query("tag"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// Create creates a new todo from the request body.
func (h *TodoHandler) Create(c *gin.Context) {
	var input service.CreateTodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	todo, err := h.todos.Create(input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// Get retrieves a single todo by its ID.
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	todo, err := h.todos.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Update partially updates an existing todo.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	var input service.UpdateTodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	todo, err := h.todos.Update(id, input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Delete removes a todo and cascades its attachments.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	if err := h.todos.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
