package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/kutbudev/tododeck/internal/models"
	"github.com/kutbudev/tododeck/internal/service"
)

// Client talks to a running tododeck server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a new API client. The base URL comes from TODODECK_URL
// and defaults to a local server.
func New() *Client {
	baseURL := os.Getenv("TODODECK_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response body
func (c *Client) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// ListTodos fetches all todos, optionally filtered by tag name.
func (c *Client) ListTodos(tag string) ([]models.Todo, error) {
	endpoint := "/api/todos"
	if tag != "" {
		endpoint += "?tag=" + url.QueryEscape(tag)
	}
	body, err := c.makeRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var todos []models.Todo
	if err := json.Unmarshal(body, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}
	return todos, nil
}

// GetTodo fetches a single todo.
func (c *Client) GetTodo(id string) (*models.Todo, error) {
	body, err := c.makeRequest(http.MethodGet, "/api/todos/"+id, nil)
	if err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return nil, fmt.Errorf("failed to decode todo: %w", err)
	}
	return &todo, nil
}

// CreateTodo creates a new todo.
func (c *Client) CreateTodo(in service.CreateTodoInput) (*models.Todo, error) {
	body, err := c.makeRequest(http.MethodPost, "/api/todos", in)
	if err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return nil, fmt.Errorf("failed to decode todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo partially updates a todo.
func (c *Client) UpdateTodo(id string, in service.UpdateTodoInput) (*models.Todo, error) {
	body, err := c.makeRequest(http.MethodPut, "/api/todos/"+id, in)
	if err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return nil, fmt.Errorf("failed to decode todo: %w", err)
	}
	return &todo, nil
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(id string) error {
	_, err := c.makeRequest(http.MethodDelete, "/api/todos/"+id, nil)
	return err
}

// UploadFile attaches an inline data-URL payload to a todo.
func (c *Client) UploadFile(todoID, dataURL, filename, mimetype string) (*models.TodoFile, error) {
	payload := map[string]string{
		"todoId":   todoID,
		"file":     dataURL,
		"filename": filename,
		"mimetype": mimetype,
	}
	body, err := c.makeRequest(http.MethodPost, "/api/files", payload)
	if err != nil {
		return nil, err
	}
	var file models.TodoFile
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	return &file, nil
}

// DeleteFile detaches a file and removes its stored bytes.
func (c *Client) DeleteFile(id string) error {
	_, err := c.makeRequest(http.MethodDelete, "/api/files/"+id, nil)
	return err
}
