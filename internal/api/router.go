package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kutbudev/tododeck/internal/api/handlers"
	"github.com/kutbudev/tododeck/internal/api/middleware"
	"github.com/kutbudev/tododeck/internal/config"
	"github.com/kutbudev/tododeck/internal/service"
	"github.com/kutbudev/tododeck/web"
)

// NewRouter wires the API, the uploads root and the embedded UI into a
// gin engine.
func NewRouter(cfg *config.Config, todos *service.TodoService, files *service.FileService) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Metrics())

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	todoHandler := handlers.NewTodoHandler(todos)
	fileHandler := handlers.NewFileHandler(files)

	api := r.Group("/api")
	{
		api.GET("/todos", todoHandler.List)
		api.POST("/todos", todoHandler.Create)
		api.GET("/todos/:id", todoHandler.Get)
		api.PUT("/todos/:id", todoHandler.Update)
		api.DELETE("/todos/:id", todoHandler.Delete)

		api.POST("/files", fileHandler.Upload)
		api.DELETE("/files/:id", fileHandler.Delete)
	}

	// Uploaded attachments are served straight from the managed directory.
	r.Static(cfg.Uploads.URL, files.Dir())

	registerUI(r)

	return r
}

// registerUI serves the embedded single-page frontend.
func registerUI(r *gin.Engine) {
	asset := func(route, name, contentType string) {
		r.GET(route, func(c *gin.Context) {
			data, err := web.Static.ReadFile("static/" + name)
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.Data(http.StatusOK, contentType, data)
		})
	}
	asset("/", "index.html", "text/html; charset=utf-8")
	asset("/app.js", "app.js", "application/javascript")
	asset("/styles.css", "styles.css", "text/css; charset=utf-8")
}
