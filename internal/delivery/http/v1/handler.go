package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"task-api/internal/store"
)

type Handler interface {
	HandleRequestIDMiddleware(c *gin.Context)
	HandleLoggingMiddleware(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleHealth(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  store.TaskStore
}

func New(logger zerolog.Logger, taskStore store.TaskStore) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskStore,
	}
}

// RegisterRoutes mounts the task routes and the health check
// on the given router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/healthz", h.HandleHealth)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleListTasks)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
