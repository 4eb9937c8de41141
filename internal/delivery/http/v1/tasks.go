package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task-api/internal/models"
	"task-api/internal/store"
)

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// HandleListTasks godoc
//
//	@Summary  List all tasks
//	@Produce  json
//	@Success  200  {array}  taskResponse
//	@Router   /tasks [get]
func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		h.abortStoreError(c, err)
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}

	h.logger.Info().
		Int("count", len(response)).
		Msg("listed tasks")
	c.JSON(http.StatusOK, response)
}

// HandleGetTask godoc
//
//	@Summary  Get a task by id
//	@Produce  json
//	@Param    id  path  string  true  "Task ID"
//	@Success  200  {object}  taskResponse
//	@Failure  404  {object}  map[string]string
//	@Router   /tasks/{id} [get]
func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.tasks.Get(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		h.abortStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,max=64"`
}

// HandleCreateTask godoc
//
//	@Summary  Create a task
//	@Accept   json
//	@Produce  json
//	@Param    body  body  createTaskRequest  true  "Task body"
//	@Success  201  {object}  taskResponse
//	@Failure  400  {object}  map[string]string
//	@Router   /tasks [post]
func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	fields := store.CreateFields{Title: req.Title}
	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.Status != nil {
		fields.Status = *req.Status
	}

	task, err := h.tasks.Create(c, fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		h.abortStoreError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", task.ID.Hex()).
		Msg("created task")
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,max=64"`
}

// HandleUpdateTask godoc
//
//	@Summary  Partially update a task
//	@Accept   json
//	@Produce  json
//	@Param    id    path  string             true  "Task ID"
//	@Param    body  body  updateTaskRequest  true  "Fields to change"
//	@Success  200  {object}  taskResponse
//	@Failure  400  {object}  map[string]string
//	@Failure  404  {object}  map[string]string
//	@Router   /tasks/{id} [put]
func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Update(c, taskID, store.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		h.abortStoreError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", taskID).
		Msg("updated task")
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// HandleDeleteTask godoc
//
//	@Summary  Delete a task
//	@Produce  json
//	@Param    id  path  string  true  "Task ID"
//	@Success  200  {object}  taskResponse
//	@Failure  404  {object}  map[string]string
//	@Router   /tasks/{id} [delete]
func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.tasks.Delete(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		h.abortStoreError(c, err)
		return
	}

	h.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	c.JSON(http.StatusOK, newTaskResponse(task))
}
