package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskman/delivery/rest/dto"
	"taskman/infrastructure/logger"
	"taskman/internal/domain"
	"taskman/internal/usecase"
)

// Handler handles HTTP requests
type Handler struct {
	taskService *usecase.TaskService
	log         *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(taskService *usecase.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
		log:         logger.Named("rest"),
	}
}

// ListTasks handles GET /tasks
func (h *Handler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.log.Error("Failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list tasks",
		})
		return
	}

	c.JSON(http.StatusOK, dto.FromModels(tasks))
}

// GetTask handles GET /tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, dto.FromModel(task))
}

// CreateTask handles POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req.ToModel())
	if err != nil {
		h.respondError(c, err, "Failed to create task")
		return
	}

	h.log.Info("Task created", zap.String("id", task.ID))
	c.JSON(http.StatusCreated, dto.FromModel(task))
}

// UpdateTask handles PUT /tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		h.respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.FromModel(task))
}

// ToggleTask handles PATCH /tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.ToggleTask(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to toggle task")
		return
	}

	c.JSON(http.StatusOK, dto.FromModel(task))
}

// DeleteTask handles DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.DeleteTask(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to delete task")
		return
	}

	h.log.Info("Task deleted", zap.String("id", id))
	c.JSON(http.StatusOK, dto.DeleteTaskResponse{
		Message: "Task deleted successfully",
		Task:    dto.FromModel(task),
	})
}

// GetStats handles GET /tasks/stats/summary
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to get statistics",
		})
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:        stats.Total,
		Completed:    stats.Completed,
		Pending:      stats.Pending,
		HighPriority: stats.HighPriority,
	})
}

// respondError maps domain errors to HTTP responses. Validation failures
// become 400, missing tasks 404, everything else a generic 500.
func (h *Handler) respondError(c *gin.Context, err error, internalMsg string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: ve.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "task_not_found",
			Message: "Task not found",
		})
	default:
		h.log.Error(internalMsg, zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: internalMsg,
		})
	}
}
