package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/usecase"
)

type TaskHandler struct {
	taskUsecase *usecase.TaskUsecase
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase *usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTitleRequired):
			respondError(c, http.StatusBadRequest, errTitleRequired)
		case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidPriority):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateTitle):
			respondError(c, http.StatusBadRequest, errDuplicateTitle)
		default:
			h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
			respondError(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"task": toTaskResponse(task)},
	})
}

// GET /api/tasks?status=<status>&search=<substr>
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), usecase.ListTasksInput{
		UserID: c.GetString("userID"),
		Status: domain.Status(c.Query("status")),
		Search: c.Query("search"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(items),
		"data":    gin.H{"tasks": items},
	})
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetTask(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, errTaskNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get task", "task_id", taskID, "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": toTaskResponse(task)},
	})
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status"`
	Priority    *domain.Priority `json:"priority"`
}

// PUT /api/tasks/:id
// Only fields present in the body are changed.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), usecase.UpdateTaskInput{
		UserID:      c.GetString("userID"),
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			respondError(c, http.StatusNotFound, errTaskNotFound)
		case errors.Is(err, domain.ErrTitleRequired):
			respondError(c, http.StatusBadRequest, errTitleRequired)
		case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidPriority):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateTitle):
			respondError(c, http.StatusBadRequest, errDuplicateTitle)
		default:
			h.logger.ErrorContext(c.Request.Context(), "update task", "task_id", taskID, "error", err)
			respondError(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": toTaskResponse(task)},
	})
}

// DELETE /api/tasks/:id — soft delete. Deleting a task that is already
// deleted reports not found, since it is no longer visible.
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	err := h.taskUsecase.DeleteTask(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, errTaskNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete task", "task_id", taskID, "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.Status(http.StatusNoContent)
}
