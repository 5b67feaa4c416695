package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coe-app/task-api/internal/dto"
	apierrors "github.com/coe-app/task-api/internal/errors"
	"github.com/coe-app/task-api/internal/middleware"
	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/services"
	"github.com/coe-app/task-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Name        string           `json:"name" binding:"required"`
		Description *string          `json:"description" binding:"required"`
		AssigneeID  *uint64          `json:"assigneeId" binding:"omitempty,gt=0"`
		DueDate     models.Date      `json:"dueDate" binding:"required"`
		StartDate   *models.Date     `json:"startDate"`
		Priority    *models.Priority `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntityWithDetails(c, "Validation failed", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:        req.Name,
		Description: *req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		StartDate:   req.StartDate,
		Priority:    req.Priority,
		CreatedByID: userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTaskResponse{
		Message: "Task created successfully",
		TaskID:  task.ID,
	})
}

// ListTasks returns a filtered, sorted, paginated page of tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	input := services.ListTasksInput{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      params.Page,
		PageSize:  params.Limit,
	}

	if raw := c.Query("status"); raw != "" {
		status := models.Status(raw)
		if !status.IsValid() {
			apierrors.UnprocessableEntity(c, "invalid status filter")
			return
		}
		input.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.Priority(raw)
		if !priority.IsValid() {
			apierrors.UnprocessableEntity(c, "invalid priority filter")
			return
		}
		input.Priority = &priority
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(
		"Task fetched successfully", tasks, params.Page, params.Limit, total))
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task. Name, description and
// due date may be replaced but never cleared.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		AssigneeID  *uint64          `json:"assigneeId"`
		DueDate     *models.Date     `json:"dueDate"`
		StartDate   *models.Date     `json:"startDate"`
		Priority    *models.Priority `json:"priority"`
		Status      *models.Status   `json:"status"`
	}

	var req UpdateTaskRequest
	fields, err := decodePartial(c, &req, "name", "description", "dueDate")
	if err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	err = h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Name:           req.Name,
		Description:    req.Description,
		AssigneeID:     req.AssigneeID,
		ClearAssignee:  fieldIsNull(fields, "assigneeId"),
		DueDate:        req.DueDate,
		StartDate:      req.StartDate,
		ClearStartDate: fieldIsNull(fields, "startDate"),
		Priority:       req.Priority,
		Status:         req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task data updated successfully"})
}

// DeleteTask removes a task by ID.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task removed successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameLength),
		errors.Is(err, services.ErrDescriptionLength),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
