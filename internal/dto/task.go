package dto

import (
	"time"

	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedByID uint64          `json:"createdById"`
	AssigneeID  *uint64         `json:"assigneeId"`
	DueDate     models.Date     `json:"dueDate"`
	StartDate   *models.Date    `json:"startDate"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedOn   time.Time       `json:"updatedOn"`
}

// CreateTaskResponse is returned after a successful task creation
type CreateTaskResponse struct {
	Message string `json:"message"`
	TaskID  uint64 `json:"taskId"`
}

// PaginationDTO represents pagination metadata in list responses
type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Count      int   `json:"count"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Message    string        `json:"message"`
	Tasks      []TaskDTO     `json:"tasks"`
	Pagination PaginationDTO `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		CreatedByID: task.CreatedByID,
		AssigneeID:  task.AssigneeID,
		DueDate:     task.DueDate,
		StartDate:   task.StartDate,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedOn:   task.UpdatedOn,
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(message string, tasks []models.Task, page, limit int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Message: message,
		Tasks:   items,
		Pagination: PaginationDTO{
			Page:       page,
			Limit:      limit,
			Count:      len(items),
			Total:      total,
			TotalPages: utils.TotalPages(total, limit),
		},
	}
}
