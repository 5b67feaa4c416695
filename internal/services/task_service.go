package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNameLength        = fmt.Errorf("name must be between %d and %d characters", constants.MinNameLength, constants.MaxTaskNameLength)
	ErrDescriptionLength = fmt.Errorf("description must be at most %d characters", constants.MaxDescriptionLength)
	ErrInvalidPriority   = errors.New("invalid priority value")
	ErrInvalidStatus     = errors.New("invalid status value")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters, sorting and pagination for listing tasks
type ListTasksInput struct {
	Status    *models.Status
	Priority  *models.Priority
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	AssigneeID  *uint64
	DueDate     models.Date
	StartDate   *models.Date
	Priority    *models.Priority
	CreatedByID uint64
}

// UpdateTaskInput represents input for a partial task update. Nil
// fields are left untouched. Name, description and due date can never
// be cleared; assignee and start date can, via the Clear flags.
type UpdateTaskInput struct {
	Name           *string
	Description    *string
	AssigneeID     *uint64
	ClearAssignee  bool
	DueDate        *models.Date
	StartDate      *models.Date
	ClearStartDate bool
	Priority       *models.Priority
	Status         *models.Status
}

// ListTasks returns a filtered, sorted, paginated page of tasks along
// with the total number of filter-matching rows.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:    input.Status,
		Priority:  input.Priority,
		Search:    input.Search,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task. Status always starts at pending and
// the creator is always the caller, regardless of input.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < constants.MinNameLength || len(name) > constants.MaxTaskNameLength {
		return nil, ErrNameLength
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > constants.MaxDescriptionLength {
		return nil, ErrDescriptionLength
	}

	priority := models.PriorityLow
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		priority = *input.Priority
	}

	task := &models.Task{
		Name:        name,
		Description: description,
		CreatedByID: input.CreatedByID,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
		StartDate:   input.StartDate,
		Priority:    priority,
		Status:      models.StatusPending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to an existing task
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < constants.MinNameLength || len(name) > constants.MaxTaskNameLength {
			return ErrNameLength
		}
		task.Name = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if len(description) > constants.MaxDescriptionLength {
			return ErrDescriptionLength
		}
		task.Description = description
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.ClearStartDate {
		task.StartDate = nil
	} else if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes a task by ID. Any authenticated user may delete
// any task; there is no ownership check.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
