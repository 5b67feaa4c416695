package repository

import (
	"github.com/coe-app/task-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering, sorting and pagination options for listing tasks
type TaskFilter struct {
	Status    *models.Status
	Priority  *models.Priority
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email match
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user, deletes the tasks they created and clears
	// the assignee reference on tasks they were assigned to, atomically.
	Delete(id uint64) error
}
