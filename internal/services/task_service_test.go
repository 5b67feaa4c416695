package services

import (
	"strings"
	"testing"
	"time"

	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskService(t *testing.T) (*TaskService, *gorm.DB, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Password:  "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)

	return NewTaskService(repository.NewTaskRepository(db)), db, user
}

func (s *TaskService) mustCreate(t *testing.T, input CreateTaskInput) *models.Task {
	t.Helper()
	task, err := s.CreateTask(input)
	require.NoError(t, err)
	return task
}

func baseInput(userID uint64) CreateTaskInput {
	return CreateTaskInput{
		Name:        "Task",
		Description: "desc",
		DueDate:     models.NewDate(2025, time.June, 1),
		CreatedByID: userID,
	}
}

func TestTaskService_CreateDefaults(t *testing.T) {
	svc, _, user := setupTaskService(t)

	task := svc.mustCreate(t, baseInput(user.ID))
	require.NotZero(t, task.ID)
	require.Equal(t, models.PriorityLow, task.Priority)
	require.Equal(t, models.StatusPending, task.Status)
	require.Equal(t, user.ID, task.CreatedByID)
	require.Nil(t, task.AssigneeID)
	require.Nil(t, task.StartDate)
}

func TestTaskService_CreateTrimsAndValidates(t *testing.T) {
	svc, _, user := setupTaskService(t)

	input := baseInput(user.ID)
	input.Name = "  Trimmed  "
	input.Description = "  also trimmed "
	task := svc.mustCreate(t, input)
	require.Equal(t, "Trimmed", task.Name)
	require.Equal(t, "also trimmed", task.Description)

	input = baseInput(user.ID)
	input.Name = "   "
	_, err := svc.CreateTask(input)
	require.ErrorIs(t, err, ErrNameLength)

	input = baseInput(user.ID)
	input.Name = strings.Repeat("x", 129)
	_, err = svc.CreateTask(input)
	require.ErrorIs(t, err, ErrNameLength)

	input = baseInput(user.ID)
	bad := models.Priority("urgent")
	input.Priority = &bad
	_, err = svc.CreateTask(input)
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	svc, db, user := setupTaskService(t)

	input := baseInput(user.ID)
	medium := models.PriorityMedium
	input.Priority = &medium
	task := svc.mustCreate(t, input)

	status := models.StatusCompleted
	require.NoError(t, svc.UpdateTask(task.ID, UpdateTaskInput{Status: &status}))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Equal(t, models.StatusCompleted, stored.Status)
	require.Equal(t, task.Name, stored.Name)
	require.Equal(t, models.PriorityMedium, stored.Priority)
	require.Equal(t, task.DueDate.String(), stored.DueDate.String())
}

func TestTaskService_EmptyUpdateLeavesFieldsUnchanged(t *testing.T) {
	svc, db, user := setupTaskService(t)
	task := svc.mustCreate(t, baseInput(user.ID))

	require.NoError(t, svc.UpdateTask(task.ID, UpdateTaskInput{}))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Equal(t, task.Name, stored.Name)
	require.Equal(t, task.Description, stored.Description)
	require.Equal(t, task.Priority, stored.Priority)
	require.Equal(t, task.Status, stored.Status)
	require.Equal(t, task.DueDate.String(), stored.DueDate.String())
}

func TestTaskService_UpdateClearsOptionalFields(t *testing.T) {
	svc, db, user := setupTaskService(t)

	start := models.NewDate(2025, time.May, 20)
	input := baseInput(user.ID)
	input.AssigneeID = &user.ID
	input.StartDate = &start
	task := svc.mustCreate(t, input)

	require.NoError(t, svc.UpdateTask(task.ID, UpdateTaskInput{
		ClearAssignee:  true,
		ClearStartDate: true,
	}))

	var stored models.Task
	require.NoError(t, db.First(&stored, task.ID).Error)
	require.Nil(t, stored.AssigneeID)
	require.Nil(t, stored.StartDate)
}

func TestTaskService_UpdateUnknownTask(t *testing.T) {
	svc, _, _ := setupTaskService(t)

	status := models.StatusCompleted
	require.ErrorIs(t, svc.UpdateTask(9999, UpdateTaskInput{Status: &status}), ErrTaskNotFound)
}

func TestTaskService_DeleteThenGet(t *testing.T) {
	svc, _, user := setupTaskService(t)
	task := svc.mustCreate(t, baseInput(user.ID))

	require.NoError(t, svc.DeleteTask(task.ID))
	require.ErrorIs(t, svc.DeleteTask(task.ID), ErrTaskNotFound)

	_, err := svc.GetTask(task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func seedListTasks(t *testing.T, svc *TaskService, userID uint64) {
	t.Helper()

	seeds := []struct {
		name     string
		desc     string
		priority models.Priority
		status   models.Status
		due      models.Date
	}{
		{"Write report", "quarterly numbers", models.PriorityHigh, models.StatusPending, models.NewDate(2025, time.June, 3)},
		{"Review PR", "code review for API", models.PriorityMedium, models.StatusInProgress, models.NewDate(2025, time.June, 1)},
		{"Plan sprint", "REPORT to the team", models.PriorityLow, models.StatusPending, models.NewDate(2025, time.June, 2)},
		{"Ship release", "deploy to production", models.PriorityHigh, models.StatusCompleted, models.NewDate(2025, time.June, 5)},
		{"Fix bug", "crash on login", models.PriorityMedium, models.StatusPending, models.NewDate(2025, time.June, 4)},
	}

	for _, seed := range seeds {
		input := CreateTaskInput{
			Name:        seed.name,
			Description: seed.desc,
			DueDate:     seed.due,
			CreatedByID: userID,
		}
		priority := seed.priority
		input.Priority = &priority
		task := svc.mustCreate(t, input)

		if seed.status != models.StatusPending {
			status := seed.status
			require.NoError(t, svc.UpdateTask(task.ID, UpdateTaskInput{Status: &status}))
		}
	}
}

func TestTaskService_ListFilters(t *testing.T) {
	svc, _, user := setupTaskService(t)
	seedListTasks(t, svc, user.ID)

	pending := models.StatusPending
	tasks, total, err := svc.ListTasks(ListTasksInput{Status: &pending, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	for _, task := range tasks {
		require.Equal(t, models.StatusPending, task.Status)
	}

	high := models.PriorityHigh
	tasks, total, err = svc.ListTasks(ListTasksInput{Priority: &high, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, task := range tasks {
		require.Equal(t, models.PriorityHigh, task.Priority)
	}

	// Combined filters are AND-ed
	tasks, total, err = svc.ListTasks(ListTasksInput{Status: &pending, Priority: &high, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Write report", tasks[0].Name)
}

func TestTaskService_ListSearchCaseInsensitive(t *testing.T) {
	svc, _, user := setupTaskService(t)
	seedListTasks(t, svc, user.ID)

	// Matches "Write report" by name and "Plan sprint" by description
	_, total, err := svc.ListTasks(ListTasksInput{Search: "RePoRt", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestTaskService_ListSort(t *testing.T) {
	svc, _, user := setupTaskService(t)
	seedListTasks(t, svc, user.ID)

	tasks, _, err := svc.ListTasks(ListTasksInput{SortBy: "dueDate", SortOrder: "asc", Page: 1, PageSize: 10})
	require.NoError(t, err)
	for i := 1; i < len(tasks); i++ {
		require.False(t, tasks[i].DueDate.Before(tasks[i-1].DueDate.Time))
	}

	tasks, _, err = svc.ListTasks(ListTasksInput{SortBy: "dueDate", SortOrder: "desc", Page: 1, PageSize: 10})
	require.NoError(t, err)
	for i := 1; i < len(tasks); i++ {
		require.False(t, tasks[i].DueDate.After(tasks[i-1].DueDate.Time))
	}

	// Unknown sort keys are ignored, never an error
	_, total, err := svc.ListTasks(ListTasksInput{SortBy: "malicious_column", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
}

func TestTaskService_ListPaginationInvariants(t *testing.T) {
	svc, _, user := setupTaskService(t)
	seedListTasks(t, svc, user.ID)

	limit := 2
	var collected int
	for page := 1; ; page++ {
		tasks, total, err := svc.ListTasks(ListTasksInput{Page: page, PageSize: limit})
		require.NoError(t, err)
		require.LessOrEqual(t, len(tasks), limit)
		require.Equal(t, int64(5), total)

		collected += len(tasks)
		if len(tasks) == 0 {
			break
		}
	}
	require.Equal(t, 5, collected)
}
