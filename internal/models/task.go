package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priority values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether s is one of the known status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedByID uint64    `gorm:"not null;index" json:"created_by_id"`
	AssigneeID  *uint64   `gorm:"index" json:"assignee_id"`
	DueDate     Date      `gorm:"not null" json:"due_date"`
	StartDate   *Date     `json:"start_date"`
	Priority    Priority  `gorm:"type:varchar(20);not null;default:'low'" json:"priority"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedOn   time.Time `gorm:"column:updated_on;autoUpdateTime" json:"updated_on"`

	// Relations
	CreatedBy User  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"created_by,omitempty"`
	Assignee  *User `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
}
