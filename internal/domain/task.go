package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrDuplicateTitle  = errors.New("task with this title already exists")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
