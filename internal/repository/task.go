package repository

import (
	"context"
	"time"

	"github.com/taskhub/taskhub/internal/domain"
)

type ListTasksInput struct {
	UserID string
	Status domain.Status // empty = all statuses
	Search string        // case-insensitive substring match on title
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}

// Every read and write below is scoped by the owning user ID, and
// soft-deleted tasks are invisible to all of them except PurgeDeleted.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, taskID, userID string, patch TaskPatch) (*domain.Task, error)
	SoftDelete(ctx context.Context, taskID, userID string) error

	// PurgeDeleted physically removes tasks soft-deleted before cutoff.
	// Used only by the retention sweeper.
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error)
}
