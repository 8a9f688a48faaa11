package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	return created, nil
}

type ListTasksInput struct {
	UserID string
	Status domain.Status
	Search string
}

func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID: input.UserID,
		Status: input.Status,
		Search: input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

type UpdateTaskInput struct {
	UserID      string
	TaskID      string
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

// UpdateTask applies only the fields present in the input. A nil field
// leaves the stored value untouched.
func (u *TaskUsecase) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	patch := repository.TaskPatch{
		Description: input.Description,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		patch.Title = &title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		patch.Status = input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		patch.Priority = input.Priority
	}

	if patch.Empty() {
		return u.repo.GetByID(ctx, input.TaskID, input.UserID)
	}

	updated, err := u.repo.Update(ctx, input.TaskID, input.UserID, patch)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, taskID, userID string) error {
	return u.repo.SoftDelete(ctx, taskID, userID)
}
