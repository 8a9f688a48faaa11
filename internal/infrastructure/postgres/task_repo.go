package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, status, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, description, status, priority,
		          is_deleted, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
	)

	created, err := scanTask(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, err
	}
	return created, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, priority,
		       is_deleted, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2 AND NOT is_deleted`

	row := r.pool.QueryRow(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	args := []any{input.UserID}
	where := []string{"user_id = $1", "NOT is_deleted"}

	if input.Status != "" {
		args = append(args, input.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.Search != "" {
		args = append(args, input.Search)
		where = append(where, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}

	// High priority first, newest first within the same priority.
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, status, priority,
		       is_deleted, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY CASE priority
		           WHEN 'High' THEN 3
		           WHEN 'Medium' THEN 2
		           ELSE 1
		         END DESC,
		         created_at DESC`,
		strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, taskID, userID string, patch repository.TaskPatch) (*domain.Task, error) {
	args := []any{taskID, userID}
	set := []string{"updated_at = NOW()"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $1 AND user_id = $2 AND NOT is_deleted
		RETURNING id, user_id, title, description, status, priority,
		          is_deleted, created_at, updated_at`,
		strings.Join(set, ", "))

	row := r.pool.QueryRow(ctx, query, args...)
	updated, err := scanTask(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, err
	}
	return updated, nil
}

func (r *TaskRepository) SoftDelete(ctx context.Context, taskID, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND NOT is_deleted`,
		taskID, userID)
	if err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE is_deleted AND updated_at < $1`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge deleted tasks: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.IsDeleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
