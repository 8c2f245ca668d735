package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const taskEntity = "task"

// TaskStore implements the store.TaskStore interface on top of a database/sql pool.
type TaskStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// NewTaskStore creates a new TaskStore.
// It accepts a connection pool that is owned by the store from then on:
// Close closes it. If logger is nil, a default logger will be used.
func NewTaskStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// EnsureSchema implements store.TaskStore.EnsureSchema.
// On PostgreSQL the DDL runs under a transaction-scoped advisory lock, since
// concurrent CREATE TABLE IF NOT EXISTS can still collide in the catalog.
func (s *TaskStore) EnsureSchema(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if s.dialect.schemaLock != "" {
			if _, err := tx.ExecContext(ctx, s.dialect.schemaLock); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, s.dialect.createTable)
		return err
	})
	if err != nil {
		log.Error("failed to ensure tasks table",
			slog.String("error", err.Error()),
			slog.String("dialect", s.dialect.Name()))
		return store.NewStoreError(taskEntity, "ensure schema", "failed to create tasks table", MapError(err))
	}

	log.Debug("tasks table ensured", slog.String("dialect", s.dialect.Name()))
	return nil
}

// ListAll implements store.TaskStore.ListAll.
func (s *TaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, s.dialect.listTasks)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError(taskEntity, "list", "failed to query tasks", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(taskEntity, "list", "failed to scan task", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError(taskEntity, "list", "failed to iterate tasks", MapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	task, err := scanTask(s.db.QueryRowContext(ctx, s.dialect.getTask, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError(taskEntity, "get", "failed to query task", MapError(err))
	}

	return task, nil
}

// Create implements store.TaskStore.Create.
// The returned task carries the ID generated by the database.
func (s *TaskStore) Create(ctx context.Context, fields domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id int64
	err := s.db.QueryRowContext(
		ctx,
		s.dialect.insertTask,
		toNullString(fields.Title),
		toNullString(fields.Description),
	).Scan(&id)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, store.NewStoreError(taskEntity, "create", "failed to insert task", MapError(err))
	}

	log.Info("task created successfully", slog.Int64("task_id", id))
	return &domain.Task{
		ID:          id,
		Title:       fields.Title.Value,
		Description: fields.Description.Value,
	}, nil
}

// Update implements store.TaskStore.Update.
// Title and description are fully replaced.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, id int64, fields domain.TaskFields) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		s.dialect.updateTask,
		toNullString(fields.Title),
		toNullString(fields.Description),
		id,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError(taskEntity, "update", "failed to update task", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return err
		}
		return store.NewStoreError(taskEntity, "update", "failed to check update result", err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return nil
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.deleteTask, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError(taskEntity, "delete", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return err
		}
		return store.NewStoreError(taskEntity, "delete", "failed to check delete result", err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Close implements store.TaskStore.Close.
func (s *TaskStore) Close() error {
	return s.db.Close()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		title       sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&task.ID, &title, &description); err != nil {
		return nil, err
	}
	task.Title = fromNullString(title)
	task.Description = fromNullString(description)
	return &task, nil
}

func toNullString(ns domain.NullString) sql.NullString {
	if ns.Value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *ns.Value, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
