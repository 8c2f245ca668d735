package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	EnsureSchemaFn func(ctx context.Context) error
	ListAllFn      func(ctx context.Context) ([]domain.Task, error)
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Task, error)
	CreateFn       func(ctx context.Context, fields domain.TaskFields) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, id int64, fields domain.TaskFields) error
	DeleteFn       func(ctx context.Context, id int64) error

	// Err is returned by any method without a custom function
	Err error

	mu    sync.Mutex
	calls map[string]int
	ids   []int64
}

// Compile-time check that MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(method string, id *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	if id != nil {
		m.ids = append(m.ids, *id)
	}
}

// Calls returns how many times the named method was called.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// IDs returns every task ID passed to GetByID, Update and Delete, in call order.
func (m *MockTaskStore) IDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.ids...)
}

// EnsureSchema implements store.TaskStore
func (m *MockTaskStore) EnsureSchema(ctx context.Context) error {
	m.record("EnsureSchema", nil)
	if m.EnsureSchemaFn != nil {
		return m.EnsureSchemaFn(ctx)
	}
	return m.Err
}

// ListAll implements store.TaskStore
func (m *MockTaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	m.record("ListAll", nil)
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []domain.Task{}, nil
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetByID", &id)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrTaskNotFound
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, fields domain.TaskFields) (*domain.Task, error) {
	m.record("Create", nil)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, fields)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Task{ID: 1, Title: fields.Title.Value, Description: fields.Description.Value}, nil
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, id int64, fields domain.TaskFields) error {
	m.record("Update", &id)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, fields)
	}
	return m.Err
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete", &id)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// Close implements store.TaskStore
func (m *MockTaskStore) Close() error {
	m.record("Close", nil)
	return nil
}
