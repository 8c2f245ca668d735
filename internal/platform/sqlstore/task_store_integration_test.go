//go:build integration

package sqlstore_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTaskStore_CRUD(t *testing.T) {
	ctx := context.Background()
	taskStore := testdb.NewPostgresTaskStore(t)

	created, err := taskStore.Create(ctx, domain.NewTaskFields("A", "B"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	task, err := taskStore.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", *task.Title)
	assert.Equal(t, "B", *task.Description)

	require.NoError(t, taskStore.Update(ctx, created.ID, domain.NewTaskFields("C", "D")))
	task, err = taskStore.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", *task.Title)

	assert.ErrorIs(t, taskStore.Update(ctx, -1, domain.NewTaskFields("x", "y")), store.ErrTaskNotFound)

	require.NoError(t, taskStore.Delete(ctx, created.ID))
	assert.ErrorIs(t, taskStore.Delete(ctx, created.ID), store.ErrTaskNotFound)

	tasks, err := taskStore.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestPostgresTaskStore_ConcurrentEnsureSchema(t *testing.T) {
	ctx := context.Background()
	taskStore := testdb.NewPostgresTaskStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- taskStore.EnsureSchema(ctx)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPostgresTaskStore_TitleTooLong(t *testing.T) {
	ctx := context.Background()
	taskStore := testdb.NewPostgresTaskStore(t)

	_, err := taskStore.Create(ctx, domain.NewTaskFields(strings.Repeat("x", 256), ""))

	require.Error(t, err)
	assert.True(t, store.IsStoreError(err))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
