// Package storetest holds the behavioural contract every merchant store must meet.
// Backends run it from their own tests with a factory returning a fresh, empty store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/merchants/internal/errs"
	"github.com/tinoosan/merchants/internal/model"
	"github.com/tinoosan/merchants/internal/service/merchant"
)

// Store is the full contract exercised by Run.
type Store interface {
	merchant.Repo
	merchant.Writer
}

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) Store

func strPtr(s string) *string { return &s }

func requireNotFound(t *testing.T, err error, id int64) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound), "expected not found, got %v", err)
	var nf *errs.NotFoundError
	if assert.True(t, errors.As(err, &nf)) {
		assert.Equal(t, id, nf.ID)
	}
}

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("List empty", func(t *testing.T) {
		s := newStore(t)
		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})

	t.Run("Create and Get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, model.Input{Name: "Acme", Description: nil})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Acme", created.Name)
		assert.Nil(t, created.Description)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Empty description is not absent", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, model.Input{Name: "Blank", Description: strPtr("")})
		require.NoError(t, err)
		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		assert.Equal(t, "", *got.Description)
	})

	t.Run("Update replaces fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, model.Input{Name: "Acme", Description: strPtr("first")})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, model.Input{Name: "Acme Inc", Description: strPtr("updated")})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Acme Inc", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "updated", *updated.Description)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)

		// full replace: omitting the description clears it
		cleared, err := s.Update(ctx, created.ID, model.Input{Name: "Acme Inc"})
		require.NoError(t, err)
		assert.Nil(t, cleared.Description)
		got, err = s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("Delete then Get", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, model.Input{Name: "Gone"})
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, created.ID))
		_, err = s.Get(ctx, created.ID)
		requireNotFound(t, err, created.ID)
		requireNotFound(t, s.Delete(ctx, created.ID), created.ID)
		_, err = s.Update(ctx, created.ID, model.Input{Name: "Back"})
		requireNotFound(t, err, created.ID)
	})

	t.Run("Unknown id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, 42)
		requireNotFound(t, err, 42)
		_, err = s.Update(ctx, 42, model.Input{Name: "Nobody"})
		requireNotFound(t, err, 42)
		requireNotFound(t, s.Delete(ctx, 42), 42)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 0, "failed update must not create a record")
	})

	t.Run("Ids increase and are never reused", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, model.Input{Name: "a"})
		require.NoError(t, err)
		b, err := s.Create(ctx, model.Input{Name: "b"})
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)

		require.NoError(t, s.Delete(ctx, b.ID))
		c, err := s.Create(ctx, model.Input{Name: "c"})
		require.NoError(t, err)
		assert.Greater(t, c.ID, b.ID, "id of the deleted last record must not be reused")
	})

	t.Run("List after delete keeps ascending order", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"one", "two", "three"} {
			_, err := s.Create(ctx, model.Input{Name: name})
			require.NoError(t, err)
		}
		require.NoError(t, s.Delete(ctx, 2))

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(1), list[0].ID)
		assert.Equal(t, "one", list[0].Name)
		assert.Equal(t, int64(3), list[1].ID)
		assert.Equal(t, "three", list[1].Name)
	})

	t.Run("Returned records are copies", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, model.Input{Name: "Acme", Description: strPtr("kept")})
		require.NoError(t, err)
		*created.Description = "mutated"

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		list[0].Name = "mutated"

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, "kept", *got.Description)
	})

	t.Run("Concurrent creates get unique ids", func(t *testing.T) {
		s := newStore(t)
		const workers = 8
		const perWorker = 10
		var wg sync.WaitGroup
		ids := make(chan int64, workers*perWorker)
		errCh := make(chan error, workers*perWorker)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					m, err := s.Create(ctx, model.Input{Name: "concurrent"})
					if err != nil {
						errCh <- err
						continue
					}
					ids <- m.ID
				}
			}()
		}
		wg.Wait()
		close(ids)
		close(errCh)
		for err := range errCh {
			require.NoError(t, err)
		}
		seen := make(map[int64]struct{})
		for id := range ids {
			_, dup := seen[id]
			assert.False(t, dup, "duplicate id %d", id)
			seen[id] = struct{}{}
		}
		assert.Len(t, seen, workers*perWorker)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, workers*perWorker)
		for i := 1; i < len(list); i++ {
			assert.Less(t, list[i-1].ID, list[i].ID)
		}
	})
}
