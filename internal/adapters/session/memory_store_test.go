package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pad2skills/backend/internal/domain/entities"
)

func TestMemoryStore_GetCreatesDefaults(t *testing.T) {
	store := NewMemoryStore()

	state, err := store.Get(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "s1", state.ID)
	assert.Equal(t, entities.AllProjects, state.Filters.Project)
	assert.Equal(t, entities.AllIndustries, state.Filters.Industry)
	assert.Empty(t, state.Transcript)
}

func TestMemoryStore_UpdateCommitsWholeState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	updated, err := store.Update(ctx, "s1", func(state *entities.SessionState) error {
		state.Filters.Project = "Solar Plant"
		state.AppendExchange("hi", "hello")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Solar Plant", updated.Filters.Project)

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Solar Plant", state.Filters.Project)
	assert.Len(t, state.Transcript, 2)
}

func TestMemoryStore_UpdateErrorCommitsNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Update(ctx, "s1", func(state *entities.SessionState) error {
		state.Filters.Project = "Solar Plant"
		state.AppendExchange("hi", "hello")
		return errors.New("boom")
	})
	require.Error(t, err)

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entities.AllProjects, state.Filters.Project)
	assert.Empty(t, state.Transcript)
}

func TestMemoryStore_GetReturnsClone(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	first.Filters.Project = "Mutated"
	first.SetPage(entities.TableSkills, entities.PaginationState{PageIndex: 9})

	second, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entities.AllProjects, second.Filters.Project)
	assert.Equal(t, 0, second.Page(entities.TableSkills, 10).PageIndex)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Update(ctx, "s1", func(state *entities.SessionState) error {
		state.Filters.Project = "Solar Plant"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "s1"))

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entities.AllProjects, state.Filters.Project)
}

func TestMemoryStore_ConcurrentUpdatesSerialize(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "s1", func(state *entities.SessionState) error {
				state.AppendExchange("q", "a")
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, state.Transcript, 100, "every exchange commits exactly once")
}

func TestMemoryStore_SessionsIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Update(ctx, "a", func(state *entities.SessionState) error {
		state.Filters.TopFiveOnly = true
		return nil
	})
	require.NoError(t, err)

	state, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, state.Filters.TopFiveOnly)
}
