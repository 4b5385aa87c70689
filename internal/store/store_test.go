package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/logging"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/testutil"
)

var ctx = context.Background()

func seeded(t *testing.T) (*testutil.FakeRemote, *store.Store) {
	t.Helper()
	remote := testutil.NewFakeRemote("u1")
	remote.Seed(task.Task{ID: "t1", Title: "First", Status: task.StatusTodo, UserID: "u1"})
	remote.Seed(task.Task{ID: "t2", Title: "Second", Status: task.StatusTodo, UserID: "u1"})

	st := store.New(remote, logging.Discard())
	require.NoError(t, st.Load(ctx))
	return remote, st
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestLoad(t *testing.T) {
	_, st := seeded(t)
	assert.Equal(t, []string{"t2", "t1"}, ids(st.Tasks()), "most recent first")
	assert.Empty(t, st.Err())
}

func TestLoad_FailureKeepsPreviousCollection(t *testing.T) {
	remote, st := seeded(t)
	before := st.Tasks()

	remote.ListErr = errors.New("connection refused")
	require.Error(t, st.Load(ctx))

	assert.Equal(t, before, st.Tasks())
	assert.Equal(t, "Failed to fetch tasks: connection refused", st.Err())
}

func TestCreate_InsertsConfirmedRecordAtFront(t *testing.T) {
	_, st := seeded(t)

	created, err := st.Create(ctx, task.CreateInput{
		Title:    "Third",
		Status:   task.StatusTodo,
		Priority: task.PriorityLow,
		Assignee: "Ana",
		DueDate:  "2099-01-01",
		UserID:   "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "id is server-assigned")

	got := st.Tasks()
	require.Len(t, got, 3)
	assert.Equal(t, created, got[0])
}

func TestCreate_FailureLeavesCollectionUntouched(t *testing.T) {
	remote, st := seeded(t)
	before := st.Tasks()

	remote.CreateErr = errors.New("boom")
	_, err := st.Create(ctx, task.CreateInput{Title: "Third", UserID: "u1"})
	require.Error(t, err)

	assert.Equal(t, before, st.Tasks())
	assert.Equal(t, "Failed to create task: boom", st.Err())
}

func TestErr_ClearedByNextSuccess(t *testing.T) {
	remote, st := seeded(t)

	remote.ListErr = errors.New("boom")
	require.Error(t, st.Load(ctx))
	require.NotEmpty(t, st.Err())

	remote.ListErr = nil
	require.NoError(t, st.Load(ctx))
	assert.Empty(t, st.Err())
}

func TestUpdate_ReplacesRecordWholesale(t *testing.T) {
	_, st := seeded(t)
	title := "Renamed"

	updated, err := st.Update(ctx, "t1", task.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// The stored record is exactly the server response, not a local merge.
	got, ok := st.Get("t1")
	require.True(t, ok)
	assert.Equal(t, updated, got)
	assert.Equal(t, []string{"t2", "t1"}, ids(st.Tasks()), "position is preserved")
}

func TestUpdate_FailureLeavesRecordUntouched(t *testing.T) {
	remote, st := seeded(t)
	remote.UpdateErr = errors.New("boom")

	title := "Renamed"
	_, err := st.Update(ctx, "t1", task.Patch{Title: &title})
	require.Error(t, err)

	got, ok := st.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "Failed to update task: boom", st.Err())
}

func TestDelete_RemovesAfterConfirmation(t *testing.T) {
	_, st := seeded(t)

	require.NoError(t, st.Delete(ctx, "t2"))
	assert.Equal(t, []string{"t1"}, ids(st.Tasks()))
	_, ok := st.Get("t2")
	assert.False(t, ok)
}

func TestDelete_FailureLeavesCollectionUntouched(t *testing.T) {
	remote, st := seeded(t)
	remote.DeleteErr = errors.New("boom")

	require.Error(t, st.Delete(ctx, "t2"))
	assert.Equal(t, []string{"t2", "t1"}, ids(st.Tasks()))
	assert.Equal(t, "Failed to delete task: boom", st.Err())
}

func TestGet_NeverTouchesRemote(t *testing.T) {
	remote, st := seeded(t)
	remote.ListErr = errors.New("boom")
	remote.UpdateErr = errors.New("boom")

	got, ok := st.Get("t1")
	assert.True(t, ok)
	assert.Equal(t, "First", got.Title)
}

func TestTasks_ReturnsSnapshot(t *testing.T) {
	_, st := seeded(t)

	snap := st.Tasks()
	snap[0].Title = "mutated"

	got, _ := st.Get(snap[0].ID)
	assert.Equal(t, "Second", got.Title, "callers cannot mutate store state through the snapshot")
}
