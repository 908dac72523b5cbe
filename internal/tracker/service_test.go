package tracker

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/tasktracker/models"
	"github.com/josephgoksu/tasktracker/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type storeFactory func(t *testing.T) store.DocumentStore

var storeFactories = map[string]storeFactory{
	"memory": func(t *testing.T) store.DocumentStore {
		return store.NewMemoryStore()
	},
	"memfs": func(t *testing.T) store.DocumentStore {
		return store.NewFileStore(afero.NewMemMapFs(), "/data/tasks.json")
	},
	"osfs": func(t *testing.T) store.DocumentStore {
		return store.NewOsFileStore(filepath.Join(t.TempDir(), "tasks.json"))
	},
}

func forEachStore(t *testing.T, fn func(t *testing.T, svc *Service, st store.DocumentStore)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := factory(t)
			defer func() { _ = st.Close() }()
			fn(t, NewService(st, WithClock(stepClock())), st)
		})
	}
}

func TestService_FreshState(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *Service, st store.DocumentStore) {
		doc, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, 0, doc.TotalCount)
		assert.Equal(t, 0, doc.CompletedCount)
		assert.Empty(t, doc.Tasks)
		assert.Equal(t, "running", doc.Status)

		pending, err := svc.GetPendingTasks()
		require.NoError(t, err)
		assert.NotNil(t, pending)
		assert.Empty(t, pending)
	})
}

func TestService_AddTask(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *Service, st store.DocumentStore) {
		for i, id := range []string{"A", "B", "C", "D"} {
			ok, err := svc.AddTask(id, "task "+id, "general", "")
			require.NoError(t, err)
			assert.True(t, ok)

			doc, err := st.Load()
			require.NoError(t, err)
			assert.Equal(t, i+1, doc.TotalCount)
			assert.Len(t, doc.Tasks, i+1)
		}

		doc, err := st.Load()
		require.NoError(t, err)
		first := doc.Tasks[0]
		assert.Equal(t, "A", first.ID)
		assert.Equal(t, "task A", first.Description)
		assert.Equal(t, "general", first.Category)
		assert.Equal(t, models.DefaultPriority, first.Priority)
		assert.Equal(t, models.StatusPending, first.Status)
		assert.Equal(t, "2025-03-01T09:00:01.000000", first.CreatedAt)
		assert.Nil(t, first.CompletedAt)

		ids := make([]string, len(doc.Tasks))
		for i, task := range doc.Tasks {
			ids[i] = task.ID
		}
		assert.Equal(t, []string{"A", "B", "C", "D"}, ids, "insertion order is preserved")
	})
}

func TestService_AddTaskAcceptsAnything(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	for _, args := range [][4]string{
		{"", "", "", ""},
		{"dup", "first", "x", "urgent"},
		{"dup", "second", "x", "P9"},
	} {
		ok, err := svc.AddTask(args[0], args[1], args[2], args[3])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	tasks, err := svc.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "P1", tasks[0].Priority)
	assert.Equal(t, "urgent", tasks[1].Priority)
	assert.Equal(t, "P9", tasks[2].Priority)
}

func TestService_CompleteTask(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *Service, st store.DocumentStore) {
		_, err := svc.AddTask("A", "first", "c", "P1")
		require.NoError(t, err)
		_, err = svc.AddTask("B", "second", "c", "P2")
		require.NoError(t, err)

		ok, err := svc.CompleteTask("B")
		require.NoError(t, err)
		assert.True(t, ok)

		doc, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, 1, doc.CompletedCount)
		assert.Equal(t, models.StatusPending, doc.Tasks[0].Status)
		assert.Equal(t, models.StatusCompleted, doc.Tasks[1].Status)
		require.NotNil(t, doc.Tasks[1].CompletedAt)
		assert.Equal(t, "2025-03-01T09:00:03.000000", *doc.Tasks[1].CompletedAt)
		assert.Equal(t, "2025-03-01T09:00:02.000000", doc.Tasks[1].CreatedAt, "created_at is immutable")

		pending, err := svc.GetPendingTasks()
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "A", pending[0].ID)
	})
}

func TestService_CompleteDuplicates(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *Service, st store.DocumentStore) {
		_, err := svc.AddTask("X", "first X", "c", "")
		require.NoError(t, err)
		_, err = svc.AddTask("Y", "other", "c", "")
		require.NoError(t, err)
		_, err = svc.AddTask("X", "second X", "c", "")
		require.NoError(t, err)

		ok, err := svc.CompleteTask("X")
		require.NoError(t, err)
		assert.True(t, ok)

		doc, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, doc.Tasks[0].Status, "earliest duplicate completes first")
		assert.Equal(t, models.StatusPending, doc.Tasks[2].Status)

		ok, err = svc.CompleteTask("X")
		require.NoError(t, err)
		assert.True(t, ok)

		doc, err = st.Load()
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, doc.Tasks[2].Status)
		assert.Equal(t, 2, doc.CompletedCount)

		ok, err = svc.CompleteTask("X")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_CompleteWithoutPendingOccurrence(t *testing.T) {
	forEachStore(t, func(t *testing.T, svc *Service, st store.DocumentStore) {
		_, err := svc.AddTask("A", "first", "c", "")
		require.NoError(t, err)
		_, err = svc.AddTask("B", "second", "c", "")
		require.NoError(t, err)
		ok, err := svc.CompleteTask("A")
		require.NoError(t, err)
		require.True(t, ok)

		before, err := st.Load()
		require.NoError(t, err)

		for _, id := range []string{"A", "missing", ""} {
			ok, err := svc.CompleteTask(id)
			require.NoError(t, err)
			assert.False(t, ok, "id %q", id)
		}

		after, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, 1, after.CompletedCount)
	})
}

// countingStore records saves so tests can assert that reads never write.
type countingStore struct {
	store.DocumentStore
	saves int
}

func (c *countingStore) Save(doc *models.Document) error {
	c.saves++
	return c.DocumentStore.Save(doc)
}

func TestService_ReadsDoNotSave(t *testing.T) {
	st := &countingStore{DocumentStore: store.NewMemoryStore()}
	svc := NewService(st)

	_, err := svc.AddTask("A", "first", "c", "")
	require.NoError(t, err)
	require.Equal(t, 1, st.saves)

	_, err = svc.GetProgress()
	require.NoError(t, err)
	_, err = svc.GetPendingTasks()
	require.NoError(t, err)
	_, err = svc.PrintStatus(&bytes.Buffer{})
	require.NoError(t, err)
	ok, err := svc.CompleteTask("nope")
	require.NoError(t, err)
	require.False(t, ok)

	assert.Equal(t, 1, st.saves)
}

func TestService_GetProgress(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	progress, err := svc.GetProgress()
	require.NoError(t, err)
	assert.Equal(t, models.Progress{}, progress, "empty list: 0%, not complete")

	for _, id := range []string{"A", "B", "C", "D"} {
		_, err := svc.AddTask(id, "d", "c", "")
		require.NoError(t, err)
	}
	_, err = svc.CompleteTask("A")
	require.NoError(t, err)

	progress, err = svc.GetProgress()
	require.NoError(t, err)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	assert.Equal(t, 25.0, progress.Percentage)
	assert.Equal(t, 3, progress.Remaining)
	assert.False(t, progress.IsComplete)

	for _, id := range []string{"B", "C", "D"} {
		_, err := svc.CompleteTask(id)
		require.NoError(t, err)
	}
	progress, err = svc.GetProgress()
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress.Percentage)
	assert.True(t, progress.IsComplete)
}

func TestService_GetProgressTrustsCounters(t *testing.T) {
	st := store.NewMemoryStore()
	doc := models.NewDocument(time.Now())
	doc.Tasks = []models.Task{{ID: "A", Status: models.StatusPending}}
	doc.TotalCount = 3
	doc.CompletedCount = 5
	require.NoError(t, st.Save(doc))

	progress, err := NewService(st).GetProgress()
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 5, progress.Completed)
	assert.Equal(t, -2, progress.Remaining)
	assert.True(t, progress.IsComplete)
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      models.Progress
	}{
		{"empty", 0, 0, models.Progress{}},
		{"quarter", 4, 1, models.Progress{Total: 4, Completed: 1, Percentage: 25, Remaining: 3}},
		{"thirds round to two places", 3, 1, models.Progress{Total: 3, Completed: 1, Percentage: 33.33, Remaining: 2}},
		{"two thirds", 3, 2, models.Progress{Total: 3, Completed: 2, Percentage: 66.67, Remaining: 1}},
		{"tie rounds to even", 32, 1, models.Progress{Total: 32, Completed: 1, Percentage: 3.12, Remaining: 31}},
		{"tie rounds down to even", 32, 5, models.Progress{Total: 32, Completed: 5, Percentage: 15.62, Remaining: 27}},
		{"small tie", 800, 1, models.Progress{Total: 800, Completed: 1, Percentage: 0.12, Remaining: 799}},
		{"none done", 5, 0, models.Progress{Total: 5, Remaining: 5}},
		{"all done", 2, 2, models.Progress{Total: 2, Completed: 2, Percentage: 100, IsComplete: true}},
		{"completed without total", 0, 3, models.Progress{Completed: 3, Remaining: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.total, tt.completed))
		})
	}
}

func TestService_PrintStatus(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), WithClock(stepClock()))

	var buf bytes.Buffer
	complete, err := svc.PrintStatus(&buf)
	require.NoError(t, err)
	assert.False(t, complete)
	assert.Contains(t, buf.String(), "Progress: 0/0 (0%)")

	_, err = svc.AddTask("T1", "Set up CI", "infra", "P0")
	require.NoError(t, err)
	_, err = svc.AddTask("T2", "Write docs", "docs", "")
	require.NoError(t, err)

	buf.Reset()
	complete, err = svc.PrintStatus(&buf)
	require.NoError(t, err)
	assert.False(t, complete)
	assert.Contains(t, buf.String(), "  [P0] T1: Set up CI\n  [P1] T2: Write docs\n")

	_, err = svc.CompleteTask("T1")
	require.NoError(t, err)
	_, err = svc.CompleteTask("T2")
	require.NoError(t, err)

	buf.Reset()
	complete, err = svc.PrintStatus(&buf)
	require.NoError(t, err)
	assert.True(t, complete)
	assert.Contains(t, buf.String(), "Progress: 2/2 (100.0%)")
}

func TestService_LoadErrorsPropagate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tasks.json", []byte("{not json"), 0o644))
	svc := NewService(store.NewFileStore(fs, "/tasks.json"))

	_, err := svc.AddTask("A", "d", "c", "")
	assert.Error(t, err)
	_, err = svc.CompleteTask("A")
	assert.Error(t, err)
	_, err = svc.GetProgress()
	assert.Error(t, err)
	_, err = svc.GetPendingTasks()
	assert.Error(t, err)
	_, err = svc.PrintStatus(&bytes.Buffer{})
	assert.Error(t, err)
}

type failingSaveStore struct {
	store.DocumentStore
}

var errDiskFull = errors.New("disk full")

func (failingSaveStore) Save(*models.Document) error { return errDiskFull }

func TestService_SaveErrorsPropagate(t *testing.T) {
	inner := store.NewMemoryStore()
	svc := NewService(failingSaveStore{DocumentStore: inner})

	ok, err := svc.AddTask("A", "d", "c", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errDiskFull)

	doc := models.NewDocument(time.Now())
	doc.Tasks = []models.Task{{ID: "A", Status: models.StatusPending}}
	doc.TotalCount = 1
	require.NoError(t, inner.Save(doc))

	ok, err = svc.CompleteTask("A")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errDiskFull)
}
