package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/tasktracker/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *models.Document {
	done := "2025-03-02T11:00:00.000000"
	return &models.Document{
		Version:   models.SchemaVersion,
		CreatedAt: "2025-03-01T09:30:00.123456",
		Tasks: []models.Task{
			{ID: "T1", Description: "Set up CI", Category: "infra", Priority: "P0", Status: models.StatusCompleted, CreatedAt: "2025-03-01T09:31:00.000000", CompletedAt: &done},
			{ID: "T2", Description: "Write <docs> & examples", Category: "docs", Priority: "P1", Status: models.StatusPending, CreatedAt: "2025-03-01T09:32:00.000000"},
		},
		CompletedCount: 1,
		TotalCount:     2,
		Status:         models.DocumentStatusRunning,
	}
}

func setupMemFileStore(t *testing.T) (*FileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewFileStore(fs, "/project/.tasktracker/tasks.json"), fs
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	s, fs := setupMemFileStore(t)
	fixed := time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local)
	s.now = func() time.Time { return fixed }

	doc, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, models.NewDocument(fixed), doc)
	assert.Equal(t, 0, doc.TotalCount)
	assert.Equal(t, 0, doc.CompletedCount)
	assert.Empty(t, doc.Tasks)
	assert.Equal(t, "running", doc.Status)

	exists, err := afero.Exists(fs, s.Path())
	require.NoError(t, err)
	assert.False(t, exists, "Load must not create the file")
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, _ := setupMemFileStore(t)
	original := sampleDocument()

	require.NoError(t, s.Save(original))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestFileStore_RoundTripOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	s := NewOsFileStore(path)
	original := sampleDocument()

	require.NoError(t, s.Save(original))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
	assert.NoError(t, s.Close())
}

func TestFileStore_SaveFormat(t *testing.T) {
	s, fs := setupMemFileStore(t)
	doc := models.NewDocument(time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local))
	doc.Tasks = nil

	require.NoError(t, s.Save(doc))

	data, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)

	want := `{
  "version": "1.0",
  "created_at": "2025-03-01T08:00:00.000000",
  "tasks": [],
  "completed_count": 0,
  "total_count": 0,
  "status": "running"
}
`
	assert.Equal(t, want, string(data))
}

func TestFileStore_SaveKeepsMarkupReadable(t *testing.T) {
	s, fs := setupMemFileStore(t)
	require.NoError(t, s.Save(sampleDocument()))

	data, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Write <docs> & examples"`)
	assert.Contains(t, string(data), `"completed_at": null`)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s, fs := setupMemFileStore(t)
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte(`{"padding": "`+string(make([]byte, 4096))+`"}`), 0o644))

	doc := sampleDocument()
	require.NoError(t, s.Save(doc))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestFileStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantMissing bool
	}{
		{name: "invalid syntax", content: `{"version": "1.0",`},
		{name: "not an object", content: `[1, 2, 3]`},
		{name: "wrong field type", content: `{"tasks": "nope", "completed_count": 0, "total_count": 0}`},
		{name: "missing tasks", content: `{"version": "1.0", "completed_count": 0, "total_count": 0}`, wantMissing: true},
		{name: "missing completed_count", content: `{"tasks": [], "total_count": 0}`, wantMissing: true},
		{name: "missing total_count", content: `{"tasks": [], "completed_count": 0}`, wantMissing: true},
		{name: "null tasks", content: `{"tasks": null, "completed_count": 0, "total_count": 0}`, wantMissing: true},
		{name: "null completed_count", content: `{"tasks": [], "completed_count": null, "total_count": 0}`, wantMissing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := setupMemFileStore(t)
			require.NoError(t, afero.WriteFile(fs, s.Path(), []byte(tt.content), 0o644))

			doc, err := s.Load()
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.wantMissing, errors.Is(err, ErrMissingField))
		})
	}
}

func TestFileStore_LoadVerbatim(t *testing.T) {
	s, fs := setupMemFileStore(t)
	// Counters that disagree with the task list are returned as stored.
	content := `{
  "version": "0.9",
  "created_at": "2024-12-31T23:59:59.999999",
  "tasks": [
    {"id": "X", "description": "d", "category": "c", "priority": "urgent", "status": "weird", "created_at": "2025-01-01T00:00:00.000000", "completed_at": null}
  ],
  "completed_count": 7,
  "total_count": 3,
  "status": "paused"
}`
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte(content), 0o644))

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.9", doc.Version)
	assert.Equal(t, 7, doc.CompletedCount)
	assert.Equal(t, 3, doc.TotalCount)
	assert.Equal(t, "paused", doc.Status)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, models.TaskStatus("weird"), doc.Tasks[0].Status)
	assert.Equal(t, "urgent", doc.Tasks[0].Priority)
	assert.Nil(t, doc.Tasks[0].CompletedAt)
}

func TestFileStore_Raw(t *testing.T) {
	s, fs := setupMemFileStore(t)

	// Nothing stored yet: the fresh document's encoding.
	data, err := s.Raw()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tasks": []`)

	stored := `{"tasks": [{"id": "T1"}], "completed_count": 0, "total_count": 1}`
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte(stored), 0o644))

	data, err = s.Raw()
	require.NoError(t, err)
	assert.Equal(t, stored, string(data))
}

func TestFileStore_SaveError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := NewFileStore(fs, "/ro/tasks.json")

	err := s.Save(sampleDocument())
	assert.Error(t, err)
	assert.Error(t, s.Save(nil))
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	s := NewFileStore(afero.NewMemMapFs(), "")
	assert.Equal(t, DefaultDataFile, s.Path())
}
