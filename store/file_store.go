package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/josephgoksu/tasktracker/models"
	"github.com/spf13/afero"
)

const (
	// DefaultDataFile is the default document filename.
	DefaultDataFile = "tasks.json"

	filePerm = 0o644
	dirPerm  = 0o755
)

// requiredKeys lists the document keys the service reads directly. A file
// without them cannot be operated on, so Load rejects it.
var requiredKeys = []string{"tasks", "completed_count", "total_count"}

// FileStore implements DocumentStore with a single pretty-printed JSON file.
// It uses an afero.Fs so tests can run against an in-memory filesystem.
type FileStore struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

// NewFileStore creates a FileStore for path on the given filesystem.
// Use afero.NewOsFs() for real files or afero.NewMemMapFs() for testing.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	if path == "" {
		path = DefaultDataFile
	}
	return &FileStore{
		fs:   fs,
		path: path,
		now:  time.Now,
	}
}

// NewOsFileStore creates a FileStore backed by the operating system filesystem.
func NewOsFileStore(path string) *FileStore {
	return NewFileStore(afero.NewOsFs(), path)
}

// Path returns the document path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing file yields a fresh default document.
func (s *FileStore) Load() (*models.Document, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewDocument(s.now()), nil
		}
		return nil, fmt.Errorf("read document %s: %w", s.path, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", s.path, err)
	}
	return doc, nil
}

// Raw returns the file contents as stored.
func (s *FileStore) Raw() ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return encodeJSON(models.NewDocument(s.now()))
		}
		return nil, fmt.Errorf("read document %s: %w", s.path, err)
	}
	return data, nil
}

// Save overwrites the file with the full document. The write is not atomic:
// a crash mid-write can leave the file truncated.
func (s *FileStore) Save(doc *models.Document) error {
	data, err := encodeJSON(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, s.path, data, filePerm); err != nil {
		return fmt.Errorf("write document %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error {
	return nil
}

// decodeDocument parses data as a document, rejecting input that lacks the
// keys the service depends on or sets them to null.
func decodeDocument(data []byte) (*models.Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	for _, k := range requiredKeys {
		raw, ok := keys[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, k)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: %q is null", ErrMissingField, k)
		}
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// encodeJSON renders the document with 2-space indentation and a trailing newline.
func encodeJSON(doc *models.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}
	out := *doc
	if out.Tasks == nil {
		out.Tasks = []models.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Keep descriptions like "a < b & c" readable in the file.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return buf.Bytes(), nil
}
