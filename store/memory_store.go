package store

import (
	"time"

	"github.com/josephgoksu/tasktracker/models"
)

// MemoryStore keeps the document in process memory.
// Load and Save copy the document, so callers never share state with the store.
type MemoryStore struct {
	doc *models.Document
	now func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Load returns a copy of the stored document, or a fresh one if nothing was saved.
func (s *MemoryStore) Load() (*models.Document, error) {
	if s.doc == nil {
		return models.NewDocument(s.now()), nil
	}
	return s.doc.Clone(), nil
}

// Raw returns the JSON encoding of the stored document.
func (s *MemoryStore) Raw() ([]byte, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return encodeJSON(doc)
}

// Save stores a copy of doc.
func (s *MemoryStore) Save(doc *models.Document) error {
	s.doc = doc.Clone()
	return nil
}

// Close is a no-op for memory stores.
func (s *MemoryStore) Close() error {
	return nil
}
