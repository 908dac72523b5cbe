package store

import (
	"errors"

	"github.com/josephgoksu/tasktracker/models"
)

var (
	// ErrMissingField is returned by Load when stored data lacks a required key.
	ErrMissingField = errors.New("document is missing a required field")

	// ErrUnsupportedFormat is returned by Encode for unknown export formats.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// DocumentStore defines the persistence boundary for the task-list document.
// Implementations read and write the whole document at once; they do not
// coordinate concurrent writers, so the last Save wins.
type DocumentStore interface {
	// Load returns the stored document verbatim, or a fresh default document
	// when nothing has been stored yet. Malformed data is an error.
	Load() (*models.Document, error)

	// Raw returns the stored bytes unparsed, or the encoding of a fresh
	// default document when nothing has been stored yet.
	Raw() ([]byte, error)

	// Save replaces the stored document with doc.
	Save(doc *models.Document) error

	// Close releases any resources held by the store, such as database
	// connections. It should be called when the store is no longer needed.
	Close() error
}
