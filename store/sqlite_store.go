package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/tasktracker/models"
	_ "modernc.org/sqlite"
)

const (
	// DefaultDatabaseFile is the default SQLite database filename.
	DefaultDatabaseFile = "tasks.db"

	// documentName is the row key the document is kept under.
	documentName = "tasks"
)

// SQLiteStore implements DocumentStore by keeping the JSON document as a
// single row in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) the database at dbPath.
// Pass ":memory:" for a throwaway in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = DefaultDatabaseFile
	}
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, dirPerm); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// initSchema creates the documents table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the document row. A missing row yields a fresh default document.
func (s *SQLiteStore) Load() (*models.Document, error) {
	body, found, err := s.body()
	if err != nil {
		return nil, err
	}
	if !found {
		return models.NewDocument(s.now()), nil
	}

	doc, err := decodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", s.dbPath, err)
	}
	return doc, nil
}

// Raw returns the stored document body.
func (s *SQLiteStore) Raw() ([]byte, error) {
	body, found, err := s.body()
	if err != nil {
		return nil, err
	}
	if !found {
		return encodeJSON(models.NewDocument(s.now()))
	}
	return body, nil
}

func (s *SQLiteStore) body() ([]byte, bool, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", documentName).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query document: %w", err)
	}
	return []byte(body), true, nil
}

// Save replaces the document row.
func (s *SQLiteStore) Save(doc *models.Document) error {
	data, err := encodeJSON(doc)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		documentName, string(data), models.FormatTimestamp(s.now()))
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
