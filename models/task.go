package models

import "time"

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

const (
	// SchemaVersion is the fixed version tag written to new documents.
	SchemaVersion = "1.0"

	// DocumentStatusRunning is the only document status currently written.
	DocumentStatusRunning = "running"

	// DefaultPriority is used when a task is added without a priority.
	DefaultPriority = "P1"

	// TimestampLayout is the ISO-8601 layout used for every timestamp in the
	// document: local time, microsecond precision, no zone suffix.
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

// Task represents a unit of work.
// Category and Priority are free text; Status is not validated on load.
type Task struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Description string     `json:"description" yaml:"description" toml:"description"`
	Category    string     `json:"category" yaml:"category" toml:"category"`
	Priority    string     `json:"priority" yaml:"priority" toml:"priority"`
	Status      TaskStatus `json:"status" yaml:"status" toml:"status" validate:"required,oneof=pending completed"`
	CreatedAt   string     `json:"created_at" yaml:"created_at" toml:"created_at"`
	CompletedAt *string    `json:"completed_at" yaml:"completed_at" toml:"completed_at,omitempty"` // null until completed
}

// IsPending reports whether the task has not transitioned to completed.
func (t Task) IsPending() bool {
	return t.Status == StatusPending
}

// Document is the persisted root object holding the whole task-list state.
type Document struct {
	Version        string `json:"version" yaml:"version" toml:"version" validate:"required"`
	CreatedAt      string `json:"created_at" yaml:"created_at" toml:"created_at" validate:"required"`
	Tasks          []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	CompletedCount int    `json:"completed_count" yaml:"completed_count" toml:"completed_count" validate:"min=0"`
	TotalCount     int    `json:"total_count" yaml:"total_count" toml:"total_count" validate:"min=0"`
	Status         string `json:"status" yaml:"status" toml:"status"`
}

// NewDocument returns the default document used on first run.
func NewDocument(now time.Time) *Document {
	return &Document{
		Version:        SchemaVersion,
		CreatedAt:      FormatTimestamp(now),
		Tasks:          []Task{},
		CompletedCount: 0,
		TotalCount:     0,
		Status:         DocumentStatusRunning,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Tasks = make([]Task, len(d.Tasks))
	for i, t := range d.Tasks {
		if t.CompletedAt != nil {
			ts := *t.CompletedAt
			t.CompletedAt = &ts
		}
		out.Tasks[i] = t
	}
	return &out
}

// Progress is the derived, read-only view over the document counters.
type Progress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
	Remaining  int     `json:"remaining"`
	IsComplete bool    `json:"is_complete"`
}

// FormatTimestamp renders t in the document timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
