// Package tracker implements the task operations on top of a DocumentStore.
package tracker

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/josephgoksu/tasktracker/internal/ui"
	"github.com/josephgoksu/tasktracker/models"
	"github.com/josephgoksu/tasktracker/store"
)

// Service encapsulates the task operations. Every call loads the full
// document from the store, works on that copy, and saves it back when it
// changed. Nothing is cached between calls.
type Service struct {
	store  store.DocumentStore
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new task Service.
func NewService(st store.DocumentStore, opts ...Option) *Service {
	s := &Service{
		store:  st,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTask appends a pending task and persists the document. An empty
// priority becomes models.DefaultPriority. Ids are not checked for
// uniqueness and no field is validated.
func (s *Service) AddTask(id, description, category, priority string) (bool, error) {
	doc, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf("load tasks: %w", err)
	}

	if priority == "" {
		priority = models.DefaultPriority
	}

	doc.Tasks = append(doc.Tasks, models.Task{
		ID:          id,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      models.StatusPending,
		CreatedAt:   models.FormatTimestamp(s.now()),
		CompletedAt: nil,
	})
	doc.TotalCount = len(doc.Tasks)

	if err := s.store.Save(doc); err != nil {
		return false, fmt.Errorf("save tasks: %w", err)
	}

	s.logger.Debug("task added", "id", id, "priority", priority, "total", doc.TotalCount)
	return true, nil
}

// CompleteTask marks the earliest pending task with the given id as
// completed. It returns false, without saving, when no task with that id is
// still pending; "not found" and "already completed" are not distinguished.
//
// Ids may repeat: each call completes the next pending duplicate.
func (s *Service) CompleteTask(id string) (bool, error) {
	doc, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf("load tasks: %w", err)
	}

	for i := range doc.Tasks {
		task := &doc.Tasks[i]
		if task.ID != id || task.Status == models.StatusCompleted {
			continue
		}

		completedAt := models.FormatTimestamp(s.now())
		task.Status = models.StatusCompleted
		task.CompletedAt = &completedAt
		doc.CompletedCount++

		if err := s.store.Save(doc); err != nil {
			return false, fmt.Errorf("save tasks: %w", err)
		}

		s.logger.Debug("task completed", "id", id, "index", i, "completed", doc.CompletedCount)
		return true, nil
	}

	s.logger.Debug("no pending task to complete", "id", id)
	return false, nil
}

// GetProgress derives progress from the document counters.
// The counters are trusted as stored and not recomputed from the task list.
func (s *Service) GetProgress() (models.Progress, error) {
	doc, err := s.store.Load()
	if err != nil {
		return models.Progress{}, fmt.Errorf("load tasks: %w", err)
	}
	return ComputeProgress(doc.TotalCount, doc.CompletedCount), nil
}

// GetPendingTasks returns every pending task in insertion order.
func (s *Service) GetPendingTasks() ([]models.Task, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	pending := make([]models.Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

// ListTasks returns all tasks in insertion order.
func (s *Service) ListTasks() ([]models.Task, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return doc.Tasks, nil
}

// Document returns the current document as stored.
func (s *Service) Document() (*models.Document, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return doc, nil
}

// PrintStatus writes the status report to w and returns whether every task
// is complete, so a polling caller can use it as a stop signal.
func (s *Service) PrintStatus(w io.Writer) (bool, error) {
	progress, err := s.GetProgress()
	if err != nil {
		return false, err
	}
	pending, err := s.GetPendingTasks()
	if err != nil {
		return false, err
	}

	if err := ui.RenderStatus(w, progress, pending); err != nil {
		return false, fmt.Errorf("render status: %w", err)
	}
	return progress.IsComplete, nil
}

// ComputeProgress builds the progress view from raw counters. Percentage is
// rounded to two decimals, ties to even, and is 0 for an empty list; an empty list is
// never complete.
func ComputeProgress(total, completed int) models.Progress {
	var percentage float64
	if total > 0 {
		percentage = roundTo(float64(completed)/float64(total)*100, 2)
	}
	return models.Progress{
		Total:      total,
		Completed:  completed,
		Percentage: percentage,
		Remaining:  total - completed,
		IsComplete: completed >= total && total > 0,
	}
}

// roundTo rounds half to even, so 3.125 becomes 3.12.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
