package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDocument is returned by ValidateDocument when integrity checks fail.
var ErrInvalidDocument = errors.New("invalid document")

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}

// ValidateDocument checks a loaded document for integrity problems that the
// store itself tolerates: bad tags, unknown statuses and counters that
// disagree with the task list. Every problem found is reported.
//
// The returned error wraps ErrInvalidDocument.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	var problems []string
	if err := ValidateStruct(doc); err != nil {
		problems = append(problems, err.Error())
	}

	if doc.TotalCount != len(doc.Tasks) {
		problems = append(problems, fmt.Sprintf("total_count is %d but the document holds %d tasks", doc.TotalCount, len(doc.Tasks)))
	}

	completed := 0
	for i, t := range doc.Tasks {
		switch t.Status {
		case StatusCompleted:
			completed++
			if t.CompletedAt == nil {
				problems = append(problems, fmt.Sprintf("tasks[%d] (%s) is completed but has no completed_at", i, t.ID))
			}
		case StatusPending:
			if t.CompletedAt != nil {
				problems = append(problems, fmt.Sprintf("tasks[%d] (%s) is pending but has completed_at set", i, t.ID))
			}
		}
	}
	// completed_count counts transitions, so it can only run ahead of the tasks
	if doc.CompletedCount < completed {
		problems = append(problems, fmt.Sprintf("completed_count is %d but %d tasks are completed", doc.CompletedCount, completed))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}
	return nil
}
