package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/josephgoksu/tasktracker/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchemaViolation is returned by ValidateSchema when the document does not
// match the task document JSON schema.
var ErrSchemaViolation = errors.New("document does not match schema")

const schemaURL = "tasks.schema.json"

//go:embed schema/tasks.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks the JSON form of doc against the embedded schema.
// Decoding has already filled in absent keys, so only values are checked in
// practice; use ValidateSchemaBytes on stored data.
func ValidateSchema(doc *models.Document) error {
	data, err := encodeJSON(doc)
	if err != nil {
		return err
	}
	return ValidateSchemaBytes(data)
}

// ValidateSchemaBytes checks stored JSON against the embedded schema:
// required keys, field types, the status enum and the timestamp layout.
func ValidateSchemaBytes(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var problems []string
		collectSchemaProblems(ve, &problems)
		return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
	}
	return nil
}

// collectSchemaProblems gathers the leaf errors, which name the actual field.
func collectSchemaProblems(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaProblems(cause, out)
	}
}
