package store

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/tasktracker/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the export formats Encode accepts.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

// Encode renders the document in the given format. JSON output is identical
// to what FileStore writes.
func Encode(doc *models.Document, format string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("encode: document is nil")
	}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		return encodeJSON(doc)
	case FormatYAML, "yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal YAML: %w", err)
		}
		return data, nil
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s. Supported formats are %s", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
	}
}
