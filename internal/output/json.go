package output

import (
	"encoding/json"
	"io"

	"github.com/specialistvlad/typecollect/internal/schema"
)

// JSONFormatter writes schemas as a JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Description returns the formatter description.
func (f *JSONFormatter) Description() string {
	return "Avro schemas as a JSON array"
}

// Format writes schemas as JSON.
func (f *JSONFormatter) Format(w io.Writer, schemas []schema.Type, opts Options) error {
	encoder := json.NewEncoder(w)
	if !opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(documents(schemas))
}
