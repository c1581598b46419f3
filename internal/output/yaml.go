package output

import (
	"io"

	"github.com/specialistvlad/typecollect/internal/schema"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes schemas as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Description returns the formatter description.
func (f *YAMLFormatter) Description() string {
	return "Avro schemas as a YAML sequence"
}

// Format writes schemas as YAML. Compact has no effect.
func (f *YAMLFormatter) Format(w io.Writer, schemas []schema.Type, _ Options) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(documents(schemas))
}
