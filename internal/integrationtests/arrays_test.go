package integration_tests

import (
	"testing"

	"github.com/specialistvlad/typecollect/internal/app"
	"github.com/specialistvlad/typecollect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArrays verifies that every spelling of a record with an array field
// produces the same schema.
func TestArrays(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"arrays.hcl": `
type "Type" {
  a = list(number)
}

type "Interface" {
  field "a" {
    type = array(double)
  }
}

type "Class" {
  a = list(double)
}

export = [Type, Interface, Class]
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{Inputs: []string{"arrays.hcl"}})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.JSONEq(t, `[
		{"type": "record", "name": "Type", "namespace": "arrays",
		 "fields": [{"name": "a", "type": {"type": "array", "items": "double"}}]},
		{"type": "record", "name": "Interface", "namespace": "arrays",
		 "fields": [{"name": "a", "type": {"type": "array", "items": "double"}}]},
		{"type": "record", "name": "Class", "namespace": "arrays",
		 "fields": [{"name": "a", "type": {"type": "array", "items": "double"}}]}
	]`, result.Output)
}
