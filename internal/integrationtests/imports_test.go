package integration_tests

import (
	"testing"

	"github.com/specialistvlad/typecollect/internal/app"
	"github.com/specialistvlad/typecollect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(schemas []map[string]any) []string {
	out := make([]string, len(schemas))
	for i, s := range schemas {
		out[i] = s["namespace"].(string) + "." + s["name"].(string)
	}
	return out
}

func byName(t *testing.T, schemas []map[string]any, name string) map[string]any {
	t.Helper()
	for _, s := range schemas {
		if s["name"] == name {
			return s
		}
	}
	t.Fatalf("schema %s not found in %v", name, names(schemas))
	return nil
}

// TestImports_DirectoryInput collects a directory whose files import each
// other in a cycle. Every schema appears exactly once.
func TestImports_DirectoryInput(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"models/user.hcl": `
import "./group.hcl" {
  Group = Group
}
type "User" {
  name   = string
  groups = list(Group)
}
export = [User]
`,
		"models/group.hcl": `
import "./user" {
  Member = User
}
type "Group" {
  title   = string
  members = list(Member)
  owner   = optional(Member)
}
export = [Group]
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{Inputs: []string{"models"}})

	// --- Assert ---
	require.NoError(t, result.Err)
	schemas := result.Schemas(t)
	assert.ElementsMatch(t, []string{"models.user.User", "models.group.Group"}, names(schemas))

	group := byName(t, schemas, "Group")
	fields := group["fields"].([]any)
	assert.Equal(t, map[string]any{"type": "array", "items": "models.user.User"}, fields[1].(map[string]any)["type"])
	assert.Equal(t, []any{"null", "models.user.User"}, fields[2].(map[string]any)["type"])
}

func TestImports_ReexportIsRejected(t *testing.T) {
	files := map[string]string{
		"a.hcl": `
type "A" { x = long }
export = [A]
`,
		"b.hcl": `
import "./a.hcl" {
  A = A
}
export = [A]
`,
		"c.hcl": `
import "./b.hcl" {
  A = A
}
type "C" { a = A }
export = [C]
`,
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{Inputs: []string{"c.hcl"}})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "re-exported imports are not supported")
}
