package scope

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/typecollect/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func newModuleScope(t *testing.T, path string) (*Module, *Scope) {
	t.Helper()
	global := Global(map[string]any{"string": label("string")})
	m := NewModule(path, "test")
	root := global.Extend(m)
	require.Same(t, root, m.Root)
	return m, root
}

func TestQuery_Priority(t *testing.T) {
	_, root := newModuleScope(t, "/src/a.hcl")
	decl := &syntax.Node{Kind: syntax.KindTypeDecl, Name: "A"}

	require.NoError(t, root.AddImport(Import{Local: "A", Path: "./b.hcl", Imported: "B"}))
	assert.Equal(t, External, root.Query("A", nil).Kind)

	require.NoError(t, root.AddDeclaration("A", decl))
	res := root.Query("A", nil)
	assert.Equal(t, Declaration, res.Kind)
	assert.Same(t, decl, res.Node)
	assert.Same(t, root, res.Scope)

	require.NoError(t, root.AddDefinition("A", label("a")))
	res = root.Query("A", nil)
	assert.Equal(t, Definition, res.Kind)
	assert.Equal(t, label("a"), res.Value)
}

func TestQuery_TemplateAndInstances(t *testing.T) {
	_, root := newModuleScope(t, "/src/a.hcl")
	box := &syntax.Node{
		Kind:   syntax.KindTypeDecl,
		Name:   "Box",
		Params: []*syntax.Node{{Kind: syntax.KindTypeParam, Name: "T"}},
	}
	require.NoError(t, root.AddDeclaration("Box", box))

	res := root.Query("Box", []any{label("string")})
	require.Equal(t, Template, res.Kind)
	assert.Len(t, res.Params, 1)

	require.NoError(t, root.AddInstance("Box", label("Box__string"), []any{label("string")}))
	res = root.Query("Box", []any{"string"})
	require.Equal(t, Definition, res.Kind, "textual arguments match by text")
	assert.Equal(t, label("Box__string"), res.Value)

	assert.Equal(t, Template, root.Query("Box", []any{label("long")}).Kind)
	assert.Equal(t, Template, root.Query("Box", nil).Kind, "instances are only consulted with arguments")

	err := root.AddInstance("Box", label("again"), []any{label("string")})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestQuery_AscendsToParents(t *testing.T) {
	_, root := newModuleScope(t, "/src/a.hcl")
	child := root.Extend(nil)

	assert.Equal(t, Definition, child.Query("string", nil).Kind)
	assert.Equal(t, Unknown, child.Query("Missing", nil).Kind)
	assert.Equal(t, "test", child.Namespace())
	assert.False(t, child.IsRoot())
	assert.True(t, root.IsRoot())

	require.NoError(t, child.AddDefinition("Local", label("local")))
	assert.Equal(t, Unknown, root.Query("Local", nil).Kind, "child bindings are invisible to the parent")
}

func TestAdd_Duplicates(t *testing.T) {
	_, root := newModuleScope(t, "/src/a.hcl")
	n := &syntax.Node{Kind: syntax.KindTypeDecl}

	require.NoError(t, root.AddDeclaration("A", n))
	require.ErrorIs(t, root.AddDeclaration("A", n), ErrDuplicate)
	require.NoError(t, root.AddDefinition("A", label("a")))
	require.ErrorIs(t, root.AddDefinition("A", label("a")), ErrDuplicate)
	require.NoError(t, root.AddImport(Import{Local: "B"}))
	require.ErrorIs(t, root.AddImport(Import{Local: "B"}), ErrDuplicate)
}

func TestAddExport_RecordsScopePairs(t *testing.T) {
	m, root := newModuleScope(t, "/src/a.hcl")
	child := root.Extend(nil)

	require.NoError(t, root.AddExport("A", "B"))
	require.NoError(t, child.AddExport("C"))
	require.ErrorIs(t, root.AddExport("A"), ErrDuplicate)

	exports := m.Exports()
	require.Len(t, exports, 3)
	assert.Equal(t, "C", exports[2].Name)
	assert.Same(t, child, exports[2].Scope)

	require.Error(t, Global(nil).AddExport("X"))
}

func TestResolve(t *testing.T) {
	_, root := newModuleScope(t, filepath.FromSlash("/src/models/a.hcl"))
	child := root.Extend(nil)

	got, err := child.Resolve("./b.hcl")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/src/models/b.hcl"), got)

	got, err = root.Resolve("../common/c.hcl")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/src/common/c.hcl"), got)

	_, err = Global(nil).Resolve("./x.hcl")
	require.Error(t, err)
}

func TestInstanceKey(t *testing.T) {
	assert.Equal(t, "Box", InstanceKey("Box", nil))
	assert.Equal(t, "Pair(string, long)", InstanceKey("Pair", []any{"string", label("long")}))
	assert.Equal(t, "Box([]int)", InstanceKey("Box", []any{[]int{1}}))
}

func TestSameValue(t *testing.T) {
	p := &struct{ x int }{}
	assert.True(t, sameValue(p, p))
	assert.False(t, sameValue(p, &struct{ x int }{}))
	assert.False(t, sameValue([]int{1}, []int{1}), "uncomparable values never match")
	assert.False(t, sameValue("a", p))
	assert.True(t, sameValue(nil, nil))
}
