// Package scope implements the lexical environments the resolution engine
// binds names in. It is pure data plus lookup logic; it never schedules work.
package scope

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/typecollect/internal/syntax"
)

// ErrDuplicate is returned when a binding is added at a key that already holds state.
var ErrDuplicate = errors.New("duplicate binding")

// Import records a name brought into a scope from another module.
type Import struct {
	// Local is the name the import is bound to in the importing scope.
	Local string
	// Path is the module path, relative to the importing module.
	Path string
	// Imported is the name exported by the target module.
	Imported string
}

type instance struct {
	args  []any
	value any
}

// Scope is one node of the environment tree. The parent link is the only
// upward reference; parents never track their children.
type Scope struct {
	parent    *Scope
	module    *Module
	namespace string

	declarations map[string]*syntax.Node
	definitions  map[string]any
	instances    map[string][]instance
	imports      map[string]Import
}

func newScope(parent *Scope, module *Module, namespace string) *Scope {
	return &Scope{
		parent:       parent,
		module:       module,
		namespace:    namespace,
		declarations: make(map[string]*syntax.Node),
		definitions:  make(map[string]any),
		instances:    make(map[string][]instance),
		imports:      make(map[string]Import),
	}
}

// Global returns a parentless scope pre-populated with the given definitions.
func Global(defs map[string]any) *Scope {
	s := newScope(nil, nil, "")
	for name, v := range defs {
		s.definitions[name] = v
	}
	return s
}

// Extend creates a child scope. When module is non-nil the child becomes that
// module's root scope and takes its namespace; otherwise it inherits the
// namespace of s.
func (s *Scope) Extend(module *Module) *Scope {
	if module == nil {
		return newScope(s, nil, s.namespace)
	}
	child := newScope(s, module, module.Namespace)
	module.Root = child
	return child
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsRoot reports whether s is the root scope of a module.
func (s *Scope) IsRoot() bool {
	return s.module != nil
}

// Module returns the module that owns s, walking up to the nearest root.
func (s *Scope) Module() *Module {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.module != nil {
			return cur.module
		}
	}
	return nil
}

// Namespace returns the namespace string fixed at creation.
func (s *Scope) Namespace() string {
	return s.namespace
}

// AddDeclaration registers a raw, not yet expanded declaration.
func (s *Scope) AddDeclaration(name string, node *syntax.Node) error {
	if _, ok := s.declarations[name]; ok {
		return fmt.Errorf("%w: declaration %q", ErrDuplicate, name)
	}
	s.declarations[name] = node
	return nil
}

// AddDefinition registers the terminal value of a name.
func (s *Scope) AddDefinition(name string, v any) error {
	if _, ok := s.definitions[name]; ok {
		return fmt.Errorf("%w: definition %q", ErrDuplicate, name)
	}
	s.definitions[name] = v
	return nil
}

// AddInstance memoizes the expansion of a generic name for the given
// argument values.
func (s *Scope) AddInstance(name string, v any, args []any) error {
	if _, ok := s.lookupInstance(name, args); ok {
		return fmt.Errorf("%w: instance %s", ErrDuplicate, InstanceKey(name, args))
	}
	s.instances[name] = append(s.instances[name], instance{args: args, value: v})
	return nil
}

// AddImport registers a name imported from another module.
func (s *Scope) AddImport(imp Import) error {
	if _, ok := s.imports[imp.Local]; ok {
		return fmt.Errorf("%w: import %q", ErrDuplicate, imp.Local)
	}
	s.imports[imp.Local] = imp
	return nil
}

// AddExport records names exported from the owning module, paired with s as
// the scope they are resolved from.
func (s *Scope) AddExport(names ...string) error {
	m := s.Module()
	if m == nil {
		return errors.New("export outside of a module")
	}
	for _, name := range names {
		if err := m.addExport(s, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scope) lookupInstance(name string, args []any) (any, bool) {
	for _, in := range s.instances[name] {
		if SameArgs(in.args, args) {
			return in.value, true
		}
	}
	return nil, false
}

// Query classifies name by searching s and then its ancestors. Within each
// scope an instance for args wins over a definition, which wins over a
// declaration, which wins over an import.
func (s *Scope) Query(name string, args []any) Result {
	for cur := s; cur != nil; cur = cur.parent {
		if len(args) > 0 {
			if v, ok := cur.lookupInstance(name, args); ok {
				return Result{Kind: Definition, Name: name, Scope: cur, Value: v}
			}
		}
		if v, ok := cur.definitions[name]; ok {
			return Result{Kind: Definition, Name: name, Scope: cur, Value: v}
		}
		if n, ok := cur.declarations[name]; ok {
			if n.IsGeneric() {
				return Result{Kind: Template, Name: name, Scope: cur, Node: n, Params: n.Params}
			}
			return Result{Kind: Declaration, Name: name, Scope: cur, Node: n}
		}
		if imp, ok := cur.imports[name]; ok {
			return Result{Kind: External, Name: name, Scope: cur, Import: imp}
		}
	}
	return Result{Kind: Unknown, Name: name}
}

// Resolve turns a module path recorded relative to the owning module into an
// absolute, cleaned file path.
func (s *Scope) Resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}
	m := s.Module()
	if m == nil {
		return "", fmt.Errorf("cannot resolve %q outside of a module", rel)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(rel)), nil
}

// InstanceKey renders a (name, args) key for logs and errors.
func InstanceKey(name string, args []any) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		if text, ok := Textual(a); ok {
			parts[i] = text
		} else {
			parts[i] = fmt.Sprintf("%T", a)
		}
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
