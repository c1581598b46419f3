package scope

import "fmt"

// Export pairs an exported name with the scope it is resolved from.
type Export struct {
	Scope *Scope
	Name  string
}

// Module is one loaded source file.
type Module struct {
	// Path is the absolute, cleaned file path; it identifies the module.
	Path      string
	Namespace string
	// Root is set when the module's root scope is created with Scope.Extend.
	Root *Scope

	exports []Export
}

// NewModule creates a module without a root scope.
func NewModule(path, namespace string) *Module {
	return &Module{Path: path, Namespace: namespace}
}

// Exports returns the export pairs in declaration order.
func (m *Module) Exports() []Export {
	return m.exports
}

// Query looks name up in the module's root scope.
func (m *Module) Query(name string, args []any) Result {
	return m.Root.Query(name, args)
}

func (m *Module) addExport(s *Scope, name string) error {
	for _, e := range m.exports {
		if e.Name == name {
			return fmt.Errorf("%w: export %q in %s", ErrDuplicate, name, m.Path)
		}
	}
	m.exports = append(m.exports, Export{Scope: s, Name: name})
	return nil
}
