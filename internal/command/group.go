package command

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Emit hands one emission to the engine and returns the value to resume with.
type Emit func(v any) (any, error)

// Extractor translates a syntax node through emissions into a result.
type Extractor func(n *syntax.Node, emit Emit) (any, error)

// Group holds the extractors registered for one phase, keyed by node kind.
// Root kinds are the ones the tree walker claims and turns into tasks; other
// kinds are only reached when an extractor emits them.
type Group struct {
	name  string
	all   map[syntax.Kind]Extractor
	roots map[syntax.Kind]struct{}
}

// NewGroup creates an empty extractor group.
func NewGroup(name string) *Group {
	return &Group{
		name:  name,
		all:   make(map[syntax.Kind]Extractor),
		roots: make(map[syntax.Kind]struct{}),
	}
}

// Name returns the group's name.
func (g *Group) Name() string {
	return g.name
}

// Register adds the extractor for kind.
func (g *Group) Register(kind syntax.Kind, ex Extractor) {
	if _, exists := g.all[kind]; exists {
		panic(fmt.Sprintf("extractor for '%s' already registered in group '%s'", kind, g.name))
	}
	slog.Debug("Registering extractor.", "group", g.name, "kind", kind)
	g.all[kind] = ex
}

// RegisterRoot adds the extractor for kind and marks kind as a walk root.
func (g *Group) RegisterRoot(kind syntax.Kind, ex Extractor) {
	g.Register(kind, ex)
	g.roots[kind] = struct{}{}
}

// Accepts reports whether the tree walker claims nodes of kind for this group.
func (g *Group) Accepts(kind syntax.Kind) bool {
	_, ok := g.roots[kind]
	return ok
}

// Extractor returns the extractor registered for kind.
func (g *Group) Extractor(kind syntax.Kind) (Extractor, bool) {
	ex, ok := g.all[kind]
	return ex, ok
}
