package collector

import (
	"context"

	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// binding is one formal generic parameter bound to its actual value.
type binding struct {
	name  string
	value any
}

func values(bindings []binding) []any {
	if len(bindings) == 0 {
		return nil
	}
	out := make([]any, len(bindings))
	for i, b := range bindings {
		out[i] = b.value
	}
	return out
}

// claim identifies where a node was expanded. The same declaration node is
// expanded once per scope and per set of bound generic values.
type claim struct {
	node  *syntax.Node
	scope *scope.Scope
}

// tryClaim records the expansion and reports whether it is new.
func (c *Collector) tryClaim(n *syntax.Node, s *scope.Scope, bindings []binding) bool {
	key := claim{node: n, scope: s}
	args := values(bindings)
	for _, seen := range c.claimed[key] {
		if scope.SameArgs(seen, args) {
			return false
		}
	}
	c.claimed[key] = append(c.claimed[key], args)
	return true
}

// walk visits the tree under root depth-first with an explicit stack. Nodes
// the group is rooted on are claimed and spawned as tasks without visiting
// their children; every other node is descended into.
func (c *Collector) walk(ctx context.Context, group *command.Group, root *syntax.Node, s *scope.Scope, bindings []binding) {
	stack := []any{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := top.(type) {
		case *syntax.Node:
			if v == nil {
				continue
			}
			if group.Accepts(v.Kind) {
				if c.tryClaim(v, s, bindings) {
					c.spawnNode(ctx, group, v, s, bindings)
				}
				continue
			}
			children := v.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		case []*syntax.Node:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		}
	}
}
