package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// frame is the state of one running extractor. Each nested extraction gets
// its own copy, so enter and exit only move the scope of the extractor that
// emitted them.
type frame struct {
	c        *Collector
	ctx      context.Context
	task     *task
	group    *command.Group
	scope    *scope.Scope
	bindings []binding
}

// extract runs the extractor registered for n. A node without one is walked
// as a container and yields no result.
func (f *frame) extract(n *syntax.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	ex, ok := f.group.Extractor(n.Kind)
	if !ok {
		f.c.walk(f.ctx, f.group, n, f.scope, f.bindings)
		return nil, nil
	}

	f.c.ring.Progress()
	inner := *f
	return ex(n, inner.emit)
}

// emit interprets one emission and returns the value the extractor resumes with.
func (f *frame) emit(v any) (any, error) {
	f.c.ring.Progress()

	switch v := v.(type) {
	case command.Command:
		return f.apply(v)
	case *syntax.Node:
		return f.extract(v)
	case []*syntax.Node:
		out := make([]any, len(v))
		for i, n := range v {
			r, err := f.extract(n)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot emit %T", ErrProtocol, v)
	}
}

func (f *frame) apply(cmd command.Command) (any, error) {
	switch cmd.Kind {
	case command.Declare:
		return nil, f.scope.AddDeclaration(cmd.Name, cmd.Node)
	case command.Define:
		return cmd.Schema, f.define(cmd)
	case command.Alias:
		return cmd.Value, f.alias(cmd)
	case command.External:
		return nil, f.scope.AddImport(cmd.Import)
	case command.Provide:
		return nil, f.scope.AddExport(cmd.Names...)
	case command.Query:
		return f.query(cmd.Name, cmd.Args)
	case command.Enter:
		child := f.scope.Extend(nil)
		for _, b := range f.bindings {
			if err := child.AddDefinition(b.name, b.value); err != nil {
				return nil, err
			}
		}
		f.scope = child
		return nil, nil
	case command.Exit:
		if f.scope.IsRoot() || f.scope.Parent() == nil {
			return nil, fmt.Errorf("%w: exit from the root scope of a module", ErrScope)
		}
		f.scope = f.scope.Parent()
		return nil, nil
	case command.Namespace:
		return f.scope.Namespace(), nil
	default:
		return nil, fmt.Errorf("%w: unknown command %s", ErrProtocol, cmd)
	}
}

// define registers a schema and appends it to the output. A schema coming
// from a generic declaration is renamed after its arguments and memoized as
// an instance.
func (f *frame) define(cmd command.Command) error {
	logger := ctxlog.FromContext(f.ctx)
	name := cmd.Schema.SchemaName()

	if cmd.Template && len(f.bindings) > 0 {
		mangled, err := mangle(name, f.bindings)
		if err != nil {
			return err
		}
		cmd.Schema.SetSchemaName(mangled)
		if err := f.scope.AddInstance(name, cmd.Schema, values(f.bindings)); err != nil {
			return err
		}
	} else if err := f.scope.AddDefinition(name, cmd.Schema); err != nil {
		return err
	}

	f.c.schemas = append(f.c.schemas, cmd.Schema)
	f.c.metrics.SchemaEmitted()
	logger.Debug("Schema defined.", "name", cmd.Schema.SchemaName(), "task", f.task.String())
	return nil
}

// alias binds a name like define does, without renaming or output.
func (f *frame) alias(cmd command.Command) error {
	if cmd.Template && len(f.bindings) > 0 {
		return f.scope.AddInstance(cmd.Name, cmd.Value, values(f.bindings))
	}
	return f.scope.AddDefinition(cmd.Name, cmd.Value)
}

// query answers from the bound generic parameters first and resolves the
// name through the scope chain otherwise.
func (f *frame) query(name string, args []any) (any, error) {
	for _, b := range f.bindings {
		if b.name == name {
			return b.value, nil
		}
	}
	return f.resolve(f.scope, name, args)
}

// mangle derives an instance name from the base name and the bound values,
// for example Box__string. Every value has to be textual.
func mangle(base string, bindings []binding) (string, error) {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("_")
	for _, bd := range bindings {
		text, ok := scope.Textual(bd.value)
		if !ok {
			return "", fmt.Errorf("%w: argument %s of %s is %T, expected a named type", ErrProtocol, bd.name, base, bd.value)
		}
		b.WriteString("_")
		b.WriteString(text)
	}
	return b.String(), nil
}
