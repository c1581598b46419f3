package collector

import (
	"fmt"

	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// resolve drives name, looked up from s, to its definition. It suspends the
// running task whenever the answer depends on work other tasks still have to
// do.
func (f *frame) resolve(s *scope.Scope, name string, args []any) (any, error) {
	logger := ctxlog.FromContext(f.ctx)
	key := scope.InstanceKey(name, args)

	res := s.Query(name, args)
	if res.Kind == scope.Unknown {
		return nil, fmt.Errorf("%w: %s in %s", ErrUndeclared, key, moduleOf(s))
	}
	s = res.Scope

	if res.Kind == scope.External {
		target, err := f.importModule(s, res.Import)
		if err != nil {
			return nil, err
		}

		imported := res.Import.Imported
		for {
			res = target.Query(imported, args)
			if res.Kind != scope.Unknown {
				break
			}
			if err := f.suspend(scope.InstanceKey(imported, args) + " in " + target.Path); err != nil {
				return nil, err
			}
		}

		switch res.Kind {
		case scope.Definition:
			return res.Value, nil
		case scope.External:
			return nil, fmt.Errorf("%w: %s imports %s from %s, which imports it from %s",
				ErrReexport, moduleOf(s), imported, target.Path, res.Import.Path)
		}
		s, name = res.Scope, res.Name
	}

	if res.Kind == scope.Definition {
		return res.Value, nil
	}

	var bindings []binding
	if res.Kind == scope.Template {
		var err error
		if bindings, err = f.bind(res, args); err != nil {
			return nil, err
		}
		args = values(bindings)
		key = scope.InstanceKey(name, args)
	}

	logger.Debug("Expanding declaration.", "name", key, "kind", res.Kind.String())
	f.c.walk(f.ctx, f.c.definition, res.Node, s, bindings)

	seen := res.Kind
	for {
		res = s.Query(name, args)
		if res.Kind == scope.Definition {
			return res.Value, nil
		}
		if err := advance(key, seen, res.Kind); err != nil {
			return nil, err
		}
		seen = res.Kind
		if err := f.suspend(key); err != nil {
			return nil, err
		}
	}
}

// advance rejects a name moving back to an earlier resolution state. Scope
// tables only grow, so this guards the engine rather than extractor input.
func advance(key string, seen, now scope.Kind) error {
	if now < seen {
		return fmt.Errorf("%w: %s went from %s back to %s", ErrProtocol, key, seen, now)
	}
	return nil
}

// bind pairs the formal parameters of a template with the actual arguments,
// falling back to each parameter's default.
func (f *frame) bind(res scope.Result, args []any) ([]binding, error) {
	if len(args) > len(res.Params) {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrProtocol, res.Name, len(res.Params), len(args))
	}

	bindings := make([]binding, len(res.Params))
	for i, p := range res.Params {
		if i < len(args) {
			bindings[i] = binding{name: p.Name, value: args[i]}
			continue
		}
		v, err := f.defaultOf(res.Scope, p)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: parameter %s of %s has no argument and no default", ErrProtocol, p.Name, res.Name)
		}
		bindings[i] = binding{name: p.Name, value: v}
	}
	return bindings, nil
}

// defaultOf extracts the default of a formal parameter in the scope that
// declares it.
func (f *frame) defaultOf(s *scope.Scope, p *syntax.Node) (any, error) {
	if p.Value == nil {
		return nil, nil
	}
	def := &frame{c: f.c, ctx: f.ctx, task: f.task, group: f.c.definition, scope: s}
	return def.extract(p)
}

// importModule loads the module an import points at without draining.
func (f *frame) importModule(s *scope.Scope, imp scope.Import) (*scope.Module, error) {
	rel, err := s.Resolve(imp.Path)
	if err != nil {
		return nil, err
	}
	path, err := f.c.normalize(rel)
	if err != nil {
		return nil, err
	}
	if err := f.c.load(f.ctx, path, true); err != nil {
		return nil, err
	}
	return f.c.modules[path], nil
}

func (f *frame) suspend(waiting string) error {
	f.c.metrics.Suspended()
	return f.task.suspend(waiting)
}

func moduleOf(s *scope.Scope) string {
	if m := s.Module(); m != nil {
		return m.Path
	}
	return "global scope"
}
