package extractors

import (
	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/schema"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Definition returns the group run over a declaration when its name is first
// needed.
func Definition() *command.Group {
	g := command.NewGroup("definition")
	g.RegisterRoot(syntax.KindRecord, extractRecord)
	g.RegisterRoot(syntax.KindEnum, extractEnum)
	g.RegisterRoot(syntax.KindAlias, extractAlias)

	g.Register(syntax.KindTypeParam, extractParam)
	g.Register(syntax.KindField, extractField)
	g.Register(syntax.KindReference, extractReference)
	g.Register(syntax.KindArray, extractArray)
	g.Register(syntax.KindMap, extractMap)
	g.Register(syntax.KindNullable, extractNullable)
	g.Register(syntax.KindUnion, extractUnion)
	g.Register(syntax.KindObject, extractObject)
	g.Register(syntax.KindNull, extractNull)
	return g
}

var localKinds = []syntax.Kind{syntax.KindTypeDecl, syntax.KindEnumDecl, syntax.KindAliasDecl}

// extractRecord defines the record before resolving its fields. Local
// declarations get their own scope.
func extractRecord(n *syntax.Node, emit command.Emit) (any, error) {
	ns, err := emitNamespace(emit)
	if err != nil {
		return nil, err
	}
	rec := &schema.Record{Name: n.Name, Namespace: ns, Doc: n.Text}
	if _, err := emit(command.DefineCmd(rec, true)); err != nil {
		return nil, err
	}

	locals := n.Members(localKinds...)
	if len(locals) > 0 {
		if _, err := emit(command.EnterCmd()); err != nil {
			return nil, err
		}
		for _, l := range locals {
			if _, err := emit(command.DeclareCmd(l.Name, l)); err != nil {
				return nil, err
			}
		}
	}

	if rec.Fields, err = emitFields(emit, n.Members(syntax.KindField)); err != nil {
		return nil, err
	}

	if len(locals) > 0 {
		if _, err := emit(command.ExitCmd()); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func extractEnum(n *syntax.Node, emit command.Emit) (any, error) {
	ns, err := emitNamespace(emit)
	if err != nil {
		return nil, err
	}
	e := &schema.Enum{Name: n.Name, Namespace: ns, Doc: n.Text, Symbols: n.Symbols}
	if _, err := emit(command.DefineCmd(e, true)); err != nil {
		return nil, err
	}
	return e, nil
}

func extractAlias(n *syntax.Node, emit command.Emit) (any, error) {
	t, err := emitType(emit, n.Value)
	if err != nil {
		return nil, err
	}
	if _, err := emit(command.AliasCmd(n.Name, t, true)); err != nil {
		return nil, err
	}
	return t, nil
}

// extractParam resolves the default of a formal parameter into an argument value.
func extractParam(n *syntax.Node, emit command.Emit) (any, error) {
	t, err := emitType(emit, n.Value)
	if err != nil {
		return nil, err
	}
	return schema.Argument(t), nil
}

func extractField(n *syntax.Node, emit command.Emit) (any, error) {
	t, err := emitType(emit, n.Value)
	if err != nil {
		return nil, err
	}
	f := &schema.Field{Name: n.Name, Type: t, Doc: n.Text}
	if n.HasDefault() {
		if f.Default, err = literal(*n.Default); err != nil {
			return nil, err
		}
		f.HasDefault = true
	}
	return f, nil
}

func extractReference(n *syntax.Node, emit command.Emit) (any, error) {
	var args []any
	if len(n.Args) > 0 {
		types, err := emitTypes(emit, n.Args)
		if err != nil {
			return nil, err
		}
		args = make([]any, len(types))
		for i, t := range types {
			args[i] = schema.Argument(t)
		}
	}
	v, err := emit(command.QueryCmd(n.Name, args...))
	if err != nil {
		return nil, err
	}
	return asType(v)
}

func extractArray(n *syntax.Node, emit command.Emit) (any, error) {
	arg, err := single(n)
	if err != nil {
		return nil, err
	}
	items, err := emitType(emit, arg)
	if err != nil {
		return nil, err
	}
	return &schema.Array{Items: items}, nil
}

func extractMap(n *syntax.Node, emit command.Emit) (any, error) {
	arg, err := single(n)
	if err != nil {
		return nil, err
	}
	values, err := emitType(emit, arg)
	if err != nil {
		return nil, err
	}
	return &schema.Map{Values: values}, nil
}

func extractNullable(n *syntax.Node, emit command.Emit) (any, error) {
	arg, err := single(n)
	if err != nil {
		return nil, err
	}
	t, err := emitType(emit, arg)
	if err != nil {
		return nil, err
	}
	return schema.Nullable(t), nil
}

func extractUnion(n *syntax.Node, emit command.Emit) (any, error) {
	members, err := emitTypes(emit, n.Args)
	if err != nil {
		return nil, err
	}
	return schema.Union(members), nil
}

// extractObject builds an inline record. It is written in place and never
// defined under a name.
func extractObject(n *syntax.Node, emit command.Emit) (any, error) {
	ns, err := emitNamespace(emit)
	if err != nil {
		return nil, err
	}
	rec := &schema.Record{Name: n.Name, Namespace: ns, Doc: n.Text, Inline: true}
	if rec.Fields, err = emitFields(emit, n.Members(syntax.KindField)); err != nil {
		return nil, err
	}
	return rec, nil
}

func extractNull(*syntax.Node, command.Emit) (any, error) {
	return schema.Null, nil
}
