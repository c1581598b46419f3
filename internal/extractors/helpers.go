package extractors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/schema"
	"github.com/specialistvlad/typecollect/internal/syntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ErrMalformed is returned when a node does not have the shape its kind requires.
var ErrMalformed = errors.New("malformed node")

func asType(v any) (schema.Type, error) {
	t, ok := v.(schema.Type)
	if !ok || t == nil {
		return nil, fmt.Errorf("resolved to %T, expected a type", v)
	}
	return t, nil
}

func emitType(emit command.Emit, n *syntax.Node) (schema.Type, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	v, err := emit(n)
	if err != nil {
		return nil, err
	}
	t, err := asType(v)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, err)
	}
	return t, nil
}

func emitTypes(emit command.Emit, nodes []*syntax.Node) ([]schema.Type, error) {
	v, err := emit(nodes)
	if err != nil {
		return nil, err
	}
	results, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of results, got %T", ErrMalformed, v)
	}
	out := make([]schema.Type, len(results))
	for i, r := range results {
		if out[i], err = asType(r); err != nil {
			return nil, fmt.Errorf("%s %q: %w", nodes[i].Kind, nodes[i].Name, err)
		}
	}
	return out, nil
}

func emitFields(emit command.Emit, nodes []*syntax.Node) ([]*schema.Field, error) {
	v, err := emit(nodes)
	if err != nil {
		return nil, err
	}
	results, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of fields, got %T", ErrMalformed, v)
	}
	fields := make([]*schema.Field, len(results))
	for i, r := range results {
		f, ok := r.(*schema.Field)
		if !ok {
			return nil, fmt.Errorf("%w: expected a field, got %T", ErrMalformed, r)
		}
		fields[i] = f
	}
	return fields, nil
}

func emitNamespace(emit command.Emit) (string, error) {
	v, err := emit(command.NamespaceCmd())
	if err != nil {
		return "", err
	}
	ns, _ := v.(string)
	return ns, nil
}

func single(n *syntax.Node) (*syntax.Node, error) {
	if len(n.Args) != 1 {
		return nil, fmt.Errorf("%w: %s takes one argument, got %d", ErrMalformed, n.Kind, len(n.Args))
	}
	return n.Args[0], nil
}

// literal converts a cty value into its JSON-compatible Go form.
func literal(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%w: default value is not known", ErrMalformed)
	}
	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode default value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode default value: %w", err)
	}
	return out, nil
}
