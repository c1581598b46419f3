package parser

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/typecollect/internal/syntax"
	"github.com/specialistvlad/typecollect/internal/tchcl"
	"github.com/zclconf/go-cty/cty"
)

// constructors maps the built-in type constructor calls to node kinds.
var constructors = map[string]syntax.Kind{
	"list":     syntax.KindArray,
	"array":    syntax.KindArray,
	"map":      syntax.KindMap,
	"optional": syntax.KindNullable,
	"nullable": syntax.KindNullable,
	"union":    syntax.KindUnion,
}

// typeExpr reads a type expression. context names inline objects, which are
// called after the field that holds them.
func (b *builder) typeExpr(expr hcl.Expression, context string) *syntax.Node {
	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		name, diags := tchcl.Identifier(v, "type reference")
		if diags.HasErrors() {
			b.diags = append(b.diags, diags...)
			return nil
		}
		return &syntax.Node{Kind: syntax.KindReference, Name: name, Range: v.Range()}

	case *hclsyntax.FunctionCallExpr:
		args := make([]*syntax.Node, 0, len(v.Args))
		for _, a := range v.Args {
			if n := b.typeExpr(a, context); n != nil {
				args = append(args, n)
			}
		}
		kind, builtin := constructors[v.Name]
		if !builtin {
			return &syntax.Node{Kind: syntax.KindReference, Name: v.Name, Args: args, Range: v.Range()}
		}
		switch {
		case kind == syntax.KindUnion && len(v.Args) == 0:
			b.errorf(v.Range(), "Invalid type constructor", "union() needs at least one member type.")
			return nil
		case kind != syntax.KindUnion && len(v.Args) != 1:
			b.errorf(v.Range(), "Invalid type constructor", "%s() takes exactly one type argument, got %d.", v.Name, len(v.Args))
			return nil
		}
		return &syntax.Node{Kind: kind, Args: args, Range: v.Range()}

	case *hclsyntax.ObjectConsExpr:
		n := &syntax.Node{Kind: syntax.KindObject, Name: context, Range: v.Range()}
		for _, item := range v.Items {
			key := b.objectKey(item.KeyExpr)
			if key == "" {
				continue
			}
			n.Body = append(n.Body, &syntax.Node{
				Kind:  syntax.KindField,
				Name:  key,
				Value: b.typeExpr(item.ValueExpr, context+"_"+key),
				Range: hcl.RangeBetween(item.KeyExpr.Range(), item.ValueExpr.Range()),
			})
		}
		return n

	case *hclsyntax.LiteralValueExpr:
		if v.Val.IsNull() {
			return &syntax.Node{Kind: syntax.KindNull, Range: v.Range()}
		}

	case *hclsyntax.ParenthesesExpr:
		return b.typeExpr(v.Expression, context)
	}

	b.errorf(expr.Range(), "Invalid type expression", "Expected a type name, a type constructor call like list(string), an object like { x = double } or null.")
	return nil
}

// objectKey reads an inline object key, either bare or quoted.
func (b *builder) objectKey(expr hcl.Expression) string {
	if key := hcl.ExprAsKeyword(expr); key != "" {
		return key
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.String) {
		b.errorf(expr.Range(), "Invalid object key", "Keys of an inline object must be bare names or quoted strings.")
		return ""
	}
	return v.AsString()
}
