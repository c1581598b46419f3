package tchcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey renders a traversal back to source form, e.g. `models.user[0]`.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// Identifier reads an expression that must be a single bare name such as
// `string` or `Order`.
func Identifier(expr hcl.Expression, what string) (string, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + what,
			Detail:   fmt.Sprintf("The %s must be a bare name like 'string' or 'Order'.", what),
			Subject:  expr.Range().Ptr(),
		}}
	}
	if len(traversal) != 1 {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + what,
			Detail:   fmt.Sprintf("The %s must be a single name, not the path %q.", what, TraversalKey(traversal)),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return traversal.RootName(), nil
}

// Identifiers reads a tuple of bare names such as `[Order, Color]`.
func Identifiers(expr hcl.Expression, what string) ([]string, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}
	names := make([]string, 0, len(exprs))
	for _, e := range exprs {
		name, d := Identifier(e, what)
		diags = append(diags, d...)
		if name != "" {
			names = append(names, name)
		}
	}
	return names, diags
}
