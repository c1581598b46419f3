package scope

import (
	"reflect"

	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Kind classifies what a name currently resolves to.
type Kind int

// The order of the constants is the order in which a name may advance.
const (
	Unknown Kind = iota
	External
	Declaration
	Template
	Definition
)

func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case Declaration:
		return "declaration"
	case Template:
		return "template"
	case Definition:
		return "definition"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Query.
type Result struct {
	Kind Kind
	Name string
	// Scope is the scope the name was found in.
	Scope *Scope

	// Node is the declaration node for Declaration and Template results.
	Node *syntax.Node
	// Params are the formal generic parameters of a Template.
	Params []*syntax.Node
	// Value is the terminal value of a Definition.
	Value any
	// Import describes an External result.
	Import Import
}

// Textual returns the string form of v when v is of a string kind.
func Textual(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// SameArgs reports whether two argument lists match under the rules instance
// lookup uses.
func SameArgs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameValue(a[i], b[i]) {
			return false
		}
	}
	return true
}

// sameValue compares textual values by text and everything else by identity.
func sameValue(a, b any) bool {
	ta, aok := Textual(a)
	tb, bok := Textual(b)
	if aok || bok {
		return aok && bok && ta == tb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ra != rb || !ra.Comparable() {
		return false
	}
	return a == b
}
