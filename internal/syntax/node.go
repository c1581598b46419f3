// Package syntax defines the parser-neutral tree the resolution engine walks.
//
// A Node carries a Kind discriminant and a fixed set of child slots. The engine
// never interprets a node beyond its Kind and its children; the meaning of the
// slots belongs to the parser and the extractors registered for that Kind.
package syntax

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Kind is the discriminant tag of a syntax node.
type Kind string

const (
	KindFile        Kind = "File"
	KindImport      Kind = "Import"
	KindImportSpec  Kind = "ImportSpecifier"
	KindExport      Kind = "Export"
	KindIdentifier  Kind = "Identifier"
	KindTypeDecl    Kind = "TypeDeclaration"
	KindEnumDecl    Kind = "EnumDeclaration"
	KindAliasDecl   Kind = "AliasDeclaration"
	KindTypeParam   Kind = "TypeParameter"
	KindRecord      Kind = "RecordType"
	KindEnum        Kind = "EnumType"
	KindAlias       Kind = "AliasType"
	KindField       Kind = "Field"
	KindReference   Kind = "TypeReference"
	KindArray       Kind = "ArrayType"
	KindMap         Kind = "MapType"
	KindNullable    Kind = "NullableType"
	KindUnion       Kind = "UnionType"
	KindObject      Kind = "ObjectType"
	KindNull        Kind = "NullType"
)

// Node is a single vertex of a parsed source file.
type Node struct {
	Kind Kind
	// Name is the declared or referenced identifier, if any.
	Name string
	// Text holds a literal payload: the import path of an Import, the imported
	// name of an ImportSpecifier, or the documentation of a Field.
	Text string
	// Symbols lists the members of an EnumType.
	Symbols []string
	// Default is the literal default value of a Field, nil when the field
	// declares none.
	Default *cty.Value

	// Params are the formal generic parameters of a declaration.
	Params []*Node
	// Value is the single child of a node: the type of a Field, the default
	// of a TypeParameter, or the definition body of a declaration.
	Value *Node
	// Args are the actual arguments of a TypeReference or type constructor.
	Args []*Node
	// Body holds ordered members: fields, nested declarations, import
	// specifiers or exported identifiers.
	Body []*Node

	Range hcl.Range
}

// Type returns the node's discriminant.
func (n *Node) Type() Kind {
	return n.Kind
}

// IsGeneric reports whether the node declares formal generic parameters.
func (n *Node) IsGeneric() bool {
	return n != nil && len(n.Params) > 0
}

// HasDefault reports whether a Field declares a literal default.
func (n *Node) HasDefault() bool {
	return n.Default != nil
}

// Children returns the child slots of the node in traversal order. Each
// element is either a *Node (possibly nil) or a []*Node.
func (n *Node) Children() []any {
	return []any{n.Params, n.Value, n.Args, n.Body}
}

// Members returns the Body entries of the given kinds, in order.
func (n *Node) Members(kinds ...Kind) []*Node {
	var out []*Node
	for _, m := range n.Body {
		for _, k := range kinds {
			if m.Kind == k {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
