// Package schema is the Avro model produced by the extractors.
//
// Named types (*Record, *Enum) are emitted once each as top-level entries;
// everywhere else they are referenced by full name. Complex types (*Array,
// *Map, Union) and inline records are written in place.
package schema

import "strings"

// Type is any Avro type.
type Type interface {
	avroType()
}

// Named is implemented by the types that carry an Avro name.
type Named interface {
	Type
	SchemaName() string
	SetSchemaName(name string)
	FullName() string
}

// Primitive is one of the Avro primitive type names.
type Primitive string

const (
	Null    Primitive = "null"
	Boolean Primitive = "boolean"
	Int     Primitive = "int"
	Long    Primitive = "long"
	Float   Primitive = "float"
	Double  Primitive = "double"
	Bytes   Primitive = "bytes"
	String  Primitive = "string"
)

// Ref references a named type by its full name.
type Ref string

// Record is an Avro record.
type Record struct {
	Name      string
	Namespace string
	Doc       string
	Fields    []*Field
	// Inline marks anonymous records written in place instead of by name.
	Inline bool
}

// Field is a single member of a Record.
type Field struct {
	Name string
	Type Type
	Doc  string
	// Default is the JSON-compatible default value. It is only meaningful
	// when HasDefault is set, since null is a valid default.
	Default    any
	HasDefault bool
}

// Enum is an Avro enum.
type Enum struct {
	Name      string
	Namespace string
	Doc       string
	Symbols   []string
}

// Array is an Avro array.
type Array struct {
	Items Type
}

// Map is an Avro map; keys are always strings.
type Map struct {
	Values Type
}

// Union is an ordered Avro union.
type Union []Type

func (Primitive) avroType() {}
func (Ref) avroType()       {}
func (*Record) avroType()   {}
func (*Enum) avroType()     {}
func (*Array) avroType()    {}
func (*Map) avroType()      {}
func (Union) avroType()     {}

func (r *Record) SchemaName() string        { return r.Name }
func (r *Record) SetSchemaName(name string) { r.Name = MangleSafe(name) }
func (r *Record) FullName() string          { return fullName(r.Namespace, r.Name) }

func (e *Enum) SchemaName() string        { return e.Name }
func (e *Enum) SetSchemaName(name string) { e.Name = MangleSafe(name) }
func (e *Enum) FullName() string          { return fullName(e.Namespace, e.Name) }

func fullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// Nullable wraps t in a union with null, flattening nested unions and keeping
// null first so that a null default stays valid.
func Nullable(t Type) Union {
	out := Union{Null}
	members := Union{t}
	if u, ok := t.(Union); ok {
		members = u
	}
	for _, m := range members {
		if p, ok := m.(Primitive); ok && p == Null {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Argument converts a resolved type into a generic argument value. Named types
// become references so that argument values stay textual.
func Argument(t Type) Type {
	if n, ok := t.(Named); ok {
		if r, isRecord := n.(*Record); isRecord && r.Inline {
			return t
		}
		return Ref(n.FullName())
	}
	return t
}

// MangleSafe replaces characters Avro does not allow in names.
func MangleSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
