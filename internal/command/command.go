// Package command defines the protocol between extractors and the engine.
//
// An Extractor turns one syntax node into a sequence of emissions. Each
// emission is a Command, a *syntax.Node or a []*syntax.Node, and Emit returns
// the value the engine resumes the extractor with. Extractors never touch
// scope state directly.
package command

import (
	"fmt"

	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Kind names the action a Command requests.
type Kind int

const (
	Declare Kind = iota + 1
	Define
	Alias
	External
	Provide
	Query
	Enter
	Exit
	Namespace
)

var kindNames = map[Kind]string{
	Declare:   "declare",
	Define:    "define",
	Alias:     "alias",
	External:  "external",
	Provide:   "provide",
	Query:     "query",
	Enter:     "enter",
	Exit:      "exit",
	Namespace: "namespace",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Named is a schema the engine can register and rename.
type Named interface {
	SchemaName() string
	SetSchemaName(name string)
}

// Command is a tagged request. Only the fields relevant to Kind are set.
type Command struct {
	Kind Kind

	Name  string
	Names []string
	Node  *syntax.Node
	// Schema is the payload of Define.
	Schema Named
	// Value is the payload of Alias.
	Value any
	// Template marks Define and Alias commands issued for a declaration that
	// may be generic.
	Template bool
	Import   scope.Import
	Args     []any
}

func (c Command) String() string {
	switch c.Kind {
	case Declare, Alias:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Name)
	case Define:
		return fmt.Sprintf("define(%s)", c.Schema.SchemaName())
	case Query:
		return fmt.Sprintf("query(%s)", scope.InstanceKey(c.Name, c.Args))
	case External:
		return fmt.Sprintf("external(%s from %s)", c.Import.Local, c.Import.Path)
	case Provide:
		return fmt.Sprintf("provide(%v)", c.Names)
	default:
		return c.Kind.String()
	}
}

// DeclareCmd registers node under name without expanding it.
func DeclareCmd(name string, node *syntax.Node) Command {
	return Command{Kind: Declare, Name: name, Node: node}
}

// DefineCmd registers schema and appends it to the output.
func DefineCmd(schema Named, template bool) Command {
	return Command{Kind: Define, Schema: schema, Template: template}
}

// AliasCmd binds name to an already resolved value without emitting output.
func AliasCmd(name string, v any, template bool) Command {
	return Command{Kind: Alias, Name: name, Value: v, Template: template}
}

// ExternalCmd registers an import.
func ExternalCmd(imp scope.Import) Command {
	return Command{Kind: External, Import: imp}
}

// ProvideCmd exports names from the current module.
func ProvideCmd(names ...string) Command {
	return Command{Kind: Provide, Names: names}
}

// QueryCmd resolves name, optionally instantiated with args.
func QueryCmd(name string, args ...any) Command {
	return Command{Kind: Query, Name: name, Args: args}
}

// EnterCmd pushes a child scope.
func EnterCmd() Command { return Command{Kind: Enter} }

// ExitCmd pops back to the parent scope.
func ExitCmd() Command { return Command{Kind: Exit} }

// NamespaceCmd asks for the namespace of the current scope.
func NamespaceCmd() Command { return Command{Kind: Namespace} }
