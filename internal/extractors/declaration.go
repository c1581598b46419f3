package extractors

import (
	"github.com/specialistvlad/typecollect/internal/command"
	"github.com/specialistvlad/typecollect/internal/scope"
	"github.com/specialistvlad/typecollect/internal/syntax"
)

// Declaration returns the group run over every loaded file.
func Declaration() *command.Group {
	g := command.NewGroup("declaration")
	g.RegisterRoot(syntax.KindImport, extractImport)
	g.RegisterRoot(syntax.KindExport, extractExport)
	g.RegisterRoot(syntax.KindTypeDecl, extractDeclaration)
	g.RegisterRoot(syntax.KindEnumDecl, extractDeclaration)
	g.RegisterRoot(syntax.KindAliasDecl, extractDeclaration)
	return g
}

func extractImport(n *syntax.Node, emit command.Emit) (any, error) {
	for _, spec := range n.Members(syntax.KindImportSpec) {
		imp := scope.Import{Local: spec.Name, Path: n.Text, Imported: spec.Text}
		if _, err := emit(command.ExternalCmd(imp)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func extractExport(n *syntax.Node, emit command.Emit) (any, error) {
	ids := n.Members(syntax.KindIdentifier)
	if len(ids) == 0 {
		return nil, nil
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	_, err := emit(command.ProvideCmd(names...))
	return nil, err
}

func extractDeclaration(n *syntax.Node, emit command.Emit) (any, error) {
	_, err := emit(command.DeclareCmd(n.Name, n))
	return nil, err
}
