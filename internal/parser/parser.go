// Package parser reads the HCL type dialect into syntax trees.
//
// A file holds import blocks, type, enum and alias declarations and an
// optional export list:
//
//	import "./common.hcl" {
//	  Money = Money
//	}
//
//	type "Order" {
//	  param "T" { default = string }
//	  id    = long
//	  lines = list(Line)
//	  box   = Box(T)
//	  field "status" {
//	    type    = string
//	    doc     = "current status"
//	    default = "new"
//	  }
//	  type "Line" { sku = string }
//	}
//
//	enum "Color" { symbols = ["red", "green"] }
//	alias "Id" { type = long }
//	export = [Order, Color]
//
// Members keep their source order. Problems are returned as hcl.Diagnostics.
package parser

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/typecollect/internal/syntax"
	"github.com/specialistvlad/typecollect/internal/tchcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Parser parses source files of the HCL type dialect.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse turns the source of one file into a syntax tree rooted at a File node.
func (p *Parser) Parse(filename string, src []byte) (*syntax.Node, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type %T in %s", file.Body, filename)
	}

	b := &builder{}
	root := &syntax.Node{Kind: syntax.KindFile, Name: filename, Range: body.Range()}
	root.Body = b.file(body)
	if b.diags.HasErrors() {
		return nil, b.diags
	}
	return root, nil
}

// builder accumulates diagnostics so that one pass reports every problem.
type builder struct {
	diags hcl.Diagnostics
}

func (b *builder) errorf(rng hcl.Range, summary, format string, args ...any) {
	b.diags = append(b.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
}

// member is an attribute or a block, whichever appears in the source.
type member struct {
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func (m member) start() int {
	if m.attr != nil {
		return m.attr.SrcRange.Start.Byte
	}
	return m.block.TypeRange.Start.Byte
}

// ordered returns the attributes and blocks of body in source order.
func ordered(body *hclsyntax.Body) []member {
	out := make([]member, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		out = append(out, member{attr: a})
	}
	for _, blk := range body.Blocks {
		out = append(out, member{block: blk})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start() < out[j].start() })
	return out
}

func (b *builder) file(body *hclsyntax.Body) []*syntax.Node {
	var nodes []*syntax.Node
	for _, m := range ordered(body) {
		if a := m.attr; a != nil {
			if a.Name != "export" {
				b.errorf(a.NameRange, "Unsupported attribute", "Only \"export\" may be set at the top level of a file, found %q.", a.Name)
				continue
			}
			nodes = append(nodes, b.export(a))
			continue
		}

		blk := m.block
		switch blk.Type {
		case "import":
			if n := b.importBlock(blk); n != nil {
				nodes = append(nodes, n)
			}
		case "type", "enum", "alias":
			if n := b.declaration(blk); n != nil {
				nodes = append(nodes, n)
			}
		default:
			b.errorf(blk.TypeRange, "Unsupported block type", "Blocks of type %q are not expected here.", blk.Type)
		}
	}
	return nodes
}

func (b *builder) export(a *hclsyntax.Attribute) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindExport, Range: a.SrcRange}
	exprs, diags := hcl.ExprList(a.Expr)
	if diags.HasErrors() {
		b.diags = append(b.diags, diags...)
		return n
	}
	for _, e := range exprs {
		name, diags := tchcl.Identifier(e, "export")
		if diags.HasErrors() {
			b.diags = append(b.diags, diags...)
			continue
		}
		n.Body = append(n.Body, &syntax.Node{Kind: syntax.KindIdentifier, Name: name, Range: e.Range()})
	}
	return n
}

func (b *builder) label(blk *hclsyntax.Block, what string) (string, bool) {
	if len(blk.Labels) != 1 {
		b.errorf(blk.DefRange(), "Invalid "+blk.Type+" block", "A %s block takes exactly one label, the %s.", blk.Type, what)
		return "", false
	}
	return blk.Labels[0], true
}

func (b *builder) importBlock(blk *hclsyntax.Block) *syntax.Node {
	path, ok := b.label(blk, "module path")
	if !ok {
		return nil
	}
	n := &syntax.Node{Kind: syntax.KindImport, Text: path, Range: blk.Range()}
	for _, m := range ordered(blk.Body) {
		if m.block != nil {
			b.errorf(m.block.TypeRange, "Unsupported block type", "Import blocks only hold `Local = Imported` pairs.")
			continue
		}
		imported, diags := tchcl.Identifier(m.attr.Expr, "imported name")
		if diags.HasErrors() {
			b.diags = append(b.diags, diags...)
			continue
		}
		n.Body = append(n.Body, &syntax.Node{
			Kind:  syntax.KindImportSpec,
			Name:  m.attr.Name,
			Text:  imported,
			Range: m.attr.SrcRange,
		})
	}
	return n
}

func (b *builder) declaration(blk *hclsyntax.Block) *syntax.Node {
	name, ok := b.label(blk, "name")
	if !ok {
		return nil
	}

	switch blk.Type {
	case "type":
		decl := &syntax.Node{Kind: syntax.KindTypeDecl, Name: name, Range: blk.Range()}
		record := &syntax.Node{Kind: syntax.KindRecord, Name: name, Range: blk.Range()}
		decl.Params, record.Body = b.record(name, blk.Body)
		decl.Value = record
		return decl
	case "enum":
		return b.enum(name, blk)
	default:
		return b.alias(name, blk)
	}
}

// record reads the members of a type body: formal parameters, fields in
// short and long form and local declarations.
func (b *builder) record(name string, body *hclsyntax.Body) (params, members []*syntax.Node) {
	for _, m := range ordered(body) {
		if a := m.attr; a != nil {
			members = append(members, &syntax.Node{
				Kind:  syntax.KindField,
				Name:  a.Name,
				Value: b.typeExpr(a.Expr, name+"_"+a.Name),
				Range: a.SrcRange,
			})
			continue
		}

		blk := m.block
		switch blk.Type {
		case "param":
			if p := b.param(blk); p != nil {
				params = append(params, p)
			}
		case "field":
			if f := b.field(name, blk); f != nil {
				members = append(members, f)
			}
		case "type", "enum", "alias":
			if d := b.declaration(blk); d != nil {
				members = append(members, d)
			}
		default:
			b.errorf(blk.TypeRange, "Unsupported block type", "Blocks of type %q are not expected in a type.", blk.Type)
		}
	}
	return params, members
}

func (b *builder) param(blk *hclsyntax.Block) *syntax.Node {
	name, ok := b.label(blk, "parameter name")
	if !ok {
		return nil
	}
	n := &syntax.Node{Kind: syntax.KindTypeParam, Name: name, Range: blk.Range()}
	for _, m := range ordered(blk.Body) {
		if m.attr == nil || m.attr.Name != "default" {
			b.unexpected(m, "param")
			continue
		}
		n.Value = b.typeExpr(m.attr.Expr, name)
	}
	return n
}

func (b *builder) field(owner string, blk *hclsyntax.Block) *syntax.Node {
	name, ok := b.label(blk, "field name")
	if !ok {
		return nil
	}
	n := &syntax.Node{Kind: syntax.KindField, Name: name, Range: blk.Range()}
	for _, m := range ordered(blk.Body) {
		if m.attr == nil {
			b.unexpected(m, "field")
			continue
		}
		switch m.attr.Name {
		case "type":
			n.Value = b.typeExpr(m.attr.Expr, owner+"_"+name)
		case "doc":
			n.Text = b.stringValue(m.attr.Expr)
		case "default":
			if v, ok := b.value(m.attr.Expr); ok {
				n.Default = &v
			}
		default:
			b.unexpected(m, "field")
		}
	}
	if n.Value == nil {
		b.errorf(blk.DefRange(), "Missing required argument", "The field %q has no \"type\".", name)
		return nil
	}
	return n
}

func (b *builder) enum(name string, blk *hclsyntax.Block) *syntax.Node {
	decl := &syntax.Node{Kind: syntax.KindEnumDecl, Name: name, Range: blk.Range()}
	enum := &syntax.Node{Kind: syntax.KindEnum, Name: name, Range: blk.Range()}
	decl.Value = enum

	for _, m := range ordered(blk.Body) {
		if m.attr == nil {
			b.unexpected(m, "enum")
			continue
		}
		switch m.attr.Name {
		case "symbols":
			enum.Symbols = b.symbols(m.attr.Expr)
		case "doc":
			enum.Text = b.stringValue(m.attr.Expr)
		default:
			b.unexpected(m, "enum")
		}
	}
	if len(enum.Symbols) == 0 {
		b.errorf(blk.DefRange(), "Missing required argument", "The enum %q needs a non-empty \"symbols\" list.", name)
	}
	return decl
}

func (b *builder) alias(name string, blk *hclsyntax.Block) *syntax.Node {
	decl := &syntax.Node{Kind: syntax.KindAliasDecl, Name: name, Range: blk.Range()}
	alias := &syntax.Node{Kind: syntax.KindAlias, Name: name, Range: blk.Range()}
	decl.Value = alias

	for _, m := range ordered(blk.Body) {
		switch {
		case m.block != nil && m.block.Type == "param":
			if p := b.param(m.block); p != nil {
				decl.Params = append(decl.Params, p)
			}
		case m.attr != nil && m.attr.Name == "type":
			alias.Value = b.typeExpr(m.attr.Expr, name)
		default:
			b.unexpected(m, "alias")
		}
	}
	if alias.Value == nil {
		b.errorf(blk.DefRange(), "Missing required argument", "The alias %q has no \"type\".", name)
	}
	return decl
}

func (b *builder) unexpected(m member, where string) {
	if m.attr != nil {
		b.errorf(m.attr.NameRange, "Unsupported argument", "An argument named %q is not expected in a %s block.", m.attr.Name, where)
		return
	}
	b.errorf(m.block.TypeRange, "Unsupported block type", "Blocks of type %q are not expected in a %s block.", m.block.Type, where)
}

// value evaluates a literal expression. References are not allowed.
func (b *builder) value(expr hcl.Expression) (cty.Value, bool) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		b.diags = append(b.diags, diags...)
		return cty.NilVal, false
	}
	return v, true
}

func (b *builder) stringValue(expr hcl.Expression) string {
	v, ok := b.value(expr)
	if !ok {
		return ""
	}
	var s string
	if err := gocty.FromCtyValue(v, &s); err != nil {
		b.errorf(expr.Range(), "Invalid value", "A string is required: %s.", err)
		return ""
	}
	return s
}

func (b *builder) symbols(expr hcl.Expression) []string {
	v, ok := b.value(expr)
	if !ok {
		return nil
	}
	list, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		b.errorf(expr.Range(), "Invalid value", "Enum symbols must be a list of strings: %s.", err)
		return nil
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		b.errorf(expr.Range(), "Invalid value", "Enum symbols must be a list of strings: %s.", err)
		return nil
	}
	return out
}
