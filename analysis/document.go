// Copyright © 2025 The phpls authors

package analysis

import (
	"sort"

	"github.com/phpindex/phpls/docblock"
	"github.com/phpindex/phpls/phpast"
)

// Document is one indexed source document: its text, its AST, and the
// local maps from FQN to definition and to referenced FQNs. The
// document exclusively owns its AST; the graph borrows nodes through
// the definitions registered here.
type Document struct {
	URI     string
	Content string
	AST     *phpast.File
	Diags   []phpast.Diagnostic

	defs map[string]*Definition
	refs map[string]struct{}
}

// newDocument indexes a parsed document. The resolver is used for
// member references whose receiver type must be inferred; it reads
// the graph as published so far (best effort — dynamic receivers that
// cannot be resolved yet simply contribute no reference).
func newDocument(uri, content string, ast *phpast.File, diags []phpast.Diagnostic, r *Resolver) *Document {
	d := &Document{
		URI:     uri,
		Content: content,
		AST:     ast,
		Diags:   diags,
		defs:    make(map[string]*Definition),
		refs:    make(map[string]struct{}),
	}
	if ast != nil {
		d.buildDefinitions()
		d.buildReferences(r)
	}
	return d
}

// DefinitionByFQN returns the local definition registered under fqn.
func (d *Document) DefinitionByFQN(fqn string) (*Definition, bool) {
	def, ok := d.defs[fqn]
	return def, ok
}

// DefinitionNodeByFQN returns the defining AST node for fqn.
func (d *Document) DefinitionNodeByFQN(fqn string) (phpast.Node, bool) {
	def, ok := d.defs[fqn]
	if !ok {
		return nil, false
	}
	return def.Node, true
}

// Definitions returns the document's definitions sorted by FQN.
func (d *Document) Definitions() []*Definition {
	fqns := make([]string, 0, len(d.defs))
	for fqn := range d.defs {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)
	out := make([]*Definition, len(fqns))
	for i, fqn := range fqns {
		out[i] = d.defs[fqn]
	}
	return out
}

// References returns the FQNs this document references, sorted.
func (d *Document) References() []string {
	out := make([]string, 0, len(d.refs))
	for fqn := range d.refs {
		out = append(out, fqn)
	}
	sort.Strings(out)
	return out
}

// DefinitionAt returns the definition whose name span contains the
// byte offset, if any.
func (d *Document) DefinitionAt(off int) *Definition {
	for _, def := range d.defs {
		if def.Span.Contains(off) {
			return def
		}
	}
	return nil
}

func (d *Document) docContext() *docblock.Context {
	return docContext(d.AST)
}

// define registers one definition in the local map. The span prefers
// the declared name's location so navigation lands on the identifier.
func (d *Document) define(kind SymbolKind, fqn string, node phpast.Node, name *phpast.Ident, declared Type, doc string) {
	span := node.Span()
	if name != nil && name.Span() != (phpast.Span{}) {
		span = name.Span()
	}
	d.defs[fqn] = &Definition{
		SymbolInfo: SymbolInfo{
			Kind:         kind,
			FQN:          fqn,
			URI:          d.URI,
			Span:         span,
			DeclaredType: declared,
			Doc:          doc,
		},
		Node: node,
	}
}

// buildDefinitions enumerates the document's definition nodes.
// Anonymous classes declare no FQN and are skipped.
func (d *Document) buildDefinitions() {
	ns := d.AST.Namespace
	ctx := d.docContext()

	phpast.Inspect(d.AST, func(n phpast.Node) bool {
		switch n := n.(type) {
		case *phpast.ClassDecl:
			if n.Name == nil {
				return true
			}
			fqn := NamespaceFQN(ns, n.Name.Value)
			d.define(SymClass, fqn, n, n.Name, nil, n.Doc)
			d.defineMembers(fqn, n.Members, ctx)
			return false
		case *phpast.InterfaceDecl:
			if n.Name == nil {
				return true
			}
			fqn := NamespaceFQN(ns, n.Name.Value)
			d.define(SymInterface, fqn, n, n.Name, nil, n.Doc)
			d.defineMembers(fqn, n.Members, ctx)
			return false
		case *phpast.FunctionDecl:
			if n.Name == nil {
				return true
			}
			fqn := NamespaceFQN(ns, n.Name.Value)
			d.define(SymFunction, fqn, n, n.Name, returnType(n.ReturnHint, n.Doc, ctx), n.Doc)
			return false
		case *phpast.ConstDecl:
			if n.Name == nil {
				return true
			}
			fqn := NamespaceFQN(ns, n.Name.Value)
			d.define(SymConstant, fqn, n, n.Name, varType(n.Doc, ctx), n.Doc)
			return true
		}
		return true
	})
}

func (d *Document) defineMembers(classFQN string, members []phpast.Node, ctx *docblock.Context) {
	for _, m := range members {
		switch m := m.(type) {
		case *phpast.MethodDecl:
			if m.Name == nil {
				continue
			}
			fqn := MethodFQN(classFQN, m.Name.Value)
			d.define(SymMethod, fqn, m, m.Name, returnType(m.ReturnHint, m.Doc, ctx), m.Doc)
		case *phpast.PropertyDecl:
			if m.Name == nil {
				continue
			}
			fqn := PropertyFQN(classFQN, m.Name.Value)
			if m.Static {
				fqn = StaticPropertyFQN(classFQN, m.Name.Value)
			}
			declared := TypeFromHint(m.Hint)
			if m.Hint == nil {
				declared = varType(m.Doc, ctx)
			}
			d.define(SymProperty, fqn, m, m.Name, declared, m.Doc)
		case *phpast.ClassConstDecl:
			if m.Name == nil {
				continue
			}
			fqn := ClassConstFQN(classFQN, m.Name.Value)
			d.define(SymConstant, fqn, m, m.Name, varType(m.Doc, ctx), m.Doc)
		}
	}
}

// returnType resolves a declared return type: the signature hint wins,
// then the docblock @return tag.
func returnType(hint *phpast.TypeHint, doc string, ctx *docblock.Context) Type {
	if hint != nil {
		return TypeFromHint(hint)
	}
	if doc == "" {
		return nil
	}
	blk := docblock.Parse(doc, ctx)
	if blk.Return == nil {
		return nil
	}
	return TypeFromDocStrings(blk.Return)
}

// varType resolves a @var docblock tag into a declared value type.
func varType(doc string, ctx *docblock.Context) Type {
	if doc == "" {
		return nil
	}
	blk := docblock.Parse(doc, ctx)
	if blk.Var == nil {
		return nil
	}
	return TypeFromDocStrings(blk.Var)
}

// buildReferences enumerates reference nodes and records the FQNs they
// denote. Unqualified function and constant references additionally
// record their global-namespace fallback form so referrer queries find
// call sites that resolve through the fallback.
func (d *Document) buildReferences(r *Resolver) {
	phpast.Inspect(d.AST, func(n phpast.Node) bool {
		switch n := n.(type) {
		case *phpast.Name:
			if n.Resolved != "" {
				d.refs[n.Resolved] = struct{}{}
			}
		case *phpast.FunctionCall, *phpast.ConstFetch:
			if fqn, ok := r.ReferenceFQN(n); ok {
				d.refs[fqn] = struct{}{}
				if g := GlobalFallback(fqn); g != fqn {
					d.refs[g] = struct{}{}
				}
			}
		case *phpast.MethodCall, *phpast.PropertyFetch,
			*phpast.StaticCall, *phpast.StaticPropertyFetch,
			*phpast.ClassConstFetch:
			if fqn, ok := r.ReferenceFQN(n); ok {
				d.refs[fqn] = struct{}{}
			}
		}
		return true
	})
}
