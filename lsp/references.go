// Copyright © 2025 The phpls authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/phpast"
)

// textDocumentReferences handles the textDocument/references request.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.project.DocumentFor(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureWorkspaceIndex()

	fqn, ok := s.fqnAtPosition(doc, params.Position)
	if !ok {
		return nil, nil
	}

	var locs []protocol.Location

	if params.Context.IncludeDeclaration {
		if def, found := s.project.Graph().Definition(fqn); found {
			locs = append(locs, protocol.Location{
				URI:   def.URI,
				Range: spanToRange(def.Span),
			})
		}
	}

	for _, refDoc := range s.project.ReferencesTo(fqn) {
		locs = append(locs, referenceLocations(refDoc, fqn, s.project.Graph())...)
	}
	return locs, nil
}

// fqnAtPosition resolves the FQN under the cursor: either the
// definition declared there or the reference denoted there.
func (s *Server) fqnAtPosition(doc *analysis.Document, pos protocol.Position) (string, bool) {
	off := offsetForPosition(doc.Content, int(pos.Line), int(pos.Character))
	if def := doc.DefinitionAt(off); def != nil {
		return def.FQN, true
	}
	node := phpast.NodeAt(doc.AST, off)
	if node == nil {
		return "", false
	}
	r := analysis.NewResolver(s.project.Graph())
	for n := node; n != nil; n = n.Parent() {
		if fqn, ok := r.ReferenceFQN(n); ok {
			return fqn, true
		}
		if !containsSameOffset(n) {
			return "", false
		}
	}
	return "", false
}

// referenceLocations finds the spans inside doc that reference fqn.
func referenceLocations(doc *analysis.Document, fqn string, g *analysis.Graph) []protocol.Location {
	r := analysis.NewResolver(g)
	var locs []protocol.Location
	phpast.Inspect(doc.AST, func(n phpast.Node) bool {
		switch n.(type) {
		case *phpast.Name, *phpast.FunctionCall, *phpast.ConstFetch,
			*phpast.MethodCall, *phpast.PropertyFetch, *phpast.StaticCall,
			*phpast.StaticPropertyFetch, *phpast.ClassConstFetch:
			if got, ok := r.ReferenceFQN(n); ok {
				if got == fqn || analysis.GlobalFallback(got) == fqn && referencesThroughFallback(n, g, got) {
					locs = append(locs, protocol.Location{
						URI:   doc.URI,
						Range: spanToRange(n.Span()),
					})
					return false
				}
			}
		}
		return true
	})
	return locs
}

// referencesThroughFallback reports whether an unqualified reference
// actually resolves through the global-namespace fallback: the
// namespaced form must be undefined.
func referencesThroughFallback(n phpast.Node, g *analysis.Graph, resolved string) bool {
	switch n.(type) {
	case *phpast.FunctionCall, *phpast.ConstFetch:
		return !g.IsDefined(resolved)
	}
	return false
}
