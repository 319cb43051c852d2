// Copyright © 2025 The phpls authors

package lsp

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/phpast"
)

// textDocumentDefinition handles the textDocument/definition request.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc := s.project.DocumentFor(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureWorkspaceIndex()

	node := nodeAtPosition(doc, params.Position)
	if node == nil {
		return nil, nil
	}

	// Variables resolve through local scope, not the project graph.
	if v, ok := node.(*phpast.Variable); ok {
		def := analysis.FindVariableDefinition(v)
		if def == nil {
			return nil, nil
		}
		return protocol.Location{
			URI:   params.TextDocument.URI,
			Range: spanToRange(def.Span()),
		}, nil
	}

	def, err := s.definitionForNode(doc, node)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}
	return protocol.Location{
		URI:   def.URI,
		Range: spanToRange(def.Span),
	}, nil
}

// definitionForNode resolves the definition for the node under the
// cursor, climbing to the enclosing reference when the innermost node
// does not itself resolve (the cursor may sit on a member name whose
// reference is carried by the parent call node).
func (s *Server) definitionForNode(doc *analysis.Document, node phpast.Node) (*analysis.Definition, error) {
	for n := node; n != nil; n = n.Parent() {
		def, err := s.project.DefinitionForNode(n)
		if err != nil {
			if errors.Is(err, analysis.ErrVariableNode) {
				return nil, nil
			}
			return nil, err
		}
		if def != nil {
			return def, nil
		}
		if _, isFile := n.(*phpast.File); isFile {
			break
		}
		if !containsSameOffset(n) {
			break
		}
	}
	// The cursor may be on a definition site; answer with itself so
	// clients can still navigate.
	if def := doc.DefinitionAt(node.Span().StartByte); def != nil {
		return def, nil
	}
	return nil, nil
}

// containsSameOffset limits the climb to tightly nested wrappers: it
// reports true only when the parent is itself a reference node (a
// call, member or static fetch, new, or constant fetch). Climbing
// stops at any other parent, such as a statement.
func containsSameOffset(n phpast.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.(type) {
	case *phpast.FunctionCall, *phpast.MethodCall, *phpast.StaticCall,
		*phpast.PropertyFetch, *phpast.StaticPropertyFetch,
		*phpast.ClassConstFetch, *phpast.New, *phpast.ConstFetch:
		return true
	}
	return false
}
