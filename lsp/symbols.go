// Copyright © 2025 The phpls authors

package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol
// request with a flat symbol list built from the local definitions map.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.project.DocumentFor(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	var syms []protocol.SymbolInformation
	for _, def := range doc.Definitions() {
		syms = append(syms, protocol.SymbolInformation{
			Name: displayName(def.FQN),
			Kind: mapSymbolKind(def.Kind),
			Location: protocol.Location{
				URI:   doc.URI,
				Range: spanToRange(def.Span),
			},
		})
	}
	return syms, nil
}

// displayName shortens an FQN to its member or base name for symbol
// listings.
func displayName(fqn string) string {
	if idx := strings.Index(fqn, "::"); idx >= 0 {
		return strings.TrimSuffix(fqn[idx+2:], "()")
	}
	if idx := strings.LastIndex(fqn, "\\"); idx >= 0 {
		return fqn[idx+1:]
	}
	return fqn
}
