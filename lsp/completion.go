// Copyright © 2025 The phpls authors

package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// maxCompletions bounds the size of a completion response.
const maxCompletions = 200

// textDocumentCompletion handles the textDocument/completion request.
// Candidates come from the symbol graph, matched by base name prefix.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.project.DocumentFor(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureWorkspaceIndex()

	prefix := wordBefore(doc.Content, int(params.Position.Line), int(params.Position.Character))

	var items []protocol.CompletionItem
	for _, fqn := range s.project.Graph().DefinitionsByPrefix("") {
		name := displayName(fqn)
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		def, ok := s.project.Graph().Definition(fqn)
		if !ok {
			continue
		}
		kind := mapCompletionItemKind(def.Kind)
		detail := def.FQN
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
		if len(items) >= maxCompletions {
			break
		}
	}
	return items, nil
}

// wordBefore extracts the identifier fragment immediately before the
// cursor position.
func wordBefore(content string, line, char int) string {
	off := offsetForPosition(content, line, char)
	start := off
	for start > 0 && isIdentByte(content[start-1]) {
		start--
	}
	return content[start:off]
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
