// Copyright © 2025 The phpls authors

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/phpast"
)

// offsetForPosition converts a 0-based LSP line/character position to
// a byte offset into content. Out-of-range positions clamp to the
// nearest valid offset.
func offsetForPosition(content string, line, char int) int {
	off := 0
	for l := 0; l < line; l++ {
		idx := strings.IndexByte(content[off:], '\n')
		if idx < 0 {
			return len(content)
		}
		off += idx + 1
	}
	lineEnd := strings.IndexByte(content[off:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content) - off
	}
	if char > lineEnd {
		char = lineEnd
	}
	return off + char
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are small positive ints
}

// spanToRange converts a 1-based phpast span to a 0-based LSP range.
func spanToRange(span phpast.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      safeUint(span.StartLine - 1),
			Character: safeUint(span.StartCol - 1),
		},
		End: protocol.Position{
			Line:      safeUint(span.EndLine - 1),
			Character: safeUint(span.EndCol - 1),
		},
	}
}

// nodeAtPosition finds the innermost AST node at an LSP position.
func nodeAtPosition(doc *analysis.Document, pos protocol.Position) phpast.Node {
	if doc == nil || doc.AST == nil {
		return nil
	}
	off := offsetForPosition(doc.Content, int(pos.Line), int(pos.Character))
	return phpast.NodeAt(doc.AST, off)
}

// mapSymbolKind converts an analysis.SymbolKind to an LSP SymbolKind.
func mapSymbolKind(kind analysis.SymbolKind) protocol.SymbolKind {
	switch kind {
	case analysis.SymClass:
		return protocol.SymbolKindClass
	case analysis.SymInterface:
		return protocol.SymbolKindInterface
	case analysis.SymFunction:
		return protocol.SymbolKindFunction
	case analysis.SymMethod:
		return protocol.SymbolKindMethod
	case analysis.SymProperty:
		return protocol.SymbolKindProperty
	case analysis.SymConstant:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindVariable
	}
}

// mapCompletionItemKind converts an analysis.SymbolKind to an LSP
// CompletionItemKind.
func mapCompletionItemKind(kind analysis.SymbolKind) protocol.CompletionItemKind {
	switch kind {
	case analysis.SymClass:
		return protocol.CompletionItemKindClass
	case analysis.SymInterface:
		return protocol.CompletionItemKindInterface
	case analysis.SymFunction:
		return protocol.CompletionItemKindFunction
	case analysis.SymMethod:
		return protocol.CompletionItemKindMethod
	case analysis.SymProperty:
		return protocol.CompletionItemKindProperty
	case analysis.SymConstant:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindText
	}
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
