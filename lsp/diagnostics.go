// Copyright © 2025 The phpls authors

package lsp

import (
	"context"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
)

const debounceDelay = 300 * time.Millisecond

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	s.ensureWorkspaceIndex()
	doc, err := s.project.OpenDocument(context.Background(),
		params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}
	s.publishDiagnostics(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange
// notification. With full sync, the last content change is the
// complete document. Diagnostics publishing is debounced to avoid
// thrashing during rapid edits; the index itself updates immediately
// so queries stay consistent.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	uri := params.TextDocument.URI
	doc, err := s.project.UpdateDocument(context.Background(), uri, content)
	if err != nil {
		return err
	}

	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
	}
	s.debounce[uri] = time.AfterFunc(debounceDelay, func() {
		s.publishDiagnostics(doc)
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	if doc := s.project.DocumentFor(params.TextDocument.URI); doc != nil {
		s.publishDiagnostics(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
// Closing removes the document's definitions from the graph and clears
// its diagnostics on the client.
func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.captureNotify(ctx)
	uri := params.TextDocument.URI

	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()

	s.project.CloseDocument(uri)
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics,
		&protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: []protocol.Diagnostic{}})
	return nil
}

// publishDiagnostics forwards a document's parse diagnostics to the
// client. Parse problems never abort indexing; they only surface here.
func (s *Server) publishDiagnostics(doc *analysis.Document) {
	severity := protocol.DiagnosticSeverityError
	source := serverName
	diags := make([]protocol.Diagnostic, 0, len(doc.Diags))
	for _, d := range doc.Diags {
		diags = append(diags, protocol.Diagnostic{
			Range:    spanToRange(d.Span),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics,
		&protocol.PublishDiagnosticsParams{URI: doc.URI, Diagnostics: diags})
}
