// Copyright © 2025 The phpls authors

package lsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/parser"
)

const defSource = `<?php
namespace App;

class Widget {
    public function run(): void {
    }
}
`

const useSource = `<?php
namespace App;

$w = new Widget();
$w->run();
`

const (
	defURI = "file:///widget.php"
	useURI = "file:///main.php"
)

// newTestServer builds a server over a real parser with both test
// documents opened.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	project := analysis.NewProject(parser.New(), nil)
	s := New(WithProject(project))

	ctx := context.Background()
	_, err := project.OpenDocument(ctx, defURI, defSource)
	require.NoError(t, err)
	_, err = project.OpenDocument(ctx, useURI, useSource)
	require.NoError(t, err)
	return s
}

func position(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func TestDefinition_MethodCallAcrossDocuments(t *testing.T) {
	s := newTestServer(t)

	// Cursor on "run" in "$w->run();".
	result, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			Position:     position(4, 5),
		},
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "expected a location, got %T", result)
	assert.Equal(t, defURI, loc.URI)
}

func TestDefinition_ClassNameInNew(t *testing.T) {
	s := newTestServer(t)

	// Cursor on "Widget" in "new Widget()".
	result, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			Position:     position(3, 11),
		},
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "expected a location, got %T", result)
	assert.Equal(t, defURI, loc.URI)
}

func TestDefinition_VariableResolvesLocally(t *testing.T) {
	s := newTestServer(t)

	// Cursor on "$w" in "$w->run();" resolves to the assignment on
	// the line above.
	result, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			Position:     position(4, 1),
		},
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "expected a location, got %T", result)
	assert.Equal(t, useURI, loc.URI)
	assert.Equal(t, protocol.UInteger(3), loc.Range.Start.Line)
}

func TestDefinition_UnknownDocument(t *testing.T) {
	s := New(WithProject(analysis.NewProject(parser.New(), nil)))
	result, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope.php"},
			Position:     position(0, 0),
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReferences_FromDefinitionSite(t *testing.T) {
	s := newTestServer(t)

	// Cursor on "run" in the method declaration.
	locs, err := s.textDocumentReferences(nil, &protocol.ReferenceParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: defURI},
			Position:     position(4, 21),
		},
		Context: protocol.ReferenceContext{IncludeDeclaration: true},
	})
	require.NoError(t, err)
	require.NotEmpty(t, locs)

	var uris []string
	for _, l := range locs {
		uris = append(uris, l.URI)
	}
	assert.Contains(t, uris, defURI) // the declaration
	assert.Contains(t, uris, useURI) // the call site
}

func TestHover_Definition(t *testing.T) {
	s := newTestServer(t)

	hover, err := s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			Position:     position(4, 5),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, `\App\Widget::run()`)
	assert.Contains(t, content.Value, "method")
}

func TestHover_VariableShowsInferredType(t *testing.T) {
	s := newTestServer(t)

	hover, err := s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			Position:     position(4, 1),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, `\App\Widget`)
}

func TestDocumentSymbol(t *testing.T) {
	s := newTestServer(t)

	result, err := s.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: defURI},
	})
	require.NoError(t, err)
	syms, ok := result.([]protocol.SymbolInformation)
	require.True(t, ok)

	var names []string
	for _, sym := range syms {
		names = append(names, sym.Name)
	}
	assert.Contains(t, names, "Widget")
	assert.Contains(t, names, "run")
}

func TestCompletion_PrefixMatch(t *testing.T) {
	s := newTestServer(t)

	result, err := s.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: useURI},
			// End of "$w = new Widget" would complete "Widget"; use a
			// blank spot so every symbol is offered.
			Position: position(2, 0),
		},
	})
	require.NoError(t, err)
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok)

	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "Widget")
	assert.Contains(t, labels, "run")
}
