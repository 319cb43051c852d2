// Copyright © 2025 The phpls authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/analysis"
	"github.com/phpindex/phpls/docblock"
	"github.com/phpindex/phpls/phpast"
)

// hoverWrapWidth bounds the rendered width of docblock summaries.
const hoverWrapWidth = 80

// textDocumentHover handles the textDocument/hover request.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.project.DocumentFor(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureWorkspaceIndex()

	node := nodeAtPosition(doc, params.Position)
	if node == nil {
		return nil, nil
	}

	var content string
	if v, ok := node.(*phpast.Variable); ok {
		content = buildVariableHover(s.project, v)
	} else {
		def, err := s.definitionForNode(doc, node)
		if err != nil || def == nil {
			return nil, nil
		}
		content = buildHoverContent(def)
	}
	if content == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

// buildVariableHover renders the inferred type of a variable use.
func buildVariableHover(p *analysis.Project, v *phpast.Variable) string {
	t := p.TypeOfExpression(v)
	return fmt.Sprintf("**variable** `$%s`\n\n```php\n%s\n```", v.Name, t.String())
}

// buildHoverContent renders Markdown hover text for a definition:
// kind, FQN, declared type, and the docblock summary.
func buildHoverContent(def *analysis.Definition) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s** `%s`", def.Kind, def.FQN)

	if def.DeclaredType != nil {
		fmt.Fprintf(&sb, "\n\n```php\n%s\n```", def.DeclaredType.String())
	}

	if def.Doc != "" {
		blk := docblock.Parse(def.Doc, nil)
		if blk.Summary != "" {
			fmt.Fprintf(&sb, "\n\n%s", wordwrap.String(blk.Summary, hoverWrapWidth))
		}
	}

	fmt.Fprintf(&sb, "\n\n*Defined in %s:%d*", uriToPath(def.URI), def.Span.StartLine)
	return sb.String()
}
