// Copyright © 2025 The phpls authors

// Package parser turns PHP source text into phpast trees. It drives
// the tree-sitter PHP grammar and converts the concrete syntax tree
// into the typed AST the analysis package consumes, resolving
// namespaced names against the file's use table along the way.
//
// The parser is error tolerant: syntax errors are collected as
// diagnostics and conversion proceeds over the partial tree.
package parser

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/phpindex/phpls/phpast"
)

// maxDiagnostics bounds the number of syntax diagnostics reported for
// a single document.
const maxDiagnostics = 50

// Parser parses PHP documents. The zero value is not usable; call New.
type Parser struct {
	lang *sitter.Language
}

// New returns a parser backed by the tree-sitter PHP grammar.
func New() *Parser {
	return &Parser{lang: php.GetLanguage()}
}

// Parse parses content into a phpast.File. Syntax errors are returned
// as diagnostics alongside the (possibly partial) tree. The returned
// tree has parent and previous-sibling links attached. A non-nil error
// is returned only when the parse itself could not run, for example on
// context cancellation; in that case no tree is returned.
func (p *Parser) Parse(ctx context.Context, uri, content string) (*phpast.File, []phpast.Diagnostic, error) {
	sp := sitter.NewParser()
	sp.SetLanguage(p.lang)

	src := []byte(content)
	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	diags := collectSyntaxErrors(root, src)

	c := newConverter(src)
	file := c.convertProgram(root)
	phpast.Attach(file)
	return file, diags, nil
}

// collectSyntaxErrors walks the concrete tree gathering ERROR and
// MISSING nodes, up to maxDiagnostics.
func collectSyntaxErrors(root *sitter.Node, src []byte) []phpast.Diagnostic {
	if root == nil || !root.HasError() {
		return nil
	}
	var diags []phpast.Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if len(diags) >= maxDiagnostics {
			return
		}
		if n.IsError() {
			diags = append(diags, phpast.Diagnostic{
				Span:    spanOf(n),
				Message: "syntax error",
			})
			return
		}
		if n.IsMissing() {
			diags = append(diags, phpast.Diagnostic{
				Span:    spanOf(n),
				Message: "missing " + n.Type(),
			})
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return diags
}

// spanOf converts a tree-sitter node range to a phpast span.
func spanOf(n *sitter.Node) phpast.Span {
	start := n.StartPoint()
	end := n.EndPoint()
	return phpast.Span{
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}
