// Copyright © 2025 The phpls authors

package analysis

import (
	"context"

	"github.com/phpindex/phpls/phpast"
)

// Test AST builders. Trees built here are attached before use so that
// parent and previous-sibling links behave as they do after a real
// parse.

func file(ns string, stmts ...phpast.Node) *phpast.File {
	f := &phpast.File{Namespace: ns, Uses: map[string]string{}, Stmts: stmts}
	phpast.Attach(f)
	return f
}

func stmt(e phpast.Node) *phpast.ExprStmt {
	return &phpast.ExprStmt{Expr: e}
}

func v(name string) *phpast.Variable {
	return &phpast.Variable{Name: name}
}

func assign(name string, rhs phpast.Node) *phpast.Assign {
	return &phpast.Assign{Var: v(name), Expr: rhs}
}

func intLit(n int64) *phpast.IntLit       { return &phpast.IntLit{Value: n} }
func strLit(s string) *phpast.StringLit   { return &phpast.StringLit{Value: s} }
func floatLit(f float64) *phpast.FloatLit { return &phpast.FloatLit{Value: f} }

func name(value, resolved string) *phpast.Name {
	return &phpast.Name{Value: value, Resolved: resolved}
}

func ident(value string) *phpast.Ident {
	return &phpast.Ident{Value: value}
}

func call(target *phpast.Name, args ...phpast.Node) *phpast.FunctionCall {
	return &phpast.FunctionCall{Target: target, Args: args}
}

func funcDecl(fnName string, params []*phpast.Param, body ...phpast.Node) *phpast.FunctionDecl {
	return &phpast.FunctionDecl{Name: ident(fnName), Params: params, Body: body}
}

func param(varName string, hintNames ...string) *phpast.Param {
	p := &phpast.Param{Var: v(varName)}
	if len(hintNames) > 0 {
		p.Hint = &phpast.TypeHint{Names: hintNames}
	}
	return p
}

func methodDecl(m string, hintNames ...string) *phpast.MethodDecl {
	d := &phpast.MethodDecl{Name: ident(m)}
	if len(hintNames) > 0 {
		d.ReturnHint = &phpast.TypeHint{Names: hintNames}
	}
	return d
}

func classDecl(clsName string, members ...phpast.Node) *phpast.ClassDecl {
	return &phpast.ClassDecl{Name: ident(clsName), Members: members}
}

// stubParser serves pre-built ASTs keyed by URI, standing in for the
// tree-sitter bridge in pipeline tests.
type stubParser struct {
	files map[string]*phpast.File
	diags map[string][]phpast.Diagnostic
}

func newStubParser() *stubParser {
	return &stubParser{
		files: make(map[string]*phpast.File),
		diags: make(map[string][]phpast.Diagnostic),
	}
}

func (p *stubParser) add(uri string, f *phpast.File) {
	p.files[uri] = f
}

func (p *stubParser) Parse(ctx context.Context, uri, content string) (*phpast.File, []phpast.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f, ok := p.files[uri]
	if !ok {
		f = file("")
	}
	return f, p.diags[uri], nil
}
