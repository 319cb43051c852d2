// Copyright © 2025 The phpls authors

package phpast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(start, end int) Span {
	return Span{StartByte: start, EndByte: end, StartLine: 1, StartCol: start + 1, EndLine: 1, EndCol: end + 1}
}

func TestAttach_ParentAndSiblingLinks(t *testing.T) {
	a := &ExprStmt{Expr: &IntLit{Value: 1}}
	b := &ExprStmt{Expr: &IntLit{Value: 2}}
	c := &ExprStmt{Expr: &IntLit{Value: 3}}
	f := &File{Stmts: []Node{a, b, c}}
	Attach(f)

	assert.Same(t, Node(f), a.Parent())
	assert.Nil(t, a.PrevSibling())
	assert.Same(t, Node(a), b.PrevSibling())
	assert.Same(t, Node(b), c.PrevSibling())
	assert.Same(t, Node(b), b.Expr.Parent())
}

func TestAttach_SkipsNilOptionalFields(t *testing.T) {
	fn := &FunctionDecl{Name: &Ident{Value: "f"}}
	f := &File{Stmts: []Node{fn}}
	Attach(f) // must not panic on nil params/hint/body

	assert.Same(t, Node(f), fn.Parent())
	assert.Same(t, Node(fn), fn.Name.Parent())
}

func TestChildren_SourceOrder(t *testing.T) {
	lhs := &Variable{Name: "a"}
	rhs := &IntLit{Value: 1}
	a := &Assign{Var: lhs, Expr: rhs}
	kids := a.Children()
	require.Len(t, kids, 2)
	assert.Same(t, Node(lhs), kids[0])
	assert.Same(t, Node(rhs), kids[1])
}

func TestInspect_DepthFirstAndPrune(t *testing.T) {
	inner := &IntLit{Value: 1}
	cl := &Closure{Body: []Node{&ExprStmt{Expr: inner}}}
	f := &File{Stmts: []Node{&ExprStmt{Expr: cl}}}
	Attach(f)

	var sawInner bool
	Inspect(f, func(n Node) bool {
		if n == Node(inner) {
			sawInner = true
		}
		return true
	})
	assert.True(t, sawInner)

	// Pruning at the closure skips its body.
	sawInner = false
	Inspect(f, func(n Node) bool {
		if _, ok := n.(*Closure); ok {
			return false
		}
		if n == Node(inner) {
			sawInner = true
		}
		return true
	})
	assert.False(t, sawInner)
}

func TestIsFunctionLike(t *testing.T) {
	assert.True(t, IsFunctionLike(&FunctionDecl{}))
	assert.True(t, IsFunctionLike(&MethodDecl{}))
	assert.True(t, IsFunctionLike(&Closure{}))
	assert.False(t, IsFunctionLike(&File{}))
	assert.False(t, IsFunctionLike(&Block{}))
}

func TestNodeAt_Innermost(t *testing.T) {
	v := &Variable{Name: "a"}
	v.SetSpan(span(5, 7))
	lit := &IntLit{Value: 1}
	lit.SetSpan(span(10, 11))
	a := &Assign{Var: v, Expr: lit}
	a.SetSpan(span(5, 11))
	st := &ExprStmt{Expr: a}
	st.SetSpan(span(5, 12))
	f := &File{Stmts: []Node{st}}
	f.SetSpan(span(0, 20))
	Attach(f)

	assert.Same(t, Node(v), NodeAt(f, 6))
	assert.Same(t, Node(lit), NodeAt(f, 10))
	// Between the two children the assignment itself is innermost.
	assert.Same(t, Node(a), NodeAt(f, 8))
	// Outside the tree.
	assert.Nil(t, NodeAt(f, 50))
}

func TestEnclosingFunction(t *testing.T) {
	use := &Variable{Name: "x"}
	fn := &FunctionDecl{Name: &Ident{Value: "f"}, Body: []Node{&ExprStmt{Expr: use}}}
	f := &File{Stmts: []Node{fn}}
	Attach(f)

	assert.Same(t, Node(fn), EnclosingFunction(use))
	assert.Nil(t, EnclosingFunction(fn))
}

func TestSpanContains(t *testing.T) {
	s := span(3, 6)
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
}
