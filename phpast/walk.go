// Copyright © 2025 The phpls authors

package phpast

// nodes builds a child list, skipping nil entries so optional fields
// can be appended unconditionally.
func nodes(ns ...Node) []Node {
	out := make([]Node, 0, len(ns))
	for _, n := range ns {
		if n != nil && !isNilNode(n) {
			out = append(out, n)
		}
	}
	return out
}

// isNilNode detects a typed-nil concrete pointer hiding inside a
// non-nil interface value.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Ident:
		return v == nil
	case *Name:
		return v == nil
	case *TypeHint:
		return v == nil
	case *Variable:
		return v == nil
	case *Param:
		return v == nil
	case *ArrayItem:
		return v == nil
	}
	return false
}

func appendAll[T Node](dst []Node, src []T) []Node {
	for _, n := range src {
		if !isNilNode(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

func (n *Ident) Children() []Node    { return nil }
func (n *Name) Children() []Node     { return nil }
func (n *TypeHint) Children() []Node { return nil }
func (n *Variable) Children() []Node { return nil }
func (n *StringLit) Children() []Node { return nil }
func (n *IntLit) Children() []Node    { return nil }
func (n *FloatLit) Children() []Node  { return nil }
func (n *BoolLit) Children() []Node   { return nil }
func (n *NullLit) Children() []Node   { return nil }

func (n *File) Children() []Node { return appendAll(nil, n.Stmts) }

func (n *ClassDecl) Children() []Node {
	out := nodes(n.Name, n.Extends)
	out = appendAll(out, n.Implements)
	return appendAll(out, n.Members)
}

func (n *InterfaceDecl) Children() []Node {
	out := nodes(n.Name)
	out = appendAll(out, n.Extends)
	return appendAll(out, n.Members)
}

func (n *FunctionDecl) Children() []Node {
	out := nodes(n.Name)
	out = appendAll(out, n.Params)
	out = nodes(append(out, n.ReturnHint)...)
	return appendAll(out, n.Body)
}

func (n *MethodDecl) Children() []Node {
	out := nodes(n.Name)
	out = appendAll(out, n.Params)
	out = nodes(append(out, n.ReturnHint)...)
	return appendAll(out, n.Body)
}

func (n *PropertyDecl) Children() []Node {
	return nodes(n.Name, n.Hint, n.Default)
}

func (n *ClassConstDecl) Children() []Node { return nodes(n.Name, n.Value) }
func (n *ConstDecl) Children() []Node      { return nodes(n.Name, n.Value) }

func (n *Param) Children() []Node { return nodes(n.Hint, n.Var, n.Default) }

func (n *Closure) Children() []Node {
	var out []Node
	out = appendAll(out, n.Params)
	out = appendAll(out, n.Captures)
	out = nodes(append(out, n.ReturnHint)...)
	return appendAll(out, n.Body)
}

func (n *Assign) Children() []Node { return nodes(n.Var, n.Expr) }

func (n *FunctionCall) Children() []Node {
	return appendAll(nodes(n.Target), n.Args)
}

func (n *MethodCall) Children() []Node {
	return appendAll(nodes(n.Receiver, n.NameExpr), n.Args)
}

func (n *PropertyFetch) Children() []Node {
	return nodes(n.Receiver, n.NameExpr)
}

func (n *StaticCall) Children() []Node {
	return appendAll(nodes(n.Class, n.NameExpr), n.Args)
}

func (n *StaticPropertyFetch) Children() []Node { return nodes(n.Class) }
func (n *ClassConstFetch) Children() []Node     { return nodes(n.Class) }

func (n *New) Children() []Node { return appendAll(nodes(n.Class), n.Args) }

func (n *Clone) Children() []Node { return nodes(n.Expr) }

func (n *Ternary) Children() []Node  { return nodes(n.Cond, n.If, n.Else) }
func (n *Coalesce) Children() []Node { return nodes(n.Left, n.Right) }
func (n *BinaryOp) Children() []Node { return nodes(n.Left, n.Right) }
func (n *UnaryOp) Children() []Node  { return nodes(n.Expr) }

func (n *InstanceOf) Children() []Node { return nodes(n.Expr, n.Class) }
func (n *IssetExpr) Children() []Node  { return appendAll(nil, n.Vars) }
func (n *EmptyExpr) Children() []Node  { return nodes(n.Expr) }
func (n *Cast) Children() []Node       { return nodes(n.Expr) }

func (n *ArrayLiteral) Children() []Node { return appendAll(nil, n.Items) }
func (n *ArrayItem) Children() []Node    { return nodes(n.Key, n.Value) }
func (n *IndexFetch) Children() []Node   { return nodes(n.Target, n.Index) }

func (n *Include) Children() []Node    { return nodes(n.Expr) }
func (n *ConstFetch) Children() []Node { return nodes(n.Name) }

func (n *ExprStmt) Children() []Node { return nodes(n.Expr) }
func (n *Return) Children() []Node   { return nodes(n.Expr) }
func (n *Echo) Children() []Node     { return appendAll(nil, n.Exprs) }

func (n *If) Children() []Node {
	out := nodes(n.Cond)
	out = appendAll(out, n.Then)
	return appendAll(out, n.Else)
}

func (n *Block) Children() []Node   { return appendAll(nil, n.Stmts) }
func (n *Unknown) Children() []Node { return appendAll(nil, n.Kids) }

// Attach populates parent and previous-sibling links throughout the
// tree rooted at n. Previous siblings are assigned within each parent's
// child list in source order. It must run once per parse before any
// analysis touches the tree.
func Attach(n Node) {
	if n == nil {
		return
	}
	kids := n.Children()
	var prev Node
	for _, kid := range kids {
		kid.setParent(n)
		kid.setPrevSibling(prev)
		prev = kid
		Attach(kid)
	}
}

// Inspect walks the tree in depth-first source order, calling f for
// each node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, kid := range n.Children() {
		Inspect(kid, f)
	}
}

// IsFunctionLike reports whether the node introduces a new variable
// scope: function declarations, methods, and closures.
func IsFunctionLike(n Node) bool {
	switch n.(type) {
	case *FunctionDecl, *MethodDecl, *Closure:
		return true
	}
	return false
}

// NodeAt returns the innermost node whose span contains the byte
// offset, or nil if the offset falls outside the tree.
func NodeAt(root Node, off int) Node {
	if root == nil || !root.Span().Contains(off) {
		return nil
	}
	best := root
	for {
		var next Node
		for _, kid := range best.Children() {
			if kid.Span().Contains(off) {
				next = kid
			}
		}
		if next == nil {
			return best
		}
		best = next
	}
}

// EnclosingFunction returns the nearest function-like ancestor of n,
// or nil if n is at top level.
func EnclosingFunction(n Node) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if IsFunctionLike(p) {
			return p
		}
	}
	return nil
}
