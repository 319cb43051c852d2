// Copyright © 2025 The phpls authors

// Package phpast defines a typed abstract syntax tree for PHP source.
//
// Nodes are produced by the parser package and consumed by the analysis
// package. Every node carries a source span and, after Attach has run,
// a parent link and a previous-sibling link so that consumers can walk
// the tree in either direction.
package phpast

// Span is a half-open source range. Byte offsets are 0-based; line and
// column are 1-based.
type Span struct {
	StartByte int
	EndByte   int
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.StartByte && off < s.EndByte
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
	Parent() Node
	PrevSibling() Node
	// Children returns the node's direct children in source order.
	Children() []Node

	setParent(Node)
	setPrevSibling(Node)
}

// base carries the bookkeeping shared by all nodes.
type base struct {
	span   Span
	parent Node
	prev   Node
}

func (b *base) Span() Span            { return b.span }
func (b *base) Parent() Node          { return b.parent }
func (b *base) PrevSibling() Node     { return b.prev }
func (b *base) setParent(n Node)      { b.parent = n }
func (b *base) setPrevSibling(n Node) { b.prev = n }

// SetSpan records the node's source range. Called by the parser.
func (b *base) SetSpan(s Span) { b.span = s }

// Ident is a declaration-site identifier. It has no namespace semantics
// of its own; the enclosing File provides the namespace context.
type Ident struct {
	base
	Value string
}

// Name is a reference-site identifier (class name, function name,
// constant name). Resolved holds the fully qualified form computed by
// the parser from the file's namespace and use table, with a leading
// backslash. For a name written fully qualified, Resolved equals the
// literal text.
type Name struct {
	base
	Value    string
	Resolved string
}

// File is the root node of a parsed document.
type File struct {
	base
	// Namespace is the declared namespace without leading or trailing
	// backslash ("" for the global namespace).
	Namespace string
	// Uses maps local alias to fully qualified name (leading backslash).
	Uses  map[string]string
	Stmts []Node
}

// ClassDecl declares a class. Anonymous classes have a nil Name.
type ClassDecl struct {
	base
	Name       *Ident
	Extends    *Name
	Implements []*Name
	Members    []Node
	Doc        string
}

// InterfaceDecl declares an interface.
type InterfaceDecl struct {
	base
	Name    *Ident
	Extends []*Name
	Members []Node
	Doc     string
}

// FunctionDecl declares a named top-level function.
type FunctionDecl struct {
	base
	Name       *Ident
	Params     []*Param
	ReturnHint *TypeHint
	Body       []Node
	Doc        string
}

// MethodDecl declares a method inside a class or interface body.
type MethodDecl struct {
	base
	Name       *Ident
	Params     []*Param
	ReturnHint *TypeHint
	Body       []Node
	Static     bool
	Visibility string
	Doc        string
}

// PropertyDecl declares a single class property.
type PropertyDecl struct {
	base
	Name    *Ident
	Hint    *TypeHint
	Default Node
	Static  bool
	Doc     string
}

// ClassConstDecl declares a single class constant.
type ClassConstDecl struct {
	base
	Name  *Ident
	Value Node
	Doc   string
}

// ConstDecl declares a top-level constant.
type ConstDecl struct {
	base
	Name  *Ident
	Value Node
	Doc   string
}

// Param is a function or method parameter.
type Param struct {
	base
	Var     *Variable
	Hint    *TypeHint
	Default Node
}

// TypeHint is a declared parameter, property, or return type. Names
// are either scalar keywords ("int", "string", ...) or fully qualified
// class names with a leading backslash, already resolved by the parser.
type TypeHint struct {
	base
	Names    []string
	Nullable bool
}

// Closure is an anonymous function. Captures lists the variables bound
// by the use (...) clause.
type Closure struct {
	base
	Params     []*Param
	Captures   []*Variable
	ReturnHint *TypeHint
	Body       []Node
}

// Variable is a variable use or binding site ($x, stored without the $).
type Variable struct {
	base
	Name string
}

// Assign is an assignment expression.
type Assign struct {
	base
	Var  Node
	Expr Node
}

// FunctionCall calls a function. Target is a *Name for static names or
// an arbitrary expression for dynamic calls.
type FunctionCall struct {
	base
	Target Node
	Args   []Node
}

// MethodCall calls a method on a receiver expression. Name is empty
// when the method name is dynamic, in which case NameExpr holds it.
type MethodCall struct {
	base
	Receiver Node
	Name     string
	NameExpr Node
	Args     []Node
}

// PropertyFetch reads an instance property. Name is empty for dynamic
// property names.
type PropertyFetch struct {
	base
	Receiver Node
	Name     string
	NameExpr Node
}

// StaticCall calls a static method. Class is a *Name or an expression.
type StaticCall struct {
	base
	Class    Node
	Name     string
	NameExpr Node
	Args     []Node
}

// StaticPropertyFetch reads a static property ($C::$x).
type StaticPropertyFetch struct {
	base
	Class Node
	Name  string
}

// ClassConstFetch reads a class constant (C::NAME).
type ClassConstFetch struct {
	base
	Class Node
	Name  string
}

// New instantiates a class. Class is a *Name, an expression, or a
// *ClassDecl for anonymous classes.
type New struct {
	base
	Class Node
	Args  []Node
}

// Clone copies an object.
type Clone struct {
	base
	Expr Node
}

// Ternary is cond ? if : else. If is nil for the short form cond ?: else.
type Ternary struct {
	base
	Cond Node
	If   Node
	Else Node
}

// Coalesce is the null-coalescing operator a ?? b.
type Coalesce struct {
	base
	Left  Node
	Right Node
}

// BinaryOp is a binary operator expression. Op holds the operator
// token text ("+", ".", "==", "&&", "xor", ...).
type BinaryOp struct {
	base
	Op    string
	Left  Node
	Right Node
}

// UnaryOp is a unary operator expression ("!", "-", "+", "~").
type UnaryOp struct {
	base
	Op   string
	Expr Node
}

// InstanceOf is the instanceof operator.
type InstanceOf struct {
	base
	Expr  Node
	Class Node
}

// IssetExpr is isset(...).
type IssetExpr struct {
	base
	Vars []Node
}

// EmptyExpr is empty(...).
type EmptyExpr struct {
	base
	Expr Node
}

// Cast converts an expression to a named type ("(string)$x"). To holds
// the cast keyword: "int", "string", "bool", "float", "array", "object".
type Cast struct {
	base
	To   string
	Expr Node
}

// ArrayLiteral is an array(...) or [...] literal.
type ArrayLiteral struct {
	base
	Items []*ArrayItem
}

// ArrayItem is one element of an array literal. Key is nil for
// positional elements.
type ArrayItem struct {
	base
	Key   Node
	Value Node
}

// IndexFetch reads an array element ($a[$k]).
type IndexFetch struct {
	base
	Target Node
	Index  Node
}

// Include is include/include_once/require/require_once. Kind holds the
// keyword used.
type Include struct {
	base
	Kind string
	Expr Node
}

// ConstFetch reads a global or namespaced constant by name.
type ConstFetch struct {
	base
	Name *Name
}

// StringLit is a string literal.
type StringLit struct {
	base
	Value string
}

// IntLit is an integer literal.
type IntLit struct {
	base
	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	base
	Value float64
}

// BoolLit is true or false.
type BoolLit struct {
	base
	Value bool
}

// NullLit is the null literal.
type NullLit struct {
	base
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	base
	Expr Node
}

// Return is a return statement. Expr may be nil.
type Return struct {
	base
	Expr Node
}

// Echo is an echo statement.
type Echo struct {
	base
	Exprs []Node
}

// If is an if statement with optional else branch.
type If struct {
	base
	Cond Node
	Then []Node
	Else []Node
}

// Block is a braced statement list.
type Block struct {
	base
	Stmts []Node
}

// Unknown preserves source structure the parser does not model. Its
// children still participate in tree walks so references inside
// unmodeled constructs are not lost.
type Unknown struct {
	base
	Kind string
	Kids []Node
}
