// Copyright © 2025 The phpls authors

package analysis

import (
	"strings"

	"github.com/phpindex/phpls/docblock"
	"github.com/phpindex/phpls/phpast"
)

// Resolver computes best-effort static types for expression nodes. It
// is a pure reader of the symbol graph: every unresolved path widens
// to mixed and the resolver never fails.
//
// A Resolver is not safe for concurrent use; create one per query.
type Resolver struct {
	graph *Graph
	// inProgress guards against cyclic variable definitions; re-entry
	// on a node already being resolved returns mixed.
	inProgress map[phpast.Node]struct{}
}

// NewResolver returns a resolver reading from the given graph.
func NewResolver(g *Graph) *Resolver {
	return &Resolver{graph: g, inProgress: make(map[phpast.Node]struct{})}
}

// TypeOf returns the static type of the node. It is total: unhandled
// node shapes and unresolved lookups yield mixed.
func (r *Resolver) TypeOf(n phpast.Node) Type {
	if n == nil {
		return Mixed
	}
	if _, busy := r.inProgress[n]; busy {
		return Mixed
	}
	r.inProgress[n] = struct{}{}
	defer delete(r.inProgress, n)

	switch n := n.(type) {
	case *phpast.Variable:
		def := FindVariableDefinition(n)
		if def == nil {
			return Mixed
		}
		return r.TypeOf(def)

	case *phpast.Assign:
		return r.TypeOf(n.Expr)

	case *phpast.Param:
		return r.paramType(n)

	case *phpast.FunctionCall:
		name, ok := n.Target.(*phpast.Name)
		if !ok || name.Resolved == "" {
			return Mixed
		}
		def, ok := r.lookup(name.Resolved)
		if !ok {
			return Mixed
		}
		return declaredOrMixed(def)

	case *phpast.MethodCall:
		cls, ok := r.receiverClass(n.Receiver)
		if !ok || n.Name == "" {
			return Mixed
		}
		def, ok := r.graph.Definition(MethodFQN(cls, n.Name))
		if !ok {
			return Mixed
		}
		return declaredOrMixed(def)

	case *phpast.PropertyFetch:
		cls, ok := r.receiverClass(n.Receiver)
		if !ok || n.Name == "" {
			return Mixed
		}
		return r.memberValueType(PropertyFQN(cls, n.Name))

	case *phpast.StaticCall:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return Mixed
		}
		def, ok := r.graph.Definition(MethodFQN(cls, n.Name))
		if !ok {
			return Mixed
		}
		return declaredOrMixed(def)

	case *phpast.StaticPropertyFetch:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return Mixed
		}
		return r.memberValueType(StaticPropertyFQN(cls, n.Name))

	case *phpast.ClassConstFetch:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return Mixed
		}
		return r.memberValueType(ClassConstFQN(cls, n.Name))

	case *phpast.ConstFetch:
		if n.Name == nil {
			return Mixed
		}
		switch strings.ToLower(n.Name.Value) {
		case "true", "false":
			return Boolean
		case "null":
			return Null
		}
		if n.Name.Resolved == "" {
			return Mixed
		}
		def, ok := r.lookup(n.Name.Resolved)
		if !ok {
			return Mixed
		}
		if def.DeclaredType != nil {
			return def.DeclaredType
		}
		if decl, ok := def.Node.(*phpast.ConstDecl); ok && decl.Value != nil {
			return r.TypeOf(decl.Value)
		}
		return Mixed

	case *phpast.New:
		switch cls := n.Class.(type) {
		case *phpast.Name:
			if cls.Resolved == "" {
				return Mixed
			}
			return NewObject(cls.Resolved)
		case *phpast.ClassDecl:
			return NewObject("")
		}
		return Mixed

	case *phpast.Clone:
		return r.TypeOf(n.Expr)

	case *phpast.Ternary:
		if n.If == nil {
			// cond ?: else
			return NewCompound(r.TypeOf(n.Cond), r.TypeOf(n.Else))
		}
		return NewCompound(r.TypeOf(n.If), r.TypeOf(n.Else))

	case *phpast.Coalesce:
		return NewCompound(r.TypeOf(n.Left), r.TypeOf(n.Right))

	case *phpast.InstanceOf, *phpast.IssetExpr, *phpast.EmptyExpr:
		return Boolean

	case *phpast.UnaryOp:
		if n.Op == "!" {
			return Boolean
		}
		return Mixed

	case *phpast.BinaryOp:
		if n.Op == "??" {
			return NewCompound(r.TypeOf(n.Left), r.TypeOf(n.Right))
		}
		return binaryOpType(n.Op)

	case *phpast.Cast:
		return castType(n.To)

	case *phpast.ArrayLiteral:
		return r.arrayLiteralType(n)

	case *phpast.IndexFetch:
		if arr, ok := r.TypeOf(n.Target).(ArrayType); ok {
			return arr.Value
		}
		return Mixed

	case *phpast.Include:
		return Mixed

	case *phpast.BoolLit:
		return Boolean
	case *phpast.IntLit:
		return Integer
	case *phpast.FloatLit:
		return Float
	case *phpast.StringLit:
		return String
	case *phpast.NullLit:
		return Null

	case *phpast.Closure, *phpast.FunctionDecl, *phpast.MethodDecl:
		return Callable
	}

	return Mixed
}

// binaryOpType types the binary operators the resolver understands.
// Arithmetic stays int regardless of operand types; float promotion is
// deliberately not modeled.
func binaryOpType(op string) Type {
	switch op {
	case ".":
		return String
	case "==", "===", "!=", "!==", "<>", "<", ">", "<=", ">=",
		"&&", "||", "and", "or", "xor", "instanceof":
		return Boolean
	case "+", "-", "*", "/", "**", "%", "<=>":
		return Integer
	}
	return Mixed
}

func castType(to string) Type {
	switch strings.ToLower(strings.Trim(to, "()")) {
	case "string", "binary":
		return String
	case "int", "integer":
		return Integer
	case "bool", "boolean":
		return Boolean
	case "float", "double", "real":
		return Float
	case "array":
		return NewArray(Mixed, Mixed)
	case "object":
		return NewObject("")
	}
	return Mixed
}

// arrayLiteralType builds Array(V, K) where V and K are independently
// normalized compounds of the element value and key types. Elements
// without keys contribute int keys.
func (r *Resolver) arrayLiteralType(n *phpast.ArrayLiteral) Type {
	if len(n.Items) == 0 {
		return NewArray(Mixed, Integer)
	}
	var valueTypes, keyTypes []Type
	for _, item := range n.Items {
		valueTypes = append(valueTypes, r.TypeOf(item.Value))
		if item.Key == nil {
			keyTypes = append(keyTypes, Integer)
		} else {
			keyTypes = append(keyTypes, r.TypeOf(item.Key))
		}
	}
	return NewArray(NewCompound(valueTypes...), NewCompound(keyTypes...))
}

// receiverClass resolves the receiver expression of a member access to
// a class FQN.
func (r *Resolver) receiverClass(recv phpast.Node) (string, bool) {
	obj, ok := r.TypeOf(recv).(ObjectType)
	if !ok || obj.FQN == "" {
		return "", false
	}
	return obj.FQN, true
}

// classFQN resolves a class-name position: a static name resolves
// directly, anything else through its type.
func (r *Resolver) classFQN(n phpast.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if name, ok := n.(*phpast.Name); ok {
		if name.Resolved == "" {
			return "", false
		}
		return name.Resolved, true
	}
	return r.receiverClass(n)
}

// memberValueType returns the declared type of a property or class
// constant definition, falling back to the type of its initializer.
func (r *Resolver) memberValueType(fqn string) Type {
	def, ok := r.graph.Definition(fqn)
	if !ok {
		return Mixed
	}
	if def.DeclaredType != nil {
		return def.DeclaredType
	}
	switch decl := def.Node.(type) {
	case *phpast.PropertyDecl:
		if decl.Default != nil {
			return r.TypeOf(decl.Default)
		}
	case *phpast.ClassConstDecl:
		if decl.Value != nil {
			return r.TypeOf(decl.Value)
		}
	}
	return Mixed
}

// declaredOrMixed widens a missing declared type to mixed.
func declaredOrMixed(def *Definition) Type {
	if def.DeclaredType != nil {
		return def.DeclaredType
	}
	return Mixed
}

// paramType resolves a parameter's declared type from its hint or the
// enclosing function's @param docblock tag.
func (r *Resolver) paramType(p *phpast.Param) Type {
	if p.Hint != nil {
		return TypeFromHint(p.Hint)
	}
	fn := p.Parent()
	if fn == nil || p.Var == nil {
		return Mixed
	}
	doc := docOf(fn)
	if doc == "" {
		return Mixed
	}
	blk := docblock.Parse(doc, docContext(fileOf(p)))
	if ts := blk.ParamTypes(p.Var.Name); ts != nil {
		return TypeFromDocStrings(ts)
	}
	return Mixed
}

// lookup finds a function or constant definition by FQN. When the
// namespaced lookup misses, the global-namespace form is tried, which
// models the language's unqualified function and constant resolution.
func (r *Resolver) lookup(fqn string) (*Definition, bool) {
	if def, ok := r.graph.Definition(fqn); ok {
		return def, true
	}
	if g := GlobalFallback(fqn); g != fqn {
		return r.graph.Definition(g)
	}
	return nil, false
}

// ReferenceFQN computes the fully qualified name a reference node
// denotes, per the canonical forms. Dynamic names (an expression in
// name or class position, or a receiver whose type is unknown) are
// unresolved and return ok=false. Variable nodes are not references.
func (r *Resolver) ReferenceFQN(n phpast.Node) (string, bool) {
	switch n := n.(type) {
	case *phpast.Name:
		if n.Resolved == "" {
			return "", false
		}
		return n.Resolved, true

	case *phpast.FunctionCall:
		if name, ok := n.Target.(*phpast.Name); ok && name.Resolved != "" {
			return name.Resolved, true
		}
		return "", false

	case *phpast.ConstFetch:
		if n.Name != nil && n.Name.Resolved != "" {
			return n.Name.Resolved, true
		}
		return "", false

	case *phpast.New:
		if name, ok := n.Class.(*phpast.Name); ok && name.Resolved != "" {
			return name.Resolved, true
		}
		return "", false

	case *phpast.MethodCall:
		cls, ok := r.receiverClass(n.Receiver)
		if !ok || n.Name == "" {
			return "", false
		}
		return MethodFQN(cls, n.Name), true

	case *phpast.PropertyFetch:
		cls, ok := r.receiverClass(n.Receiver)
		if !ok || n.Name == "" {
			return "", false
		}
		return PropertyFQN(cls, n.Name), true

	case *phpast.StaticCall:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return "", false
		}
		return MethodFQN(cls, n.Name), true

	case *phpast.StaticPropertyFetch:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return "", false
		}
		return StaticPropertyFQN(cls, n.Name), true

	case *phpast.ClassConstFetch:
		cls, ok := r.classFQN(n.Class)
		if !ok || n.Name == "" {
			return "", false
		}
		return ClassConstFQN(cls, n.Name), true
	}
	return "", false
}

// TypeFromHint maps a signature type annotation to a resolver type.
func TypeFromHint(h *phpast.TypeHint) Type {
	if h == nil || len(h.Names) == 0 {
		return Mixed
	}
	var alts []Type
	for _, name := range h.Names {
		alts = append(alts, typeFromName(name))
	}
	if h.Nullable {
		alts = append(alts, Null)
	}
	return NewCompound(alts...)
}

// TypeFromDocStrings maps resolved docblock type strings to a
// resolver type.
func TypeFromDocStrings(names []string) Type {
	if len(names) == 0 {
		return Mixed
	}
	var alts []Type
	for _, name := range names {
		alts = append(alts, typeFromName(name))
	}
	return NewCompound(alts...)
}

// typeFromName maps one resolved type name. "Foo[]" suffixes produce
// arrays with int keys.
func typeFromName(name string) Type {
	if strings.HasSuffix(name, "[]") {
		return NewArray(typeFromName(strings.TrimSuffix(name, "[]")), Integer)
	}
	switch strings.ToLower(name) {
	case "int", "integer":
		return Integer
	case "float", "double":
		return Float
	case "string":
		return String
	case "bool", "boolean", "true", "false":
		return Boolean
	case "array", "iterable":
		return NewArray(Mixed, Mixed)
	case "null":
		return Null
	case "void":
		return Void
	case "callable":
		return Callable
	case "mixed", "resource", "object", "self", "static", "$this":
		return Mixed
	}
	if strings.HasPrefix(name, "\\") {
		return NewObject(name)
	}
	return Mixed
}

// fileOf walks parent links to the enclosing file, which carries the
// namespace context for docblock resolution.
func fileOf(n phpast.Node) *phpast.File {
	for cur := n; cur != nil; cur = cur.Parent() {
		if f, ok := cur.(*phpast.File); ok {
			return f
		}
	}
	return nil
}

// docOf returns the docblock attached to a function-like node.
func docOf(n phpast.Node) string {
	switch n := n.(type) {
	case *phpast.FunctionDecl:
		return n.Doc
	case *phpast.MethodDecl:
		return n.Doc
	}
	return ""
}

// docContext builds the docblock resolution context for a file.
func docContext(f *phpast.File) *docblock.Context {
	if f == nil {
		return nil
	}
	return &docblock.Context{Namespace: f.Namespace, Uses: f.Uses}
}
