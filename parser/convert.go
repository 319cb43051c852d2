// Copyright © 2025 The phpls authors

package parser

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phpindex/phpls/phpast"
)

// converter holds the per-file state for CST to AST conversion. Name
// resolution uses the file's namespace and use table, both gathered in
// a pre-pass so that declaration order does not matter.
type converter struct {
	src       []byte
	namespace string
	uses      map[string]string
}

func newConverter(src []byte) *converter {
	return &converter{src: src, uses: make(map[string]string)}
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.src)
}

func (c *converter) convertProgram(root *sitter.Node) *phpast.File {
	file := &phpast.File{Uses: c.uses}
	file.SetSpan(spanOf(root))

	// Pre-pass: namespace and use table.
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "namespace_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				c.namespace = strings.Trim(c.text(name), "\\")
			}
		case "namespace_use_declaration":
			c.scanUseDeclaration(n)
		}
	}
	file.Namespace = c.namespace

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		stmts := c.convertStmt(n)
		file.Stmts = append(file.Stmts, stmts...)
	}
	return file
}

// scanUseDeclaration records use clauses into the alias table. The
// default alias is the final segment of the imported name.
func (c *converter) scanUseDeclaration(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "namespace_use_clause" {
			continue
		}
		var target, alias string
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			kid := clause.NamedChild(j)
			switch kid.Type() {
			case "qualified_name", "name":
				target = strings.TrimPrefix(c.text(kid), "\\")
			case "namespace_aliasing_clause":
				if kid.NamedChildCount() > 0 {
					alias = c.text(kid.NamedChild(0))
				}
			}
		}
		if target == "" {
			continue
		}
		if alias == "" {
			if idx := strings.LastIndex(target, "\\"); idx >= 0 {
				alias = target[idx+1:]
			} else {
				alias = target
			}
		}
		c.uses[alias] = "\\" + target
	}
}

// resolveName computes the fully qualified form of a reference name
// using the use table and the current namespace. Relative class
// keywords (self, static, parent) have no static resolution here and
// yield an empty string.
func (c *converter) resolveName(text string) string {
	if text == "" {
		return ""
	}
	switch strings.ToLower(text) {
	case "self", "static", "parent":
		return ""
	}
	if strings.HasPrefix(text, "\\") {
		return text
	}
	head := text
	rest := ""
	if idx := strings.Index(text, "\\"); idx >= 0 {
		head = text[:idx]
		rest = text[idx:]
	}
	if fq, ok := c.uses[head]; ok {
		return fq + rest
	}
	if c.namespace == "" {
		return "\\" + text
	}
	return "\\" + c.namespace + "\\" + text
}

func (c *converter) mkIdent(n *sitter.Node) *phpast.Ident {
	if n == nil {
		return nil
	}
	id := &phpast.Ident{Value: c.text(n)}
	id.SetSpan(spanOf(n))
	return id
}

func (c *converter) mkName(n *sitter.Node) *phpast.Name {
	if n == nil {
		return nil
	}
	text := c.text(n)
	name := &phpast.Name{Value: text, Resolved: c.resolveName(text)}
	name.SetSpan(spanOf(n))
	return name
}

// docFor returns the docblock comment immediately preceding n, if any.
func (c *converter) docFor(n *sitter.Node) string {
	prev := n.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	text := c.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return text
}

// convertStmt converts one statement-level CST node. It returns a
// slice because grouped constant declarations and braced namespace
// bodies expand to several AST nodes, and comments and use
// declarations expand to none.
func (c *converter) convertStmt(n *sitter.Node) []phpast.Node {
	switch n.Type() {
	case "comment", "php_tag", "text", "text_interpolation", "namespace_use_declaration":
		return nil
	case "namespace_definition":
		// Braced namespace bodies contribute their statements directly.
		var out []phpast.Node
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				out = append(out, c.convertStmt(body.NamedChild(i))...)
			}
		}
		return out
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return nil
		}
		st := &phpast.ExprStmt{Expr: c.convertExpr(n.NamedChild(0))}
		st.SetSpan(spanOf(n))
		return []phpast.Node{st}
	case "compound_statement":
		blk := &phpast.Block{Stmts: c.convertBody(n)}
		blk.SetSpan(spanOf(n))
		return []phpast.Node{blk}
	case "function_definition":
		return []phpast.Node{c.convertFunction(n)}
	case "class_declaration":
		return []phpast.Node{c.convertClass(n)}
	case "interface_declaration":
		return []phpast.Node{c.convertInterface(n)}
	case "const_declaration":
		return c.convertConsts(n, false)
	case "return_statement":
		ret := &phpast.Return{}
		if n.NamedChildCount() > 0 {
			ret.Expr = c.convertExpr(n.NamedChild(0))
		}
		ret.SetSpan(spanOf(n))
		return []phpast.Node{ret}
	case "echo_statement":
		echo := &phpast.Echo{}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			echo.Exprs = append(echo.Exprs, c.convertExpr(n.NamedChild(i)))
		}
		echo.SetSpan(spanOf(n))
		return []phpast.Node{echo}
	case "if_statement":
		return []phpast.Node{c.convertIf(n)}
	}

	if strings.HasSuffix(n.Type(), "_expression") {
		st := &phpast.ExprStmt{Expr: c.convertExpr(n)}
		st.SetSpan(spanOf(n))
		return []phpast.Node{st}
	}

	unk := &phpast.Unknown{Kind: n.Type()}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		unk.Kids = append(unk.Kids, c.convertStmt(n.NamedChild(i))...)
	}
	unk.SetSpan(spanOf(n))
	return []phpast.Node{unk}
}

// convertBody converts the statements of a compound statement or
// similar statement container.
func (c *converter) convertBody(n *sitter.Node) []phpast.Node {
	if n == nil {
		return nil
	}
	if n.Type() != "compound_statement" {
		return c.convertStmt(n)
	}
	var out []phpast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, c.convertStmt(n.NamedChild(i))...)
	}
	return out
}

func (c *converter) convertIf(n *sitter.Node) phpast.Node {
	st := &phpast.If{}
	st.SetSpan(spanOf(n))
	if cond := n.ChildByFieldName("condition"); cond != nil {
		st.Cond = c.convertExpr(unwrapParens(cond))
	}
	st.Then = c.convertBody(n.ChildByFieldName("body"))
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		// else_clause or else_if_clause; convert its body statements.
		for i := 0; i < int(alt.NamedChildCount()); i++ {
			st.Else = append(st.Else, c.convertStmt(alt.NamedChild(i))...)
		}
	}
	return st
}

func unwrapParens(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" && n.NamedChildCount() > 0 {
		n = n.NamedChild(0)
	}
	return n
}

func (c *converter) convertFunction(n *sitter.Node) phpast.Node {
	fn := &phpast.FunctionDecl{
		Name:       c.mkIdent(n.ChildByFieldName("name")),
		Params:     c.convertParams(n.ChildByFieldName("parameters")),
		ReturnHint: c.convertHint(n.ChildByFieldName("return_type")),
		Body:       c.convertBody(n.ChildByFieldName("body")),
		Doc:        c.docFor(n),
	}
	fn.SetSpan(spanOf(n))
	return fn
}

func (c *converter) convertClass(n *sitter.Node) *phpast.ClassDecl {
	cls := &phpast.ClassDecl{
		Name: c.mkIdent(n.ChildByFieldName("name")),
		Doc:  c.docFor(n),
	}
	cls.SetSpan(spanOf(n))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		kid := n.NamedChild(i)
		switch kid.Type() {
		case "base_clause":
			for j := 0; j < int(kid.NamedChildCount()); j++ {
				if isNameNode(kid.NamedChild(j)) {
					cls.Extends = c.mkName(kid.NamedChild(j))
					break
				}
			}
		case "class_interface_clause":
			for j := 0; j < int(kid.NamedChildCount()); j++ {
				if isNameNode(kid.NamedChild(j)) {
					cls.Implements = append(cls.Implements, c.mkName(kid.NamedChild(j)))
				}
			}
		case "declaration_list":
			cls.Members = c.convertMembers(kid)
		}
	}
	return cls
}

func (c *converter) convertInterface(n *sitter.Node) phpast.Node {
	iface := &phpast.InterfaceDecl{
		Name: c.mkIdent(n.ChildByFieldName("name")),
		Doc:  c.docFor(n),
	}
	iface.SetSpan(spanOf(n))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		kid := n.NamedChild(i)
		switch kid.Type() {
		case "base_clause":
			for j := 0; j < int(kid.NamedChildCount()); j++ {
				if isNameNode(kid.NamedChild(j)) {
					iface.Extends = append(iface.Extends, c.mkName(kid.NamedChild(j)))
				}
			}
		case "declaration_list":
			iface.Members = c.convertMembers(kid)
		}
	}
	return iface
}

func (c *converter) convertMembers(body *sitter.Node) []phpast.Node {
	var out []phpast.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		switch n.Type() {
		case "method_declaration":
			out = append(out, c.convertMethod(n))
		case "property_declaration":
			out = append(out, c.convertProperties(n)...)
		case "const_declaration":
			out = append(out, c.convertConsts(n, true)...)
		case "comment":
			// attached via docFor
		default:
			unk := &phpast.Unknown{Kind: n.Type()}
			unk.SetSpan(spanOf(n))
			out = append(out, unk)
		}
	}
	return out
}

func (c *converter) convertMethod(n *sitter.Node) phpast.Node {
	m := &phpast.MethodDecl{
		Name:       c.mkIdent(n.ChildByFieldName("name")),
		Params:     c.convertParams(n.ChildByFieldName("parameters")),
		ReturnHint: c.convertHint(n.ChildByFieldName("return_type")),
		Body:       c.convertBody(n.ChildByFieldName("body")),
		Doc:        c.docFor(n),
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		kid := n.Child(i)
		switch kid.Type() {
		case "static_modifier":
			m.Static = true
		case "visibility_modifier":
			m.Visibility = c.text(kid)
		}
	}
	m.SetSpan(spanOf(n))
	return m
}

func (c *converter) convertProperties(n *sitter.Node) []phpast.Node {
	doc := c.docFor(n)
	hint := c.convertHint(n.ChildByFieldName("type"))
	static := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "static_modifier" {
			static = true
		}
	}
	var out []phpast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		el := n.NamedChild(i)
		if el.Type() != "property_element" {
			continue
		}
		prop := &phpast.PropertyDecl{Hint: hint, Static: static, Doc: doc}
		prop.SetSpan(spanOf(el))
		for j := 0; j < int(el.NamedChildCount()); j++ {
			kid := el.NamedChild(j)
			switch kid.Type() {
			case "variable_name":
				id := &phpast.Ident{Value: strings.TrimPrefix(c.text(kid), "$")}
				id.SetSpan(spanOf(kid))
				prop.Name = id
			default:
				prop.Default = c.convertExpr(kid)
			}
		}
		if prop.Name != nil {
			out = append(out, prop)
		}
	}
	return out
}

// convertConsts converts a const declaration into per-name AST nodes;
// class constants and top-level constants share the CST shape.
func (c *converter) convertConsts(n *sitter.Node, inClass bool) []phpast.Node {
	doc := c.docFor(n)
	var out []phpast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		el := n.NamedChild(i)
		if el.Type() != "const_element" {
			continue
		}
		var name *phpast.Ident
		var value phpast.Node
		for j := 0; j < int(el.NamedChildCount()); j++ {
			kid := el.NamedChild(j)
			if kid.Type() == "name" && name == nil {
				name = c.mkIdent(kid)
			} else {
				value = c.convertExpr(kid)
			}
		}
		if name == nil {
			continue
		}
		if inClass {
			decl := &phpast.ClassConstDecl{Name: name, Value: value, Doc: doc}
			decl.SetSpan(spanOf(el))
			out = append(out, decl)
		} else {
			decl := &phpast.ConstDecl{Name: name, Value: value, Doc: doc}
			decl.SetSpan(spanOf(el))
			out = append(out, decl)
		}
	}
	return out
}

func (c *converter) convertParams(n *sitter.Node) []*phpast.Param {
	if n == nil {
		return nil
	}
	var out []*phpast.Param
	for i := 0; i < int(n.NamedChildCount()); i++ {
		pn := n.NamedChild(i)
		switch pn.Type() {
		case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
		default:
			continue
		}
		p := &phpast.Param{
			Hint: c.convertHint(pn.ChildByFieldName("type")),
		}
		if v := pn.ChildByFieldName("name"); v != nil {
			p.Var = c.mkVariable(v)
		}
		if d := pn.ChildByFieldName("default_value"); d != nil {
			p.Default = c.convertExpr(d)
		}
		p.SetSpan(spanOf(pn))
		if p.Var != nil {
			out = append(out, p)
		}
	}
	return out
}

// convertHint flattens a type annotation into resolved type names.
func (c *converter) convertHint(n *sitter.Node) *phpast.TypeHint {
	if n == nil {
		return nil
	}
	hint := &phpast.TypeHint{}
	hint.SetSpan(spanOf(n))
	var walk func(t *sitter.Node)
	walk = func(t *sitter.Node) {
		switch t.Type() {
		case "optional_type":
			hint.Nullable = true
			for i := 0; i < int(t.NamedChildCount()); i++ {
				walk(t.NamedChild(i))
			}
		case "union_type", "intersection_type", "named_type", "type_list":
			if t.NamedChildCount() == 0 {
				hint.Names = append(hint.Names, c.resolveName(c.text(t)))
				return
			}
			for i := 0; i < int(t.NamedChildCount()); i++ {
				walk(t.NamedChild(i))
			}
		case "primitive_type":
			hint.Names = append(hint.Names, c.text(t))
		case "name", "qualified_name":
			hint.Names = append(hint.Names, c.resolveName(c.text(t)))
		default:
			for i := 0; i < int(t.NamedChildCount()); i++ {
				walk(t.NamedChild(i))
			}
		}
	}
	walk(n)
	if len(hint.Names) == 0 {
		return nil
	}
	return hint
}

func (c *converter) mkVariable(n *sitter.Node) *phpast.Variable {
	v := &phpast.Variable{Name: strings.TrimPrefix(c.text(n), "$")}
	v.SetSpan(spanOf(n))
	return v
}

func isNameNode(n *sitter.Node) bool {
	return n != nil && (n.Type() == "name" || n.Type() == "qualified_name")
}

func (c *converter) convertArgs(n *sitter.Node) []phpast.Node {
	if n == nil {
		return nil
	}
	var out []phpast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		arg := n.NamedChild(i)
		if arg.Type() == "argument" {
			if arg.NamedChildCount() > 0 {
				out = append(out, c.convertExpr(arg.NamedChild(0)))
			}
			continue
		}
		out = append(out, c.convertExpr(arg))
	}
	return out
}

// memberName splits a member name position into static text or a
// dynamic expression.
func (c *converter) memberName(n *sitter.Node) (string, phpast.Node) {
	if n == nil {
		return "", nil
	}
	if n.Type() == "name" {
		return c.text(n), nil
	}
	return "", c.convertExpr(n)
}

func (c *converter) convertExpr(n *sitter.Node) phpast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "parenthesized_expression":
		if n.NamedChildCount() == 0 {
			return nil
		}
		return c.convertExpr(n.NamedChild(0))

	case "assignment_expression":
		a := &phpast.Assign{
			Var:  c.convertExpr(n.ChildByFieldName("left")),
			Expr: c.convertExpr(n.ChildByFieldName("right")),
		}
		a.SetSpan(spanOf(n))
		return a

	case "variable_name":
		return c.mkVariable(n)

	case "function_call_expression":
		target := n.ChildByFieldName("function")
		args := c.convertArgs(n.ChildByFieldName("arguments"))
		if isNameNode(target) {
			switch strings.ToLower(c.text(target)) {
			case "isset":
				e := &phpast.IssetExpr{Vars: args}
				e.SetSpan(spanOf(n))
				return e
			case "empty":
				e := &phpast.EmptyExpr{}
				if len(args) > 0 {
					e.Expr = args[0]
				}
				e.SetSpan(spanOf(n))
				return e
			}
		}
		call := &phpast.FunctionCall{Args: args}
		if isNameNode(target) {
			call.Target = c.mkName(target)
		} else {
			call.Target = c.convertExpr(target)
		}
		call.SetSpan(spanOf(n))
		return call

	case "member_call_expression", "nullsafe_member_call_expression":
		m := &phpast.MethodCall{
			Receiver: c.convertExpr(n.ChildByFieldName("object")),
			Args:     c.convertArgs(n.ChildByFieldName("arguments")),
		}
		m.Name, m.NameExpr = c.memberName(n.ChildByFieldName("name"))
		m.SetSpan(spanOf(n))
		return m

	case "member_access_expression", "nullsafe_member_access_expression":
		f := &phpast.PropertyFetch{
			Receiver: c.convertExpr(n.ChildByFieldName("object")),
		}
		f.Name, f.NameExpr = c.memberName(n.ChildByFieldName("name"))
		f.SetSpan(spanOf(n))
		return f

	case "scoped_call_expression":
		sc := &phpast.StaticCall{
			Class: c.convertClassRef(n.ChildByFieldName("scope")),
			Args:  c.convertArgs(n.ChildByFieldName("arguments")),
		}
		sc.Name, sc.NameExpr = c.memberName(n.ChildByFieldName("name"))
		sc.SetSpan(spanOf(n))
		return sc

	case "scoped_property_access_expression":
		sp := &phpast.StaticPropertyFetch{
			Class: c.convertClassRef(n.ChildByFieldName("scope")),
		}
		if name := n.ChildByFieldName("name"); name != nil {
			sp.Name = strings.TrimPrefix(c.text(name), "$")
		}
		sp.SetSpan(spanOf(n))
		return sp

	case "class_constant_access_expression":
		cc := &phpast.ClassConstFetch{}
		if n.NamedChildCount() > 0 {
			cc.Class = c.convertClassRef(n.NamedChild(0))
		}
		if n.NamedChildCount() > 1 {
			cc.Name = c.text(n.NamedChild(1))
		}
		cc.SetSpan(spanOf(n))
		return cc

	case "object_creation_expression":
		nw := &phpast.New{}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			kid := n.NamedChild(i)
			switch {
			case isNameNode(kid):
				nw.Class = c.mkName(kid)
			case kid.Type() == "arguments":
				nw.Args = c.convertArgs(kid)
			case kid.Type() == "declaration_list":
				anon := &phpast.ClassDecl{Members: c.convertMembers(kid)}
				anon.SetSpan(spanOf(kid))
				nw.Class = anon
			default:
				if nw.Class == nil {
					nw.Class = c.convertExpr(kid)
				}
			}
		}
		nw.SetSpan(spanOf(n))
		return nw

	case "clone_expression":
		cl := &phpast.Clone{}
		if n.NamedChildCount() > 0 {
			cl.Expr = c.convertExpr(n.NamedChild(0))
		}
		cl.SetSpan(spanOf(n))
		return cl

	case "conditional_expression":
		t := &phpast.Ternary{
			Cond: c.convertExpr(n.ChildByFieldName("condition")),
			Else: c.convertExpr(n.ChildByFieldName("alternative")),
		}
		if body := n.ChildByFieldName("body"); body != nil {
			t.If = c.convertExpr(body)
		}
		t.SetSpan(spanOf(n))
		return t

	case "binary_expression":
		op := ""
		if opn := n.ChildByFieldName("operator"); opn != nil {
			op = c.text(opn)
		}
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		switch op {
		case "??":
			co := &phpast.Coalesce{Left: c.convertExpr(left), Right: c.convertExpr(right)}
			co.SetSpan(spanOf(n))
			return co
		case "instanceof":
			io := &phpast.InstanceOf{Expr: c.convertExpr(left), Class: c.convertClassRef(right)}
			io.SetSpan(spanOf(n))
			return io
		}
		b := &phpast.BinaryOp{Op: op, Left: c.convertExpr(left), Right: c.convertExpr(right)}
		b.SetSpan(spanOf(n))
		return b

	case "unary_op_expression":
		u := &phpast.UnaryOp{}
		if n.ChildCount() > 0 {
			u.Op = c.text(n.Child(0))
		}
		if n.NamedChildCount() > 0 {
			u.Expr = c.convertExpr(n.NamedChild(0))
		}
		u.SetSpan(spanOf(n))
		return u

	case "cast_expression":
		ca := &phpast.Cast{
			To:   c.text(n.ChildByFieldName("type")),
			Expr: c.convertExpr(n.ChildByFieldName("value")),
		}
		ca.SetSpan(spanOf(n))
		return ca

	case "array_creation_expression":
		arr := &phpast.ArrayLiteral{}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			el := n.NamedChild(i)
			if el.Type() != "array_element_initializer" {
				continue
			}
			item := &phpast.ArrayItem{}
			item.SetSpan(spanOf(el))
			switch el.NamedChildCount() {
			case 1:
				item.Value = c.convertExpr(el.NamedChild(0))
			case 2:
				item.Key = c.convertExpr(el.NamedChild(0))
				item.Value = c.convertExpr(el.NamedChild(1))
			default:
				continue
			}
			arr.Items = append(arr.Items, item)
		}
		arr.SetSpan(spanOf(n))
		return arr

	case "subscript_expression":
		ix := &phpast.IndexFetch{}
		if n.NamedChildCount() > 0 {
			ix.Target = c.convertExpr(n.NamedChild(0))
		}
		if n.NamedChildCount() > 1 {
			ix.Index = c.convertExpr(n.NamedChild(1))
		}
		ix.SetSpan(spanOf(n))
		return ix

	case "include_expression", "include_once_expression", "require_expression", "require_once_expression":
		inc := &phpast.Include{Kind: strings.TrimSuffix(n.Type(), "_expression")}
		if n.NamedChildCount() > 0 {
			inc.Expr = c.convertExpr(n.NamedChild(0))
		}
		inc.SetSpan(spanOf(n))
		return inc

	case "name", "qualified_name":
		text := c.text(n)
		switch strings.ToLower(text) {
		case "true", "false":
			b := &phpast.BoolLit{Value: strings.EqualFold(text, "true")}
			b.SetSpan(spanOf(n))
			return b
		case "null":
			nl := &phpast.NullLit{}
			nl.SetSpan(spanOf(n))
			return nl
		}
		cf := &phpast.ConstFetch{Name: c.mkName(n)}
		cf.SetSpan(spanOf(n))
		return cf

	case "boolean":
		b := &phpast.BoolLit{Value: strings.EqualFold(c.text(n), "true")}
		b.SetSpan(spanOf(n))
		return b

	case "null":
		nl := &phpast.NullLit{}
		nl.SetSpan(spanOf(n))
		return nl

	case "integer":
		text := strings.ReplaceAll(c.text(n), "_", "")
		v, _ := strconv.ParseInt(text, 0, 64)
		lit := &phpast.IntLit{Value: v}
		lit.SetSpan(spanOf(n))
		return lit

	case "float":
		v, _ := strconv.ParseFloat(strings.ReplaceAll(c.text(n), "_", ""), 64)
		lit := &phpast.FloatLit{Value: v}
		lit.SetSpan(spanOf(n))
		return lit

	case "string", "encapsed_string", "heredoc":
		lit := &phpast.StringLit{Value: stripQuotes(c.text(n))}
		lit.SetSpan(spanOf(n))
		return lit

	case "anonymous_function_creation_expression":
		fn := &phpast.Closure{
			Params:     c.convertParams(n.ChildByFieldName("parameters")),
			ReturnHint: c.convertHint(n.ChildByFieldName("return_type")),
			Body:       c.convertBody(n.ChildByFieldName("body")),
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			kid := n.NamedChild(i)
			if kid.Type() != "anonymous_function_use_clause" {
				continue
			}
			for j := 0; j < int(kid.NamedChildCount()); j++ {
				uv := kid.NamedChild(j)
				if uv.Type() == "variable_name" {
					fn.Captures = append(fn.Captures, c.mkVariable(uv))
				}
			}
		}
		fn.SetSpan(spanOf(n))
		return fn

	case "arrow_function":
		// fn(...) => expr desugars to a closure whose body returns
		// the expression.
		fn := &phpast.Closure{
			Params:     c.convertParams(n.ChildByFieldName("parameters")),
			ReturnHint: c.convertHint(n.ChildByFieldName("return_type")),
		}
		if body := n.ChildByFieldName("body"); body != nil {
			ret := &phpast.Return{Expr: c.convertExpr(body)}
			ret.SetSpan(spanOf(body))
			fn.Body = []phpast.Node{ret}
		}
		fn.SetSpan(spanOf(n))
		return fn
	}

	unk := &phpast.Unknown{Kind: n.Type()}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if kid := c.convertExpr(n.NamedChild(i)); kid != nil {
			unk.Kids = append(unk.Kids, kid)
		}
	}
	unk.SetSpan(spanOf(n))
	return unk
}

// convertClassRef converts a class-name position: a static name, or an
// arbitrary expression for dynamic designators.
func (c *converter) convertClassRef(n *sitter.Node) phpast.Node {
	if n == nil {
		return nil
	}
	if isNameNode(n) {
		return c.mkName(n)
	}
	return c.convertExpr(n)
}

// stripQuotes removes one layer of matching string quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
