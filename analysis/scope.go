// Copyright © 2025 The phpls authors

package analysis

import "github.com/phpindex/phpls/phpast"

// FindVariableDefinition locates the node that established the value
// of a variable use: a parameter, the capture binding of the nearest
// enclosing closure, or the nearest assignment lexically preceding the
// use within the same function body. It returns nil when the variable
// has no visible definition.
//
// The walk never crosses a function-like boundary: a use inside a
// function resolves only against that function's parameters, captures,
// and body. The previous-sibling walk starts at the use and moves
// backward, so the first match is the nearest preceding assignment.
func FindVariableDefinition(use *phpast.Variable) phpast.Node {
	if use == nil {
		return nil
	}
	name := use.Name
	var cur phpast.Node = use
	for {
		for sib := cur.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
			if a := assignmentTo(sib, name); a != nil {
				return a
			}
		}
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		if phpast.IsFunctionLike(parent) {
			if p := paramNamed(parent, name); p != nil {
				return p
			}
			if cl, ok := parent.(*phpast.Closure); ok {
				if cap := captureNamed(cl, name); cap != nil {
					if cap == use {
						// The use is the capture binding itself;
						// its value comes from the enclosing scope,
						// so continue outward from the closure.
						cur = parent
						continue
					}
					return cap
				}
			}
			return nil
		}
		cur = parent
	}
}

// assignmentTo returns n as a defining assignment of name, unwrapping
// a statement wrapper. Assignments nested deeper inside the sibling
// are not considered.
func assignmentTo(n phpast.Node, name string) phpast.Node {
	if st, ok := n.(*phpast.ExprStmt); ok {
		n = st.Expr
	}
	a, ok := n.(*phpast.Assign)
	if !ok {
		return nil
	}
	if v, ok := a.Var.(*phpast.Variable); ok && v.Name == name {
		return a
	}
	return nil
}

// paramNamed scans the parameter list of a function-like node.
func paramNamed(fn phpast.Node, name string) phpast.Node {
	var params []*phpast.Param
	switch fn := fn.(type) {
	case *phpast.FunctionDecl:
		params = fn.Params
	case *phpast.MethodDecl:
		params = fn.Params
	case *phpast.Closure:
		params = fn.Params
	}
	for _, p := range params {
		if p.Var != nil && p.Var.Name == name {
			return p
		}
	}
	return nil
}

// captureNamed scans a closure's use clause.
func captureNamed(cl *phpast.Closure, name string) *phpast.Variable {
	for _, cap := range cl.Captures {
		if cap.Name == name {
			return cap
		}
	}
	return nil
}
