// Copyright © 2025 The phpls authors

package analysis

import "strings"

// Canonical FQN constructors. The canonical forms are:
//
//	\Ns\Name       type, function, constant
//	\Ns\C::m()     method (the trailing parens mark callables)
//	\Ns\C::prop    instance property, class constant
//	\Ns\C::$prop   static property
//
// Matching is byte-exact and case-sensitive.

// NamespaceFQN joins a namespace ("" for global) and a bare name.
func NamespaceFQN(ns, name string) string {
	if ns == "" {
		return "\\" + name
	}
	return "\\" + ns + "\\" + name
}

// MethodFQN names a method of a class.
func MethodFQN(class, name string) string { return class + "::" + name + "()" }

// PropertyFQN names an instance property or class constant.
func PropertyFQN(class, name string) string { return class + "::" + name }

// StaticPropertyFQN names a static property.
func StaticPropertyFQN(class, name string) string { return class + "::$" + name }

// ClassConstFQN names a class constant.
func ClassConstFQN(class, name string) string { return class + "::" + name }

// GlobalFallback strips the namespace segments from a function or
// constant FQN, producing the global-namespace form the language falls
// back to for unqualified call sites. Member FQNs are returned
// unchanged: there is no fallback for them.
func GlobalFallback(fqn string) string {
	if strings.Contains(fqn, "::") {
		return fqn
	}
	if idx := strings.LastIndex(fqn, "\\"); idx > 0 {
		return "\\" + fqn[idx+1:]
	}
	return fqn
}
