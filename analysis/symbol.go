// Copyright © 2025 The phpls authors

package analysis

import "github.com/phpindex/phpls/phpast"

// SymbolKind classifies a top-level definition.
type SymbolKind int

const (
	SymClass SymbolKind = iota
	SymInterface
	SymFunction
	SymMethod
	SymProperty
	SymConstant
)

func (k SymbolKind) String() string {
	switch k {
	case SymClass:
		return "class"
	case SymInterface:
		return "interface"
	case SymFunction:
		return "function"
	case SymMethod:
		return "method"
	case SymProperty:
		return "property"
	case SymConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// SymbolInfo describes a definition independent of its AST node.
type SymbolInfo struct {
	Kind SymbolKind
	// FQN is the canonical fully qualified name:
	//   \Ns\Name           type, function, constant
	//   \Ns\C::m()         method
	//   \Ns\C::prop        instance property, class constant
	//   \Ns\C::$prop       static property
	FQN string
	// URI of the declaring document.
	URI  string
	Span phpast.Span
	// DeclaredType is the return or value type taken from the
	// signature or docblock; nil when nothing was declared.
	DeclaredType Type
	Doc          string
}

// Definition pairs a symbol descriptor with its defining AST node. The
// node is owned by the declaring document; the graph only borrows it.
type Definition struct {
	SymbolInfo
	Node phpast.Node
}
