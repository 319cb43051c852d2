// Copyright © 2025 The phpls authors

// Package docblock parses PHPDoc comments into structured tags. Type
// expressions in tags are resolved against a namespace context so that
// consumers receive fully qualified class names.
package docblock

import (
	"strings"
)

// Context supplies the namespace environment of the file the docblock
// appears in. Uses maps local alias to fully qualified name with a
// leading backslash.
type Context struct {
	Namespace string
	Uses      map[string]string
}

// Param is one @param tag.
type Param struct {
	Name  string // variable name without the $
	Types []string
	Desc  string
}

// Block is a parsed docblock.
type Block struct {
	// Summary is the first text line before any tag.
	Summary string
	Params  []Param
	// Return holds the @return tag types, nil when absent.
	Return []string
	// Var holds the @var tag types, nil when absent.
	Var []string
}

// ParamTypes returns the resolved types of the named parameter, or nil.
func (b *Block) ParamTypes(name string) []string {
	if b == nil {
		return nil
	}
	for _, p := range b.Params {
		if p.Name == name {
			return p.Types
		}
	}
	return nil
}

// Parse parses the raw comment text (including the surrounding
// delimiters) into a Block. A nil context resolves class names against
// the global namespace.
func Parse(comment string, ctx *Context) *Block {
	if ctx == nil {
		ctx = &Context{}
	}
	b := &Block{}
	for _, line := range splitLines(comment) {
		if strings.HasPrefix(line, "@") {
			parseTag(b, line, ctx)
			continue
		}
		if b.Summary == "" && line != "" && len(b.Params) == 0 && b.Return == nil && b.Var == nil {
			b.Summary = line
		}
	}
	return b
}

// splitLines strips the comment delimiters and leading asterisks,
// returning trimmed content lines.
func splitLines(comment string) []string {
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimPrefix(comment, "/*")
	comment = strings.TrimSuffix(comment, "*/")
	var out []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

func parseTag(b *Block, line string, ctx *Context) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "@param":
		if len(fields) < 2 {
			return
		}
		p := Param{}
		rest := fields[1:]
		// Either "@param Type $name desc" or "@param $name desc".
		if strings.HasPrefix(rest[0], "$") {
			p.Name = strings.TrimPrefix(rest[0], "$")
			rest = rest[1:]
		} else {
			p.Types = resolveTypes(rest[0], ctx)
			rest = rest[1:]
			if len(rest) > 0 && strings.HasPrefix(rest[0], "$") {
				p.Name = strings.TrimPrefix(rest[0], "$")
				rest = rest[1:]
			}
		}
		p.Desc = strings.Join(rest, " ")
		if p.Name != "" {
			b.Params = append(b.Params, p)
		}
	case "@return":
		if len(fields) >= 2 {
			b.Return = resolveTypes(fields[1], ctx)
		}
	case "@var":
		if len(fields) >= 2 {
			b.Var = resolveTypes(fields[1], ctx)
		}
	}
}

// scalarTypes are docblock type words that never resolve to classes.
var scalarTypes = map[string]bool{
	"int": true, "integer": true, "float": true, "double": true,
	"string": true, "bool": true, "boolean": true, "array": true,
	"mixed": true, "null": true, "void": true, "callable": true,
	"object": true, "static": true, "self": true, "$this": true,
	"true": true, "false": true, "iterable": true, "resource": true,
}

// resolveTypes splits a union type expression and qualifies class
// names. Array suffixes ("Foo[]") are preserved on the resolved name.
func resolveTypes(expr string, ctx *Context) []string {
	var out []string
	for _, part := range strings.Split(expr, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		suffix := ""
		for strings.HasSuffix(part, "[]") {
			part = strings.TrimSuffix(part, "[]")
			suffix += "[]"
		}
		if scalarTypes[strings.ToLower(part)] {
			out = append(out, strings.ToLower(part)+suffix)
			continue
		}
		out = append(out, qualify(part, ctx)+suffix)
	}
	return out
}

func qualify(name string, ctx *Context) string {
	if strings.HasPrefix(name, "\\") {
		return name
	}
	head := name
	rest := ""
	if idx := strings.Index(name, "\\"); idx >= 0 {
		head = name[:idx]
		rest = name[idx:]
	}
	if fq, ok := ctx.Uses[head]; ok {
		return fq + rest
	}
	if ctx.Namespace == "" {
		return "\\" + name
	}
	return "\\" + ctx.Namespace + "\\" + name
}
