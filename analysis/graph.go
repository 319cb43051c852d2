// Copyright © 2025 The phpls authors

package analysis

import (
	"sort"
	"strings"
	"sync"
)

// Graph is the project-level symbol index. It maps each FQN to the
// definition that currently owns it (last writer wins) and to the set
// of document URIs that reference it.
//
// All mutation funnels through the document-update pipeline; queries
// only read. The mutex makes individual operations safe from any
// goroutine, while the pipeline's own lock provides update atomicity.
type Graph struct {
	mu        sync.RWMutex
	defs      map[string]*Definition
	referrers map[string]map[string]struct{}
}

// NewGraph returns an empty symbol graph.
func NewGraph() *Graph {
	return &Graph{
		defs:      make(map[string]*Definition),
		referrers: make(map[string]map[string]struct{}),
	}
}

// SetDefinition records fqn as defined by def. A previous definition
// under the same FQN is replaced.
func (g *Graph) SetDefinition(fqn string, def *Definition) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.defs[fqn] = def
}

// RemoveDefinition drops the definition and the referrer set under
// fqn. Removing an absent FQN is a no-op.
func (g *Graph) RemoveDefinition(fqn string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.defs, fqn)
	delete(g.referrers, fqn)
}

// Definition returns the definition registered under fqn.
func (g *Graph) Definition(fqn string) (*Definition, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	def, ok := g.defs[fqn]
	return def, ok
}

// IsDefined reports whether fqn has a registered definition.
func (g *Graph) IsDefined(fqn string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.defs[fqn]
	return ok
}

// AddReferrer records that the document at uri references fqn.
// Adding an existing referrer is a no-op (set semantics).
func (g *Graph) AddReferrer(fqn, uri string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.referrers[fqn]
	if !ok {
		set = make(map[string]struct{})
		g.referrers[fqn] = set
	}
	set[uri] = struct{}{}
}

// RemoveReferrer removes uri from fqn's referrer set. Removing an
// absent referrer is a no-op.
func (g *Graph) RemoveReferrer(fqn, uri string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.referrers[fqn]
	if !ok {
		return
	}
	delete(set, uri)
	if len(set) == 0 {
		delete(g.referrers, fqn)
	}
}

// Referrers returns the URIs referencing fqn in sorted order.
func (g *Graph) Referrers(fqn string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set := g.referrers[fqn]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for uri := range set {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}

// DefinitionsByPrefix returns the FQNs of registered definitions with
// the given prefix, sorted. An empty prefix returns every FQN.
func (g *Graph) DefinitionsByPrefix(prefix string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for fqn := range g.defs {
		if strings.HasPrefix(fqn, prefix) {
			out = append(out, fqn)
		}
	}
	sort.Strings(out)
	return out
}
