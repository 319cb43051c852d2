// Copyright © 2025 The phpls authors

package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/phpindex/phpls/phpast"
)

// Parser produces ASTs for project documents. Implementations must be
// error tolerant: syntax problems come back as diagnostics with a
// partial tree, and a non-nil error means the parse did not run (for
// example on context cancellation).
type Parser interface {
	Parse(ctx context.Context, uri, content string) (*phpast.File, []phpast.Diagnostic, error)
}

// ContentProvider reads document text for URIs that are not open in
// the editor.
type ContentProvider interface {
	Read(uri string) (string, error)
	URIToPath(uri string) string
}

// ErrVariableNode is returned when definition lookup is asked about a
// variable node. Variables resolve through local scope, not the
// project graph; callers must use FindVariableDefinition.
var ErrVariableNode = errors.New("analysis: definition lookup on a variable node")

// Project is the query facade over the symbol graph and the set of
// known documents. Documents are either open (owned by the editor
// session) or loaded (read from disk to answer queries; evictable).
//
// All graph mutation funnels through the update pipeline, which holds
// the project lock for the whole publish so observers see either the
// complete pre-update or the complete post-update definition set for a
// URI, never a mix.
type Project struct {
	mu       sync.RWMutex
	graph    *Graph
	open     map[string]*Document
	loaded   map[string]*Document
	parser   Parser
	provider ContentProvider
	tracer   trace.Tracer
}

// NewProject creates an empty project. The provider may be nil when
// on-disk loading is not needed (tests, one-shot indexing).
func NewProject(parser Parser, provider ContentProvider) *Project {
	return &Project{
		graph:    NewGraph(),
		open:     make(map[string]*Document),
		loaded:   make(map[string]*Document),
		parser:   parser,
		provider: provider,
		tracer:   otel.Tracer("phpls/analysis"),
	}
}

// Graph exposes the symbol graph for read-only use.
func (p *Project) Graph() *Graph { return p.graph }

// OpenDocument parses content and registers the document in the open
// set, replacing any loaded copy.
func (p *Project) OpenDocument(ctx context.Context, uri, content string) (*Document, error) {
	return p.update(ctx, uri, content, true)
}

// UpdateDocument re-parses an open or loaded document with new content
// and republishes its graph entries atomically.
func (p *Project) UpdateDocument(ctx context.Context, uri, content string) (*Document, error) {
	return p.update(ctx, uri, content, false)
}

// LoadDocument returns the document for uri, reading it through the
// content provider if it is not yet known. Loaded documents do not
// join the open set. An unavailable document (missing file, IO error)
// returns nil without error, per the unresolved-is-absence policy.
func (p *Project) LoadDocument(ctx context.Context, uri string) (*Document, error) {
	p.mu.RLock()
	if doc := p.open[uri]; doc != nil {
		p.mu.RUnlock()
		return doc, nil
	}
	if doc := p.loaded[uri]; doc != nil {
		p.mu.RUnlock()
		return doc, nil
	}
	p.mu.RUnlock()

	if p.provider == nil {
		return nil, nil
	}
	content, err := p.provider.Read(uri)
	if err != nil {
		return nil, nil
	}
	return p.update(ctx, uri, content, false)
}

// update runs the document pipeline: parse outside the lock, then
// diff against the previous snapshot and publish under the lock.
func (p *Project) update(ctx context.Context, uri, content string, intoOpen bool) (*Document, error) {
	ctx, span := p.tracer.Start(ctx, "document.update")
	defer span.End()

	ast, diags, err := p.parser.Parse(ctx, uri, content)
	if err != nil {
		// Cancelled or failed parses leave the graph unchanged.
		return nil, err
	}
	doc := newDocument(uri, content, ast, diags, NewResolver(p.graph))

	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.open[uri]
	if old == nil {
		old = p.loaded[uri]
	}
	p.publishLocked(old, doc)
	if intoOpen || p.open[uri] != nil {
		p.open[uri] = doc
		delete(p.loaded, uri)
	} else {
		p.loaded[uri] = doc
	}
	return doc, nil
}

// publishLocked applies the delta between the old and new snapshots of
// one document. Caller holds the project lock.
func (p *Project) publishLocked(old, doc *Document) {
	if old != nil {
		for fqn := range old.defs {
			if _, still := doc.defs[fqn]; still {
				continue
			}
			// Only retract entries this document still owns; a later
			// writer may have taken the FQN over.
			if def, ok := p.graph.Definition(fqn); ok && def.URI == old.URI {
				p.graph.RemoveDefinition(fqn)
			}
		}
		for fqn := range old.refs {
			if _, still := doc.refs[fqn]; !still {
				p.graph.RemoveReferrer(fqn, old.URI)
			}
		}
	}
	for fqn, def := range doc.defs {
		p.graph.SetDefinition(fqn, def)
	}
	for fqn := range doc.refs {
		p.graph.AddReferrer(fqn, doc.URI)
	}
}

// CloseDocument removes an open document: its definitions leave the
// graph and its URI leaves every referrer set. In-flight queries
// holding the document may finish against the stale copy.
func (p *Project) CloseDocument(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	doc := p.open[uri]
	if doc == nil {
		return
	}
	delete(p.open, uri)
	p.retractLocked(doc)
}

// EvictLoaded drops a loaded-but-not-open document and its graph
// entries.
func (p *Project) EvictLoaded(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	doc := p.loaded[uri]
	if doc == nil {
		return
	}
	delete(p.loaded, uri)
	p.retractLocked(doc)
}

func (p *Project) retractLocked(doc *Document) {
	for fqn := range doc.defs {
		if def, ok := p.graph.Definition(fqn); ok && def.URI == doc.URI {
			p.graph.RemoveDefinition(fqn)
		}
	}
	for fqn := range doc.refs {
		p.graph.RemoveReferrer(fqn, doc.URI)
	}
}

// DocumentFor returns the open or loaded document registered for uri.
func (p *Project) DocumentFor(uri string) *Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if doc := p.open[uri]; doc != nil {
		return doc
	}
	return p.loaded[uri]
}

// Documents returns every known document, open and loaded, sorted by
// URI.
func (p *Project) Documents() []*Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	uris := make([]string, 0, len(p.open)+len(p.loaded))
	for uri := range p.open {
		uris = append(uris, uri)
	}
	for uri := range p.loaded {
		if _, isOpen := p.open[uri]; !isOpen {
			uris = append(uris, uri)
		}
	}
	sort.Strings(uris)
	out := make([]*Document, 0, len(uris))
	for _, uri := range uris {
		if doc := p.open[uri]; doc != nil {
			out = append(out, doc)
		} else {
			out = append(out, p.loaded[uri])
		}
	}
	return out
}

// OpenDocuments returns the documents currently in the open set.
func (p *Project) OpenDocuments() []*Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Document, 0, len(p.open))
	for _, doc := range p.open {
		out = append(out, doc)
	}
	return out
}

// DefinitionForNode resolves the definition a reference node points
// to. Variable nodes are a contract violation: local scope lookup is
// FindVariableDefinition's job. Unqualified function and constant
// references fall back to the global namespace when the namespaced
// lookup misses.
func (p *Project) DefinitionForNode(node phpast.Node) (*Definition, error) {
	if _, ok := node.(*phpast.Variable); ok {
		return nil, ErrVariableNode
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	r := NewResolver(p.graph)
	fqn, ok := r.ReferenceFQN(node)
	if !ok {
		return nil, nil
	}
	if def, ok := p.graph.Definition(fqn); ok {
		return def, nil
	}
	if allowsGlobalFallback(node) {
		if g := GlobalFallback(fqn); g != fqn {
			if def, ok := p.graph.Definition(g); ok {
				return def, nil
			}
		}
	}
	return nil, nil
}

// allowsGlobalFallback restricts namespace fallback to function-call
// and constant-fetch references: the language only falls back to the
// global namespace for unqualified function and constant names.
func allowsGlobalFallback(node phpast.Node) bool {
	switch node.(type) {
	case *phpast.FunctionCall, *phpast.ConstFetch:
		return true
	}
	switch parent := node.Parent().(type) {
	case *phpast.FunctionCall:
		return parent.Target == node
	case *phpast.ConstFetch:
		return true
	}
	return false
}

// TypeOfExpression infers the static type of an expression node.
func (p *Project) TypeOfExpression(node phpast.Node) Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewResolver(p.graph).TypeOf(node)
}

// ReferencesTo returns the documents referencing fqn.
func (p *Project) ReferencesTo(fqn string) []*Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*Document
	for _, uri := range p.graph.Referrers(fqn) {
		if doc := p.open[uri]; doc != nil {
			out = append(out, doc)
			continue
		}
		if doc := p.loaded[uri]; doc != nil {
			out = append(out, doc)
		}
	}
	return out
}

// DefinitionDocument returns the document declaring fqn, if known.
func (p *Project) DefinitionDocument(fqn string) *Document {
	p.mu.RLock()
	def, ok := p.graph.Definition(fqn)
	p.mu.RUnlock()
	if !ok {
		return nil
	}
	return p.DocumentFor(def.URI)
}
