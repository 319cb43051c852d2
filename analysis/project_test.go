// Copyright © 2025 The phpls authors

package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpindex/phpls/phpast"
)

const (
	uriA = "file:///a.php"
	uriB = "file:///b.php"
)

func openAll(t *testing.T, p *Project, uris ...string) {
	t.Helper()
	for _, uri := range uris {
		_, err := p.OpenDocument(context.Background(), uri, "")
		require.NoError(t, err)
	}
}

func TestProject_DefinitionsOwnedByDocument(t *testing.T) {
	sp := newStubParser()
	sp.add(uriA, file("App", classDecl("Foo", methodDecl("bar", "string"))))
	p := NewProject(sp, nil)
	openAll(t, p, uriA)

	doc := p.DocumentFor(uriA)
	require.NotNil(t, doc)
	for _, d := range doc.Definitions() {
		got, ok := p.Graph().Definition(d.FQN)
		require.True(t, ok, "missing graph entry for %s", d.FQN)
		assert.Equal(t, uriA, got.URI)
	}
}

func TestProject_UpdateReplacesDefinitionsAtomically(t *testing.T) {
	sp := newStubParser()
	sp.add(uriA, file("App", funcDecl("old", nil), funcDecl("kept", nil)))
	p := NewProject(sp, nil)
	openAll(t, p, uriA)

	require.True(t, p.Graph().IsDefined(`\App\old`))
	require.True(t, p.Graph().IsDefined(`\App\kept`))

	sp.add(uriA, file("App", funcDecl("kept", nil), funcDecl("fresh", nil)))
	_, err := p.UpdateDocument(context.Background(), uriA, "")
	require.NoError(t, err)

	assert.False(t, p.Graph().IsDefined(`\App\old`))
	assert.True(t, p.Graph().IsDefined(`\App\kept`))
	assert.True(t, p.Graph().IsDefined(`\App\fresh`))
}

func TestProject_CloseRemovesEverything(t *testing.T) {
	sp := newStubParser()
	sp.add(uriA, file("App",
		funcDecl("f", nil),
		stmt(call(name("g", `\App\g`))),
	))
	p := NewProject(sp, nil)
	openAll(t, p, uriA)

	require.True(t, p.Graph().IsDefined(`\App\f`))
	require.Contains(t, p.Graph().Referrers(`\App\g`), uriA)

	p.CloseDocument(uriA)

	assert.False(t, p.Graph().IsDefined(`\App\f`))
	assert.Empty(t, p.Graph().Referrers(`\App\g`))
	assert.Nil(t, p.DocumentFor(uriA))
}

func TestProject_CancelledParseLeavesGraphUnchanged(t *testing.T) {
	sp := newStubParser()
	sp.add(uriA, file("App", funcDecl("f", nil)))
	p := NewProject(sp, nil)
	openAll(t, p, uriA)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.UpdateDocument(ctx, uriA, "")
	require.Error(t, err)

	assert.True(t, p.Graph().IsDefined(`\App\f`))
}

func TestProject_DefinitionForNode_VariableIsContractViolation(t *testing.T) {
	p := NewProject(newStubParser(), nil)
	use := v("x")
	file("", stmt(use))

	_, err := p.DefinitionForNode(use)
	assert.ErrorIs(t, err, ErrVariableNode)
}

func TestProject_NamespaceFallback(t *testing.T) {
	// S4: a file in namespace App calls strlen($s). \App\strlen is
	// undefined and global \strlen exists, so lookup falls back.
	callName := name("strlen", `\App\strlen`)
	callNode := call(callName, strLit("s"))
	sp := newStubParser()
	sp.add(uriA, file("App", stmt(callNode)))
	sp.add(uriB, file("", funcDecl("strlen", nil)))
	p := NewProject(sp, nil)
	openAll(t, p, uriA, uriB)

	def, err := p.DefinitionForNode(callNode)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, `\strlen`, def.FQN)

	// The name node inside the call falls back the same way.
	def, err = p.DefinitionForNode(callName)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, `\strlen`, def.FQN)
}

func TestProject_NoFallbackForStaticCalls(t *testing.T) {
	// S4: App\Thing::method() does not fall back to \Thing::method().
	sc := &phpast.StaticCall{Class: name("Thing", `\App\Thing`), Name: "method"}
	sp := newStubParser()
	sp.add(uriA, file("App", stmt(sc)))
	sp.add(uriB, file("", classDecl("Thing", methodDecl("method"))))
	p := NewProject(sp, nil)
	openAll(t, p, uriA, uriB)

	def, err := p.DefinitionForNode(sc)
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestProject_NoFallbackForClassNames(t *testing.T) {
	// new Widget() in namespace App does not fall back to \Widget.
	nw := &phpast.New{Class: name("Widget", `\App\Widget`)}
	sp := newStubParser()
	sp.add(uriA, file("App", stmt(nw)))
	sp.add(uriB, file("", classDecl("Widget")))
	p := NewProject(sp, nil)
	openAll(t, p, uriA, uriB)

	def, err := p.DefinitionForNode(nw)
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestProject_CloseRemovesDefinitionForReferrers(t *testing.T) {
	// S6: A references \B::m(); B defines it; closing B makes the
	// lookup return nothing.
	callSite := &phpast.StaticCall{Class: name("B", `\B`), Name: "m"}
	sp := newStubParser()
	sp.add(uriA, file("", stmt(callSite)))
	sp.add(uriB, file("", classDecl("B", methodDecl("m"))))
	p := NewProject(sp, nil)
	openAll(t, p, uriA, uriB)

	def, err := p.DefinitionForNode(callSite)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, `\B::m()`, def.FQN)

	p.CloseDocument(uriB)

	def, err = p.DefinitionForNode(callSite)
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestProject_ReferencesTo(t *testing.T) {
	sp := newStubParser()
	sp.add(uriA, file("", stmt(&phpast.New{Class: name("B", `\B`)})))
	sp.add(uriB, file("", classDecl("B")))
	p := NewProject(sp, nil)
	openAll(t, p, uriA, uriB)

	docs := p.ReferencesTo(`\B`)
	require.Len(t, docs, 1)
	assert.Equal(t, uriA, docs[0].URI)
}

func TestProject_TypeOfExpression(t *testing.T) {
	sp := newStubParser()
	barCall := &phpast.MethodCall{
		Receiver: &phpast.New{Class: name("Foo", `\Foo`)},
		Name:     "bar",
	}
	sp.add(uriA, file("", classDecl("Foo", methodDecl("bar", "string")), stmt(barCall)))
	p := NewProject(sp, nil)
	openAll(t, p, uriA)

	assert.Equal(t, String, p.TypeOfExpression(barCall))
}

func TestProject_LoadDocumentDoesNotOpen(t *testing.T) {
	sp := newStubParser()
	p := NewProject(sp, stubProvider{"file:///disk.php": "<?php"})
	sp.add("file:///disk.php", file("", funcDecl("g", nil)))

	doc, err := p.LoadDocument(context.Background(), "file:///disk.php")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.True(t, p.Graph().IsDefined(`\g`))
	assert.Empty(t, p.OpenDocuments())

	// Eviction retracts the loaded document's graph entries.
	p.EvictLoaded("file:///disk.php")
	assert.False(t, p.Graph().IsDefined(`\g`))
}

func TestProject_LoadDocumentUnavailable(t *testing.T) {
	p := NewProject(newStubParser(), stubProvider{})
	doc, err := p.LoadDocument(context.Background(), "file:///missing.php")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestProject_DefinitionDocument(t *testing.T) {
	sp := newStubParser()
	sp.add(uriB, file("", classDecl("B")))
	p := NewProject(sp, nil)
	openAll(t, p, uriB)

	doc := p.DefinitionDocument(`\B`)
	require.NotNil(t, doc)
	assert.Equal(t, uriB, doc.URI)

	assert.Nil(t, p.DefinitionDocument(`\Nope`))
}

// stubProvider serves content from a map; missing URIs fail like an
// absent file.
type stubProvider map[string]string

func (s stubProvider) Read(uri string) (string, error) {
	content, ok := s[uri]
	if !ok {
		return "", assert.AnError
	}
	return content, nil
}

func (s stubProvider) URIToPath(uri string) string { return uri }
