// Copyright © 2025 The phpls authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/phpindex/phpls/phpast"
)

func TestOffsetForPosition(t *testing.T) {
	content := "abc\ndef\nghi"
	assert.Equal(t, 0, offsetForPosition(content, 0, 0))
	assert.Equal(t, 2, offsetForPosition(content, 0, 2))
	assert.Equal(t, 4, offsetForPosition(content, 1, 0))
	assert.Equal(t, 6, offsetForPosition(content, 1, 2))
	assert.Equal(t, 8, offsetForPosition(content, 2, 0))

	// Past the end of a line clamps to the line end.
	assert.Equal(t, 3, offsetForPosition(content, 0, 99))
	// Past the last line clamps to the end of content.
	assert.Equal(t, len(content), offsetForPosition(content, 99, 0))
}

func TestSpanToRange(t *testing.T) {
	r := spanToRange(phpast.Span{StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 9})
	assert.Equal(t, protocol.UInteger(2), r.Start.Line)
	assert.Equal(t, protocol.UInteger(4), r.Start.Character)
	assert.Equal(t, protocol.UInteger(2), r.End.Line)
	assert.Equal(t, protocol.UInteger(8), r.End.Character)
}

func TestSafeUint(t *testing.T) {
	assert.Equal(t, protocol.UInteger(0), safeUint(-5))
	assert.Equal(t, protocol.UInteger(7), safeUint(7))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "bar", displayName(`\App\Foo::bar()`))
	assert.Equal(t, "name", displayName(`\App\Foo::name`))
	assert.Equal(t, "Foo", displayName(`\App\Foo`))
	assert.Equal(t, "strlen", displayName(`\strlen`))
}

func TestWordBefore(t *testing.T) {
	assert.Equal(t, "str", wordBefore("$x = str", 0, 8))
	assert.Equal(t, "", wordBefore("$x = ", 0, 5))
}

func TestURIPathRoundTrip(t *testing.T) {
	assert.Equal(t, "/tmp/a.php", uriToPath("file:///tmp/a.php"))
	assert.Equal(t, "file:///tmp/a.php", pathToURI("/tmp/a.php"))
}

func TestFSProviderMissingFile(t *testing.T) {
	_, err := FSProvider{}.Read("file:///definitely/not/here.php")
	assert.Error(t, err)
}
