// Copyright © 2025 The phpls authors

package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpindex/phpls/phpast"
)

func parse(t *testing.T, src string) *phpast.File {
	t.Helper()
	f, _, err := New().Parse(context.Background(), "file:///test.php", src)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

// find returns the first node of type T in the tree.
func find[T phpast.Node](f *phpast.File) (T, bool) {
	var found T
	ok := false
	phpast.Inspect(f, func(n phpast.Node) bool {
		if ok {
			return false
		}
		if t, is := n.(T); is {
			found = t
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

func TestParse_NamespaceAndUses(t *testing.T) {
	f := parse(t, `<?php
namespace App\Sub;

use Lib\Widget;
use Lib\Other as Alias;
`)
	assert.Equal(t, `App\Sub`, f.Namespace)
	assert.Equal(t, `\Lib\Widget`, f.Uses["Widget"])
	assert.Equal(t, `\Lib\Other`, f.Uses["Alias"])
}

func TestParse_ClassDeclaration(t *testing.T) {
	f := parse(t, `<?php
namespace App;

use Lib\Base;

class Foo extends Base {
    public static $shared;
    const LIMIT = 10;

    public function bar(): string {
        return "s";
    }
}
`)
	cls, ok := find[*phpast.ClassDecl](f)
	require.True(t, ok)
	require.NotNil(t, cls.Name)
	assert.Equal(t, "Foo", cls.Name.Value)
	require.NotNil(t, cls.Extends)
	assert.Equal(t, `\Lib\Base`, cls.Extends.Resolved)

	m, ok := find[*phpast.MethodDecl](f)
	require.True(t, ok)
	assert.Equal(t, "bar", m.Name.Value)
	require.NotNil(t, m.ReturnHint)
	assert.Equal(t, []string{"string"}, m.ReturnHint.Names)

	prop, ok := find[*phpast.PropertyDecl](f)
	require.True(t, ok)
	assert.Equal(t, "shared", prop.Name.Value)
	assert.True(t, prop.Static)

	cc, ok := find[*phpast.ClassConstDecl](f)
	require.True(t, ok)
	assert.Equal(t, "LIMIT", cc.Name.Value)
}

func TestParse_FunctionAndParams(t *testing.T) {
	f := parse(t, `<?php
namespace App;

function helper(int $a, $b) {
    return $a;
}
`)
	fn, ok := find[*phpast.FunctionDecl](f)
	require.True(t, ok)
	assert.Equal(t, "helper", fn.Name.Value)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Var.Name)
	require.NotNil(t, fn.Params[0].Hint)
	assert.Equal(t, []string{"int"}, fn.Params[0].Hint.Names)
	assert.Equal(t, "b", fn.Params[1].Var.Name)
	assert.Nil(t, fn.Params[1].Hint)
}

func TestParse_Docblock(t *testing.T) {
	f := parse(t, `<?php
/**
 * Does the thing.
 * @return string
 */
function thing() {
    return "x";
}
`)
	fn, ok := find[*phpast.FunctionDecl](f)
	require.True(t, ok)
	assert.Contains(t, fn.Doc, "@return string")
}

func TestParse_Expressions(t *testing.T) {
	f := parse(t, `<?php
namespace App;

use Lib\Widget;

$a = new Widget();
$b = $a->run();
$c = strlen("s");
`)
	nw, ok := find[*phpast.New](f)
	require.True(t, ok)
	clsName, isName := nw.Class.(*phpast.Name)
	require.True(t, isName)
	assert.Equal(t, `\Lib\Widget`, clsName.Resolved)

	mc, ok := find[*phpast.MethodCall](f)
	require.True(t, ok)
	assert.Equal(t, "run", mc.Name)
	recv, isVar := mc.Receiver.(*phpast.Variable)
	require.True(t, isVar)
	assert.Equal(t, "a", recv.Name)

	call, ok := find[*phpast.FunctionCall](f)
	require.True(t, ok)
	target, isName := call.Target.(*phpast.Name)
	require.True(t, isName)
	assert.Equal(t, "strlen", target.Value)
	assert.Equal(t, `\App\strlen`, target.Resolved)
}

func TestParse_VariableChainLinks(t *testing.T) {
	f := parse(t, `<?php
$a = 5;
$b = $a;
`)
	// The attach walk must have run: the second statement's previous
	// sibling is the first.
	var stmts []phpast.Node
	for _, s := range f.Stmts {
		if _, ok := s.(*phpast.ExprStmt); ok {
			stmts = append(stmts, s)
		}
	}
	require.Len(t, stmts, 2)
	assert.Same(t, stmts[0], stmts[1].PrevSibling())
	assert.Same(t, phpast.Node(f), stmts[0].Parent())
}

func TestParse_Literals(t *testing.T) {
	f := parse(t, `<?php
$i = 42;
$f = 1.5;
$s = "str";
$t = true;
$n = null;
`)
	i, ok := find[*phpast.IntLit](f)
	require.True(t, ok)
	assert.Equal(t, int64(42), i.Value)

	fl, ok := find[*phpast.FloatLit](f)
	require.True(t, ok)
	assert.Equal(t, 1.5, fl.Value)

	s, ok := find[*phpast.StringLit](f)
	require.True(t, ok)
	assert.Equal(t, "str", s.Value)

	_, ok = find[*phpast.BoolLit](f)
	assert.True(t, ok)

	_, ok = find[*phpast.NullLit](f)
	assert.True(t, ok)
}

func TestParse_TernaryAndCoalesce(t *testing.T) {
	f := parse(t, `<?php
$x = $c ? 1 : "a";
$y = $p ?? "q";
`)
	tern, ok := find[*phpast.Ternary](f)
	require.True(t, ok)
	assert.NotNil(t, tern.If)
	assert.NotNil(t, tern.Else)

	co, ok := find[*phpast.Coalesce](f)
	require.True(t, ok)
	assert.NotNil(t, co.Left)
	assert.NotNil(t, co.Right)
}

func TestParse_ArrayLiteral(t *testing.T) {
	f := parse(t, `<?php
$a = [1, "k" => "v"];
`)
	arr, ok := find[*phpast.ArrayLiteral](f)
	require.True(t, ok)
	require.Len(t, arr.Items, 2)
	assert.Nil(t, arr.Items[0].Key)
	assert.NotNil(t, arr.Items[1].Key)
}

func TestParse_SyntaxErrorProducesDiagnostics(t *testing.T) {
	_, diags, err := New().Parse(context.Background(),
		"file:///bad.php", "<?php function { ( \n")
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
}

func TestParse_UnknownConstructsPreserveChildren(t *testing.T) {
	// Constructs the converter does not model land in Unknown nodes
	// whose children still participate in walks.
	f := parse(t, `<?php
foreach ($items as $item) {
    strlen($item);
}
`)
	_, ok := find[*phpast.FunctionCall](f)
	assert.True(t, ok, "call inside unmodeled construct should survive conversion")
}
