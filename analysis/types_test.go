// Copyright © 2025 The phpls authors

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCompound_SingleUnwraps(t *testing.T) {
	assert.Equal(t, Integer, NewCompound(Integer))
	assert.Equal(t, String, NewCompound(String, String))
}

func TestNewCompound_DuplicatesCollapse(t *testing.T) {
	got := NewCompound(Integer, String, Integer, String)
	c, ok := got.(CompoundType)
	if assert.True(t, ok) {
		assert.Len(t, c.Alts, 2)
	}
}

func TestNewCompound_MixedAbsorbs(t *testing.T) {
	assert.Equal(t, Mixed, NewCompound(Integer, Mixed, String))
	assert.Equal(t, Mixed, NewCompound(Mixed))
}

func TestNewCompound_Empty(t *testing.T) {
	assert.Equal(t, Mixed, NewCompound())
}

func TestNewCompound_NestedFlatten(t *testing.T) {
	inner := NewCompound(Integer, String)
	got := NewCompound(inner, Boolean)
	c, ok := got.(CompoundType)
	if assert.True(t, ok) {
		assert.Len(t, c.Alts, 3)
	}
	// Flattening plus dedup: the same alternative arriving nested and
	// flat still collapses.
	assert.True(t, TypeEqual(NewCompound(inner, Integer), inner))
}

func TestNewCompound_CanonicalOrder(t *testing.T) {
	a := NewCompound(Integer, String)
	b := NewCompound(String, Integer)
	assert.True(t, TypeEqual(a, b))
	assert.Equal(t, a.String(), b.String())
}

func TestNewCompound_NilIsMixed(t *testing.T) {
	assert.Equal(t, Mixed, NewCompound(nil, Integer))
}

func TestObjectType_String(t *testing.T) {
	assert.Equal(t, `\App\Foo`, NewObject(`\App\Foo`).String())
	assert.Equal(t, "object", NewObject("").String())
}

func TestArrayType_String(t *testing.T) {
	arr := NewArray(String, Integer)
	assert.Equal(t, "array<int,string>", arr.String())

	// Nil components default to mixed values and int keys.
	assert.Equal(t, "array<int,mixed>", NewArray(nil, nil).String())
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, TypeEqual(Integer, Integer))
	assert.False(t, TypeEqual(Integer, String))
	assert.True(t, TypeEqual(nil, nil))
	assert.False(t, TypeEqual(nil, Mixed))
	assert.True(t, TypeEqual(NewObject(`\A`), NewObject(`\A`)))
}
