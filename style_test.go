package svglower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nodeWithAttr(aid AId, val string) *Node {
	return &Node{kind: KindElement, attrs: map[AId]string{aid: val}}
}

func TestParseHexColor(t *testing.T) {
	c, ok := parseHexColor("#ff0000")
	assert.True(t, ok)
	assert.Equal(t, Color{255, 0, 0}, c)

	c, ok = parseHexColor("#f00")
	assert.True(t, ok)
	assert.Equal(t, Color{255, 0, 0}, c)

	_, ok = parseHexColor("ff0000")
	assert.False(t, ok)

	_, ok = parseHexColor("#ff00")
	assert.False(t, ok)
}

func TestDefaultFillResolver_None(t *testing.T) {
	n := nodeWithAttr(AIdFill, "none")
	fill, ok := DefaultFillResolver(n, true)
	assert.True(t, ok)
	assert.True(t, fill.IsNone)
}

func TestDefaultFillResolver_Default(t *testing.T) {
	n := &Node{kind: KindElement}
	fill, ok := DefaultFillResolver(n, true)
	assert.True(t, ok)
	assert.False(t, fill.IsNone)
	assert.Equal(t, Color{0, 0, 0}, fill.Paint.Color)
}

func TestDefaultStrokeResolver_DefaultsToNone(t *testing.T) {
	n := &Node{kind: KindElement}
	stroke, ok := DefaultStrokeResolver(n, true)
	assert.True(t, ok)
	assert.True(t, stroke.IsNone)
}

func TestDefaultStrokeResolver_Color(t *testing.T) {
	n := nodeWithAttr(AIdStroke, "#00ff00")
	stroke, ok := DefaultStrokeResolver(n, true)
	assert.True(t, ok)
	assert.False(t, stroke.IsNone)
	assert.Equal(t, Color{0, 255, 0}, stroke.Paint.Color)
}
