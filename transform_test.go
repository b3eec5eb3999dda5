package svglower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTransform_Translate(t *testing.T) {
	tr, ok := parseTransform("translate(10 20)")
	assert.True(t, ok)
	x, y := tr.Apply(0, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)
}

func TestParseTransform_Matrix(t *testing.T) {
	tr, ok := parseTransform("matrix(1 0 0 1 5 5)")
	assert.True(t, ok)
	x, y := tr.Apply(1, 1)
	assert.InDelta(t, 6, x, 1e-9)
	assert.InDelta(t, 6, y, 1e-9)
}

func TestParseTransform_Scale(t *testing.T) {
	tr, ok := parseTransform("scale(2)")
	assert.True(t, ok)
	x, y := tr.Apply(3, 4)
	assert.InDelta(t, 6, x, 1e-9)
	assert.InDelta(t, 8, y, 1e-9)
}

func TestParseTransform_Rotate90(t *testing.T) {
	tr, ok := parseTransform("rotate(90)")
	assert.True(t, ok)
	x, y := tr.Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
}

func TestParseTransform_Compose(t *testing.T) {
	// SVG transform lists compose right to left: the rightmost function
	// applies to the point first.
	tr, ok := parseTransform("translate(10 0) scale(2)")
	assert.True(t, ok)
	x, y := tr.Apply(1, 1)
	assert.InDelta(t, 12, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)
}

func TestParseTransform_RotateAboutPoint(t *testing.T) {
	tr, ok := parseTransform("rotate(90 1 0)")
	assert.True(t, ok)
	x, y := tr.Apply(2, 0)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
}

func TestParseTransform_Invalid(t *testing.T) {
	_, ok := parseTransform("not-a-transform")
	assert.False(t, ok)

	_, ok = parseTransform("matrix(1 2 3)")
	assert.False(t, ok)
}

func TestIdentityTransform(t *testing.T) {
	x, y := Identity.Apply(7, 9)
	assert.Equal(t, 7.0, x)
	assert.Equal(t, 9.0, y)
}

func TestTransformMultiplyAssociativity(t *testing.T) {
	a, _ := parseTransform("translate(1 2)")
	b, _ := parseTransform("scale(3)")
	c, _ := parseTransform("rotate(15)")

	left := a.Multiply(b).Multiply(c)
	right := a.Multiply(b.Multiply(c))

	x1, y1 := left.Apply(5, 5)
	x2, y2 := right.Apply(5, 5)
	assert.True(t, math.Abs(x1-x2) < 1e-6)
	assert.True(t, math.Abs(y1-y2) < 1e-6)
}
