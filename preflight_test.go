package svglower_test

import (
	"testing"

	"github.com/corvidlabs/svglower"
	"github.com/stretchr/testify/assert"
)

func TestPreflight_ExplicitWidthHeight(t *testing.T) {
	tree, err := svglower.FromText(`<svg width="200" height="100"></svg>`, svglower.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 200.0, tree.Width)
	assert.Equal(t, 100.0, tree.Height)
}

func TestPreflight_FallsBackToViewBox(t *testing.T) {
	tree, err := svglower.FromText(`<svg viewBox="0 0 50 25"></svg>`, svglower.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 50.0, tree.Width)
	assert.Equal(t, 25.0, tree.Height)
	assert.NotNil(t, tree.ViewBox)
}

func TestPreflight_WidthFromAttrHeightFromViewBox(t *testing.T) {
	tree, err := svglower.FromText(`<svg width="300" viewBox="0 0 10 40"></svg>`, svglower.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 300.0, tree.Width)
	assert.Equal(t, 40.0, tree.Height)
}

func TestPreflight_MissingEverything(t *testing.T) {
	_, err := svglower.FromText(`<svg></svg>`, svglower.Options{})
	assert.Error(t, err)
	svgErr, ok := err.(*svglower.Error)
	assert.True(t, ok)
	assert.Equal(t, svglower.ErrInvalidSize, svgErr.Kind)
}

func TestPreflight_ZeroHeightRejected(t *testing.T) {
	_, err := svglower.FromText(`<svg width="10" height="0"></svg>`, svglower.Options{})
	assert.Error(t, err)
	svgErr, ok := err.(*svglower.Error)
	assert.True(t, ok)
	assert.Equal(t, svglower.ErrInvalidSize, svgErr.Kind)
}

func TestPreflight_PercentHeightTreatedAsAbsent(t *testing.T) {
	_, err := svglower.FromText(`<svg width="10" height="50%"></svg>`, svglower.Options{})
	assert.Error(t, err)
	svgErr, ok := err.(*svglower.Error)
	assert.True(t, ok)
	assert.Equal(t, svglower.ErrInvalidSize, svgErr.Kind)
}
