package svglower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chainNode(parent *Node, attrs map[AId]string) *Node {
	return &Node{kind: KindElement, parent: parent, attrs: attrs}
}

// syntheticDocRoot mimics the document's own unnamed arena root (see
// document.go's ParseDocument), which resolveFontWeight's ancestor walk
// always skips.
func syntheticDocRoot() *Node {
	return &Node{kind: KindElement, name: ""}
}

func TestResolveFontFamilies_SplitAndTrim(t *testing.T) {
	n := nodeWithAttr(AIdFontFamily, `"Times New Roman", Arial,, 'Courier'`)
	opt := &Options{}
	got := resolveFontFamilies(n, opt)
	assert.Equal(t, []string{"Times New Roman", "Arial", "Courier"}, got)
}

func TestResolveFontFamilies_FallsBackToDefault(t *testing.T) {
	n := &Node{kind: KindElement}
	opt := &Options{FontFamily: "monospace"}
	got := resolveFontFamilies(n, opt)
	assert.Equal(t, []string{"monospace"}, got)
}

func TestResolveFontFamilies_InheritsFromAncestor(t *testing.T) {
	root := nodeWithAttr(AIdFontFamily, "Verdana")
	child := chainNode(root, nil)
	opt := &Options{}
	assert.Equal(t, []string{"Verdana"}, resolveFontFamilies(child, opt))
}

func TestResolveFontStretch(t *testing.T) {
	cases := map[string]FontStretch{
		"condensed":       FontStretchCondensed,
		"narrower":        FontStretchCondensed,
		"ultra-condensed": FontStretchUltraCondensed,
		"semi-expanded":   FontStretchSemiExpanded,
		"wider":           FontStretchExpanded,
		"ultra-expanded":  FontStretchUltraExpanded,
		"garbage":         FontStretchNormal,
	}
	for raw, want := range cases {
		n := nodeWithAttr(AIdFontStretch, raw)
		assert.Equal(t, want, resolveFontStretch(n), raw)
	}
}

// TestResolveFontWeight_BolderLighterAsymmetry pins down the non-CSS2
// 300/200 bolder/lighter step size at weight 400.
func TestResolveFontWeight_BolderLighterAsymmetry(t *testing.T) {
	docRoot := syntheticDocRoot()
	root := chainNode(docRoot, map[AId]string{AIdFontWeight: "bolder"}) // 400 -> 700
	child := chainNode(root, map[AId]string{AIdFontWeight: "lighter"})

	assert.Equal(t, 600, resolveFontWeight(child))
}

func TestResolveFontWeight_NumericAndBolderFromNonDefault(t *testing.T) {
	docRoot := syntheticDocRoot()
	root := chainNode(docRoot, map[AId]string{AIdFontWeight: "500"})
	child := chainNode(root, map[AId]string{AIdFontWeight: "bolder"})
	assert.Equal(t, 600, resolveFontWeight(child)) // non-400 step is 100
}

func TestResolveFontWeight_ClampsAtBounds(t *testing.T) {
	docRoot := syntheticDocRoot()
	root := chainNode(docRoot, map[AId]string{AIdFontWeight: "900"})
	child := chainNode(root, map[AId]string{AIdFontWeight: "bolder"})
	assert.Equal(t, 900, resolveFontWeight(child))
}

func TestResolveFontWeight_Default(t *testing.T) {
	n := &Node{kind: KindElement}
	assert.Equal(t, 400, resolveFontWeight(n))
}
