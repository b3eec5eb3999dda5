package svglower_test

import (
	"testing"
	"unicode/utf8"

	"github.com/corvidlabs/svglower"
	"github.com/stretchr/testify/assert"
)

func lowerFirstText(t *testing.T, body string) *svglower.Text {
	t.Helper()
	src := `<svg width="100" height="100">` + body + `</svg>`
	tree, err := svglower.FromText(src, svglower.Options{})
	assert.NoError(t, err)
	text := findFirstText(tree.Root)
	if text == nil {
		t.Fatalf("no <text> found in lowered tree for: %s", body)
	}
	return text
}

func findFirstText(g *svglower.Group) *svglower.Text {
	for _, c := range g.Children {
		switch v := c.(type) {
		case *svglower.TextNode:
			return v.Text
		case *svglower.Group:
			if found := findFirstText(v); found != nil {
				return found
			}
		}
	}
	return nil
}

func floatPtrEq(t *testing.T, want *float64, got *float64, msg string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, msg)
		return
	}
	if assert.NotNil(t, got, msg) {
		assert.InDelta(t, *want, *got, 1e-9, msg)
	}
}

func f(v float64) *float64 { return &v }

// TestS1_NestedTspanPositions covers a nested tspan overriding the outer x list mid-run.
func TestS1_NestedTspanPositions(t *testing.T) {
	text := lowerFirstText(t, `<text><tspan x="100 110 120 130">a<tspan x="50">bc</tspan></tspan>d</text>`)

	assert.Len(t, text.Positions, 4)
	want := []*float64{f(100), f(50), f(120), nil}
	for i, w := range want {
		floatPtrEq(t, w, text.Positions[i].X, "index %d")
	}
}

// TestS2_InterveningText covers a positioned tspan sandwiched between plain text runs.
func TestS2_InterveningText(t *testing.T) {
	text := lowerFirstText(t, `<text>a<tspan x="10 20 30">bc</tspan>d</text>`)

	assert.Len(t, text.Positions, 4)
	want := []*float64{nil, f(10), f(20), nil}
	for i, w := range want {
		floatPtrEq(t, w, text.Positions[i].X, "index %d")
	}
}

// TestS3_TextPathChunkSplitting covers a textPath section splitting chunks around it.
func TestS3_TextPathChunkSplitting(t *testing.T) {
	text := lowerFirstText(t, `<path id="p" d="M0 0 L100 0"/><text>A<textPath href="#p">B</textPath>C</text>`)

	assert.Len(t, text.Chunks, 3)
	assert.Equal(t, "A", text.Chunks[0].Text)
	assert.Equal(t, "B", text.Chunks[1].Text)
	assert.Equal(t, "C", text.Chunks[2].Text)

	assert.Equal(t, svglower.TextFlowLinear, text.Chunks[0].TextFlow.Kind)
	assert.Equal(t, svglower.TextFlowPath, text.Chunks[1].TextFlow.Kind)
	assert.Equal(t, svglower.TextFlowLinear, text.Chunks[2].TextFlow.Kind)
	assert.NotNil(t, text.Chunks[1].TextFlow.Path)
}

// TestS4_FontWeightCascade covers bold inherited into a lighter child tspan.
func TestS4_FontWeightCascade(t *testing.T) {
	text := lowerFirstText(t, `<text font-weight="bold"><tspan font-weight="lighter">X</tspan></text>`)

	assert.Len(t, text.Chunks, 1)
	assert.Len(t, text.Chunks[0].Spans, 1)
	assert.Equal(t, 600, text.Chunks[0].Spans[0].Font.Weight)
}

// TestProperty_TotalCharsAndListLengths checks that dropped and emitted
// characters together account for every code point in the source text.
func TestProperty_TotalCharsAndListLengths(t *testing.T) {
	text := lowerFirstText(t, `<text>he<tspan>llo</tspan> world</text>`)

	total := utf8.RuneCountInString("hello world")
	assert.Equal(t, total, len(text.Positions))
	assert.Equal(t, total, len(text.Rotate))

	sum := 0
	for _, c := range text.Chunks {
		sum += utf8.RuneCountInString(c.Text)
	}
	assert.Equal(t, total, sum)
}

// TestProperty_SpansTileChunkBytes checks that a chunk's spans tile its
// text buffer without gaps or overlap.
func TestProperty_SpansTileChunkBytes(t *testing.T) {
	text := lowerFirstText(t, `<text>ab<tspan fill="red">cd</tspan>ef</text>`)

	for _, c := range text.Chunks {
		total := 0
		for i, s := range c.Spans {
			assert.LessOrEqual(t, s.Start, s.End)
			if i > 0 {
				assert.Equal(t, c.Spans[i-1].End, s.Start, "spans must tile without gaps")
			} else {
				assert.Equal(t, 0, s.Start)
			}
			total = s.End
		}
		assert.Equal(t, len(c.Text), total)
	}
}

// TestProperty_RotatePropagation checks that a rotate list shorter than
// the element's character count repeats its last value.
func TestProperty_RotatePropagation(t *testing.T) {
	text := lowerFirstText(t, `<text rotate="10 20">abcd</text>`)

	assert.Equal(t, []float64{10, 20, 20, 20}, text.Rotate)
}

func TestDroppedSpan_NonPositiveFontSize(t *testing.T) {
	text := lowerFirstText(t, `<text><tspan font-size="0">hidden</tspan>visible</text>`)

	// "hidden"'s characters are consumed (position-list alignment preserved)
	// but contribute no span; only "visible" should appear across chunks.
	var gotText string
	for _, c := range text.Chunks {
		gotText += c.Text
	}
	assert.Equal(t, "visible", gotText)
	assert.Equal(t, utf8.RuneCountInString("hiddenvisible"), len(text.Positions))
}

func TestInvalidTextPath_NotDirectChildOfText(t *testing.T) {
	text := lowerFirstText(t, `<path id="p" d="M0 0 L10 0"/><text><tspan>A<textPath href="#p">B</textPath></tspan>C</text>`)

	total := utf8.RuneCountInString("ABC")
	assert.Equal(t, total, len(text.Positions))

	var gotText string
	for _, c := range text.Chunks {
		gotText += c.Text
		assert.Equal(t, svglower.TextFlowLinear, c.TextFlow.Kind)
	}
	assert.Equal(t, "AC", gotText)
}

func TestWritingMode(t *testing.T) {
	text := lowerFirstText(t, `<text writing-mode="tb">a</text>`)
	assert.Equal(t, svglower.WritingModeTopToBottom, text.WritingMode)

	text = lowerFirstText(t, `<text>a</text>`)
	assert.Equal(t, svglower.WritingModeLeftToRight, text.WritingMode)
}

func TestDecoration_InheritedFromAncestor(t *testing.T) {
	text := lowerFirstText(t, `<text text-decoration="underline"><tspan>x</tspan></text>`)
	span := text.Chunks[0].Spans[0]
	assert.NotNil(t, span.Decoration.Underline)
	assert.Nil(t, span.Decoration.Overline)
}

func TestTitle_OnTextElement(t *testing.T) {
	text := lowerFirstText(t, `<text><title>Caption</title><tspan>x</tspan></text>`)
	assert.Equal(t, "Caption", text.Title)
	// The title belongs to <text>, not the inner <tspan>, so it never
	// surfaces as a per-span title.
	assert.Equal(t, "", text.Chunks[0].Spans[0].Title)
}

func TestTitle_SpanOwnTitle(t *testing.T) {
	text := lowerFirstText(t, `<text><tspan><title>Label</title>x</tspan></text>`)
	assert.Equal(t, "Label", text.Chunks[0].Spans[0].Title)
}
