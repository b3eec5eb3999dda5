package svglower

import (
	"unicode/utf8"
)

// TextAnchor is the resolved text-anchor value.
type TextAnchor int

const (
	TextAnchorStart TextAnchor = iota
	TextAnchorMiddle
	TextAnchorEnd
)

func parseTextAnchor(s string) (TextAnchor, bool) {
	switch s {
	case "start":
		return TextAnchorStart, true
	case "middle":
		return TextAnchorMiddle, true
	case "end":
		return TextAnchorEnd, true
	default:
		return 0, false
	}
}

// DominantBaseline is the resolved dominant-baseline value.
type DominantBaseline int

const (
	DominantBaselineAuto DominantBaseline = iota
	DominantBaselineUseScript
	DominantBaselineNoChange
	DominantBaselineResetSize
	DominantBaselineIdeographic
	DominantBaselineAlphabetic
	DominantBaselineHanging
	DominantBaselineMathematical
	DominantBaselineCentral
	DominantBaselineMiddle
	DominantBaselineTextAfterEdge
	DominantBaselineTextBeforeEdge
)

func parseDominantBaseline(s string) (DominantBaseline, bool) {
	switch s {
	case "auto":
		return DominantBaselineAuto, true
	case "use-script":
		return DominantBaselineUseScript, true
	case "no-change":
		return DominantBaselineNoChange, true
	case "reset-size":
		return DominantBaselineResetSize, true
	case "ideographic":
		return DominantBaselineIdeographic, true
	case "alphabetic":
		return DominantBaselineAlphabetic, true
	case "hanging":
		return DominantBaselineHanging, true
	case "mathematical":
		return DominantBaselineMathematical, true
	case "central":
		return DominantBaselineCentral, true
	case "middle":
		return DominantBaselineMiddle, true
	case "text-after-edge":
		return DominantBaselineTextAfterEdge, true
	case "text-before-edge":
		return DominantBaselineTextBeforeEdge, true
	default:
		return 0, false
	}
}

// AlignmentBaseline is the resolved alignment-baseline value.
type AlignmentBaseline int

const (
	AlignmentBaselineAuto AlignmentBaseline = iota
	AlignmentBaselineBaseline
	AlignmentBaselineBeforeEdge
	AlignmentBaselineTextBeforeEdge
	AlignmentBaselineMiddle
	AlignmentBaselineCentral
	AlignmentBaselineAfterEdge
	AlignmentBaselineTextAfterEdge
	AlignmentBaselineIdeographic
	AlignmentBaselineAlphabetic
	AlignmentBaselineHanging
	AlignmentBaselineMathematical
)

func parseAlignmentBaseline(s string) (AlignmentBaseline, bool) {
	switch s {
	case "auto":
		return AlignmentBaselineAuto, true
	case "baseline":
		return AlignmentBaselineBaseline, true
	case "before-edge":
		return AlignmentBaselineBeforeEdge, true
	case "text-before-edge":
		return AlignmentBaselineTextBeforeEdge, true
	case "middle":
		return AlignmentBaselineMiddle, true
	case "central":
		return AlignmentBaselineCentral, true
	case "after-edge":
		return AlignmentBaselineAfterEdge, true
	case "text-after-edge":
		return AlignmentBaselineTextAfterEdge, true
	case "ideographic":
		return AlignmentBaselineIdeographic, true
	case "alphabetic":
		return AlignmentBaselineAlphabetic, true
	case "hanging":
		return AlignmentBaselineHanging, true
	case "mathematical":
		return AlignmentBaselineMathematical, true
	default:
		return 0, false
	}
}

// LengthAdjust is the resolved lengthAdjust value.
type LengthAdjust int

const (
	LengthAdjustSpacing LengthAdjust = iota
	LengthAdjustSpacingAndGlyphs
)

func parseLengthAdjust(s string) (LengthAdjust, bool) {
	switch s {
	case "spacing":
		return LengthAdjustSpacing, true
	case "spacingAndGlyphs":
		return LengthAdjustSpacingAndGlyphs, true
	default:
		return 0, false
	}
}

// Visibility is the resolved visibility value.
type Visibility int

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
	VisibilityCollapse
)

func parseVisibility(s string) (Visibility, bool) {
	switch s {
	case "visible":
		return VisibilityVisible, true
	case "hidden":
		return VisibilityHidden, true
	case "collapse":
		return VisibilityCollapse, true
	default:
		return 0, false
	}
}

// WritingMode is the normalized writing-mode.
type WritingMode int

const (
	WritingModeLeftToRight WritingMode = iota
	WritingModeTopToBottom
)

// BaselineShiftKind tags a BaselineShift entry.
type BaselineShiftKind int

const (
	BaselineShiftBaseline BaselineShiftKind = iota
	BaselineShiftSub
	BaselineShiftSuper
	BaselineShiftNumber
)

// BaselineShift is one entry of a span's baseline-shift stack.
type BaselineShift struct {
	Kind   BaselineShiftKind
	Number float64 // only meaningful when Kind == BaselineShiftNumber
}

// PaintOrderKind is one of the three paintable passes.
type PaintOrderKind int

const (
	PaintOrderFill PaintOrderKind = iota
	PaintOrderStroke
	PaintOrderMarkers
)

// PaintOrder is the canonical fill/stroke/markers draw order.
type PaintOrder [3]PaintOrderKind

var defaultPaintOrder = PaintOrder{PaintOrderFill, PaintOrderStroke, PaintOrderMarkers}

// parsePaintOrder translates the SVG paint-order token permutation into the
// canonical triple, filling in any kinds the author omitted in their
// default relative order.
func parsePaintOrder(raw string) PaintOrder {
	fields := splitListFields(raw)

	var order PaintOrder
	seen := map[PaintOrderKind]bool{}
	n := 0
	for _, f := range fields {
		var k PaintOrderKind
		switch f {
		case "fill":
			k = PaintOrderFill
		case "stroke":
			k = PaintOrderStroke
		case "markers":
			k = PaintOrderMarkers
		default:
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		order[n] = k
		n++
		if n == 3 {
			break
		}
	}
	for _, k := range defaultPaintOrder {
		if n == 3 {
			break
		}
		if seen[k] {
			continue
		}
		order[n] = k
		n++
	}
	return order
}

// TextDecorationStyle is the fill+stroke applied to one decoration line.
type TextDecorationStyle struct {
	Fill   *Fill
	Stroke *Stroke
}

// TextDecoration holds the three independent decoration lines.
type TextDecoration struct {
	Underline   *TextDecorationStyle
	Overline    *TextDecorationStyle
	LineThrough *TextDecorationStyle
}

// TextFlowKind tags a TextFlow.
type TextFlowKind int

const (
	TextFlowLinear TextFlowKind = iota
	TextFlowPath
)

// TextPath is a chunk's path-following layout.
type TextPath struct {
	StartOffset float64
	Path        *Path // shared, immutable after construction
}

// TextFlow is either linear layout or layout along a TextPath.
type TextFlow struct {
	Kind TextFlowKind
	Path *TextPath // only meaningful when Kind == TextFlowPath
}

// TextSpan is a maximal contiguous byte range within a TextChunk sharing
// identical resolved style.
type TextSpan struct {
	Start, End int // byte offsets into the owning chunk's text buffer

	Fill   *Fill
	Stroke *Stroke

	PaintOrder PaintOrder

	Font     Font
	FontSize float64

	SmallCaps    bool
	ApplyKerning bool

	Decoration TextDecoration

	Visibility        Visibility
	DominantBaseline  DominantBaseline
	AlignmentBaseline AlignmentBaseline
	BaselineShift     []BaselineShift

	LetterSpacing float64
	WordSpacing   float64

	TextLength   *float64
	LengthAdjust LengthAdjust

	Title string
}

// TextChunk is a maximal contiguous run of characters sharing a single
// positioned origin and TextFlow.
type TextChunk struct {
	X, Y     *float64
	Anchor   TextAnchor
	Spans    []TextSpan
	TextFlow TextFlow
	Text     string // UTF-8, byte-indexed by the spans above
}

// CharacterPosition holds the optional absolute/relative position resolved
// for one character.
type CharacterPosition struct {
	X, Y, Dx, Dy *float64
}

// Text is the lowered output of a single <text> element.
type Text struct {
	ID            string
	Transform     Transform
	RenderingMode TextRendering
	Positions     []CharacterPosition
	Rotate        []float64
	WritingMode   WritingMode
	Chunks        []TextChunk
	Title         string
}

// textFlowWalk visits n itself and then its descendants in document order
// like Node.Descendants, except it never descends into a <title> child: a
// title is metadata surfaced through Node.Title, not part of the rendered
// character stream, and must not perturb total_chars/position/rotate
// alignment or chunk collection. Visiting n itself matters for the
// position/rotation passes, where x/y/dx/dy/rotate declared directly on
// the <text> element apply from character index zero.
func textFlowWalk(n *Node, visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	var walk func(*Node) bool
	walk = func(cur *Node) bool {
		for _, c := range cur.Children() {
			if c.IsElement() && c.Tag() == EIdTitle {
				continue
			}
			if !visit(c) {
				return false
			}
			if c.IsElement() {
				if !walk(c) {
					return false
				}
			}
		}
		return true
	}
	walk(n)
}

// countChars counts the Unicode code points across all text-node
// descendants of n, excluding any nested <title> text.
func countChars(n *Node) int {
	count := 0
	textFlowWalk(n, func(d *Node) bool {
		if d.IsText() {
			count += utf8.RuneCountInString(d.Text())
		}
		return true
	})
	return count
}

// LowerText lowers a single <text> element into a Text record. It returns
// the Text directly rather than appending it to an out-parameter; the
// driver (converter.go) is responsible for attaching the result to its
// output tree.
func LowerText(textNode *Node, state *ConverterState, cache *Cache) *Text {
	positions := resolvePositions(textNode)
	rotate := resolveRotations(textNode)
	writingMode := convertWritingMode(textNode)
	chunks := collectTextChunks(textNode, positions, state, cache)

	renderingMode, ok := FindAttributeAs(textNode, AIdTextRendering, parseTextRendering)
	if !ok {
		renderingMode = state.Options.TextRendering
	}

	title, _ := textNode.Title()

	id, _ := textNode.Attribute(AIdId)

	transform := Identity
	if raw, ok := textNode.Attribute(AIdTransform); ok {
		if t, ok := parseTransform(raw); ok {
			transform = t
		}
	}

	return &Text{
		ID:            id,
		Transform:     transform,
		RenderingMode: renderingMode,
		Positions:     positions,
		Rotate:        rotate,
		WritingMode:   writingMode,
		Chunks:        chunks,
		Title:         title,
	}
}

func parseTextRendering(s string) (TextRendering, bool) {
	switch s {
	case "auto":
		return TextRenderingAuto, true
	case "optimizeSpeed":
		return TextRenderingOptimizeSpeed, true
	case "optimizeLegibility":
		return TextRenderingOptimizeLegibility, true
	case "geometricPrecision":
		return TextRenderingGeometricPrecision, true
	default:
		return 0, false
	}
}

// resolvePositions builds a position list of length total_chars, written
// to by x/y/dx/dy on <text>/<tspan> descendants (critically, not
// <textPath>), later (nested) writes overwriting earlier ones within
// their own range.
func resolvePositions(textNode *Node) []CharacterPosition {
	list := make([]CharacterPosition, countChars(textNode))

	offset := 0
	textFlowWalk(textNode, func(child *Node) bool {
		if child.IsElement() {
			if child.Tag() != EIdText && child.Tag() != EIdTspan {
				return true
			}

			childChars := countChars(child)
			assignPositionList(list, offset, childChars, child, AIdX, func(cp *CharacterPosition, v float64) { cp.X = &v })
			assignPositionList(list, offset, childChars, child, AIdY, func(cp *CharacterPosition, v float64) { cp.Y = &v })
			assignPositionList(list, offset, childChars, child, AIdDx, func(cp *CharacterPosition, v float64) { cp.Dx = &v })
			assignPositionList(list, offset, childChars, child, AIdDy, func(cp *CharacterPosition, v float64) { cp.Dy = &v })
		} else if child.IsText() {
			offset += utf8.RuneCountInString(child.Text())
		}
		return true
	})

	return list
}

func assignPositionList(list []CharacterPosition, offset, childChars int, child *Node, aid AId, set func(*CharacterPosition, float64)) {
	raw, ok := child.Attribute(aid)
	if !ok {
		return
	}
	lengths, ok := parseLengthList(raw)
	if !ok {
		return
	}

	fontSize := resolveFontSize(child)
	n := len(lengths)
	if childChars < n {
		n = childChars
	}
	for i := 0; i < n; i++ {
		idx := offset + i
		if idx >= len(list) {
			break
		}
		v := resolveUserSpace(lengths[i], fontSize, fontSize)
		set(&list[idx], v)
	}
}

// resolveRotations builds a rotate list of length total_chars, all zero by
// default; once a rotate attribute's list is exhausted, its
// last value repeats across the remaining characters of that element, and
// the "last seen" value is carried across sibling/descendant elements too.
func resolveRotations(textNode *Node) []float64 {
	list := make([]float64, countChars(textNode))

	last := 0.0
	offset := 0
	textFlowWalk(textNode, func(child *Node) bool {
		if child.IsElement() {
			raw, ok := child.Attribute(AIdRotate)
			if !ok {
				return true
			}
			values, ok := parseFloatList(raw)
			if !ok {
				return true
			}

			n := countChars(child)
			for i := 0; i < n; i++ {
				idx := offset + i
				if idx >= len(list) {
					break
				}
				if i < len(values) {
					last = values[i]
				}
				list[idx] = last
			}
		} else if child.IsText() {
			offset += utf8.RuneCountInString(child.Text())
		}
		return true
	})

	return list
}

// convertWritingMode resolves the nearest writing-mode value, normalized to
// one of two flow directions.
func convertWritingMode(textNode *Node) WritingMode {
	for cur := textNode; cur != nil; cur = cur.Parent() {
		raw, ok := cur.Attribute(AIdWritingMode)
		if !ok {
			continue
		}
		switch raw {
		case "tb", "tb-rl", "vertical-rl", "vertical-lr":
			return WritingModeTopToBottom
		default:
			return WritingModeLeftToRight
		}
	}
	return WritingModeLeftToRight
}

// textIterState is the recursion state threaded through collectTextChunks.
type textIterState struct {
	charsCount      int
	chunkBytesCount int
	splitChunk      bool
	textFlow        TextFlow
	chunks          []TextChunk
}

// collectTextChunks runs the chunk/span collection pass.
func collectTextChunks(textNode *Node, positions []CharacterPosition, state *ConverterState, cache *Cache) []TextChunk {
	st := &textIterState{textFlow: TextFlow{Kind: TextFlowLinear}}
	collectTextChunksImpl(textNode, textNode, positions, state, cache, st)
	return st.chunks
}

func collectTextChunksImpl(textNode, parent *Node, positions []CharacterPosition, state *ConverterState, cache *Cache, st *textIterState) {
	log := state.Options.logger()

	for _, child := range parent.Children() {
		if child.IsElement() {
			if child.Tag() == EIdTitle {
				// A title is metadata surfaced through Node.Title, never part
				// of the rendered character stream, so it contributes nothing
				// to charsCount and is never descended into.
				continue
			}

			if child.Tag() == EIdTextPath {
				if parent.Tag() != EIdText {
					// textPath can only be a direct child of <text>.
					st.charsCount += countChars(child)
					continue
				}

				flow, ok := resolveTextFlow(child, state, cache)
				if !ok {
					log.Debugf("skipping invalid textPath element")
					st.charsCount += countChars(child)
					continue
				}

				st.textFlow = flow
				st.splitChunk = true
			}

			collectTextChunksImpl(textNode, child, positions, state, cache, st)
			st.textFlow = TextFlow{Kind: TextFlowLinear}

			if child.Tag() == EIdTextPath {
				st.splitChunk = true
			}
			continue
		}

		if !child.IsText() {
			continue
		}

		if !parent.IsVisibleElement() {
			st.charsCount += utf8.RuneCountInString(child.Text())
			continue
		}

		anchor, ok := FindAttributeAs(parent, AIdTextAnchor, parseTextAnchor)
		if !ok {
			anchor = TextAnchorStart
		}

		fontSize := resolveFontSize(parent)
		if fontSize <= 0 {
			log.Debugf("dropping span with non-positive font-size")
			st.charsCount += utf8.RuneCountInString(child.Text())
			continue
		}

		span := buildSpanTemplate(textNode, parent, child, anchor, fontSize, state, cache)

		isNewSpan := true
		for _, c := range child.Text() {
			charLen := utf8.RuneLen(c)

			pos := positions[st.charsCount]
			isNewChunk := pos.X != nil || pos.Y != nil || st.splitChunk || len(st.chunks) == 0
			st.splitChunk = false

			switch {
			case isNewChunk:
				st.chunkBytesCount = 0
				span2 := span
				span2.Start = 0
				span2.End = charLen
				st.chunks = append(st.chunks, TextChunk{
					X:        pos.X,
					Y:        pos.Y,
					Anchor:   anchor,
					Spans:    []TextSpan{span2},
					TextFlow: st.textFlow,
					Text:     string(c),
				})
			case isNewSpan:
				span2 := span
				span2.Start = st.chunkBytesCount
				span2.End = st.chunkBytesCount + charLen
				last := &st.chunks[len(st.chunks)-1]
				last.Text += string(c)
				last.Spans = append(last.Spans, span2)
			default:
				last := &st.chunks[len(st.chunks)-1]
				last.Text += string(c)
				last.Spans[len(last.Spans)-1].End += charLen
			}

			isNewSpan = false
			st.charsCount++
			st.chunkBytesCount += charLen
		}
	}
}

// buildSpanTemplate resolves every style field of a span except Start/End,
// which collectTextChunksImpl fills in per character.
func buildSpanTemplate(textNode, parent, child *Node, anchor TextAnchor, fontSize float64, state *ConverterState, cache *Cache) TextSpan {
	_ = cache // reserved for paint-server interning by a real FillResolver/StrokeResolver

	dominantBaseline, ok := FindAttributeAs(parent, AIdDominantBaseline, parseDominantBaseline)
	if !ok {
		dominantBaseline = DominantBaselineAuto
	}
	if dominantBaseline == DominantBaselineNoChange {
		if pe := parent.ParentElement(); pe != nil {
			if v, ok := FindAttributeAs(pe, AIdDominantBaseline, parseDominantBaseline); ok {
				dominantBaseline = v
			} else {
				dominantBaseline = DominantBaselineAuto
			}
		}
	}

	applyKerning := true
	if raw, ok := parent.FindAttribute(AIdKerning); ok {
		if l, ok := parseLength(raw); ok && resolveUserSpace(l, fontSize, fontSize) == 0 {
			applyKerning = false
		}
	}
	if raw, ok := parent.FindAttribute(AIdFontKerning); ok && raw == "none" {
		applyKerning = false
	}

	var textLength *float64
	if raw, ok := parent.Attribute(AIdTextLength); ok {
		if l, ok := parseLength(raw); ok {
			v := resolveUserSpace(l, fontSize, fontSize)
			if v >= 0 {
				textLength = &v
			}
		}
	}

	lengthAdjust, ok := FindAttributeAs(parent, AIdLengthAdjust, parseLengthAdjust)
	if !ok {
		lengthAdjust = LengthAdjustSpacing
	}

	visibility, ok := FindAttributeAs(parent, AIdVisibility, parseVisibility)
	if !ok {
		visibility = VisibilityVisible
	}

	alignmentBaseline, ok := FindAttributeAs(parent, AIdAlignmentBaseline, parseAlignmentBaseline)
	if !ok {
		alignmentBaseline = AlignmentBaselineAuto
	}

	paintOrderRaw, _ := parent.FindAttribute(AIdPaintOrder)
	paintOrder := parsePaintOrder(paintOrderRaw)

	smallCaps := false
	if v, ok := parent.FindAttribute(AIdFontVariant); ok && v == "small-caps" {
		smallCaps = true
	}

	letterSpacing := resolveInheritedLength(parent, AIdLetterSpacing, fontSize, 0)
	wordSpacing := resolveInheritedLength(parent, AIdWordSpacing, fontSize, 0)

	title, ok := child.Title()
	if !ok {
		title, _ = parent.Title()
	}

	fill, _ := state.Options.fillResolver()(parent, true)
	stroke, _ := state.Options.strokeResolver()(parent, true)

	return TextSpan{
		Fill:              fill,
		Stroke:            stroke,
		PaintOrder:        paintOrder,
		Font:              convertFont(parent, &state.Options),
		FontSize:          fontSize,
		SmallCaps:         smallCaps,
		ApplyKerning:      applyKerning,
		Decoration:        resolveDecoration(textNode, parent, state),
		Visibility:        visibility,
		DominantBaseline:  dominantBaseline,
		AlignmentBaseline: alignmentBaseline,
		BaselineShift:     convertBaselineShift(parent, fontSize),
		LetterSpacing:     letterSpacing,
		WordSpacing:       wordSpacing,
		TextLength:        textLength,
		LengthAdjust:      lengthAdjust,
		Title:             title,
	}
}

func resolveInheritedLength(n *Node, aid AId, fontSize, def float64) float64 {
	raw, ok := n.FindAttribute(aid)
	if !ok {
		return def
	}
	l, ok := parseLength(raw)
	if !ok {
		return def
	}
	return resolveUserSpace(l, fontSize, fontSize)
}

// resolveDecoration decoration resolution: a line is
// present if the tspan itself declares exactly that token, or the <text>
// element or any of its own ancestors has it in its text-decoration token
// list; elements between the tspan and <text> are not consulted. Its style
// comes from whichever of the two nodes (tspan first, else <text>)
// asserted it.
func resolveDecoration(textNode, tspan *Node, state *ConverterState) TextDecoration {
	textHas := findDecorationOnAncestors(textNode)
	tspanHas := declaresDecorationExactly(tspan)

	gen := func(onTspan, onText bool) *TextDecorationStyle {
		var n *Node
		switch {
		case onTspan:
			n = tspan
		case onText:
			n = textNode
		default:
			return nil
		}
		fill, _ := state.Options.fillResolver()(n, true)
		stroke, _ := state.Options.strokeResolver()(n, true)
		return &TextDecorationStyle{Fill: fill, Stroke: stroke}
	}

	return TextDecoration{
		Underline:   gen(tspanHas.underline, textHas.underline),
		Overline:    gen(tspanHas.overline, textHas.overline),
		LineThrough: gen(tspanHas.lineThrough, textHas.lineThrough),
	}
}

type decorationFlags struct {
	underline, overline, lineThrough bool
}

func findDecorationOnAncestors(n *Node) decorationFlags {
	has := func(token string) bool {
		for cur := n; cur != nil; cur = cur.Parent() {
			raw, ok := cur.Attribute(AIdTextDecoration)
			if !ok {
				continue
			}
			for _, v := range splitListFields(raw) {
				if v == token {
					return true
				}
			}
		}
		return false
	}
	return decorationFlags{
		underline:   has("underline"),
		overline:    has("overline"),
		lineThrough: has("line-through"),
	}
}

func declaresDecorationExactly(n *Node) decorationFlags {
	raw, ok := n.Attribute(AIdTextDecoration)
	if !ok {
		return decorationFlags{}
	}
	return decorationFlags{
		underline:   raw == "underline",
		overline:    raw == "overline",
		lineThrough: raw == "line-through",
	}
}

// convertBaselineShift builds a baseline-shift stack accumulated from node up
// to (not including) the enclosing <text>, cleared entirely if every entry
// resolves to plain Baseline.
func convertBaselineShift(n *Node, fontSize float64) []BaselineShift {
	var chain []*Node
	for cur := n; cur != nil && cur.Tag() != EIdText; cur = cur.Parent() {
		chain = append(chain, cur)
	}

	var shift []BaselineShift
	for _, cur := range chain {
		raw, ok := cur.Attribute(AIdBaselineShift)
		if !ok {
			continue
		}
		if l, ok := parseLength(raw); ok {
			var v float64
			if l.Unit == LengthUnitPercent {
				v = fontSize * (l.Number / 100.0)
			} else {
				v = resolveUserSpace(l, fontSize, fontSize)
			}
			shift = append(shift, BaselineShift{Kind: BaselineShiftNumber, Number: v})
			continue
		}
		switch raw {
		case "sub":
			shift = append(shift, BaselineShift{Kind: BaselineShiftSub})
		case "super":
			shift = append(shift, BaselineShift{Kind: BaselineShiftSuper})
		default:
			shift = append(shift, BaselineShift{Kind: BaselineShiftBaseline})
		}
	}

	allBaseline := true
	for _, s := range shift {
		if s.Kind != BaselineShiftBaseline {
			allBaseline = false
			break
		}
	}
	if allBaseline {
		return nil
	}
	return shift
}

// resolveTextFlow resolves the flow a <textPath> child imposes on a chunk:
// follows its href to the referenced shape, converts that shape to a path,
// and applies any startOffset.
func resolveTextFlow(node *Node, state *ConverterState, cache *Cache) (TextFlow, bool) {
	hrefRaw, ok := node.Attribute(AIdHref)
	if !ok {
		return TextFlow{}, false
	}
	target, ok := cache.resolveRef(hrefRaw)
	if !ok {
		return TextFlow{}, false
	}
	if id, ok := target.Attribute(AIdId); ok && state.ParentMarkers.Contains(id) {
		state.Options.logger().Debugf("textPath href %q would recurse through an ancestor, skipping", hrefRaw)
		return TextFlow{}, false
	}

	path, ok := state.Options.shapeConverter()(target)
	if !ok {
		return TextFlow{}, false
	}

	if raw, ok := target.Attribute(AIdTransform); ok {
		if t, ok := parseTransform(raw); ok {
			path = path.Transform(t)
		}
	}

	var startOffset float64
	if raw, ok := node.Attribute(AIdStartOffset); ok {
		if l, ok := parseLength(raw); ok {
			if l.Unit == LengthUnitPercent {
				startOffset = pathLength(path) * (l.Number / 100.0)
			} else {
				startOffset = resolveUserSpace(l, resolveFontSize(node), 0)
			}
		}
	}

	return TextFlow{
		Kind: TextFlowPath,
		Path: &TextPath{StartOffset: startOffset, Path: path},
	}, true
}
