package svglower

import (
	"encoding/xml"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html/charset"
)

// maxElements is the preflight element budget: documents beyond
// this are rejected before any lowering is attempted.
const maxElements = 1_000_000

// EId identifies a recognized SVG element name. Unrecognized element names
// parse to EIdUnknown and are otherwise ignored by the lowering engine.
type EId int

const (
	EIdUnknown EId = iota
	EIdSvg
	EIdG
	EIdText
	EIdTspan
	EIdTextPath
	EIdTitle
	EIdPath
	EIdRect
	EIdCircle
	EIdEllipse
	EIdLine
	EIdPolyline
	EIdPolygon
)

var elementNames = map[string]EId{
	"svg":      EIdSvg,
	"g":        EIdG,
	"text":     EIdText,
	"tspan":    EIdTspan,
	"textPath": EIdTextPath,
	"title":    EIdTitle,
	"path":     EIdPath,
	"rect":     EIdRect,
	"circle":   EIdCircle,
	"ellipse":  EIdEllipse,
	"line":     EIdLine,
	"polyline": EIdPolyline,
	"polygon":  EIdPolygon,
}

// AId identifies a recognized SVG/XML attribute name. Unrecognized
// attribute names are dropped during parsing.
type AId int

const (
	AIdUnknown AId = iota
	AIdId
	AIdX
	AIdY
	AIdDx
	AIdDy
	AIdRotate
	AIdTextAnchor
	AIdFontFamily
	AIdFontStyle
	AIdFontStretch
	AIdFontWeight
	AIdFontSize
	AIdFontVariant
	AIdFontKerning
	AIdKerning
	AIdLetterSpacing
	AIdWordSpacing
	AIdTextLength
	AIdLengthAdjust
	AIdTextDecoration
	AIdVisibility
	AIdDisplay
	AIdDominantBaseline
	AIdAlignmentBaseline
	AIdBaselineShift
	AIdWritingMode
	AIdTextRendering
	AIdPaintOrder
	AIdHref
	AIdStartOffset
	AIdTransform
	AIdWidth
	AIdHeight
	AIdViewBox
	AIdFill
	AIdStroke
	AIdD
)

var attributeNames = map[string]AId{
	"id":                 AIdId,
	"x":                  AIdX,
	"y":                  AIdY,
	"dx":                 AIdDx,
	"dy":                 AIdDy,
	"rotate":             AIdRotate,
	"text-anchor":        AIdTextAnchor,
	"font-family":        AIdFontFamily,
	"font-style":         AIdFontStyle,
	"font-stretch":       AIdFontStretch,
	"font-weight":        AIdFontWeight,
	"font-size":          AIdFontSize,
	"font-variant":       AIdFontVariant,
	"font-kerning":       AIdFontKerning,
	"kerning":            AIdKerning,
	"letter-spacing":     AIdLetterSpacing,
	"word-spacing":       AIdWordSpacing,
	"textLength":         AIdTextLength,
	"lengthAdjust":       AIdLengthAdjust,
	"text-decoration":    AIdTextDecoration,
	"visibility":         AIdVisibility,
	"display":            AIdDisplay,
	"dominant-baseline":  AIdDominantBaseline,
	"alignment-baseline": AIdAlignmentBaseline,
	"baseline-shift":     AIdBaselineShift,
	"writing-mode":       AIdWritingMode,
	"text-rendering":     AIdTextRendering,
	"paint-order":        AIdPaintOrder,
	"href":               AIdHref,
	"startOffset":        AIdStartOffset,
	"transform":          AIdTransform,
	"width":              AIdWidth,
	"height":             AIdHeight,
	"viewBox":            AIdViewBox,
	"fill":               AIdFill,
	"stroke":             AIdStroke,
	"d":                  AIdD,
}

// NodeKind distinguishes element nodes from text nodes in the document
// arena.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
)

// Node is a lightweight handle into a Document's node arena. Its zero value
// is not meaningful; Nodes are only produced by parsing a Document.
type Node struct {
	kind NodeKind
	tag  EId
	name string // local element name, including unrecognized ones

	attrs map[AId]string

	text string // only meaningful when kind == KindText

	parent   *Node
	children []*Node
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n.kind == KindElement }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.kind == KindText }

// Tag returns the element's recognized id, or EIdUnknown.
func (n *Node) Tag() EId { return n.tag }

// TagName returns the element's raw local name.
func (n *Node) TagName() string { return n.name }

// Text returns the text node's raw text content.
func (n *Node) Text() string { return n.text }

// Parent returns the node's parent, or nil for the document root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children, in document order.
func (n *Node) Children() []*Node { return n.children }

// Attribute returns the element's own value for id, ignoring ancestors.
func (n *Node) Attribute(id AId) (string, bool) {
	if n.attrs == nil {
		return "", false
	}
	v, ok := n.attrs[id]
	return v, ok
}

// HasAttribute reports whether the element itself (not an ancestor) carries
// id.
func (n *Node) HasAttribute(id AId) bool {
	_, ok := n.Attribute(id)
	return ok
}

// FindAttribute walks n and its ancestors, returning the nearest defined
// value for id.
func (n *Node) FindAttribute(id AId) (string, bool) {
	for cur := n; cur != nil; cur = cur.parent {
		if v, ok := cur.Attribute(id); ok {
			return v, true
		}
	}
	return "", false
}

// AttributeAs parses the element's own value for id using parse, returning
// false if the attribute is absent or parse rejects it.
func AttributeAs[T any](n *Node, id AId, parse func(string) (T, bool)) (T, bool) {
	var zero T
	raw, ok := n.Attribute(id)
	if !ok {
		return zero, false
	}
	return parse(raw)
}

// FindAttributeAs is the typed, inheritable counterpart to FindAttribute: it
// walks ancestors until parse accepts a raw value.
func FindAttributeAs[T any](n *Node, id AId, parse func(string) (T, bool)) (T, bool) {
	var zero T
	for cur := n; cur != nil; cur = cur.parent {
		if raw, ok := cur.Attribute(id); ok {
			if v, ok := parse(raw); ok {
				return v, ok
			}
		}
	}
	return zero, false
}

// Ancestors iterates from n's parent up to the root, document order
// reversed (nearest first).
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Descendants iterates n's descendants in document (pre-)order.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(*Node) bool
		walk = func(cur *Node) bool {
			for _, c := range cur.children {
				if !yield(c) {
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
}

// ParentElement returns n's nearest element ancestor, which for an element
// node reached through FindAttribute-style walks is simply its parent
// (elements never nest inside text nodes).
func (n *Node) ParentElement() *Node {
	return n.parent
}

// Title returns the text of a direct <title> child element, if any.
func (n *Node) Title() (string, bool) {
	for _, c := range n.children {
		if c.IsElement() && c.tag == EIdTitle {
			var sb strings.Builder
			for _, tc := range c.children {
				if tc.IsText() {
					sb.WriteString(tc.text)
				}
			}
			return sb.String(), true
		}
	}
	return "", false
}

// IsVisibleElement reports whether n is reachable under the current render
// tree, i.e. neither n nor any ancestor carries display="none".
func (n *Node) IsVisibleElement() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if v, ok := cur.Attribute(AIdDisplay); ok && v == "none" {
			return false
		}
	}
	return true
}

// Document owns the parsed node arena. The root Node is always a synthetic
// container whose children are the document's top-level nodes (normally a
// single <svg> element plus, rarely, leading/trailing text or comments the
// builder discarded).
type Document struct {
	Root *Node
}

// SvgElement returns the document's root <svg> element, if present.
func (d *Document) SvgElement() (*Node, bool) {
	for _, c := range d.Root.children {
		if c.IsElement() && c.tag == EIdSvg {
			return c, true
		}
	}
	return nil, false
}

// newDocumentDecoder builds an xml.Decoder for text, relaxing strictness in
// forgiving mode and wiring a charset sniffer for any embedded encoding
// declaration the XML prolog names.
func newDocumentDecoder(text string, opt Options) *xml.Decoder {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = !opt.Forgiving
	dec.CharsetReader = charset.NewReaderLabel
	if opt.Forgiving {
		dec.AutoClose = xml.HTMLAutoClose
		dec.Entity = xml.HTMLEntity
	}
	return dec
}

// ParseDocument builds a Document from a stream of XML tokens, enforcing
// the element budget as it goes.
func ParseDocument(dec *xml.Decoder) (*Document, error) {
	root := &Node{kind: KindElement, name: ""}
	cur := root
	count := 0

	var pendingText strings.Builder
	flushText := func() {
		if pendingText.Len() == 0 {
			return
		}
		cur.children = append(cur.children, &Node{
			kind:   KindText,
			text:   pendingText.String(),
			parent: cur,
		})
		pendingText.Reset()
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, wrapError(ErrParsingFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			flushText()

			count++
			if count > maxElements {
				return nil, newError(ErrElementsLimitReached)
			}

			node := &Node{
				kind:   KindElement,
				name:   t.Name.Local,
				tag:    elementNames[t.Name.Local],
				parent: cur,
			}
			for _, a := range t.Attr {
				local := a.Name.Local
				if local == "href" && isXlinkNamespace(a.Name.Space) {
					local = "href"
				}
				if id, ok := attributeNames[local]; ok {
					if node.attrs == nil {
						node.attrs = map[AId]string{}
					}
					node.attrs[id] = a.Value
				}
			}

			cur.children = append(cur.children, node)
			cur = node
		case xml.EndElement:
			flushText()
			if cur.parent != nil {
				cur = cur.parent
			}
		case xml.CharData:
			pendingText.WriteString(string(t))
		default:
			// Comments, processing instructions, directives: not
			// meaningful to the lowering engine.
		}
	}

	flushText()
	return &Document{Root: root}, nil
}

func isXlinkNamespace(space string) bool {
	return space == "xlink" || space == "http://www.w3.org/1999/xlink"
}
