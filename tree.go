package svglower

// OutputNode is anything that can sit in the lowered output tree.
type OutputNode interface {
	isOutputNode()
}

// Group is a lowered <g> (or any element whose only role is to hold
// children and contribute a transform/marker scope).
type Group struct {
	ID        string
	Transform Transform
	Children  []OutputNode
}

func (*Group) isOutputNode() {}

// TextNode wraps a lowered Text as an OutputNode.
type TextNode struct {
	*Text
}

func (*TextNode) isOutputNode() {}

// Tree is the root of a lowered document.
type Tree struct {
	Width, Height float64
	ViewBox       *ViewBox
	Root          *Group
}

// ViewBox is the parsed viewBox attribute of the root <svg>.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

func parseViewBox(raw string) (ViewBox, bool) {
	vals, ok := parseFloatList(raw)
	if !ok || len(vals) != 4 {
		return ViewBox{}, false
	}
	return ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}, true
}
