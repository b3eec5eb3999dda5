package svglower

import (
	"github.com/corvidlabs/svglower/internal/stack"
)

// Cache holds derived lookups built once per document and shared across the
// whole conversion pass.
type Cache struct {
	byID map[string]*Node
}

// buildCache indexes every element carrying an id attribute.
func buildCache(doc *Document) *Cache {
	c := &Cache{byID: map[string]*Node{}}
	for d := range doc.Root.Descendants() {
		if !d.IsElement() {
			continue
		}
		if id, ok := d.Attribute(AIdId); ok {
			c.byID[id] = d
		}
	}
	return c
}

// resolveRef resolves a local "#id" reference (the only href form this
// package supports; absolute/external references are out of scope).
func (c *Cache) resolveRef(href string) (*Node, bool) {
	if len(href) == 0 || href[0] != '#' {
		return nil, false
	}
	n, ok := c.byID[href[1:]]
	return n, ok
}

// ConverterState is the mutable state threaded through one Convert call.
type ConverterState struct {
	Options       Options
	ParentMarkers stack.Stack[string]
}

// Driver lowers a parsed Document into a Tree.
type Driver struct {
	Options Options
}

// NewDriver constructs a Driver with the given options.
func NewDriver(opt Options) *Driver {
	return &Driver{Options: opt}
}

// Convert lowers doc into a Tree, applying the preflight size guard
// before descending into the element tree.
func (d *Driver) Convert(doc *Document) (*Tree, error) {
	svg, ok := doc.SvgElement()
	if !ok {
		return nil, newError(ErrInvalidSize)
	}

	size, viewBox, err := preflightSize(svg)
	if err != nil {
		return nil, err
	}

	cache := buildCache(doc)
	state := &ConverterState{Options: d.Options}

	root := &Group{Transform: Identity, Children: convertChildren(svg, state, cache)}

	return &Tree{
		Width:   size.width,
		Height:  size.height,
		ViewBox: viewBox,
		Root:    root,
	}, nil
}

// convertChildren walks n's element children, dispatching <text> to
// LowerText and lowering everything else into a Group scope.
func convertChildren(n *Node, state *ConverterState, cache *Cache) []OutputNode {
	var out []OutputNode

	for _, child := range n.Children() {
		if !child.IsElement() {
			continue
		}
		if !child.IsVisibleElement() {
			continue
		}

		id, hasID := child.Attribute(AIdId)
		if hasID {
			if state.ParentMarkers.Contains(id) {
				state.Options.logger().Debugf("element %q references itself through an ancestor, skipping", id)
				continue
			}
			state.ParentMarkers.Push(id)
		}

		switch child.Tag() {
		case EIdText:
			out = append(out, &TextNode{Text: LowerText(child, state, cache)})
		case EIdTitle:
			// consumed directly by Node.Title(), not part of the render tree
		default:
			group := &Group{ID: id, Children: convertChildren(child, state, cache)}
			if raw, ok := child.Attribute(AIdTransform); ok {
				if t, ok := parseTransform(raw); ok {
					group.Transform = t
				} else {
					group.Transform = Identity
				}
			} else {
				group.Transform = Identity
			}
			out = append(out, group)
		}

		if hasID {
			state.ParentMarkers.Pop()
		}
	}

	return out
}
