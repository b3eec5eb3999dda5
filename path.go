package svglower

import "math"

// SegmentKind identifies the kind of a Path segment.
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegQuadTo
	SegCubicTo
	SegClose
)

// Point is a 2D user-space point.
type Point struct {
	X, Y float64
}

// Segment is one command of a Path, already resolved to user-space
// coordinates.
type Segment struct {
	Kind SegmentKind
	// P1, P2 are control points (used by SegQuadTo/SegCubicTo only).
	P1, P2 Point
	// P is the segment's endpoint (unused by SegClose).
	P Point
}

// Path is an ordered sequence of segments in user space, shared by
// reference: multiple spans or text elements may reference the same
// underlying Path, and it is never mutated after construction.
type Path struct {
	Segments []Segment
}

// Transform returns a copy of p with every point passed through t.
func (p *Path) Transform(t Transform) *Path {
	out := &Path{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		ns := s
		switch s.Kind {
		case SegQuadTo:
			ns.P1.X, ns.P1.Y = t.Apply(s.P1.X, s.P1.Y)
			ns.P.X, ns.P.Y = t.Apply(s.P.X, s.P.Y)
		case SegCubicTo:
			ns.P1.X, ns.P1.Y = t.Apply(s.P1.X, s.P1.Y)
			ns.P2.X, ns.P2.Y = t.Apply(s.P2.X, s.P2.Y)
			ns.P.X, ns.P.Y = t.Apply(s.P.X, s.P.Y)
		case SegMoveTo, SegLineTo:
			ns.P.X, ns.P.Y = t.Apply(s.P.X, s.P.Y)
		case SegClose:
			// no point to transform
		}
		out.Segments[i] = ns
	}
	return out
}

// arclenTolerance is the flattening tolerance used by pathLength.
const arclenTolerance = 0.5

// pathLength measures p's total arclength: LineTo and Close segments are
// synthesized into cubic Béziers by sampling the straight line at t=0.33
// and t=0.66 as control points, QuadTo segments are raised to cubic, and
// each resulting cubic's length is summed via adaptive flattening.
func pathLength(p *Path) float64 {
	if len(p.Segments) == 0 {
		return 0
	}

	var prevX, prevY, prevMX, prevMY float64
	length := 0.0

	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegMoveTo:
			prevX, prevY = seg.P.X, seg.P.Y
			prevMX, prevMY = seg.P.X, seg.P.Y
			continue
		case SegLineTo:
			c := curveFromLine(prevX, prevY, seg.P.X, seg.P.Y)
			length += cubicArclen(c, arclenTolerance)
			prevX, prevY = seg.P.X, seg.P.Y
		case SegQuadTo:
			c := quadToCubic(prevX, prevY, seg.P1.X, seg.P1.Y, seg.P.X, seg.P.Y)
			length += cubicArclen(c, arclenTolerance)
			prevX, prevY = seg.P.X, seg.P.Y
		case SegCubicTo:
			c := cubic{
				p0: Point{prevX, prevY},
				p1: seg.P1,
				p2: seg.P2,
				p3: seg.P,
			}
			length += cubicArclen(c, arclenTolerance)
			prevX, prevY = seg.P.X, seg.P.Y
		case SegClose:
			c := curveFromLine(prevX, prevY, prevMX, prevMY)
			length += cubicArclen(c, arclenTolerance)
			prevX, prevY = prevMX, prevMY
		}
	}

	return length
}

type cubic struct {
	p0, p1, p2, p3 Point
}

func curveFromLine(px, py, x, y float64) cubic {
	lerp := func(t float64) Point {
		return Point{X: px + (x-px)*t, Y: py + (y-py)*t}
	}
	return cubic{
		p0: Point{px, py},
		p1: lerp(0.33),
		p2: lerp(0.66),
		p3: Point{x, y},
	}
}

func quadToCubic(px, py, cx, cy, x, y float64) cubic {
	// Degree elevation of a quadratic to an equivalent cubic.
	c1x := px + 2.0/3.0*(cx-px)
	c1y := py + 2.0/3.0*(cy-py)
	c2x := x + 2.0/3.0*(cx-x)
	c2y := y + 2.0/3.0*(cy-y)
	return cubic{
		p0: Point{px, py},
		p1: Point{c1x, c1y},
		p2: Point{c2x, c2y},
		p3: Point{x, y},
	}
}

// cubicArclen estimates the arclength of a cubic Bézier by recursive
// subdivision: if the control polygon is within tolerance of the chord, the
// chord length is used directly; otherwise the curve is split at t=0.5 (De
// Casteljau) and each half is measured the same way.
func cubicArclen(c cubic, tolerance float64) float64 {
	chord := dist(c.p0, c.p3)
	polygon := dist(c.p0, c.p1) + dist(c.p1, c.p2) + dist(c.p2, c.p3)

	if polygon-chord <= tolerance {
		return (chord + polygon) / 2
	}

	left, right := splitCubic(c)
	return cubicArclen(left, tolerance) + cubicArclen(right, tolerance)
}

func splitCubic(c cubic) (cubic, cubic) {
	mid := func(a, b Point) Point {
		return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
	}

	p01 := mid(c.p0, c.p1)
	p12 := mid(c.p1, c.p2)
	p23 := mid(c.p2, c.p3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	p0123 := mid(p012, p123)

	return cubic{c.p0, p01, p012, p0123}, cubic{p0123, p123, p23, c.p3}
}

func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
