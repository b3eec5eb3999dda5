package svglower

import (
	"strconv"
	"strings"
)

// ShapeConverter converts a shape element into its equivalent Path in
// element-local space. It is an injection point: the generic
// shape-to-path conversion used by <textPath href="..."> (rect, circle,
// ellipse, polygon, polyline, nested paths with markers, etc.) is explicitly
// out of scope for this package and left to the caller. The default
// implementation below only handles <path d="...">, since its "shape" is
// already expressed as path data and needs no real conversion.
type ShapeConverter func(n *Node) (*Path, bool)

// DefaultShapeConverter implements ShapeConverter for <path> elements only.
// Any other element kind (or a <path> with unsupported command letters,
// such as elliptical arcs) reports false.
func DefaultShapeConverter(n *Node) (*Path, bool) {
	if n.Tag() != EIdPath {
		return nil, false
	}
	d, ok := n.Attribute(AIdD)
	if !ok {
		return nil, false
	}
	return parsePathData(d)
}

// parsePathData parses a (restricted) SVG path data string into a Path.
// Supported commands: M/m, L/l, H/h, V/v, C/c, S/s, Q/q, T/t, Z/z.
// Elliptical arcs (A/a) are not supported and cause parsing to fail,
// consistent with the shape converter being a best-effort default.
func parsePathData(d string) (*Path, bool) {
	toks := tokenizePathData(d)
	if len(toks) == 0 {
		return nil, false
	}

	var segs []Segment
	var cx, cy float64   // current point
	var sx, sy float64   // current subpath start
	var lcx, lcy float64 // last cubic/quad control point, for S/T reflection
	var lastCmd byte

	i := 0
	readN := func(n int) ([]float64, bool) {
		if i+n > len(toks) {
			return nil, false
		}
		out := make([]float64, n)
		for k := 0; k < n; k++ {
			v, err := strconv.ParseFloat(toks[i+k], 64)
			if err != nil {
				return nil, false
			}
			out[k] = v
		}
		i += n
		return out, true
	}

	cmd := toks[i][0]
	for i < len(toks) {
		if len(toks[i]) == 1 && isPathCommandLetter(toks[i][0]) {
			cmd = toks[i][0]
			i++
		}

		switch cmd {
		case 'M', 'm':
			args, ok := readN(2)
			if !ok {
				return nil, false
			}
			x, y := args[0], args[1]
			if cmd == 'm' {
				x, y = cx+x, cy+y
			}
			cx, cy = x, y
			sx, sy = x, y
			segs = append(segs, Segment{Kind: SegMoveTo, P: Point{x, y}})
			cmd = nextImplicitCommand(cmd, 'L', 'l')
		case 'L', 'l':
			args, ok := readN(2)
			if !ok {
				return nil, false
			}
			x, y := args[0], args[1]
			if cmd == 'l' {
				x, y = cx+x, cy+y
			}
			cx, cy = x, y
			segs = append(segs, Segment{Kind: SegLineTo, P: Point{x, y}})
		case 'H', 'h':
			args, ok := readN(1)
			if !ok {
				return nil, false
			}
			x := args[0]
			if cmd == 'h' {
				x = cx + x
			}
			cx = x
			segs = append(segs, Segment{Kind: SegLineTo, P: Point{x, cy}})
		case 'V', 'v':
			args, ok := readN(1)
			if !ok {
				return nil, false
			}
			y := args[0]
			if cmd == 'v' {
				y = cy + y
			}
			cy = y
			segs = append(segs, Segment{Kind: SegLineTo, P: Point{cx, y}})
		case 'C', 'c':
			args, ok := readN(6)
			if !ok {
				return nil, false
			}
			x1, y1, x2, y2, x, y := args[0], args[1], args[2], args[3], args[4], args[5]
			if cmd == 'c' {
				x1, y1, x2, y2, x, y = cx+x1, cy+y1, cx+x2, cy+y2, cx+x, cy+y
			}
			segs = append(segs, Segment{Kind: SegCubicTo, P1: Point{x1, y1}, P2: Point{x2, y2}, P: Point{x, y}})
			lcx, lcy = x2, y2
			cx, cy = x, y
		case 'S', 's':
			args, ok := readN(4)
			if !ok {
				return nil, false
			}
			x2, y2, x, y := args[0], args[1], args[2], args[3]
			if cmd == 's' {
				x2, y2, x, y = cx+x2, cy+y2, cx+x, cy+y
			}
			x1, y1 := reflect(lcx, lcy, cx, cy, lastCmd == 'C' || lastCmd == 'c' || lastCmd == 'S' || lastCmd == 's')
			segs = append(segs, Segment{Kind: SegCubicTo, P1: Point{x1, y1}, P2: Point{x2, y2}, P: Point{x, y}})
			lcx, lcy = x2, y2
			cx, cy = x, y
		case 'Q', 'q':
			args, ok := readN(4)
			if !ok {
				return nil, false
			}
			x1, y1, x, y := args[0], args[1], args[2], args[3]
			if cmd == 'q' {
				x1, y1, x, y = cx+x1, cy+y1, cx+x, cy+y
			}
			segs = append(segs, Segment{Kind: SegQuadTo, P1: Point{x1, y1}, P: Point{x, y}})
			lcx, lcy = x1, y1
			cx, cy = x, y
		case 'T', 't':
			args, ok := readN(2)
			if !ok {
				return nil, false
			}
			x, y := args[0], args[1]
			if cmd == 't' {
				x, y = cx+x, cy+y
			}
			x1, y1 := reflect(lcx, lcy, cx, cy, lastCmd == 'Q' || lastCmd == 'q' || lastCmd == 'T' || lastCmd == 't')
			segs = append(segs, Segment{Kind: SegQuadTo, P1: Point{x1, y1}, P: Point{x, y}})
			lcx, lcy = x1, y1
			cx, cy = x, y
		case 'Z', 'z':
			segs = append(segs, Segment{Kind: SegClose})
			cx, cy = sx, sy
		default:
			return nil, false
		}

		lastCmd = cmd
	}

	return &Path{Segments: segs}, true
}

func nextImplicitCommand(cmd byte, upper, lower byte) byte {
	if cmd >= 'a' {
		return lower
	}
	return upper
}

func reflect(cxPrev, cyPrev, cx, cy float64, hadControl bool) (float64, float64) {
	if !hadControl {
		return cx, cy
	}
	return 2*cx - cxPrev, 2*cy - cyPrev
}

func isPathCommandLetter(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'Z', 'z':
		return true
	case 'A', 'a':
		return true // recognized but unsupported; tokenizePathData still splits on it
	}
	return false
}

// tokenizePathData splits path data into command letters and numbers. Arc
// commands (A/a) are rejected by the caller's switch, which returns false
// since they are not in the supported command set.
func tokenizePathData(d string) []string {
	var toks []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}

	runes := []rune(d)
	for idx := 0; idx < len(runes); idx++ {
		r := runes[idx]
		switch {
		case isPathCommandLetter(byte(r)):
			flush()
			toks = append(toks, string(r))
		case r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		case r == '-' || r == '+':
			// A sign starts a new number unless it's the leading
			// character of an exponent (it follows an 'e'/'E' of the
			// number being scanned).
			if s := num.String(); s != "" && (s[len(s)-1] == 'e' || s[len(s)-1] == 'E') {
				num.WriteRune(r)
				continue
			}
			flush()
			num.WriteRune(r)
		case r == '.':
			num.WriteRune(r)
		default:
			num.WriteRune(r)
		}
	}
	flush()

	return toks
}
