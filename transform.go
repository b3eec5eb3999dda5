package svglower

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Transform is a 2D affine matrix, in the usual SVG [a b c d e f] order:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Transform{A: 1, D: 1}

// Apply transforms a point by t.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Multiply returns t composed with other, applied as t then other.
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.C,
		B: t.A*other.B + t.B*other.D,
		C: t.C*other.A + t.D*other.C,
		D: t.C*other.B + t.D*other.D,
		E: t.E*other.A + t.F*other.C + other.E,
		F: t.E*other.B + t.F*other.D + other.F,
	}
}

var transformFuncRe = regexp.MustCompile(`([a-zA-Z]+)\s*\(([^)]*)\)`)

// parseTransform parses the SVG transform attribute grammar: one or more of
// matrix/translate/scale/rotate/skewX/skewY, applied left to right.
func parseTransform(s string) (Transform, bool) {
	matches := transformFuncRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return Identity, false
	}

	result := Identity
	for _, m := range matches {
		name := m[1]
		args := parseTransformArgs(m[2])

		var t Transform
		switch name {
		case "matrix":
			if len(args) != 6 {
				return Identity, false
			}
			t = Transform{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
		case "translate":
			if len(args) == 1 {
				t = Transform{A: 1, D: 1, E: args[0]}
			} else if len(args) == 2 {
				t = Transform{A: 1, D: 1, E: args[0], F: args[1]}
			} else {
				return Identity, false
			}
		case "scale":
			if len(args) == 1 {
				t = Transform{A: args[0], D: args[0]}
			} else if len(args) == 2 {
				t = Transform{A: args[0], D: args[1]}
			} else {
				return Identity, false
			}
		case "rotate":
			if len(args) != 1 && len(args) != 3 {
				return Identity, false
			}
			rad := args[0] * math.Pi / 180
			sin, cos := math.Sin(rad), math.Cos(rad)
			rot := Transform{A: cos, B: sin, C: -sin, D: cos}
			if len(args) == 3 {
				cx, cy := args[1], args[2]
				t = Transform{A: 1, D: 1, E: -cx, F: -cy}.Multiply(rot).Multiply(Transform{A: 1, D: 1, E: cx, F: cy})
			} else {
				t = rot
			}
		case "skewX":
			if len(args) != 1 {
				return Identity, false
			}
			t = Transform{A: 1, D: 1, C: math.Tan(args[0] * math.Pi / 180)}
		case "skewY":
			if len(args) != 1 {
				return Identity, false
			}
			t = Transform{A: 1, D: 1, B: math.Tan(args[0] * math.Pi / 180)}
		default:
			return Identity, false
		}

		// SVG composes a transform list as a matrix product read
		// left to right, which means the rightmost (most recently
		// parsed) function is applied to the point first: fold new
		// functions in on the left of what's accumulated so far.
		result = t.Multiply(result)
	}

	return result, true
}

func parseTransformArgs(s string) []float64 {
	fields := splitListFields(strings.TrimSpace(s))
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}
