package svglower

import "strings"

// FontStyle is the resolved font-style value.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

func parseFontStyle(s string) (FontStyle, bool) {
	switch s {
	case "normal":
		return FontStyleNormal, true
	case "italic":
		return FontStyleItalic, true
	case "oblique":
		return FontStyleOblique, true
	default:
		return 0, false
	}
}

// FontStretch is the resolved font-stretch bucket (9 values, narrowest to
// widest).
type FontStretch int

const (
	FontStretchUltraCondensed FontStretch = iota
	FontStretchExtraCondensed
	FontStretchCondensed
	FontStretchSemiCondensed
	FontStretchNormal
	FontStretchSemiExpanded
	FontStretchExpanded
	FontStretchExtraExpanded
	FontStretchUltraExpanded
)

// Font is the resolved font descriptor for a text span.
type Font struct {
	Families []string
	Style    FontStyle
	Stretch  FontStretch
	Weight   int // 100..900, step 100
}

// convertFont resolves the full Font descriptor for node.
func convertFont(n *Node, opt *Options) Font {
	style, ok := FindAttributeAs(n, AIdFontStyle, parseFontStyle)
	if !ok {
		style = FontStyleNormal
	}

	return Font{
		Families: resolveFontFamilies(n, opt),
		Style:    style,
		Stretch:  resolveFontStretch(n),
		Weight:   resolveFontWeight(n),
	}
}

// resolveFontFamilies takes font-family from the nearest ancestor
// (including self) that has it, comma-splits it, trims one layer of
// quoting, drops empties, and falls back to the configured default if the
// result is empty.
func resolveFontFamilies(n *Node, opt *Options) []string {
	raw := ""
	for cur := n; cur != nil; cur = cur.Parent() {
		if v, ok := cur.Attribute(AIdFontFamily); ok {
			raw = v
			break
		}
	}

	var families []string
	for _, family := range strings.Split(raw, ",") {
		family = trimOneQuote(strings.TrimSpace(family))
		family = strings.TrimSpace(family)
		if family != "" {
			families = append(families, family)
		}
	}

	if len(families) == 0 {
		families = append(families, opt.fontFamily())
	}
	return families
}

func trimOneQuote(s string) string {
	if s == "" {
		return s
	}
	if (s[0] == '\'' || s[0] == '"') && len(s) > 0 {
		s = s[1:]
	}
	if s == "" {
		return s
	}
	if last := s[len(s)-1]; last == '\'' || last == '"' {
		s = s[:len(s)-1]
	}
	return s
}

// resolveFontStretch maps the font-stretch token from the nearest ancestor
// (including self) that declares it.
func resolveFontStretch(n *Node) FontStretch {
	for cur := n; cur != nil; cur = cur.Parent() {
		raw, ok := cur.Attribute(AIdFontStretch)
		if !ok {
			continue
		}
		switch raw {
		case "narrower", "condensed":
			return FontStretchCondensed
		case "ultra-condensed":
			return FontStretchUltraCondensed
		case "extra-condensed":
			return FontStretchExtraCondensed
		case "semi-condensed":
			return FontStretchSemiCondensed
		case "semi-expanded":
			return FontStretchSemiExpanded
		case "wider", "expanded":
			return FontStretchExpanded
		case "extra-expanded":
			return FontStretchExtraExpanded
		case "ultra-expanded":
			return FontStretchUltraExpanded
		default:
			return FontStretchNormal
		}
	}
	return FontStretchNormal
}

// resolveFontWeight walks ancestors from root toward self, including self
// but skipping the synthetic document root, accumulating a running weight
// that starts at 400. Note the non-CSS2 300/200 bolder/lighter step size
// at weight 400: 400->bolder->700, 400->lighter->200, so a node that goes
// bolder then lighter (or vice versa) does not return to 400.
func resolveFontWeight(n *Node) int {
	chain := ancestorChainInclusive(n) // [n, parent, ..., syntheticRoot]

	weight := 400
	for i := len(chain) - 2; i >= 0; i-- { // skip the synthetic root itself
		raw, ok := chain[i].Attribute(AIdFontWeight)
		if !ok {
			continue
		}
		weight = applyFontWeightToken(raw, weight)
	}
	return weight
}

func applyFontWeightToken(raw string, weight int) int {
	switch raw {
	case "normal":
		return 400
	case "bold":
		return 700
	case "100", "200", "300", "400", "500", "600", "700", "800", "900":
		n := 0
		for _, c := range raw {
			n = n*10 + int(c-'0')
		}
		return n
	case "bolder":
		step := 100
		if weight == 400 {
			step = 300
		}
		return clampInt(100, weight+step, 900)
	case "lighter":
		step := 100
		if weight == 400 {
			step = 200
		}
		return clampInt(100, weight-step, 900)
	default:
		return weight
	}
}
