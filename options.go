package svglower

import "github.com/sirupsen/logrus"

// Options controls how a document is lowered. The zero value is usable:
// every field has a sane default applied where it matters.
type Options struct {
	// Forgiving strips NUL characters from text input before parsing and
	// relaxes the XML adapter's own error handling. Defaults to false.
	Forgiving bool

	// TextRendering is the default text-rendering hint used when neither a
	// <text> element nor any of its ancestors specifies one. It is resolved
	// once per <text>; <tspan> values are not consulted.
	TextRendering TextRendering

	// FontFamily is the family name substituted when font-family resolves
	// to an empty list. Defaults to "sans-serif" if left empty.
	FontFamily string

	// ShapeConverter resolves the shape an <textPath href="..."> points to
	// into a Path. If nil, DefaultShapeConverter is used.
	ShapeConverter ShapeConverter

	// FillResolver and StrokeResolver resolve a node's paint. If nil,
	// DefaultFillResolver/DefaultStrokeResolver are used.
	FillResolver   FillResolver
	StrokeResolver StrokeResolver

	// ImageHrefResolver, FontResolver, and LinkResolver are consumed by
	// the image, font, and link subsystems, which sit outside the lowering
	// core; they are carried on Options so one option set can configure a
	// whole pipeline. The text engine never calls them.
	ImageHrefResolver func(href string) ([]byte, bool)
	FontResolver      func(family string) ([]byte, bool)
	LinkResolver      func(href string) (string, bool)

	// Logger receives the messages emitted during lowering: a warning for
	// stripped NULs, and debug-level messages for skipped invalid textPath
	// references and dropped zero-size spans. If nil,
	// logrus.StandardLogger() is used.
	Logger *logrus.Logger
}

func (o *Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o *Options) fontFamily() string {
	if o.FontFamily != "" {
		return o.FontFamily
	}
	return "sans-serif"
}

func (o *Options) shapeConverter() ShapeConverter {
	if o.ShapeConverter != nil {
		return o.ShapeConverter
	}
	return DefaultShapeConverter
}

func (o *Options) fillResolver() FillResolver {
	if o.FillResolver != nil {
		return o.FillResolver
	}
	return DefaultFillResolver
}

func (o *Options) strokeResolver() StrokeResolver {
	if o.StrokeResolver != nil {
		return o.StrokeResolver
	}
	return DefaultStrokeResolver
}

// TextRendering mirrors the SVG text-rendering presentation attribute.
type TextRendering int

const (
	TextRenderingAuto TextRendering = iota
	TextRenderingOptimizeSpeed
	TextRenderingOptimizeLegibility
	TextRenderingGeometricPrecision
)
