// Package svglower lowers a parsed SVG document into a normalized tree of
// renderable primitives. Input may be plain UTF-8 or UTF-16 text, or
// gzip-compressed; the heart of the package is the text lowering engine,
// which resolves per-character positions, rotations, and style inheritance
// into positioned chunks of styled spans.
package svglower

import (
	"bytes"
	"compress/gzip"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var gzipMagic = []byte{0x1f, 0x8b}

// FromBytes detects gzip (magic 1F 8B) and decompresses, then decodes the
// result as UTF-8 or, on failure, UTF-16 (with or without an explicit
// byte-order mark) before handing the decoded text to FromText.
func FromBytes(data []byte, opt Options) (*Tree, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		decompressed, err := decompressGzip(data)
		if err != nil {
			return nil, err
		}
		data = decompressed
	}

	text, ok := decodeText(data)
	if !ok {
		return nil, newError(ErrUnrecognizedEncoding)
	}

	return FromText(text, opt)
}

// decompressGzip decompresses gzip-compressed data, pre-sizing the output
// buffer to 2x the input length as a hint.
func decompressGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, wrapError(ErrMalformedGZip, err)
	}
	defer r.Close()

	var out bytes.Buffer
	out.Grow(len(data) * 2)
	if _, err := io.Copy(&out, r); err != nil {
		return nil, wrapError(ErrMalformedGZip, err)
	}
	return out.Bytes(), nil
}

// decodeText runs the encoding fallback chain: UTF-8 first, then UTF-16
// with an explicit BOM (little- or big-endian), then UTF-16 without a BOM
// tried little-endian then big-endian, then a generic charset sniff as a
// last resort before giving up.
func decodeText(data []byte) (string, bool) {
	if utf8.Valid(data) {
		return string(data), true
	}

	if s, ok := decodeUTF16(data); ok {
		return s, true
	}

	if r, err := charset.NewReader(bytes.NewReader(data), ""); err == nil {
		if out, err := io.ReadAll(r); err == nil && utf8.Valid(out) {
			return string(out), true
		}
	}

	return "", false
}

// decodeUTF16 does a BOM-driven UTF-16 decode: an explicit little-endian
// (FF FE) or big-endian (FE FF) BOM pins the endianness; absent a BOM,
// little-endian is tried first, then big-endian.
func decodeUTF16(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return utf16Decode(data[2:], unicode.LittleEndian)
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return utf16Decode(data[2:], unicode.BigEndian)
	default:
		if s, ok := utf16Decode(data, unicode.LittleEndian); ok {
			return s, true
		}
		return utf16Decode(data, unicode.BigEndian)
	}
}

func utf16Decode(data []byte, endian unicode.Endianness) (string, bool) {
	if len(data) == 0 {
		return "", true
	}
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}
	return string(out), true
}

// FromText strips NUL characters in forgiving mode (logging a warning
// when any were removed), then hands the result to the XML adapter.
func FromText(text string, opt Options) (*Tree, error) {
	if opt.Forgiving {
		stripped := stripNULs(text)
		if len(stripped) != len(text) {
			opt.logger().Warn("found one or more invalid characters in input")
		}
		text = stripped
	}

	dec := newDocumentDecoder(text, opt)
	doc, err := ParseDocument(dec)
	if err != nil {
		return nil, err
	}

	return FromDocument(doc, opt)
}

func stripNULs(text string) string {
	if !bytes.ContainsRune([]byte(text), 0) {
		return text
	}
	var b bytes.Buffer
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromDocument hands a pre-parsed Document to the converter driver.
func FromDocument(doc *Document, opt Options) (*Tree, error) {
	return NewDriver(opt).Convert(doc)
}
