package xml

import (
	"bytes"
	"testing"

	"github.com/tdewolff/test"
)

func parseCode(t *testing.T, s string) *ParseError {
	t.Helper()
	_, err := ParseBytes([]byte(s))
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatal("must return *ParseError in", s, "got", err)
	}
	return perr
}

func TestParse(t *testing.T) {
	root, err := Parse(bytes.NewBufferString(`<svg><text x="10" y="20">Hello, <tspan font-weight="bold">Typst!</tspan></text></svg>`))
	test.Error(t, err)
	test.String(t, root.Tag, "svg")
	test.That(t, len(root.Children) == 1, "svg has one child")

	text := root.Children[0].(*Element)
	test.String(t, text.Tag, "text")
	test.T(t, text.Attrs, []Attr{{"x", "10"}, {"y", "20"}})
	test.That(t, len(text.Children) == 2, "text has two children")

	hello := text.Children[0].(*Text)
	test.String(t, hello.Data, "Hello, ")

	tspan := text.Children[1].(*Element)
	test.String(t, tspan.Tag, "tspan")
	test.T(t, tspan.Attrs, []Attr{{"font-weight", "bold"}})
	test.String(t, tspan.Children[0].(*Text).Data, "Typst!")
}

func TestParseSelfClosing(t *testing.T) {
	root, err := ParseBytes([]byte(`<svg><rect width="5"/></svg>`))
	test.Error(t, err)

	rect := root.Children[0].(*Element)
	test.String(t, rect.Tag, "rect")
	test.T(t, rect.Attrs, []Attr{{"width", "5"}})
	test.That(t, len(rect.Children) == 0, "self-closing element has no children")
}

func TestParseStructure(t *testing.T) {
	var structureTests = []struct {
		xml  string
		tags []string
	}{
		{`<a/>`, []string{"a"}},
		{`<a></a>`, []string{"a"}},
		{`<a><b/><c><d/></c><b/></a>`, []string{"a", "b", "c", "d", "b"}},
		{`<?xml version="1.0"?><a/>`, []string{"a"}},
		{`<!-- comment --><a><!-- inner --><b/></a>`, []string{"a", "b"}},
		{`<!DOCTYPE svg><a/>`, []string{"a"}},
		{`<xlink:a><b xlink:href="#x"/></xlink:a>`, []string{"xlink:a", "b"}},
	}
	for _, tt := range structureTests {
		root, err := ParseBytes([]byte(tt.xml))
		test.Error(t, err)
		test.T(t, tagsOf(root), tt.tags, "tag order must match in "+tt.xml)
	}
}

// tagsOf returns the element tags in document order.
func tagsOf(el *Element) []string {
	tags := []string{el.Tag}
	for _, c := range el.Children {
		if child, ok := c.(*Element); ok {
			tags = append(tags, tagsOf(child)...)
		}
	}
	return tags
}

func TestParseText(t *testing.T) {
	root, err := ParseBytes([]byte("<a>one<b/>two &amp; three</a>"))
	test.Error(t, err)
	test.That(t, len(root.Children) == 3, "text runs must not merge across elements")
	test.String(t, root.Children[0].(*Text).Data, "one")
	test.String(t, root.Children[2].(*Text).Data, "two & three")

	root, err = ParseBytes([]byte("<a>lit<![CDATA[<&>]]>eral</a>"))
	test.Error(t, err)
	test.That(t, len(root.Children) == 1, "CDATA must coalesce with surrounding text")
	test.String(t, root.Children[0].(*Text).Data, "lit<&>eral")
}

func TestParseEntities(t *testing.T) {
	root, err := ParseBytes([]byte(`<a q="&quot;&apos;" n="&#65;&#x42;">&lt;tag&gt;</a>`))
	test.Error(t, err)
	test.T(t, root.Attrs, []Attr{{"q", `"'`}, {"n", "AB"}})
	test.String(t, root.Children[0].(*Text).Data, "<tag>")
}

func TestParseErrors(t *testing.T) {
	var errorTests = []struct {
		xml  string
		code ErrorCode
		name string
	}{
		{`<svg><a></b></svg>`, ErrMismatchedTag, "b"},
		{`<svg>`, ErrUnclosedElement, "svg"},
		{`<svg><g/>`, ErrUnclosedElement, "svg"},
		{`</svg>`, ErrMismatchedTag, "svg"},
		{``, ErrNoRootElement, ""},
		{`<!-- nothing here -->`, ErrNoRootElement, ""},
		{`<a/><b/>`, ErrMultipleRootElements, "b"},
		{`<a>&unknown;</a>`, ErrInvalidEntity, "&unknown;"},
		{`<a>&#xQQ;</a>`, ErrInvalidEntity, "&#xQQ;"},
		{`<a b="&nope;"/>`, ErrInvalidEntity, "&nope;"},
		{`<a x="1" x="2"/>`, ErrDuplicateAttribute, "x"},
		{`<svg`, ErrMalformed, "svg"},
		{`<1tag/>`, ErrMalformed, "1tag"},
		{`<a/>trailing`, ErrMalformed, ""},
		{"<a b='5\x00>", ErrMalformed, ""},
		{"<a>\x00</a>", ErrMalformed, ""},
	}
	for _, tt := range errorTests {
		perr := parseCode(t, tt.xml)
		test.T(t, perr.Code, tt.code, "error code must match in "+tt.xml)
		test.String(t, perr.Name, tt.name, "offending name must match in "+tt.xml)
	}
}

func TestAttrEntityOffset(t *testing.T) {
	head := parseCode(t, `<a b="&nope;"/>`)
	test.T(t, head.Code, ErrInvalidEntity)

	// the reported offset moves with the reference's position in the value
	shifted := parseCode(t, `<a b="xx&nope;"/>`)
	test.T(t, shifted.Code, ErrInvalidEntity)
	test.T(t, shifted.Offset, head.Offset+2)
}

func TestParseErrorPosition(t *testing.T) {
	perr := parseCode(t, "<svg>\n  <a></b>\n</svg>")
	test.T(t, perr.Code, ErrMismatchedTag)
	test.T(t, perr.Line, 2)
	test.That(t, 0 < perr.Offset, "offset must be set")
	test.String(t, perr.Error(), `mismatched closing tag "b" on line 2 and column 6`)
}

func TestAttrLookup(t *testing.T) {
	root, err := ParseBytes([]byte(`<svg width="100" height="50"/>`))
	test.Error(t, err)

	v, ok := root.Attr("height")
	test.That(t, ok, "height must be present")
	test.String(t, v, "50")

	_, ok = root.Attr("viewBox")
	test.That(t, !ok, "viewBox must be absent")
}
