package svg

import (
	"testing"

	"github.com/Etase/typst-2-rsx/xml"
	"github.com/tdewolff/test"
)

func TestDocumentOf(t *testing.T) {
	root, err := xml.ParseBytes([]byte(`<svg class="typst-doc" width="500" height="200" viewBox="0 0 500 200"><g/></svg>`))
	test.Error(t, err)
	test.That(t, IsRoot(root), "root element must be svg")

	doc := DocumentOf(root)
	test.T(t, doc, Document{Class: "typst-doc", Width: "500", Height: "200", ViewBox: "0 0 500 200"})
}

func TestPathOf(t *testing.T) {
	root, err := xml.ParseBytes([]byte(`<path d="M0 0H10z" fill="none" stroke="#000" stroke-width="2" stroke-linecap="round" fill-rule="nonzero"/>`))
	test.Error(t, err)

	p := PathOf(root)
	test.String(t, p.D, "M0 0H10z")
	test.String(t, p.Fill, "none")
	test.String(t, p.Stroke, "#000")
	test.String(t, p.StrokeWidth, "2")
	test.String(t, p.StrokeLinecap, "round")
	test.String(t, p.FillRule, "nonzero")
	test.String(t, p.Class, "", "absent attribute projects to empty")
	test.String(t, p.StrokeMiterlimit, "", "absent attribute projects to empty")
}

func TestUseOf(t *testing.T) {
	root, err := xml.ParseBytes([]byte(`<use fill="#000" x="14" fill-rule="nonzero" xlink:href="#glyph1"/>`))
	test.Error(t, err)
	test.T(t, UseOf(root), Use{Fill: "#000", X: "14", FillRule: "nonzero", Href: "#glyph1"})

	root, err = xml.ParseBytes([]byte(`<use href="#glyph2"/>`))
	test.Error(t, err)
	test.String(t, UseOf(root).Href, "#glyph2")
}
