// Package svg provides read-only views over the attributes of parsed SVG
// elements. A view is built by lookup when asked for and is never stored on
// the tree; an absent attribute projects to the empty string.
package svg // import "github.com/Etase/typst-2-rsx/svg"

import "github.com/Etase/typst-2-rsx/xml"

// Document projects the attributes of a root svg element.
type Document struct {
	Class   string
	Width   string
	Height  string
	ViewBox string
}

// DocumentOf returns the document view of root.
func DocumentOf(root *xml.Element) Document {
	return Document{
		Class:   attr(root, "class"),
		Width:   attr(root, "width"),
		Height:  attr(root, "height"),
		ViewBox: attr(root, "viewBox"),
	}
}

// IsRoot reports whether el is an svg root element.
func IsRoot(el *xml.Element) bool {
	return el != nil && el.Tag == "svg"
}

// Path projects the styling attributes of a path element: the geometry data
// and the well-known paint and stroke properties.
type Path struct {
	D                string
	Class            string
	Fill             string
	FillRule         string
	Stroke           string
	StrokeWidth      string
	StrokeLinecap    string
	StrokeLinejoin   string
	StrokeMiterlimit string
}

// PathOf returns the path view of el.
func PathOf(el *xml.Element) Path {
	return Path{
		D:                attr(el, "d"),
		Class:            attr(el, "class"),
		Fill:             attr(el, "fill"),
		FillRule:         attr(el, "fill-rule"),
		Stroke:           attr(el, "stroke"),
		StrokeWidth:      attr(el, "stroke-width"),
		StrokeLinecap:    attr(el, "stroke-linecap"),
		StrokeLinejoin:   attr(el, "stroke-linejoin"),
		StrokeMiterlimit: attr(el, "stroke-miterlimit"),
	}
}

// Use projects the attributes of a use element referencing a defined symbol.
type Use struct {
	Fill     string
	X        string
	FillRule string
	Href     string
}

// UseOf returns the use view of el. The href attribute may carry an xlink
// prefix, which is matched as-is first.
func UseOf(el *xml.Element) Use {
	href := attr(el, "xlink:href")
	if href == "" {
		href = attr(el, "href")
	}
	return Use{
		Fill:     attr(el, "fill"),
		X:        attr(el, "x"),
		FillRule: attr(el, "fill-rule"),
		Href:     href,
	}
}

func attr(el *xml.Element, name string) string {
	v, _ := el.Attr(name)
	return v
}
