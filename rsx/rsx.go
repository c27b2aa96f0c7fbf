// Package rsx renders an XML element tree as Dioxus rsx source text: nested
// component calls with named string attributes and quoted text children.
package rsx // import "github.com/Etase/typst-2-rsx/rsx"

import (
	"io"
	"strings"

	"github.com/Etase/typst-2-rsx/xml"
)

const indent = "    "

// Render writes root as rsx source text to w. Children keep their source
// order and every element gets a block, empty elements included. The only
// failure path is a write error on w.
func Render(w io.Writer, root *xml.Element) error {
	p := &printer{w: w}
	p.element(root, "")
	p.print("\n")
	return p.err
}

// RenderString renders root and returns the generated source text.
func RenderString(root *xml.Element) (string, error) {
	sb := &strings.Builder{}
	if err := Render(sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) print(ss ...string) {
	for _, s := range ss {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *printer) element(el *xml.Element, ind string) {
	if len(el.Attrs) == 0 && len(el.Children) == 0 {
		p.print(Ident(el.Tag), " {}")
		return
	}
	p.print(Ident(el.Tag), " {\n")
	inner := ind + indent
	for _, a := range el.Attrs {
		p.print(inner, Ident(a.Name), `: "`, escape(a.Val), `",`, "\n")
	}
	for _, c := range el.Children {
		switch n := c.(type) {
		case *xml.Element:
			p.print(inner)
			p.element(n, inner)
			p.print(",\n")
		case *xml.Text:
			p.print(inner, `"`, escape(n.Data), `",`, "\n")
		}
	}
	p.print(ind, "}")
}

// Ident maps an XML name to an rsx identifier: every hyphen becomes an
// underscore and case is preserved. Names that collide with a Rust keyword
// come out as raw identifiers, so a use element renders as r#use.
func Ident(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "match": true, "mod": true,
	"move": true, "mut": true, "pub": true, "ref": true, "return": true,
	"static": true, "struct": true, "trait": true, "true": true, "type": true,
	"unsafe": true, "use": true, "where": true, "while": true,
}

// escape returns s as the body of a Rust string literal. It is total:
// backslashes, quotes, newlines, carriage returns and tabs are escaped and
// every other character passes through unchanged.
func escape(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
