package xml

import (
	"bytes"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Parse reads an XML document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseBytes parses an XML document and returns its root element. The
// document must have exactly one root; comments, DOCTYPEs and processing
// instructions are dropped and CDATA sections become literal text.
func ParseBytes(b []byte) (*Element, error) {
	p := parser{b: b, in: parse.NewInputBytes(b)}
	return p.parse()
}

type parser struct {
	b     []byte
	in    *parse.Input
	root  *Element
	stack []*Element
}

func (p *parser) parse() (*Element, error) {
	l := xml.NewLexer(p.in)

	var open *Element // element whose attributes are being read
	openStart := 0
	inPI := false
	for {
		start := p.in.Offset()
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				// lexer-level failure, e.g. a NULL character in the input
				return nil, p.errAt(ErrMalformed, "", start)
			}
			if open != nil {
				return nil, p.errAt(ErrMalformed, open.Tag, openStart)
			}
			if inPI {
				return nil, p.errAt(ErrMalformed, "", start)
			}
			if 0 < len(p.stack) {
				top := p.stack[len(p.stack)-1]
				return nil, p.errAt(ErrUnclosedElement, top.Tag, start)
			}
			if p.root == nil {
				return nil, p.errAt(ErrNoRootElement, "", start)
			}
			return p.root, nil
		case xml.StartTagToken:
			name := string(l.Text())
			if !validName(name) {
				return nil, p.errAt(ErrMalformed, name, start)
			}
			open = &Element{Tag: name}
			openStart = start
		case xml.AttributeToken:
			if inPI {
				break
			}
			name := string(l.Text())
			if !validName(name) {
				return nil, p.errAt(ErrMalformed, name, start)
			}
			if _, ok := open.Attr(name); ok {
				return nil, p.errAt(ErrDuplicateAttribute, name, start)
			}
			val, err := p.attrVal(l.AttrVal(), start)
			if err != nil {
				return nil, err
			}
			open.Attrs = append(open.Attrs, Attr{name, val})
		case xml.StartTagCloseToken:
			if err := p.attach(open, openStart); err != nil {
				return nil, err
			}
			p.stack = append(p.stack, open)
			open = nil
		case xml.StartTagCloseVoidToken:
			// self-closing, the element is complete without children
			if err := p.attach(open, openStart); err != nil {
				return nil, err
			}
			open = nil
		case xml.EndTagToken:
			name := string(l.Text())
			if len(p.stack) == 0 {
				return nil, p.errAt(ErrMismatchedTag, name, start)
			}
			top := p.stack[len(p.stack)-1]
			if top.Tag != name {
				return nil, p.errAt(ErrMismatchedTag, name, start)
			}
			p.stack = p.stack[:len(p.stack)-1]
		case xml.TextToken:
			if len(p.stack) == 0 {
				// character data is only allowed inside the root element
				if len(bytes.TrimSpace(data)) != 0 {
					return nil, p.errAt(ErrMalformed, "", start)
				}
				break
			}
			s, off, raw := unescape(string(data))
			if off != -1 {
				return nil, p.errAt(ErrInvalidEntity, raw, start+off)
			}
			p.appendText(s)
		case xml.CDATAToken:
			// literal character data, no entity resolution
			if 0 < len(p.stack) {
				p.appendText(string(l.Text()))
			}
		case xml.StartTagPIToken:
			inPI = true
		case xml.StartTagClosePIToken:
			inPI = false
		case xml.CommentToken, xml.DOCTYPEToken:
			// dropped
		}
	}
}

// attach hangs a completed start tag off the current parent, or makes it the
// document root when no element is open.
func (p *parser) attach(el *Element, start int) error {
	if len(p.stack) == 0 {
		if p.root != nil {
			return p.errAt(ErrMultipleRootElements, el.Tag, start)
		}
		p.root = el
		return nil
	}
	parent := p.stack[len(p.stack)-1]
	parent.Children = append(parent.Children, el)
	return nil
}

// appendText adds character data to the open element, coalescing with a
// preceding text node.
func (p *parser) appendText(s string) {
	parent := p.stack[len(p.stack)-1]
	if n := len(parent.Children); 0 < n {
		if t, ok := parent.Children[n-1].(*Text); ok {
			t.Data += s
			return
		}
	}
	parent.Children = append(parent.Children, &Text{s})
}

// attrVal trims and unquotes a raw attribute value and resolves its entities.
func (p *parser) attrVal(raw []byte, start int) (string, error) {
	raw = bytes.TrimSpace(raw)
	if 1 < len(raw) && (raw[0] == '"' || raw[0] == '\'') && raw[0] == raw[len(raw)-1] {
		raw = raw[1 : len(raw)-1]
	}
	s, off, bad := unescape(string(raw))
	if off != -1 {
		return "", p.errAt(ErrInvalidEntity, bad, start+off)
	}
	return s, nil
}

func (p *parser) errAt(code ErrorCode, name string, offset int) *ParseError {
	return newParseError(code, name, p.b, offset)
}

// validName accepts XML names, loosely: an initial letter, underscore or
// colon, then letters, digits, hyphens, dots and colons. Multibyte characters
// pass through unchecked.
func validName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == ':' || 0x80 <= c {
			continue
		}
		if 0 < i && ('0' <= c && c <= '9' || c == '-' || c == '.') {
			continue
		}
		return false
	}
	return name != ""
}
