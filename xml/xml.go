// Package xml builds a document tree from XML text.
//
// The parser makes a single forward pass over the token stream and keeps an
// explicit stack of open elements, so auxiliary memory is proportional to the
// nesting depth rather than the document size. Comments, DOCTYPEs and
// processing instructions are discarded; namespaced names are kept opaque,
// prefix included.
package xml // import "github.com/Etase/typst-2-rsx/xml"

// Node is a unit of the document tree, either an *Element or a *Text.
type Node interface {
	node()
}

// Attr is a single element attribute. Attributes keep their source order.
type Attr struct {
	Name string
	Val  string
}

// Element is an XML element with its attributes and children in source order.
// Children are owned exclusively by their parent.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

func (el *Element) node() {}

// Attr returns the value of the named attribute and whether it is present.
func (el *Element) Attr(name string) (string, bool) {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text is a run of character data between tags, with entity references
// already resolved. Adjacent runs are coalesced into one node.
type Text struct {
	Data string
}

func (t *Text) node() {}
