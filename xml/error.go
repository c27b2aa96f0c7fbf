package xml

import "fmt"

// ErrorCode discriminates the ways a document can fail to parse.
type ErrorCode int

const (
	ErrMalformed ErrorCode = iota
	ErrMismatchedTag
	ErrUnclosedElement
	ErrNoRootElement
	ErrMultipleRootElements
	ErrInvalidEntity
	ErrDuplicateAttribute
)

func (code ErrorCode) String() string {
	switch code {
	case ErrMalformed:
		return "malformed xml"
	case ErrMismatchedTag:
		return "mismatched closing tag"
	case ErrUnclosedElement:
		return "unclosed element"
	case ErrNoRootElement:
		return "no root element"
	case ErrMultipleRootElements:
		return "multiple root elements"
	case ErrInvalidEntity:
		return "invalid entity"
	case ErrDuplicateAttribute:
		return "duplicate attribute"
	}
	return "parse error"
}

// ParseError is a parse failure with the byte offset and the line and column
// at which it occurred. Name holds the offending tag name, attribute name or
// raw entity text where applicable.
type ParseError struct {
	Code   ErrorCode
	Name   string
	Offset int
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	s := e.Code.String()
	if e.Name != "" {
		s += " " + fmt.Sprintf("%q", e.Name)
	}
	return fmt.Sprintf("%s on line %d and column %d", s, e.Line, e.Column)
}

// newParseError computes the line and column of offset in b.
func newParseError(code ErrorCode, name string, b []byte, offset int) *ParseError {
	if len(b) < offset {
		offset = len(b)
	}
	line, col := 1, 1
	for _, c := range b[:offset] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{code, name, offset, line, col}
}
