// Package content defines the payload passed between a requester and an
// extractor: a tagged value that is either a raw text body, a parsed JSON
// document, or empty. It is deliberately the thinnest package in the
// module — everything downstream consumes it through the three converters
// below rather than reaching into its fields.
package content

import "encoding/json"

// kind distinguishes the three Content variants.
type kind int

const (
	kindEmpty kind = iota
	kindText
	kindStructured
)

// Content is a sum of {textual, structured, empty}. The zero value is the
// empty variant, so a nil or unset Content never needs special-casing by
// callers before they call IsEmpty.
type Content struct {
	kind kind
	text string
	doc  any
}

// Empty is the canonical empty Content.
var Empty = Content{}

// Text wraps a raw response body as textual Content.
func Text(s string) Content {
	if s == "" {
		return Empty
	}
	return Content{kind: kindText, text: s}
}

// Structured wraps an already-decoded JSON document as structured Content.
func Structured(doc any) Content {
	if doc == nil {
		return Empty
	}
	return Content{kind: kindStructured, doc: doc}
}

// ParseJSON decodes s as JSON and returns structured Content. A parse
// failure returns Empty and the error.
func ParseJSON(s string) (Content, error) {
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return Empty, err
	}
	return Structured(doc), nil
}

// IsEmpty reports whether c carries no payload.
func (c Content) IsEmpty() bool {
	return c.kind == kindEmpty
}

// ToString renders c as text. Structured content is re-serialised to its
// canonical JSON encoding; empty content renders as "".
func (c Content) ToString() string {
	switch c.kind {
	case kindText:
		return c.text
	case kindStructured:
		b, err := json.Marshal(c.doc)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// ToStructured parses textual content as JSON, returns structured content
// as-is, and returns (nil, false) for empty content or malformed JSON text.
func (c Content) ToStructured() (any, bool) {
	switch c.kind {
	case kindStructured:
		return c.doc, true
	case kindText:
		var doc any
		if err := json.Unmarshal([]byte(c.text), &doc); err != nil {
			return nil, false
		}
		return doc, true
	default:
		return nil, false
	}
}
