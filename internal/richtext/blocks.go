// Package richtext models the chat platform's rich text block JSON and
// converts between that representation and Markdown.
//
// The block shape is a wire contract: a rich_text block holds a list of
// elements (rich_text_section, rich_text_list, rich_text_preformatted,
// rich_text_quote), and each element holds styled text or link runs. List
// elements hold rich_text_section elements, one per item.
package richtext

import (
	"encoding/json"
	"fmt"
)

const (
	BlockTypeRichText = "rich_text"

	ElementTypeSection      = "rich_text_section"
	ElementTypeList         = "rich_text_list"
	ElementTypePreformatted = "rich_text_preformatted"
	ElementTypeQuote        = "rich_text_quote"

	ObjectTypeText = "text"
	ObjectTypeLink = "link"

	ListStyleBullet  = "bullet"
	ListStyleOrdered = "ordered"
)

// Block is a top-level rich text block.
type Block struct {
	Type     string    `json:"type"`
	BlockID  string    `json:"block_id,omitempty"`
	Elements []Element `json:"elements"`
}

// NewBlock assembles a rich_text block from elements.
func NewBlock(blockID string, elements ...Element) Block {
	return Block{Type: BlockTypeRichText, BlockID: blockID, Elements: elements}
}

// Element is one block-level element inside a rich text block. Exactly one
// of Items or Runs is populated: Items for rich_text_list (one
// rich_text_section per list item), Runs for everything else. Both are
// serialized under the wire key "elements".
type Element struct {
	Type string

	// List fields.
	Style  string // bullet | ordered
	Indent int    // nesting depth, 0-based
	Offset int    // starting ordinal minus one for ordered lists
	Border int

	Items []Element
	Runs  []Object
}

// Object is a single styled run inside a section, quote, or preformatted
// element.
type Object struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Style *Style `json:"style,omitempty"`
}

// Style is the set of inline formatting flags on a run.
type Style struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Strike bool `json:"strike,omitempty"`
	Code   bool `json:"code,omitempty"`
}

func (s Style) isZero() bool {
	return !s.Bold && !s.Italic && !s.Strike && !s.Code
}

// ValidationError reports a rich text element or object whose discriminant
// does not match what the converter expects. Mismatches fail conversion
// immediately instead of being coerced.
type ValidationError struct {
	Field string
	Got   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rich text validation: unexpected %s %q", e.Field, e.Got)
}

type elementWire struct {
	Type     string          `json:"type"`
	Style    string          `json:"style,omitempty"`
	Indent   int             `json:"indent,omitempty"`
	Offset   int             `json:"offset,omitempty"`
	Border   int             `json:"border,omitempty"`
	Elements json.RawMessage `json:"elements,omitempty"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	wire := elementWire{
		Type:   e.Type,
		Style:  e.Style,
		Indent: e.Indent,
		Offset: e.Offset,
		Border: e.Border,
	}
	var children any
	switch e.Type {
	case ElementTypeList:
		children = e.Items
	case ElementTypeSection, ElementTypePreformatted, ElementTypeQuote:
		children = e.Runs
	default:
		return nil, &ValidationError{Field: "element type", Got: e.Type}
	}
	raw, err := json.Marshal(children)
	if err != nil {
		return nil, err
	}
	wire.Elements = raw
	return json.Marshal(wire)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var wire elementWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Type = wire.Type
	e.Style = wire.Style
	e.Indent = wire.Indent
	e.Offset = wire.Offset
	e.Border = wire.Border
	e.Items = nil
	e.Runs = nil

	switch wire.Type {
	case ElementTypeList:
		if len(wire.Elements) > 0 {
			if err := json.Unmarshal(wire.Elements, &e.Items); err != nil {
				return err
			}
		}
	case ElementTypeSection, ElementTypePreformatted, ElementTypeQuote:
		if len(wire.Elements) > 0 {
			if err := json.Unmarshal(wire.Elements, &e.Runs); err != nil {
				return err
			}
		}
	default:
		return &ValidationError{Field: "element type", Got: wire.Type}
	}
	return nil
}

// SectionElement wraps runs in a rich_text_section element.
func SectionElement(runs ...Object) Element {
	return Element{Type: ElementTypeSection, Runs: runs}
}

// TextObject builds a plain or styled text run.
func TextObject(text string, style *Style) Object {
	if style != nil && style.isZero() {
		style = nil
	}
	return Object{Type: ObjectTypeText, Text: text, Style: style}
}

// LinkObject builds a link run.
func LinkObject(text, url string, style *Style) Object {
	if style != nil && style.isZero() {
		style = nil
	}
	return Object{Type: ObjectTypeLink, Text: text, URL: url, Style: style}
}
