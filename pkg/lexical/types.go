package lexical

import "encoding/json"

// Node type discriminators as they appear in the serialized editor state
const (
	TypeRoot      = "root"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeQuote     = "quote"
	TypeList      = "list"
	TypeListItem  = "listitem"
	TypeText      = "text"
)

// Direction is the text flow of a block. Lexical writes null when unset,
// which decodes to DirectionUnset.
type Direction string

const (
	DirectionUnset Direction = ""
	DirectionLTR   Direction = "ltr"
	DirectionRTL   Direction = "rtl"
)

// ListKind is the editor's listType. Only "number" renders ordered; every
// other kind, check lists included, renders as an unordered list.
type ListKind string

const (
	ListOrdered   ListKind = "number"
	ListUnordered ListKind = "bullet"
	ListCheck     ListKind = "check"
)

func (k ListKind) Ordered() bool { return k == ListOrdered }

// Heading levels the wire format can carry (tags h1..h3)
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 3
)

// BlockAttrs are the positional attributes shared by the root and every element node.
type BlockAttrs struct {
	Direction Direction
	Format    string // block alignment ("", "left", "center", ...)
	Indent    int
	Version   int
	// Extra holds members the model does not interpret (textFormat,
	// textStyle, a list's tag, ...). They are written back on encode.
	Extra map[string]json.RawMessage
}

// Document is the root of one post body.
// Children is never nil once built by Decode or NewDocument.
type Document struct {
	BlockAttrs
	Children []Block
}

// Block is a node allowed directly under the root or under a list.
// The set of implementations is closed; anything else decodes to *UnknownBlock.
type Block interface {
	json.Marshaler
	BlockType() string
	isBlock()
}

// Inline is a node allowed inside a paragraph, heading, quote or list item.
type Inline interface {
	json.Marshaler
	InlineType() string
	isInline()
}

type Paragraph struct {
	BlockAttrs
	Children []Inline
}

// Heading carries a level in 1..3 (wire tags h1..h3)
type Heading struct {
	BlockAttrs
	Level    int
	Children []Inline
}

type Quote struct {
	BlockAttrs
	Children []Inline
}

// List holds list items. Items are *ListItem, or *UnknownBlock for anything
// the decoder did not recognise as a list item.
type List struct {
	BlockAttrs
	Kind  ListKind
	Start int
	Items []Block
}

type ListItem struct {
	BlockAttrs
	Value    int
	Checked  *bool // set only for items of a check list
	Children []Inline
}

// UnknownBlock keeps a node the decoder could not interpret. Raw is compact
// JSON and is written back unchanged on encode.
type UnknownBlock struct {
	Type string
	Raw  json.RawMessage
}

// Text is a leaf with literal characters and inline formatting bits.
// Detail, Mode, Style and Version are carried through untouched.
type Text struct {
	Text    string
	Format  FormatMask
	Detail  int
	Mode    string
	Style   string
	Version int
	Extra   map[string]json.RawMessage
}

// UnknownInline is the inline counterpart of UnknownBlock
type UnknownInline struct {
	Type string
	Raw  json.RawMessage
}

func (*Paragraph) BlockType() string      { return TypeParagraph }
func (*Heading) BlockType() string        { return TypeHeading }
func (*Quote) BlockType() string          { return TypeQuote }
func (*List) BlockType() string           { return TypeList }
func (*ListItem) BlockType() string       { return TypeListItem }
func (b *UnknownBlock) BlockType() string { return b.Type }

func (*Paragraph) isBlock()    {}
func (*Heading) isBlock()      {}
func (*Quote) isBlock()        {}
func (*List) isBlock()         {}
func (*ListItem) isBlock()     {}
func (*UnknownBlock) isBlock() {}

func (*Text) InlineType() string            { return TypeText }
func (i *UnknownInline) InlineType() string { return i.Type }

func (*Text) isInline()          {}
func (*UnknownInline) isInline() {}

func defaultAttrs() BlockAttrs {
	return BlockAttrs{Version: 1}
}

// NewDocument builds an empty-attribute root around the given blocks
func NewDocument(children ...Block) *Document {
	if children == nil {
		children = []Block{}
	}
	return &Document{BlockAttrs: defaultAttrs(), Children: children}
}

func NewParagraph(children ...Inline) *Paragraph {
	return &Paragraph{BlockAttrs: defaultAttrs(), Children: inlines(children)}
}

// NewHeading clamps level into 1..3
func NewHeading(level int, children ...Inline) *Heading {
	return &Heading{BlockAttrs: defaultAttrs(), Level: ClampHeadingLevel(level), Children: inlines(children)}
}

func ClampHeadingLevel(level int) int {
	return min(max(level, MinHeadingLevel), MaxHeadingLevel)
}

func NewQuote(children ...Inline) *Quote {
	return &Quote{BlockAttrs: defaultAttrs(), Children: inlines(children)}
}

// NewList numbers items from 1 the way the editor does
func NewList(kind ListKind, items ...*ListItem) *List {
	blocks := make([]Block, 0, len(items))
	for i, item := range items {
		if item.Value == 0 {
			item.Value = i + 1
		}
		blocks = append(blocks, item)
	}
	return &List{BlockAttrs: defaultAttrs(), Kind: kind, Start: 1, Items: blocks}
}

func NewListItem(children ...Inline) *ListItem {
	return &ListItem{BlockAttrs: defaultAttrs(), Children: inlines(children)}
}

func NewText(text string, format FormatMask) *Text {
	return &Text{Text: text, Format: format, Mode: "normal", Version: 1}
}

func inlines(children []Inline) []Inline {
	if children == nil {
		return []Inline{}
	}
	return children
}
