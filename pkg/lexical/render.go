package lexical

import (
	"iter"
	"slices"
	"strings"
)

// Mode reports which path produced a rendering
type Mode string

const (
	ModeRichText  Mode = "rich_text"
	ModePlainText Mode = "plain_text"
)

// BlockKind is the type of a display block
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading   BlockKind = "heading"
	KindQuote     BlockKind = "quote"
	KindList      BlockKind = "list"
	KindListItem  BlockKind = "listitem"
	KindLineBreak BlockKind = "linebreak"
)

// DisplayBlock is one unit of rendered output. Key is the index of the source
// node within its parent's children, so it is stable across renders and can
// be used as a list identity by clients.
type DisplayBlock struct {
	Kind      BlockKind      `json:"kind"`
	Key       int            `json:"key"`
	Level     int            `json:"level,omitempty"`
	Ordered   bool           `json:"ordered,omitempty"`
	Checked   *bool          `json:"checked,omitempty"`
	Direction Direction      `json:"direction,omitempty"`
	Align     string         `json:"align,omitempty"`
	Spans     []Span         `json:"spans,omitempty"`
	Items     []DisplayBlock `json:"items,omitempty"`
}

// Span is a run of text with its wraps, innermost first
type Span struct {
	Key   int    `json:"key"`
	Text  string `json:"text"`
	Marks []Mark `json:"marks,omitempty"`
}

// Output is the result of Render. Blocks can be ranged over any number of
// times; each pass walks the decoded document afresh.
type Output struct {
	Mode Mode
	doc  *Document
	text string
}

// Render decodes serialized once and falls back to plain text when the
// top-level shape is not a document. It never fails.
func Render(serialized string) Output {
	doc, err := Decode(serialized)
	if err != nil {
		return Output{Mode: ModePlainText, text: serialized}
	}
	return Output{Mode: ModeRichText, doc: doc}
}

// DecodeAndRender is Render(serialized).Blocks()
func DecodeAndRender(serialized string) iter.Seq[DisplayBlock] {
	return Render(serialized).Blocks()
}

func (o Output) Blocks() iter.Seq[DisplayBlock] {
	if o.Mode == ModePlainText {
		return renderPlainText(o.text)
	}
	return RenderDocument(o.doc)
}

func (o Output) Collect() []DisplayBlock {
	return slices.Collect(o.Blocks())
}

// RenderDocument projects an already decoded document. doc is only read.
func RenderDocument(doc *Document) iter.Seq[DisplayBlock] {
	return func(yield func(DisplayBlock) bool) {
		if doc == nil {
			return
		}
		for i, child := range doc.Children {
			block, ok := renderBlock(child, i)
			if !ok {
				continue
			}
			if !yield(block) {
				return
			}
		}
	}
}

func renderBlock(node Block, key int) (DisplayBlock, bool) {
	switch n := node.(type) {
	case *Paragraph:
		return withAttrs(DisplayBlock{Kind: KindParagraph, Key: key, Spans: renderInlines(n.Children)}, n.BlockAttrs), true
	case *Heading:
		return withAttrs(DisplayBlock{Kind: KindHeading, Key: key, Level: n.Level, Spans: renderInlines(n.Children)}, n.BlockAttrs), true
	case *Quote:
		return withAttrs(DisplayBlock{Kind: KindQuote, Key: key, Spans: renderInlines(n.Children)}, n.BlockAttrs), true
	case *List:
		block := withAttrs(DisplayBlock{Kind: KindList, Key: key, Ordered: n.Kind.Ordered()}, n.BlockAttrs)
		for j, item := range n.Items {
			li, ok := item.(*ListItem)
			if !ok {
				continue
			}
			block.Items = append(block.Items, withAttrs(DisplayBlock{
				Kind:    KindListItem,
				Key:     j,
				Checked: li.Checked,
				Spans:   renderInlines(li.Children),
			}, li.BlockAttrs))
		}
		return block, true
	default:
		// unknown and misplaced nodes (e.g. a bare list item) render nothing
		return DisplayBlock{}, false
	}
}

func withAttrs(block DisplayBlock, attrs BlockAttrs) DisplayBlock {
	block.Direction = attrs.Direction
	block.Align = attrs.Format
	return block
}

func renderInlines(children []Inline) []Span {
	var spans []Span
	for i, child := range children {
		text, ok := child.(*Text)
		if !ok {
			continue
		}
		spans = append(spans, Span{Key: i, Text: text.Text, Marks: text.Format.Marks()})
	}
	return spans
}

func renderPlainText(content string) iter.Seq[DisplayBlock] {
	return func(yield func(DisplayBlock) bool) {
		for i, line := range strings.Split(content, "\n") {
			block := DisplayBlock{Kind: KindLineBreak, Key: i}
			if strings.TrimSpace(line) != "" {
				block = DisplayBlock{Kind: KindParagraph, Key: i, Spans: []Span{{Text: line}}}
			}
			if !yield(block) {
				return
			}
		}
	}
}
