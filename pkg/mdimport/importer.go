// Package mdimport converts Markdown into a lexical document so that content
// written outside the editor (seed data, migrated posts) is stored in the same
// serialized form as content written in it.
package mdimport

import (
	"strings"

	"blog-publishing-be/pkg/lexical"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Importer maps the subset of Markdown the document model can express.
// Headings deeper than h3 become h3, nested lists are dropped, code and links
// keep only their text.
type Importer struct {
	parser parser.Parser
}

func New() *Importer {
	return &Importer{parser: goldmark.DefaultParser()}
}

// Import converts src with a default importer
func Import(src []byte) *lexical.Document {
	return New().Import(src)
}

func (im *Importer) Import(src []byte) *lexical.Document {
	root := im.parser.Parse(text.NewReader(src))
	return lexical.NewDocument(im.blocks(root, src)...)
}

func (im *Importer) blocks(parent ast.Node, src []byte) []lexical.Block {
	var blocks []lexical.Block
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Heading:
			blocks = append(blocks, lexical.NewHeading(min(node.Level, 3), inlines(node, src)...))

		case *ast.Paragraph, *ast.TextBlock:
			blocks = append(blocks, lexical.NewParagraph(inlines(node, src)...))

		case *ast.Blockquote:
			blocks = append(blocks, lexical.NewQuote(flatten(node, src)...))

		case *ast.List:
			blocks = append(blocks, list(node, src))

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			blocks = append(blocks, lexical.NewParagraph(lexical.NewText(codeText(c, src), 0)))

		case *ast.ThematicBreak, *ast.HTMLBlock:
			// no counterpart in the document model
		}
	}
	return blocks
}

func list(node *ast.List, src []byte) *lexical.List {
	kind := lexical.ListUnordered
	if node.IsOrdered() {
		kind = lexical.ListOrdered
	}

	var items []*lexical.ListItem
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		items = append(items, lexical.NewListItem(flatten(c, src)...))
	}

	l := lexical.NewList(kind, items...)
	if node.IsOrdered() && node.Start > 1 {
		l.Start = node.Start
		for i, item := range items {
			item.Value = node.Start + i
		}
	}
	return l
}

// flatten joins the inline content of every paragraph-like child with a space.
// Nested lists are skipped since list items hold text only.
func flatten(parent ast.Node, src []byte) []lexical.Inline {
	var out []lexical.Inline
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			if len(out) > 0 {
				appendText(&out, " ", 0)
			}
			collect(c, src, 0, &out)
		case *ast.Blockquote:
			if len(out) > 0 {
				appendText(&out, " ", 0)
			}
			out = append(out, flatten(c, src)...)
		}
	}
	return out
}

func inlines(parent ast.Node, src []byte) []lexical.Inline {
	var out []lexical.Inline
	collect(parent, src, 0, &out)
	return out
}

func collect(parent ast.Node, src []byte, mask lexical.FormatMask, out *[]lexical.Inline) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			appendText(out, string(node.Segment.Value(src)), mask)
			if node.SoftLineBreak() || node.HardLineBreak() {
				appendText(out, " ", mask)
			}
		case *ast.String:
			appendText(out, string(node.Value), mask)
		case *ast.Emphasis:
			m := mask | lexical.FormatItalic
			if node.Level >= 2 {
				m = mask | lexical.FormatBold
			}
			collect(node, src, m, out)
		case *ast.AutoLink:
			appendText(out, string(node.URL(src)), mask)
		case *ast.RawHTML:
			// dropped
		default:
			// code spans, links, images: keep the text underneath
			collect(node, src, mask, out)
		}
	}
}

// appendText merges with the previous text node when the format matches
func appendText(out *[]lexical.Inline, s string, mask lexical.FormatMask) {
	if s == "" {
		return
	}
	if n := len(*out); n > 0 {
		if prev, ok := (*out)[n-1].(*lexical.Text); ok && prev.Format == mask {
			prev.Text += s
			return
		}
	}
	*out = append(*out, lexical.NewText(s, mask))
}

func codeText(node ast.Node, src []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
