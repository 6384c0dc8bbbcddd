package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLFormatWrapsNestDeterministically(t *testing.T) {
	doc := NewDocument(NewParagraph(
		NewText("plain ", 0),
		NewText("all", FormatBold|FormatItalic|FormatUnderline),
	))

	out := HTML(RenderDocument(doc))
	assert.Equal(t, "<p>plain <u><em><strong>all</strong></em></u></p>", out)
}

func TestHTMLBlocks(t *testing.T) {
	doc := NewDocument(
		NewHeading(2, NewText("Intro", 0)),
		NewQuote(NewText("quoted", 0)),
		NewList(ListOrdered, NewListItem(NewText("a", 0)), NewListItem(NewText("b", 0))),
		NewList(ListUnordered, NewListItem(NewText("c", 0))),
	)

	out := HTML(RenderDocument(doc))
	assert.Equal(t,
		"<h2>Intro</h2><blockquote>quoted</blockquote><ol><li>a</li><li>b</li></ol><ul><li>c</li></ul>",
		out)
}

func TestHTMLEscapesText(t *testing.T) {
	doc := NewDocument(NewParagraph(NewText(`<script>alert(1)</script> & more`, FormatBold)))

	out := HTML(RenderDocument(doc))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&amp; more")
}

func TestHTMLDirectionAndAlignment(t *testing.T) {
	p := NewParagraph(NewText("مرحبا", 0))
	p.Direction = DirectionRTL
	p.Format = "center"

	left := NewParagraph(NewText("left", 0))
	left.Format = "left"

	out := HTML(RenderDocument(NewDocument(p, left)))
	assert.Contains(t, out, `dir="rtl"`)
	assert.Contains(t, out, "text-align")
	assert.Contains(t, out, "center")
	assert.Contains(t, out, "<p>left</p>")
}

func TestHTMLPlainTextFallback(t *testing.T) {
	out := HTML(DecodeAndRender("Line one\n\nLine <two>"))
	assert.Equal(t, "<p>Line one</p><br/><p>Line &lt;two&gt;</p>", out)
}
