package lexical

import (
	"fmt"
	"html"
	"iter"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var alignments = []string{"left", "start", "center", "right", "end", "justify"}

var markTags = map[Mark]string{
	MarkBold:      "strong",
	MarkItalic:    "em",
	MarkUnderline: "u",
}

// HTMLPolicy is applied to every HTML rendering. It is the UGC policy plus
// the block alignment styles the renderer emits.
var HTMLPolicy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("text-align").MatchingEnum(alignments...).OnElements("p", "h1", "h2", "h3", "blockquote", "ol", "ul", "li")
	return p
}

// HTML renders display blocks to sanitized markup
func HTML(blocks iter.Seq[DisplayBlock]) string {
	var sb strings.Builder
	for block := range blocks {
		writeBlock(&sb, block)
	}
	return HTMLPolicy.Sanitize(sb.String())
}

func writeBlock(sb *strings.Builder, block DisplayBlock) {
	switch block.Kind {
	case KindLineBreak:
		sb.WriteString("<br/>")
	case KindParagraph:
		writeElement(sb, "p", block)
	case KindHeading:
		writeElement(sb, fmt.Sprintf("h%d", block.Level), block)
	case KindQuote:
		writeElement(sb, "blockquote", block)
	case KindListItem:
		writeElement(sb, "li", block)
	case KindList:
		tag := "ul"
		if block.Ordered {
			tag = "ol"
		}
		sb.WriteString("<" + tag + blockAttributes(block) + ">")
		for _, item := range block.Items {
			writeBlock(sb, item)
		}
		sb.WriteString("</" + tag + ">")
	}
}

func writeElement(sb *strings.Builder, tag string, block DisplayBlock) {
	sb.WriteString("<" + tag + blockAttributes(block) + ">")
	for _, span := range block.Spans {
		writeSpan(sb, span)
	}
	sb.WriteString("</" + tag + ">")
}

func writeSpan(sb *strings.Builder, span Span) {
	text := html.EscapeString(span.Text)
	for _, mark := range span.Marks {
		tag := markTags[mark]
		text = "<" + tag + ">" + text + "</" + tag + ">"
	}
	sb.WriteString(text)
}

func blockAttributes(block DisplayBlock) string {
	var attrs string
	if block.Direction == DirectionLTR || block.Direction == DirectionRTL {
		attrs += fmt.Sprintf(` dir="%s"`, block.Direction)
	}
	for _, a := range alignments {
		if block.Align == a && a != "left" && a != "start" {
			attrs += fmt.Sprintf(` style="text-align: %s"`, a)
			break
		}
	}
	return attrs
}
