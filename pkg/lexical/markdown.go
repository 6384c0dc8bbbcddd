package lexical

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown converts display blocks to Markdown for export.
// Markdown has no underline, so underline is written as <u>.
func Markdown(blocks iter.Seq[DisplayBlock]) (string, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	for block := range blocks {
		switch block.Kind {
		case KindHeading:
			text := inlineMarkdown(block.Spans)
			switch block.Level {
			case 1:
				doc.H1(text)
			case 2:
				doc.H2(text)
			default:
				doc.H3(text)
			}
		case KindParagraph:
			doc.PlainText(inlineMarkdown(block.Spans))
		case KindQuote:
			doc.Blockquote(inlineMarkdown(block.Spans))
		case KindList:
			items := make([]string, 0, len(block.Items))
			for _, item := range block.Items {
				text := inlineMarkdown(item.Spans)
				if item.Checked != nil {
					text = taskMarker(*item.Checked) + text
				}
				items = append(items, text)
			}
			if block.Ordered {
				doc.OrderedList(items...)
			} else {
				doc.BulletList(items...)
			}
		case KindLineBreak:
			// blank line below covers it
		}
		doc.LF()
	}

	if err := doc.Build(); err != nil {
		return "", fmt.Errorf("build markdown: %w", err)
	}
	return buf.String(), nil
}

func inlineMarkdown(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		text := EscapeMarkdown(span.Text)
		for _, mark := range span.Marks {
			switch mark {
			case MarkBold:
				text = md.Bold(text)
			case MarkItalic:
				text = md.Italic(text)
			case MarkUnderline:
				text = "<u>" + text + "</u>"
			}
		}
		sb.WriteString(text)
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
)

// EscapeMarkdown keeps literal text from being read as Markdown syntax
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func taskMarker(checked bool) string {
	if checked {
		return "[x] "
	}
	return "[ ] "
}
