package lexical

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// PlainText flattens display blocks into unformatted text, one line per
// paragraph, heading, quote or list item.
func PlainText(blocks iter.Seq[DisplayBlock]) string {
	var lines []string
	for block := range blocks {
		switch block.Kind {
		case KindList:
			for _, item := range block.Items {
				lines = append(lines, spanText(item.Spans))
			}
		case KindLineBreak:
			lines = append(lines, "")
		default:
			lines = append(lines, spanText(block.Spans))
		}
	}
	return strings.Join(lines, "\n")
}

func spanText(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Excerpt returns at most limit runes of text with whitespace collapsed,
// cut back to a word boundary and suffixed with an ellipsis when truncated.
func Excerpt(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(collapsed) <= limit {
		return collapsed
	}

	runes := []rune(collapsed)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:.") + "…"
}
