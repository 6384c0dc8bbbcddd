package main

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"blog-publishing-be/pkg/lexical"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	quoteColor   = color.New(color.FgHiBlack)
	bulletColor  = color.New(color.FgYellow)
)

var markAttributes = map[lexical.Mark]color.Attribute{
	lexical.MarkBold:      color.Bold,
	lexical.MarkItalic:    color.Italic,
	lexical.MarkUnderline: color.Underline,
}

// writeTerminal prints display blocks with ANSI styling. Blocks are separated
// by a blank line, as a reader would see them on the page.
func writeTerminal(w io.Writer, blocks iter.Seq[lexical.DisplayBlock]) error {
	first := true
	for block := range blocks {
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprint(w, terminalBlock(block)); err != nil {
			return err
		}
	}
	return nil
}

func terminalBlock(block lexical.DisplayBlock) string {
	switch block.Kind {
	case lexical.KindHeading:
		return headingColor.Sprint(strings.Repeat("#", block.Level)+" "+plainSpans(block.Spans)) + "\n"
	case lexical.KindQuote:
		return quoteColor.Sprint("│ ") + styledSpans(block.Spans) + "\n"
	case lexical.KindList:
		var sb strings.Builder
		for i, item := range block.Items {
			marker := "•"
			switch {
			case block.Ordered:
				marker = fmt.Sprintf("%d.", i+1)
			case item.Checked != nil && *item.Checked:
				marker = "☑"
			case item.Checked != nil:
				marker = "☐"
			}
			sb.WriteString("  " + bulletColor.Sprint(marker) + " " + styledSpans(item.Spans) + "\n")
		}
		return sb.String()
	case lexical.KindLineBreak:
		return ""
	default:
		return styledSpans(block.Spans) + "\n"
	}
}

func styledSpans(spans []lexical.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		if len(span.Marks) == 0 {
			sb.WriteString(span.Text)
			continue
		}
		attrs := make([]color.Attribute, 0, len(span.Marks))
		for _, m := range span.Marks {
			attrs = append(attrs, markAttributes[m])
		}
		sb.WriteString(color.New(attrs...).Sprint(span.Text))
	}
	return sb.String()
}

func plainSpans(spans []lexical.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}
