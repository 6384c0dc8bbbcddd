package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"blog-publishing-be/pkg/lexical"
)

const (
	wordsPerMinute = 200
	excerptLength  = 200
)

// normalizeContent turns request content into the string that gets stored.
// An editor state object must decode and is re-encoded canonically. A JSON
// string is kept as a document when it parses as one, otherwise it is plain
// text. Anything else is rejected.
func normalizeContent(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: content is empty", ErrInvalidContent)
	}

	switch trimmed[0] {
	case '{':
		doc, err := lexical.DecodeBytes(trimmed)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		return lexical.Encode(doc)

	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		if doc, err := lexical.Decode(s); err == nil {
			return lexical.Encode(doc)
		}
		return s, nil

	default:
		return "", fmt.Errorf("%w: expected an editor state object or a string", ErrInvalidContent)
	}
}

// contentStats derives the listing fields from a stored body
func contentStats(stored string) (excerpt string, readingTime int) {
	text := lexical.PlainText(lexical.DecodeAndRender(stored))
	words := lexical.WordCount(text)
	readingTime = max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
	return lexical.Excerpt(text, excerptLength), readingTime
}
