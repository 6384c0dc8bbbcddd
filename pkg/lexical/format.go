package lexical

// FormatMask is the inline format bitset of a text node.
// Bits are independent; bits beyond underline have no effect on rendering.
type FormatMask int

const (
	FormatBold      FormatMask = 1 << 0
	FormatItalic    FormatMask = 1 << 1
	FormatUnderline FormatMask = 1 << 2
)

// Mark is one inline wrap applied to a span of text
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
)

var markOrder = []struct {
	bit  FormatMask
	mark Mark
}{
	{FormatBold, MarkBold},
	{FormatItalic, MarkItalic},
	{FormatUnderline, MarkUnderline},
}

func (m FormatMask) Has(f FormatMask) bool {
	return m&f == f
}

// Marks returns the wraps for the mask, innermost first: bold, italic, underline.
// The result is nil for a mask with no known bits.
func (m FormatMask) Marks() []Mark {
	var marks []Mark
	for _, o := range markOrder {
		if m.Has(o.bit) {
			marks = append(marks, o.mark)
		}
	}
	return marks
}
