package lexical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Wire shapes. Readers of the serialized state expect every attribute to be
// present, including zero values. The one exception is checked, which the
// editor only writes for check list items.

type wireElement struct {
	Direction Direction `json:"direction"`
	Format    string    `json:"format"`
	Indent    int       `json:"indent"`
	Type      string    `json:"type"`
	Version   int       `json:"version"`
}

type wireRoot struct {
	Children []Block `json:"children"`
	wireElement
}

type wireInlineParent struct {
	Children []Inline `json:"children"`
	wireElement
}

type wireHeading struct {
	wireInlineParent
	Tag string `json:"tag"`
}

type wireList struct {
	Children []Block `json:"children"`
	wireElement
	ListType ListKind `json:"listType"`
	Start    int      `json:"start"`
}

type wireListItem struct {
	wireInlineParent
	Value   int   `json:"value"`
	Checked *bool `json:"checked,omitempty"`
}

type wireText struct {
	Detail  int        `json:"detail"`
	Format  FormatMask `json:"format"`
	Mode    string     `json:"mode"`
	Style   string     `json:"style"`
	Text    string     `json:"text"`
	Type    string     `json:"type"`
	Version int        `json:"version"`
}

// Encode serializes the document to the string stored as a post body
func Encode(doc *Document) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Marshal is Encode returning bytes
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("lexical: cannot encode nil document")
	}
	root, err := marshalWithExtra(wireRoot{
		Children:    nonNilBlocks(doc.Children),
		wireElement: element(TypeRoot, doc.BlockAttrs),
	}, doc.Extra)
	if err != nil {
		return nil, fmt.Errorf("lexical: encode document: %w", err)
	}
	envelope := struct {
		Root json.RawMessage `json:"root"`
	}{Root: root}
	data, err := marshalWithExtra(envelope, nil)
	if err != nil {
		return nil, fmt.Errorf("lexical: encode document: %w", err)
	}
	return data, nil
}

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(inlineParent(TypeParagraph, p.BlockAttrs, p.Children), p.Extra)
}

func (q *Quote) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(inlineParent(TypeQuote, q.BlockAttrs, q.Children), q.Extra)
}

func (h *Heading) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(wireHeading{
		wireInlineParent: inlineParent(TypeHeading, h.BlockAttrs, h.Children),
		Tag:              fmt.Sprintf("h%d", ClampHeadingLevel(h.Level)),
	}, h.Extra)
}

func (l *List) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(wireList{
		Children:    nonNilBlocks(l.Items),
		wireElement: element(TypeList, l.BlockAttrs),
		ListType:    l.Kind,
		Start:       l.Start,
	}, l.Extra)
}

func (li *ListItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(wireListItem{
		wireInlineParent: inlineParent(TypeListItem, li.BlockAttrs, li.Children),
		Value:            li.Value,
		Checked:          li.Checked,
	}, li.Extra)
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(wireText{
		Detail:  t.Detail,
		Format:  t.Format,
		Mode:    t.Mode,
		Style:   t.Style,
		Text:    t.Text,
		Type:    TypeText,
		Version: t.Version,
	}, t.Extra)
}

func (b *UnknownBlock) MarshalJSON() ([]byte, error) {
	return rawOrNull(b.Raw), nil
}

func (i *UnknownInline) MarshalJSON() ([]byte, error) {
	return rawOrNull(i.Raw), nil
}

func element(typ string, attrs BlockAttrs) wireElement {
	return wireElement{
		Direction: attrs.Direction,
		Format:    attrs.Format,
		Indent:    attrs.Indent,
		Type:      typ,
		Version:   attrs.Version,
	}
}

func inlineParent(typ string, attrs BlockAttrs, children []Inline) wireInlineParent {
	if children == nil {
		children = []Inline{}
	}
	return wireInlineParent{Children: children, wireElement: element(typ, attrs)}
}

func nonNilBlocks(blocks []Block) []Block {
	if blocks == nil {
		return []Block{}
	}
	return blocks
}

// marshalWithExtra encodes v and appends the extra members in key order.
// Keys v already writes win over extra.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var written map[string]json.RawMessage
	if err := json.Unmarshal(data, &written); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(data[:len(data)-1])
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if _, taken := written[key]; taken {
			continue
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(rawOrNull(extra[key]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func rawOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
