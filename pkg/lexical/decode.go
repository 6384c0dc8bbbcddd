package lexical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedDocument is returned when the top-level shape of a serialized
// document is unusable (not JSON, no root, no root children). Problems below
// the root never produce it; such nodes decode as Unknown* instead.
var ErrMalformedDocument = errors.New("malformed document")

func malformed(reason string) error {
	return fmt.Errorf("lexical: %w: %s", ErrMalformedDocument, reason)
}

// Decode parses a serialized editor state
func Decode(serialized string) (*Document, error) {
	return DecodeBytes([]byte(serialized))
}

func DecodeBytes(data []byte) (*Document, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, malformed("not a JSON object")
	}

	rawRoot, ok := envelope["root"]
	if !ok || isNull(rawRoot) {
		return nil, malformed("missing root")
	}
	root, ok := asObject(rawRoot)
	if !ok {
		return nil, malformed("root is not an object")
	}
	rawChildren, ok := root.array("children")
	if !ok {
		return nil, malformed("missing root children")
	}

	doc := &Document{
		BlockAttrs: root.attrs(),
		Children:   make([]Block, 0, len(rawChildren)),
	}
	for _, raw := range rawChildren {
		doc.Children = append(doc.Children, decodeBlock(raw))
	}
	return doc, nil
}

func decodeBlock(raw json.RawMessage) Block {
	obj, ok := asObject(raw)
	if !ok {
		return unknownBlock("", raw)
	}
	typ, _ := obj.str("type")

	switch typ {
	case TypeParagraph:
		children, ok := obj.inlineChildren()
		if !ok {
			break
		}
		return &Paragraph{BlockAttrs: obj.attrs(), Children: children}

	case TypeQuote:
		children, ok := obj.inlineChildren()
		if !ok {
			break
		}
		return &Quote{BlockAttrs: obj.attrs(), Children: children}

	case TypeHeading:
		level, ok := headingLevel(obj)
		if !ok {
			break
		}
		children, ok := obj.inlineChildren()
		if !ok {
			break
		}
		return &Heading{BlockAttrs: obj.attrs("tag"), Level: level, Children: children}

	case TypeList:
		kind, _ := obj.str("listType")
		if kind == "" {
			break
		}
		rawItems, ok := obj.array("children")
		if !ok {
			break
		}
		start, _ := obj.integer("start")
		list := &List{
			BlockAttrs: obj.attrs("listType", "start"),
			Kind:       ListKind(kind),
			Start:      start,
			Items:      make([]Block, 0, len(rawItems)),
		}
		for _, rawItem := range rawItems {
			list.Items = append(list.Items, decodeListItem(rawItem))
		}
		return list
	}

	return unknownBlock(typ, raw)
}

func decodeListItem(raw json.RawMessage) Block {
	obj, ok := asObject(raw)
	if !ok {
		return unknownBlock("", raw)
	}
	typ, _ := obj.str("type")
	if typ != TypeListItem {
		return unknownBlock(typ, raw)
	}
	children, ok := obj.inlineChildren()
	if !ok {
		return unknownBlock(typ, raw)
	}
	value, _ := obj.integer("value")
	item := &ListItem{BlockAttrs: obj.attrs("value", "checked"), Value: value, Children: children}
	if checked, ok := obj.boolean("checked"); ok {
		item.Checked = &checked
	}
	return item
}

func decodeInline(raw json.RawMessage) Inline {
	obj, ok := asObject(raw)
	if !ok {
		return &UnknownInline{Raw: compact(raw)}
	}
	typ, _ := obj.str("type")
	if typ != TypeText {
		return &UnknownInline{Type: typ, Raw: compact(raw)}
	}
	text, ok := obj.strict("text")
	if !ok {
		return &UnknownInline{Type: typ, Raw: compact(raw)}
	}

	format, _ := obj.integer("format")
	detail, _ := obj.integer("detail")
	mode, _ := obj.str("mode")
	style, _ := obj.str("style")
	version, _ := obj.integer("version")
	return &Text{
		Text:    text,
		Format:  FormatMask(format),
		Detail:  detail,
		Mode:    mode,
		Style:   style,
		Version: version,
		Extra:   obj.extra(textKeys),
	}
}

func headingLevel(obj object) (int, bool) {
	tag, _ := obj.str("tag")
	switch tag {
	case "h1":
		return 1, true
	case "h2":
		return 2, true
	case "h3":
		return 3, true
	}
	return 0, false
}

func unknownBlock(typ string, raw json.RawMessage) *UnknownBlock {
	return &UnknownBlock{Type: typ, Raw: compact(raw)}
}

// object is one JSON node with lazily decoded members
type object map[string]json.RawMessage

func asObject(raw json.RawMessage) (object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// str reads an optional string member; null, absent or mistyped yield "".
func (o object) str(key string) (string, bool) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// strict reads a required string member: present and a JSON string.
func (o object) strict(key string) (string, bool) {
	raw, ok := o[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return "", false
	}
	return s, true
}

// integer accepts any JSON number and truncates it
func (o object) integer(key string) (int, bool) {
	raw, ok := o[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || isNull(raw) {
		return 0, false
	}
	return int(f), true
}

func (o object) boolean(key string) (bool, bool) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

func (o object) array(key string) ([]json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

var (
	elementKeys = []string{"type", "children", "direction", "format", "indent", "version"}
	textKeys    = []string{"type", "text", "detail", "format", "mode", "style", "version"}
)

// attrs reads the shared element attributes. Members outside the shared set
// and the node-specific keys land in Extra.
func (o object) attrs(nodeKeys ...string) BlockAttrs {
	direction, _ := o.str("direction")
	format, _ := o.str("format")
	indent, _ := o.integer("indent")
	if indent < 0 {
		indent = 0
	}
	version, _ := o.integer("version")
	return BlockAttrs{
		Direction: Direction(direction),
		Format:    format,
		Indent:    indent,
		Version:   version,
		Extra:     o.extra(elementKeys, nodeKeys...),
	}
}

// extra copies the members not named in known. It is nil when there are none.
func (o object) extra(known []string, more ...string) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for key, raw := range o {
		if slices.Contains(known, key) || slices.Contains(more, key) {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[key] = compact(raw)
	}
	return out
}

func (o object) inlineChildren() ([]Inline, bool) {
	raws, ok := o.array("children")
	if !ok {
		return nil, false
	}
	children := make([]Inline, 0, len(raws))
	for _, raw := range raws {
		children = append(children, decodeInline(raw))
	}
	return children, true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return buf.Bytes()
}
