package green

import (
	"encoding/json"
	"fmt"
)

// Serialization follows spec.md §4.7's format-agnostic canonical shape: a
// Token encodes as {kind, text}, a Node as {kind, children}, and each child
// in children is a tagged sum, {"Node": {...}} or {"Token": {...}}. JSON is
// the concrete self-describing encoding chosen here (the teacher carries no
// serialization dependency of its own, so none of its libraries apply; see
// DESIGN.md for why the standard library's encoding/json, rather than a
// third-party encoder, is used for this one concern).
//
// Deserialization is the load-bearing half: every leaf and subtree decoded
// is routed through a Builder, so identical parts of the input collapse
// onto shared storage exactly as if they had been built directly (spec.md
// §8 property 7, scenario S6).

type tokenDoc struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type nodeDoc struct {
	Kind     Kind              `json:"kind"`
	Children []json.RawMessage `json:"children"`
}

// EncodeToken renders t in the canonical {kind, text} shape.
func EncodeToken(t *Token) ([]byte, error) {
	return json.Marshal(tokenDoc{Kind: t.Kind(), Text: t.Text()})
}

// EncodeNode renders n in the canonical {kind, children} shape, with each
// child recursively encoded as a tagged element.
func EncodeNode(n *Node) ([]byte, error) {
	children := make([]json.RawMessage, 0, n.NumChildren())

	for el := range n.Children().All() {
		raw, err := EncodeElement(el)
		if err != nil {
			return nil, err
		}

		children = append(children, raw)
	}

	return json.Marshal(nodeDoc{Kind: n.Kind(), Children: children})
}

// EncodeElement renders el as the tagged sum spec.md §4.7 calls for:
// {"Node": <node>} or {"Token": <token>}.
func EncodeElement(el Element) (json.RawMessage, error) {
	if t, ok := el.Token(); ok {
		raw, err := EncodeToken(t)
		if err != nil {
			return nil, err
		}

		return json.Marshal(map[string]json.RawMessage{"Token": raw})
	}

	n, _ := el.Node()

	raw, err := EncodeNode(n)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]json.RawMessage{"Node": raw})
}

// DecodeToken interns the token described by data through b.
func (b *Builder) DecodeToken(data []byte) (*Token, error) {
	var doc tokenDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("greentree: decode token: %w", err)
	}

	return b.Token(doc.Kind, doc.Text), nil
}

// DecodeNode interns the node described by data, and recursively every
// child it names, through b.
//
// Exception safety (spec.md §4.3 point 4, §7's one exception): if decoding
// child k fails, every child 0..k already interned and retained is
// released before the error propagates, so a failed deserialization never
// leaks a dangling extra reference into the pool.
func (b *Builder) DecodeNode(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("greentree: decode node: %w", err)
	}

	children := make([]Element, 0, len(doc.Children))

	for _, raw := range doc.Children {
		el, err := b.DecodeElement(raw)
		if err != nil {
			releaseElements(children)

			return nil, err
		}

		children = append(children, el)
	}

	return b.Node(doc.Kind, children), nil
}

// DecodeElement interns whichever of Node or Token data describes, through
// b. It accepts both the tagged form ({"Node": ...} / {"Token": ...}) and
// the untagged, self-describing form (a bare object carrying "children" or
// "text"), per spec.md §4.7: "self-describing formats may additionally
// accept the untagged form."
func (b *Builder) DecodeElement(data []byte) (Element, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Element{}, fmt.Errorf("greentree: decode element: %w", err)
	}

	if raw, ok := probe["Node"]; ok {
		n, err := b.DecodeNode(raw)
		if err != nil {
			return Element{}, err
		}

		return OfNode[*Node, *Token](n), nil
	}

	if raw, ok := probe["Token"]; ok {
		t, err := b.DecodeToken(raw)
		if err != nil {
			return Element{}, err
		}

		return OfToken[*Node, *Token](t), nil
	}

	if _, ok := probe["children"]; ok {
		n, err := b.DecodeNode(data)
		if err != nil {
			return Element{}, err
		}

		return OfNode[*Node, *Token](n), nil
	}

	if _, ok := probe["text"]; ok {
		t, err := b.DecodeToken(data)
		if err != nil {
			return Element{}, err
		}

		return OfToken[*Node, *Token](t), nil
	}

	return Element{}, fmt.Errorf("greentree: decode element: neither Node/Token tag nor children/text field present")
}

func releaseElements(els []Element) {
	for _, el := range els {
		if t, ok := el.Token(); ok {
			t.Release()

			continue
		}

		if n, ok := el.Node(); ok {
			n.Release()
		}
	}
}
