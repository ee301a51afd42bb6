package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node represents a node in the output tree. There are three node kinds:
// [Object] (insertion-ordered mapping from field name to node), [Array]
// (dense, index-addressable sequence with explicit null placeholders), and
// [Leaf] (an opaque serialized value, including null).
type Node interface {
	// nodeKind returns a string identifying the node kind for debugging.
	nodeKind() string
}

// Object is an output-tree object node. Fields keep the order of their
// first insertion, and that order is preserved by MarshalJSON.
type Object struct {
	keys   []string
	fields map[string]Node
}

// NewObject creates an empty object node.
func NewObject() *Object {
	return &Object{fields: make(map[string]Node)}
}

func (o *Object) nodeKind() string { return "object" }

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the field names in first-insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the node stored under name, if any.
func (o *Object) Get(name string) (Node, bool) {
	n, ok := o.fields[name]
	return n, ok
}

// Set stores a node under name. The first Set for a given name fixes its
// position in the field order; later Sets replace the value in place.
func (o *Object) Set(name string, n Node) {
	if _, ok := o.fields[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.fields[name] = n
}

// MarshalJSON renders the object with fields in first-insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalNode(o.fields[key])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Interface converts the object to plain data (map[string]any, []any, and
// scalar values). Field order is not representable in a Go map; use
// MarshalJSON when order matters.
func (o *Object) Interface() (any, error) {
	out := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		v, err := nodeInterface(o.fields[key])
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// Array is an output-tree array node. Slots never written to hold an
// explicit null placeholder, represented as a nil Node.
type Array struct {
	elems []Node
}

// NewArray creates an empty array node.
func NewArray() *Array {
	return &Array{}
}

func (a *Array) nodeKind() string { return "array" }

// Len returns the array length including null placeholders.
func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the node at index i, or nil for a null placeholder or an
// out-of-range index.
func (a *Array) At(i int) Node {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	return a.elems[i]
}

// grow pads the array with null placeholders until its length exceeds i.
func (a *Array) grow(i int) {
	for len(a.elems) <= i {
		a.elems = append(a.elems, nil)
	}
}

// set stores a node at index i, growing the array as needed.
func (a *Array) set(i int, n Node) {
	a.grow(i)
	a.elems[i] = n
}

// MarshalJSON renders the array with null placeholders as JSON null.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range a.elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, err := marshalNode(elem)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		buf.Write(v)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Interface converts the array to plain data. Null placeholders become nil.
func (a *Array) Interface() (any, error) {
	out := make([]any, len(a.elems))
	for i, elem := range a.elems {
		v, err := nodeInterface(elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Leaf is an output-tree leaf node holding a serialized value. The value
// is whatever the session's LeafEncoder produced: nil for an explicit
// null, a plain scalar, or a json.RawMessage for composite values.
type Leaf struct {
	Value any
}

func (l *Leaf) nodeKind() string { return "leaf" }

// MarshalJSON renders the leaf value.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Value)
}

// Interface converts the leaf to plain data, decoding raw JSON values and
// resolving json.Number literals to int64 or float64.
func (l *Leaf) Interface() (any, error) {
	switch v := l.Value.(type) {
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, err
		}
		return out, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return v.String(), nil
	}
	return l.Value, nil
}

// marshalNode renders a node, treating a nil Node as JSON null.
func marshalNode(n Node) ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n)
}

// nodeInterface converts a node to plain data, treating a nil Node as nil.
func nodeInterface(n Node) (any, error) {
	switch v := n.(type) {
	case nil:
		return nil, nil
	case *Object:
		return v.Interface()
	case *Array:
		return v.Interface()
	case *Leaf:
		return v.Interface()
	default:
		return nil, fmt.Errorf("unknown node kind %q", n.nodeKind())
	}
}
