// Package value defines the structured values accepted in data mode.
//
// A Value is an immutable snapshot of one decoded document: scalars,
// ordered sequences, and mappings whose key order matches the source.
// Values are decoded once from YAML or JSON input and consumed once by
// the tree conversion; they carry no identity beyond their position.
package value

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull is the absent/nothing value.
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating-point scalar.
	KindFloat
	// KindString is a text scalar.
	KindString
	// KindBytes is a binary blob.
	KindBytes
	// KindTime is a date or timestamp scalar.
	KindTime
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMapping is an ordered list of key/value entries.
	KindMapping
	// KindOpaque is a payload with an unrecognized custom type.
	KindOpaque
)

// Entry is one mapping entry. Entries preserve source order.
type Entry struct {
	Key string
	Val Value
}

// Value is a tagged union over the supported structured shapes. Exactly
// one payload field is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Bytes []byte
	Time  time.Time
	Seq   []Value
	Map   []Entry
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// BoolVal returns a boolean value.
func BoolVal(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntVal returns an integer value.
func IntVal(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatVal returns a float value.
func FloatVal(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// StringVal returns a text value.
func StringVal(s string) Value { return Value{Kind: KindString, Str: s} }

// BytesVal returns a binary value.
func BytesVal(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// TimeVal returns a timestamp value.
func TimeVal(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// SeqVal returns a sequence value.
func SeqVal(vals ...Value) Value { return Value{Kind: KindSequence, Seq: vals} }

// MapVal returns a mapping value with the given ordered entries.
func MapVal(entries ...Entry) Value { return Value{Kind: KindMapping, Map: entries} }

// Opaque returns a value for payloads of an unrecognized type.
func Opaque() Value { return Value{Kind: KindOpaque} }

// Text returns the leaf label for a scalar value. Binary and opaque
// payloads render fixed placeholders rather than their contents.
// Sequences and mappings have no scalar form and render a placeholder.
func (v Value) Text() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindBytes:
		return "binary"
	case KindTime:
		return v.Time.Format(time.RFC3339)
	case KindOpaque:
		return "custom"
	default:
		return "custom"
	}
}

// DecodeAll reads every document from r and materializes them into a
// single Value. One document yields its value directly; multiple
// documents yield a sequence. An empty input yields null. The entire
// input is consumed before any value is returned.
func DecodeAll(r io.Reader) (Value, error) {
	dec := yaml.NewDecoder(r)

	var docs []Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Null(), fmt.Errorf("failed to decode input: %w", err)
		}
		val, err := fromNode(&node)
		if err != nil {
			return Null(), err
		}
		docs = append(docs, val)
	}

	switch len(docs) {
	case 0:
		return Null(), nil
	case 1:
		return docs[0], nil
	default:
		return SeqVal(docs...), nil
	}
}

// fromNode converts one decoded YAML node into a Value, preserving
// mapping key order and following alias references.
func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromNode(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return Null(), nil
		}
		return fromNode(n.Alias)

	case yaml.SequenceNode:
		vals := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return Null(), err
			}
			vals = append(vals, v)
		}
		return SeqVal(vals...), nil

	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return Null(), err
			}
			entries = append(entries, Entry{Key: n.Content[i].Value, Val: v})
		}
		return MapVal(entries...), nil

	case yaml.ScalarNode:
		return fromScalar(n)

	default:
		return Opaque(), nil
	}
}

// fromScalar resolves a scalar node by its tag.
func fromScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null", "":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Null(), fmt.Errorf("invalid bool %q: %w", n.Value, err)
		}
		return BoolVal(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Null(), fmt.Errorf("invalid int %q: %w", n.Value, err)
		}
		return IntVal(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Null(), fmt.Errorf("invalid float %q: %w", n.Value, err)
		}
		return FloatVal(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return Null(), fmt.Errorf("invalid timestamp %q: %w", n.Value, err)
		}
		return TimeVal(t), nil
	case "!!binary":
		var b []byte
		if err := n.Decode(&b); err != nil {
			return Null(), fmt.Errorf("invalid binary payload: %w", err)
		}
		return BytesVal(b), nil
	case "!!str":
		return StringVal(n.Value), nil
	default:
		// Custom application tags carry payloads we cannot interpret.
		return Opaque(), nil
	}
}
