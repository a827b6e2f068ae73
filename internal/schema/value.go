package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds
const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Sequence
	Mapping
)

// Value is the closed variant type used to retain YAML content that is
// not part of the recognized schema. Unknown keys are stored as Values
// so they survive a parse/serialize cycle without loss, which is what
// keeps the editor usable against newer espanso versions.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Seq   []Value
	Map   []MapEntry
}

// MapEntry is one key/value pair of a Mapping value. Entries are kept
// as a slice so key order survives round-trips.
type MapEntry struct {
	Key   string
	Value Value
}

// NullValue returns the null variant.
func NullValue() Value {
	return Value{Kind: Null}
}

// BoolValue returns a boolean variant.
func BoolValue(b bool) Value {
	return Value{Kind: Bool, Bool: b}
}

// IntValue returns an integer variant.
func IntValue(i int64) Value {
	return Value{Kind: Int, Int: i}
}

// FloatValue returns a float variant.
func FloatValue(f float64) Value {
	return Value{Kind: Float, Float: f}
}

// StringValue returns a string variant.
func StringValue(s string) Value {
	return Value{Kind: String, Str: s}
}

// valueFromNode converts a decoded yaml.Node into a Value.
func valueFromNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return NullValue(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NullValue(), nil
		}
		return valueFromNode(node.Content[0])
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	case yaml.ScalarNode:
		return scalarFromNode(node)
	case yaml.SequenceNode:
		seq := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := valueFromNode(child)
			if err != nil {
				return Value{}, err
			}
			seq = append(seq, v)
		}
		return Value{Kind: Sequence, Seq: seq}, nil
	case yaml.MappingNode:
		entries := make([]MapEntry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := valueFromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: node.Content[i].Value, Value: v})
		}
		return Value{Kind: Mapping, Map: entries}, nil
	}
	return Value{}, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			// Out-of-range integers fall back to their string form
			return StringValue(node.Value), nil
		}
		return IntValue(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	default:
		// !!str, !!timestamp and any custom tags are carried as strings
		return StringValue(node.Value), nil
	}
}

// node converts a Value back into a yaml.Node for serialization.
func (v Value) node() *yaml.Node {
	switch v.Kind {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return encodeScalar(v.Bool)
	case Int:
		return encodeScalar(v.Int)
	case Float:
		return encodeScalar(v.Float)
	case String:
		return encodeScalar(v.Str)
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range v.Seq {
			n.Content = append(n.Content, child.node())
		}
		return n
	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, entry := range v.Map {
			n.Content = append(n.Content, encodeScalar(entry.Key), entry.Value.node())
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// encodeScalar lets the yaml encoder pick tag and quoting, so a string
// like "42" or "true" round-trips as a string.
func encodeScalar(goval interface{}) *yaml.Node {
	n := &yaml.Node{}
	if err := n.Encode(goval); err != nil {
		// Encoding native scalars cannot fail; keep a null placeholder
		// rather than panicking inside the serializer.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return n
}

// Equal reports deep semantic equality of two Values.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == other.Bool
	case Int:
		return v.Int == other.Int
	case Float:
		return v.Float == other.Float
	case String:
		return v.Str == other.Str
	case Sequence:
		if len(v.Seq) != len(other.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equal(other.Seq[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for i := range v.Map {
			if v.Map[i].Key != other.Map[i].Key || !v.Map[i].Value.Equal(other.Map[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of the Value.
func (v Value) Clone() Value {
	out := v
	if v.Seq != nil {
		out.Seq = make([]Value, len(v.Seq))
		for i := range v.Seq {
			out.Seq[i] = v.Seq[i].Clone()
		}
	}
	if v.Map != nil {
		out.Map = make([]MapEntry, len(v.Map))
		for i := range v.Map {
			out.Map[i] = MapEntry{Key: v.Map[i].Key, Value: v.Map[i].Value.Clone()}
		}
	}
	return out
}

// Fields is an ordered unknown-field bag attached to Config, Match and
// MatchFile values.
type Fields []MapEntry

// Get returns the value stored under key, if present.
func (f Fields) Get(key string) (Value, bool) {
	for _, entry := range f {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// Set replaces or appends the value stored under key.
func (f Fields) Set(key string, value Value) Fields {
	for i, entry := range f {
		if entry.Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, MapEntry{Key: key, Value: value})
}

// Delete removes key from the bag, if present.
func (f Fields) Delete(key string) Fields {
	for i, entry := range f {
		if entry.Key == key {
			return append(f[:i], f[i+1:]...)
		}
	}
	return f
}

// Equal reports semantic equality of two bags, including order.
func (f Fields) Equal(other Fields) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i].Key != other[i].Key || !f[i].Value.Equal(other[i].Value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the bag.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for i := range f {
		out[i] = MapEntry{Key: f[i].Key, Value: f[i].Value.Clone()}
	}
	return out
}
