package document

import (
	"fmt"
	"math"
)

// Kind identifies the variant held by a Node.
type Kind uint8

const (
	// KindInvalid is the zero Kind; only the zero Node has it.
	KindInvalid Kind = iota
	// KindObject is a string-keyed, insertion-ordered member list.
	KindObject
	// KindArray is an ordered list of nodes.
	KindArray
	// KindString is a string scalar.
	KindString
	// KindNumber is a numeric scalar (integer-ness is tracked, see IsInt).
	KindNumber
	// KindBool is a boolean scalar.
	KindBool
	// KindNull is the JSON null.
	KindNull
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// Member is a single key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is one node of a document tree. The zero value is invalid; use the
// constructors. Nodes decoded from input documents must be treated as
// read-only by callers that share them.
type Node struct {
	kind     Kind
	members  []Member
	items    []*Node
	str      string
	intVal   int64
	floatVal float64
	isInt    bool
	boolVal  bool
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: KindObject}
}

// NewArray returns an empty array node.
func NewArray() *Node {
	return &Node{kind: KindArray}
}

// String returns a string scalar node.
func String(s string) *Node {
	return &Node{kind: KindString, str: s}
}

// Int returns an integer number node.
func Int(i int64) *Node {
	return &Node{kind: KindNumber, isInt: true, intVal: i, floatVal: float64(i)}
}

// Float returns a number node. Values that are mathematically integers are
// still reported as floats; use Int for integer samples.
func Float(f float64) *Node {
	return &Node{kind: KindNumber, floatVal: f}
}

// Bool returns a boolean scalar node.
func Bool(b bool) *Node {
	return &Node{kind: KindBool, boolVal: b}
}

// Null returns a null node.
func Null() *Node {
	return &Node{kind: KindNull}
}

// Kind returns the variant of the node. A nil node reports KindInvalid.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// Str returns the string value, or "" if the node is not a string.
func (n *Node) Str() string {
	if n == nil || n.kind != KindString {
		return ""
	}
	return n.str
}

// AsString returns the string value and whether the node is a string.
func (n *Node) AsString() (string, bool) {
	if n == nil || n.kind != KindString {
		return "", false
	}
	return n.str, true
}

// IsInt reports whether the node is a number that was written as an integer.
func (n *Node) IsInt() bool {
	return n != nil && n.kind == KindNumber && n.isInt
}

// Int64 returns the integer value of a number node. Non-integer numbers are
// truncated; non-numbers return 0.
func (n *Node) Int64() int64 {
	if n == nil || n.kind != KindNumber {
		return 0
	}
	if n.isInt {
		return n.intVal
	}
	return int64(n.floatVal)
}

// Float64 returns the numeric value, or 0 for non-numbers.
func (n *Node) Float64() float64 {
	if n == nil || n.kind != KindNumber {
		return 0
	}
	return n.floatVal
}

// AsBool returns the boolean value and whether the node is a bool.
func (n *Node) AsBool() (bool, bool) {
	if n == nil || n.kind != KindBool {
		return false, false
	}
	return n.boolVal, true
}

// Len returns the member count of an object, the item count of an array,
// and 0 for all other kinds.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindObject:
		return len(n.members)
	case KindArray:
		return len(n.items)
	default:
		return 0
	}
}

// Get returns the value for key in an object node, or nil if absent or the
// node is not an object.
func (n *Node) Get(key string) *Node {
	if n == nil || n.kind != KindObject {
		return nil
	}
	for _, m := range n.members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Has reports whether an object node contains key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Set replaces the value for key if present, otherwise appends a new member
// at the end. It is a no-op on non-object nodes. Returns n for chaining.
func (n *Node) Set(key string, value *Node) *Node {
	if n == nil || n.kind != KindObject {
		return n
	}
	for i, m := range n.members {
		if m.Key == key {
			n.members[i].Value = value
			return n
		}
	}
	n.members = append(n.members, Member{Key: key, Value: value})
	return n
}

// Delete removes key from an object node and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if n == nil || n.kind != KindObject {
		return false
	}
	for i, m := range n.members {
		if m.Key == key {
			n.members = append(n.members[:i], n.members[i+1:]...)
			return true
		}
	}
	return false
}

// Members returns the ordered member list of an object node. The returned
// slice is the node's backing storage; callers must not modify it.
func (n *Node) Members() []Member {
	if n == nil || n.kind != KindObject {
		return nil
	}
	return n.members
}

// Keys returns the object keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindObject {
		return nil
	}
	keys := make([]string, len(n.members))
	for i, m := range n.members {
		keys[i] = m.Key
	}
	return keys
}

// Append adds items to the end of an array node. Returns n for chaining.
func (n *Node) Append(items ...*Node) *Node {
	if n == nil || n.kind != KindArray {
		return n
	}
	n.items = append(n.items, items...)
	return n
}

// Items returns the backing item slice of an array node; callers must not
// modify it.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindArray {
		return nil
	}
	return n.items
}

// Index returns the i-th item of an array node, or nil if out of range.
func (n *Node) Index(i int) *Node {
	if n == nil || n.kind != KindArray || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		kind:     n.kind,
		str:      n.str,
		intVal:   n.intVal,
		floatVal: n.floatVal,
		isInt:    n.isInt,
		boolVal:  n.boolVal,
	}
	if n.members != nil {
		out.members = make([]Member, len(n.members))
		for i, m := range n.members {
			out.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	if n.items != nil {
		out.items = make([]*Node, len(n.items))
		for i, item := range n.items {
			out.items[i] = item.Clone()
		}
	}
	return out
}

// Equal reports deep semantic equality of two nodes. Object member order is
// ignored (field values matter, position does not), matching the engine's
// idempotent re-encoding guarantee.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			if !Equal(m.Value, b.Get(m.Key)) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.floatVal == b.floatVal
	case KindBool:
		return a.boolVal == b.boolVal
	default:
		return true
	}
}

// Interface converts the node to plain Go values (map[string]any, []any,
// string, float64/int64, bool, nil). Object key order is lost; the result
// is intended for JSON Schema validation, not re-encoding.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindObject:
		m := make(map[string]any, len(n.members))
		for _, mem := range n.members {
			m[mem.Key] = mem.Value.Interface()
		}
		return m
	case KindArray:
		items := make([]any, len(n.items))
		for i, item := range n.items {
			items[i] = item.Interface()
		}
		return items
	case KindString:
		return n.str
	case KindNumber:
		if n.isInt {
			return n.intVal
		}
		return n.floatVal
	case KindBool:
		return n.boolVal
	default:
		return nil
	}
}

// FromInterface builds a node from plain Go values as produced by
// encoding/json or yaml unmarshaling into any. Map key order is
// unspecified; use the decoders when order matters. Unsupported types
// become their string representation.
func FromInterface(v any) *Node {
	switch val := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case string:
		return String(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) && val >= math.MinInt64 && val <= math.MaxInt64 {
			return Int(int64(val))
		}
		return Float(val)
	case []any:
		arr := NewArray()
		for _, item := range val {
			arr.Append(FromInterface(item))
		}
		return arr
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(val) {
			obj.Set(k, FromInterface(val[k]))
		}
		return obj
	default:
		return String(fmt.Sprint(val))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort; these maps are small
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
