package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the tag of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Pair is one entry of a map Value. Pair order is insertion order; map
// equality does not depend on it.
type Pair struct {
	Key Value
	Val Value
}

// Value is one node of the canonical value tree. Scalars are stored in a
// single uint64 slot (bool as 0/1, floats as IEEE bits); the zero Value is
// the nil value. Values are immutable once produced.
type Value struct {
	kind  Kind
	num   uint64
	str   string
	bin   []byte
	arr   []Value
	pairs []Pair
}

// Constructors

func Nil() Value { return Value{kind: KindNil} }
func Int(i int64) Value { return Value{kind: KindInt, num: uint64(i)} }
func Uint(u uint64) Value { return Value{kind: KindUint, num: u} }
func Float32(f float32) Value { return Value{kind: KindFloat32, num: uint64(math.Float32bits(f))} }
func Float64(f float64) Value { return Value{kind: KindFloat64, num: math.Float64bits(f)} }
func String(s string) Value { return Value{kind: KindString, str: s} }
func Binary(b []byte) Value { return Value{kind: KindBinary, bin: b} }
func Array(vs []Value) Value { return Value{kind: KindArray, arr: vs} }
func Map(pairs []Pair) Value { return Value{kind: KindMap, pairs: pairs} }

func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Accessors. Each is only meaningful for the matching Kind.

func (v Value) Kind() Kind { return v.kind }
func (v Value) Bool() bool { return v.num != 0 }
func (v Value) Int() int64 { return int64(v.num) }
func (v Value) Uint() uint64 { return v.num }
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.num)) }
func (v Value) Float64() float64 { return math.Float64frombits(v.num) }
func (v Value) Str() string { return v.str }
func (v Value) Bin() []byte { return v.bin }
func (v Value) Items() []Value { return v.arr }
func (v Value) Pairs() []Pair { return v.pairs }

// Len returns the element count for arrays and maps, the byte length for
// strings and binary, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.pairs)
	case KindString:
		return len(v.str)
	case KindBinary:
		return len(v.bin)
	default:
		return 0
	}
}

// Get looks up a map entry by structurally equal key.
func (v Value) Get(key Value) (Value, bool) {
	for _, p := range v.pairs {
		if Equal(p.Key, key) {
			return p.Val, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality. Arrays compare element-wise in order;
// maps compare as unordered key/value sets; float comparison is by bits, so
// NaN equals NaN and a float32 never equals a float64.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool, KindInt, KindUint, KindFloat32, KindFloat64:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindBinary:
		if len(a.bin) != len(b.bin) {
			return false
		}
		for i := range a.bin {
			if a.bin[i] != b.bin[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for _, p := range a.pairs {
			other, ok := b.Get(p.Key)
			if !ok || !Equal(p.Val, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value for debugging and inspection output.
func (v Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v Value) render(b *strings.Builder) {
	switch v.kind {
	case KindNil:
		b.WriteString("nil")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindUint:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case KindFloat32:
		b.WriteString(strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32))
	case KindFloat64:
		b.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindBinary:
		fmt.Fprintf(b, "bin(%x)", v.bin)
	case KindArray:
		b.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			el.render(b)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			p.Key.render(b)
			b.WriteString(": ")
			p.Val.render(b)
		}
		b.WriteByte('}')
	}
}
