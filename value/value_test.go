package value

import (
	"math"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "bool"},
		{Int(-1), "int"},
		{Uint(1), "uint"},
		{Float32(1), "float32"},
		{Float64(1), "float64"},
		{String("x"), "string"},
		{Binary(nil), "binary"},
		{Array(nil), "array"},
		{Map(nil), "map"},
	}

	for _, tt := range tests {
		if got := tt.v.Kind().String(); got != tt.want {
			t.Errorf("Kind().String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEqual_Scalars(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil", Nil(), Nil(), true},
		{"zero value is nil", Value{}, Nil(), true},
		{"bool same", Bool(true), Bool(true), true},
		{"bool diff", Bool(true), Bool(false), false},
		{"int same", Int(-42), Int(-42), true},
		{"int diff", Int(-42), Int(42), false},
		{"int vs uint", Int(42), Uint(42), false},
		{"uint same", Uint(1 << 63), Uint(1 << 63), true},
		{"float64 same", Float64(1.5), Float64(1.5), true},
		{"float32 vs float64", Float32(1.5), Float64(1.5), false},
		{"nan equals nan", Float64(math.NaN()), Float64(math.NaN()), true},
		{"string same", String("hi"), String("hi"), true},
		{"string diff", String("hi"), String("ho"), false},
		{"binary same", Binary([]byte{1, 2}), Binary([]byte{1, 2}), true},
		{"binary diff len", Binary([]byte{1, 2}), Binary([]byte{1}), false},
		{"string vs binary", String("a"), Binary([]byte("a")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual_Array(t *testing.T) {
	a := Array([]Value{Int(1), String("x")})
	b := Array([]Value{Int(1), String("x")})
	if !Equal(a, b) {
		t.Error("identical arrays should be equal")
	}

	reordered := Array([]Value{String("x"), Int(1)})
	if Equal(a, reordered) {
		t.Error("array equality must be ordered")
	}
}

func TestEqual_MapOrderInsensitive(t *testing.T) {
	a := Map([]Pair{
		{String("x"), Int(1)},
		{String("y"), Int(2)},
	})
	b := Map([]Pair{
		{String("y"), Int(2)},
		{String("x"), Int(1)},
	})
	if !Equal(a, b) {
		t.Error("maps with same entries in different order should be equal")
	}

	c := Map([]Pair{
		{String("x"), Int(1)},
		{String("y"), Int(3)},
	})
	if Equal(a, c) {
		t.Error("maps with different values should not be equal")
	}
}

func TestEqual_Nested(t *testing.T) {
	a := Map([]Pair{
		{String("items"), Array([]Value{Int(7), Map([]Pair{{String("a"), Int(1)}}), Int(9)})},
	})
	b := Map([]Pair{
		{String("items"), Array([]Value{Int(7), Map([]Pair{{String("a"), Int(1)}}), Int(9)})},
	})
	if !Equal(a, b) {
		t.Error("deeply nested identical trees should be equal")
	}
}

func TestGet(t *testing.T) {
	m := Map([]Pair{
		{String("name"), String("ada")},
		{Int(3), Bool(true)},
	})

	if v, ok := m.Get(String("name")); !ok || v.Str() != "ada" {
		t.Errorf("Get(name) = %v, %v", v, ok)
	}
	if v, ok := m.Get(Int(3)); !ok || !v.Bool() {
		t.Errorf("Get(3) = %v, %v", v, ok)
	}
	if _, ok := m.Get(String("missing")); ok {
		t.Error("Get(missing) should report absent")
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"array", Array([]Value{Int(1), Int(2)}), 2},
		{"map", Map([]Pair{{String("a"), Int(1)}}), 1},
		{"string", String("abc"), 3},
		{"binary", Binary([]byte{1, 2, 3, 4}), 4},
		{"scalar", Int(5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestString_Rendering(t *testing.T) {
	v := Map([]Pair{
		{String("text"), String("hi")},
		{String("nums"), Array([]Value{Int(1), Float64(2.5)})},
		{String("on"), Bool(true)},
	})

	got := v.String()
	want := `{"text": "hi", "nums": [1, 2.5], "on": true}`
	if got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestScalarAccessors(t *testing.T) {
	if Int(-5).Int() != -5 {
		t.Error("Int accessor")
	}
	if Uint(math.MaxUint64).Uint() != math.MaxUint64 {
		t.Error("Uint accessor")
	}
	if Float32(1.25).Float32() != 1.25 {
		t.Error("Float32 accessor")
	}
	if Float64(-0.5).Float64() != -0.5 {
		t.Error("Float64 accessor")
	}
	if !Bool(true).Bool() || Bool(false).Bool() {
		t.Error("Bool accessor")
	}
}
