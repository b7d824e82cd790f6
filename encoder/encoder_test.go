package encoder

import (
	"bytes"
	stderrors "errors"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
	"github.com/wippyai/msgpack-codec/wire"
)

// point describes itself through a mapping container.
type point struct {
	X, Y int64
}

func (p point) EncodeMsgpack(enc *Encoder) error {
	m := enc.Mapping()
	m.SetInt(StringKey("x"), p.X)
	m.SetInt(StringKey("y"), p.Y)
	return nil
}

// intList describes itself through a sequence container.
type intList []int64

func (l intList) EncodeMsgpack(enc *Encoder) error {
	s := enc.Sequence()
	for _, n := range l {
		s.AppendInt(n)
	}
	return nil
}

// silent requests no container at all.
type silent struct{}

func (silent) EncodeMsgpack(*Encoder) error { return nil }

// scalarBox funnels an arbitrary value through the single-value container.
type scalarBox struct {
	v any
}

func (b scalarBox) EncodeMsgpack(enc *Encoder) error {
	return enc.SingleValue().Encode(b.v)
}

func mustEncodeValue(t *testing.T, c *Codec, v any) value.Value {
	t.Helper()
	val, err := c.EncodeValue(v)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	return val
}

func TestMarshal_ScalarRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want value.Value
	}{
		{"nil", nil, value.Nil()},
		{"bool", true, value.Bool(true)},
		{"int", -42, value.Int(-42)},
		{"int64", int64(math.MinInt64), value.Int(math.MinInt64)},
		{"uint small narrows to int", uint64(42), value.Int(42)},
		{"uint large keeps uint tag", uint64(math.MaxInt64) + 1, value.Uint(math.MaxInt64 + 1)},
		{"uint8", uint8(255), value.Int(255)},
		{"float32", float32(1.5), value.Float32(1.5)},
		{"float64", 2.75, value.Float64(2.75)},
		{"string", "hello", value.String("hello")},
		{"bytes", []byte{1, 2, 3}, value.Binary([]byte{1, 2, 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, rem, err := wire.Unpack(b)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if len(rem) != 0 {
				t.Errorf("remainder = %d bytes, want 0", len(rem))
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("round-trip = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeValue_URL(t *testing.T) {
	base, err := url.Parse("https://example.com/api")
	if err != nil {
		t.Fatal(err)
	}
	ref, err := base.Parse("../items?id=3")
	if err != nil {
		t.Fatal(err)
	}

	c := New()
	got := mustEncodeValue(t, c, ref)
	want := value.String("https://example.com/items?id=3")
	if !value.Equal(got, want) {
		t.Errorf("pointer url = %s, want %s", got, want)
	}

	got = mustEncodeValue(t, c, *ref)
	if !value.Equal(got, want) {
		t.Errorf("value url = %s, want %s", got, want)
	}
}

func TestEncodeValue_TimeStrategies(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 500_000_000, time.UTC)

	tests := []struct {
		name string
		opts []Option
		want value.Value
	}{
		{
			name: "deferred is fractional unix seconds",
			opts: nil,
			want: value.Float64(float64(ts.UnixNano()) / float64(time.Second)),
		},
		{
			name: "iso8601",
			opts: []Option{WithTimeStrategy(TimeISO8601)},
			want: value.String("2024-03-01T12:30:45.5Z"),
		},
		{
			name: "unix seconds",
			opts: []Option{WithTimeStrategy(TimeUnixSeconds)},
			want: value.Int(ts.Unix()),
		},
		{
			name: "unix milliseconds",
			opts: []Option{WithTimeStrategy(TimeUnixMilli)},
			want: value.Int(ts.UnixMilli()),
		},
		{
			name: "layout",
			opts: []Option{WithTimeLayout("2006-01-02")},
			want: value.String("2024-03-01"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEncodeValue(t, New(tt.opts...), ts)
			if !value.Equal(got, tt.want) {
				t.Errorf("encoded time = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeValue_TimeCustom(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	c := New(WithTimeEncoder(func(t time.Time) (any, error) {
		return intList{t.Unix(), int64(t.Year())}, nil
	}))
	got := mustEncodeValue(t, c, ts)
	want := value.Array([]value.Value{value.Int(ts.Unix()), value.Int(2024)})
	if !value.Equal(got, want) {
		t.Errorf("custom time = %s, want %s", got, want)
	}
}

func TestEncodeValue_TimeCustomError(t *testing.T) {
	boom := stderrors.New("boom")
	c := New(WithTimeEncoder(func(time.Time) (any, error) {
		return nil, boom
	}))

	// Nested so the error carries the path to the timestamp.
	holder := scalarBox{v: timeHolder{}}
	_, err := c.EncodeValue(holder)
	if err == nil {
		t.Fatal("expected error from custom time transform")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if cerr.Kind != errors.KindTimeEncoding {
		t.Errorf("Kind = %v, want %v", cerr.Kind, errors.KindTimeEncoding)
	}
	if !stderrors.Is(err, boom) {
		t.Error("cause should be reachable via errors.Is")
	}
	if len(cerr.Path) == 0 || cerr.Path[len(cerr.Path)-1] != "stamp" {
		t.Errorf("Path = %v, want trailing \"stamp\"", cerr.Path)
	}
}

type timeHolder struct{}

func (timeHolder) EncodeMsgpack(enc *Encoder) error {
	m := enc.Mapping()
	return m.Set(StringKey("stamp"), time.Now())
}

func TestEncodeValue_NoRepresentation(t *testing.T) {
	_, err := New().EncodeValue(silent{})
	if err == nil {
		t.Fatal("expected no-representation error")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if cerr.Kind != errors.KindNoRepresentation {
		t.Errorf("Kind = %v, want %v", cerr.Kind, errors.KindNoRepresentation)
	}
}

func TestEncodeValue_NoRepresentationNested(t *testing.T) {
	// An array containing one unrepresentable value fails the whole array.
	l := mixedList{7, silent{}, 9}
	_, err := New().EncodeValue(l)
	if err == nil {
		t.Fatal("expected nested no-representation error")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if cerr.Kind != errors.KindNoRepresentation {
		t.Errorf("Kind = %v, want %v", cerr.Kind, errors.KindNoRepresentation)
	}
	if len(cerr.Path) == 0 || cerr.Path[0] != "[1]" {
		t.Errorf("Path = %v, want leading [1]", cerr.Path)
	}
}

type mixedList []any

func (l mixedList) EncodeMsgpack(enc *Encoder) error {
	s := enc.Sequence()
	for _, el := range l {
		if err := s.Append(el); err != nil {
			return err
		}
	}
	return nil
}

func TestEncodeValue_UnencodableType(t *testing.T) {
	_, err := New().EncodeValue(make(chan int))
	if err == nil {
		t.Fatal("expected error for unencodable type")
	}
	var cerr *errors.Error
	if !stderrors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if cerr.Kind != errors.KindInvalidInput {
		t.Errorf("Kind = %v, want %v", cerr.Kind, errors.KindInvalidInput)
	}
}

func TestEncodeValue_ForeignDescribeError(t *testing.T) {
	boom := stderrors.New("domain failure")
	_, err := New().EncodeValue(failing{err: boom})
	if err == nil {
		t.Fatal("expected propagated describe error")
	}
	if !stderrors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

type failing struct {
	err error
}

func (f failing) EncodeMsgpack(*Encoder) error { return f.err }

func TestUserContext(t *testing.T) {
	ctx := map[string]any{"tenant": "acme"}
	c := New(WithUserContext(ctx))

	got := mustEncodeValue(t, c, ctxReader{})
	if !value.Equal(got, value.String("acme")) {
		t.Errorf("context value = %s, want \"acme\"", got)
	}
}

// ctxReader proves the user context reaches nested encoders unchanged.
type ctxReader struct{}

func (ctxReader) EncodeMsgpack(enc *Encoder) error {
	s := enc.Sequence()
	return s.Append(ctxLeaf{})
}

type ctxLeaf struct{}

func (ctxLeaf) EncodeMsgpack(enc *Encoder) error {
	tenant, _ := enc.UserContext()["tenant"].(string)
	enc.SingleValue().EncodeString(tenant)
	return nil
}

func TestEncodeValue_CtxLeafPath(t *testing.T) {
	// The leaf above lands inside a one-element array.
	got := mustEncodeValue(t, New(WithUserContext(map[string]any{"tenant": "x"})), ctxReader{})
	want := value.Array([]value.Value{value.String("x")})
	if !value.Equal(got, want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncode_Idempotent(t *testing.T) {
	c := New()
	v := point{X: 3, Y: -4}

	first, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated Encode differs:\n%x\n%x", first, second)
	}
}

func TestEncode_NoPartialOutputOnFailure(t *testing.T) {
	b, err := New().Encode(mixedList{1, silent{}, 3})
	if err == nil {
		t.Fatal("expected failure")
	}
	if b != nil {
		t.Errorf("output = %x, want nil on failure", b)
	}
}
