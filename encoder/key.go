package encoder

import (
	"strconv"

	"github.com/wippyai/msgpack-codec/value"
)

// Key is a coding key for mapping containers. A key has a string form and
// optionally an integer form; integer-valued keys encode as integer map keys
// on the wire, all others as strings.
type Key struct {
	name  string
	num   int64
	isInt bool
}

// StringKey returns a string-valued coding key.
func StringKey(name string) Key {
	return Key{name: name}
}

// IntKey returns an integer-valued coding key.
func IntKey(n int64) Key {
	return Key{name: strconv.FormatInt(n, 10), num: n, isInt: true}
}

// String returns the key's diagnostic form, used in error paths.
func (k Key) String() string {
	return k.name
}

// wireValue returns the canonical value used as the map key on the wire.
func (k Key) wireValue() value.Value {
	if k.isInt {
		return value.Int(k.num)
	}
	return value.String(k.name)
}

// superKey is the distinguished key used by an unkeyed super link on a
// mapping container.
var superKey = Key{name: "super"}
