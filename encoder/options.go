package encoder

import "time"

// TimeStrategy selects how time.Time values are encoded.
type TimeStrategy int

const (
	// TimeDeferred passes the timestamp through as the encoder-native
	// representation: Unix seconds with fractional part, as a float64.
	TimeDeferred TimeStrategy = iota
	// TimeISO8601 encodes an RFC 3339 string.
	TimeISO8601
	// TimeUnixSeconds encodes integer seconds since the Unix epoch.
	TimeUnixSeconds
	// TimeUnixMilli encodes integer milliseconds since the Unix epoch.
	TimeUnixMilli
	// TimeLayout formats with a user-supplied layout string. Set via
	// WithTimeLayout.
	TimeLayout
	// TimeCustom delegates to a user-supplied transform whose result is
	// itself encoded. Set via WithTimeEncoder.
	TimeCustom
)

// config is shared read-only by every encoder spawned during one encode
// call, including detached and referencing sub-encoders.
type config struct {
	timeStrategy TimeStrategy
	timeLayout   string
	timeFunc     func(time.Time) (any, error)
	userCtx      map[string]any
}

// Option configures a Codec.
type Option func(*config)

// WithTimeStrategy selects a fixed time encoding strategy. For TimeLayout
// and TimeCustom prefer WithTimeLayout and WithTimeEncoder, which also carry
// the layout or transform.
func WithTimeStrategy(s TimeStrategy) Option {
	return func(c *config) {
		c.timeStrategy = s
	}
}

// WithTimeLayout encodes timestamps as strings formatted with the given
// layout (time.Time.Format semantics).
func WithTimeLayout(layout string) Option {
	return func(c *config) {
		c.timeStrategy = TimeLayout
		c.timeLayout = layout
	}
}

// WithTimeEncoder encodes timestamps by applying fn and encoding whatever it
// returns. Errors from fn abort the encode and surface with the path at
// which the timestamp was encountered.
func WithTimeEncoder(fn func(time.Time) (any, error)) Option {
	return func(c *config) {
		c.timeStrategy = TimeCustom
		c.timeFunc = fn
	}
}

// WithUserContext attaches an opaque key/value side-channel that every
// nested encoder can read through Encoder.UserContext. The codec never
// inspects its contents.
func WithUserContext(ctx map[string]any) Option {
	return func(c *config) {
		c.userCtx = ctx
	}
}
