package softengine

import (
	"github.com/chronos-tachyon/assert"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultVersion is the version value reported unless WithVersion says
// otherwise.
const DefaultVersion = 0x202

// Option represents a configuration option for Engine.
type Option func(*options)

type options struct {
	version   uint32
	maxLength int
	limit     rate.Limit
	burst     int
	logger    zerolog.Logger
}

func (o *options) reset() {
	*o = options{
		version:   DefaultVersion,
		maxLength: 0,
		limit:     rate.Inf,
		burst:     0,
		logger:    zerolog.Nop(),
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithVersion specifies the value returned by Version.
func WithVersion(version uint32) Option {
	return func(o *options) { o.version = version }
}

// WithMaxLength specifies the largest buffer, in bytes, which the engine
// accepts.  Larger buffers are refused with SizeStatus.  Zero means no
// limit.
func WithMaxLength(n int) Option {
	assert.Assertf(n >= 0, "invalid max length %d", n)
	return func(o *options) { o.maxLength = n }
}

// WithRate limits the engine's throughput to bytesPerSecond, consumed in
// chunks of at most burst bytes.
func WithRate(bytesPerSecond float64, burst int) Option {
	assert.Assertf(bytesPerSecond > 0, "invalid rate %f", bytesPerSecond)
	assert.Assertf(burst > 0, "invalid burst %d", burst)
	return func(o *options) {
		o.limit = rate.Limit(bytesPerSecond)
		o.burst = burst
	}
}

// WithLogger specifies the logger which receives the engine's debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
