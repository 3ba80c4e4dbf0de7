// Package softengine provides a CRC unit implemented in software, for use
// with crcdriver.Driver where no hardware unit exists.
package softengine

import (
	"context"
	"io"
	"sync"

	"github.com/chronos-tachyon/assert"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chronos-tachyon/crcdriver"
	"github.com/chronos-tachyon/crcdriver/internal/crc16"
	"github.com/chronos-tachyon/crcdriver/internal/crc32"
)

// Engine computes one CRC at a time on a background goroutine and reports
// each result to its client.
type Engine struct {
	mu      sync.Mutex
	client  crcdriver.EngineClient
	busy    bool
	enabled bool
	closed  bool
	started uint64

	version   uint32
	maxLength int
	limiter   *rate.Limiter
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs and returns a new Engine with the given options.
func New(opts ...Option) *Engine {
	var o options
	o.reset()
	o.apply(opts)

	e := &Engine{
		version:   o.version,
		maxLength: o.maxLength,
		logger:    o.logger,
	}
	if o.limit != rate.Inf {
		e.limiter = rate.NewLimiter(o.limit, o.burst)
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e
}

// SetClient specifies the EngineClient which receives results.
func (e *Engine) SetClient(client crcdriver.EngineClient) {
	e.mu.Lock()
	e.client = client
	e.mu.Unlock()
}

// Compute fulfills crcdriver.Engine.
func (e *Engine) Compute(buf []byte, alg crcdriver.Algorithm) crcdriver.Status {
	if !alg.IsValid() {
		return crcdriver.InvalidStatus
	}
	if e.maxLength > 0 && len(buf) > e.maxLength {
		e.logger.Debug().
			Int("length", len(buf)).
			Int("maxLength", e.maxLength).
			Msg("buffer too large")
		return crcdriver.SizeStatus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed || e.client == nil:
		return crcdriver.FailStatus
	case e.busy:
		return crcdriver.BusyStatus
	}

	e.busy = true
	e.enabled = true
	e.started++
	e.wg.Add(1)
	go e.run(buf, alg)
	return crcdriver.SuccessStatus
}

// Version fulfills crcdriver.Engine.
func (e *Engine) Version() uint32 {
	return e.version
}

// Disable fulfills crcdriver.Engine.
func (e *Engine) Disable() {
	e.mu.Lock()
	wasEnabled := e.enabled
	e.enabled = false
	e.mu.Unlock()

	if wasEnabled {
		e.logger.Debug().Msg("powered down")
	}
}

// Enabled returns true if the engine has been started since it was last
// disabled.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Started returns the number of computations the engine has accepted.
func (e *Engine) Started() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// Close refuses further computations and waits for the one in flight, if
// any, to deliver its result.  Throughput limiting is abandoned.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
	return nil
}

func (e *Engine) run(buf []byte, alg crcdriver.Algorithm) {
	defer e.wg.Done()

	h := newHasher(alg)
	throttled := e.limiter != nil
	for p := buf; len(p) > 0; {
		n := len(p)
		if throttled {
			if burst := e.limiter.Burst(); n > burst {
				n = burst
			}
			if err := e.limiter.WaitN(e.ctx, n); err != nil {
				e.logger.Debug().
					Err(err).
					Msg("throttle abandoned")
				throttled = false
			}
		}
		h.Write(p[:n])
		p = p[n:]
	}
	result := h.Sum32()

	e.mu.Lock()
	e.busy = false
	client := e.client
	e.mu.Unlock()

	e.logger.Debug().
		Stringer("algorithm", alg).
		Int("length", len(buf)).
		Stringer("result", crcdriver.Checksum32(result)).
		Msg("computed")

	client.ReceiveResult(result)
}

// hasher accumulates the raw result word for one computation.
type hasher interface {
	io.Writer
	Sum32() uint32
}

type sam4l16Hasher struct {
	*crc16.Hash
}

// Sum32 places the CRC-16 in the low half and sets the high half, as the
// SAM4L unit reports it.
func (h sam4l16Hasher) Sum32() uint32 {
	return 0xffff0000 | uint32(h.Sum16())
}

func newHasher(alg crcdriver.Algorithm) hasher {
	switch alg {
	case crcdriver.CRC32Algorithm:
		return crc32.New(crc32.IEEE)
	case crcdriver.CRC32CAlgorithm:
		return crc32.New(crc32.Castagnoli)
	case crcdriver.SAM4L16Algorithm:
		return sam4l16Hasher{crc16.New()}
	case crcdriver.SAM4L32Algorithm:
		return crc32.NewMSB(crc32.NormalIEEE)
	case crcdriver.SAM4L32CAlgorithm:
		return crc32.NewMSB(crc32.NormalCastagnoli)
	default:
		assert.Raisef("unknown algorithm %d", uint(alg))
		return nil
	}
}

// Checksum computes the raw result word the engine reports for p under alg.
// An invalid alg yields zero.
func Checksum(alg crcdriver.Algorithm, p []byte) uint32 {
	if !alg.IsValid() {
		return 0
	}
	h := newHasher(alg)
	h.Write(p)
	return h.Sum32()
}

var _ crcdriver.Engine = (*Engine)(nil)
