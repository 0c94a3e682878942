package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/itohio/gosine/pkg/config"
	"github.com/itohio/gosine/pkg/frame"
	"github.com/itohio/gosine/pkg/link"
	"github.com/itohio/gosine/pkg/wave"
	"golang.org/x/time/rate"
)

// ErrWrite wraps sink failures surfaced in strict mode.
var ErrWrite = errors.New("write failed")

// Options control the run loop.
type Options struct {
	// RateHz paces the loop to this many packets per second. Zero leaves it
	// unpaced, so throughput is set by the sink.
	RateHz float64
	// Strict turns write failures into errors returned from Step and Run.
	// Otherwise they are counted and logged at most once per second.
	Strict bool
}

// OptionsFromConfig builds Options from the stream section of the config.
func OptionsFromConfig(cfg *config.StreamConfig) Options {
	return Options{
		RateHz: cfg.RateHz,
		Strict: cfg.Strict,
	}
}

// Stats are running counters of the loop.
type Stats struct {
	Packets     uint64
	Bytes       uint64
	WriteErrors uint64
	Started     time.Time
}

// Rate returns packets per second since the loop started.
func (s Stats) Rate(now time.Time) float64 {
	elapsed := now.Sub(s.Started).Seconds()
	if s.Started.IsZero() || elapsed <= 0 {
		return 0
	}
	return float64(s.Packets) / elapsed
}

// Streamer generates samples, frames them and writes them to a sink.
type Streamer struct {
	gen     *wave.Generator
	sink    link.Sink
	opts    Options
	limiter *rate.Limiter
	errLog  rate.Sometimes

	mu    sync.RWMutex
	stats Stats

	callbacks []func(wave.Point)
	cbMu      sync.RWMutex
}

// New creates a Streamer. The sink must already be open.
func New(gen *wave.Generator, sink link.Sink, opts Options) *Streamer {
	s := &Streamer{
		gen:    gen,
		sink:   sink,
		opts:   opts,
		errLog: rate.Sometimes{First: 1, Interval: time.Second},
	}
	if opts.RateHz > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateHz), 1)
	}
	return s
}

// OnSample registers a callback invoked from the loop goroutine after each
// packet has been written. Callbacks must return quickly.
func (s *Streamer) OnSample(callback func(wave.Point)) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// Stats returns a snapshot of the counters.
func (s *Streamer) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Run repeats Step until ctx is cancelled. It returns nil on cancellation and
// the write error in strict mode.
func (s *Streamer) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.stats.Started.IsZero() {
		s.stats.Started = time.Now()
	}
	s.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Step performs one iteration: compute a sample, frame it, write the four
// bytes in order and advance logical time.
func (s *Streamer) Step(ctx context.Context) (wave.Point, error) {
	if err := s.pace(ctx); err != nil {
		return wave.Point{}, err
	}

	pt := s.gen.Next()
	pkt := frame.New(pt.Value)

	var (
		written int
		failed  int
		err     error
	)
	if s.opts.Strict {
		// WriteTo stops at the first rejected byte; the rest are never attempted
		var n int64
		n, err = pkt.WriteTo(byteWriter{s.sink})
		written = int(n)
		if err != nil {
			failed = 1
		}
	} else {
		failed = pkt.Emit(s.sink)
		written = frame.Size - failed
	}

	s.mu.Lock()
	s.stats.Packets++
	s.stats.Bytes += uint64(written)
	s.stats.WriteErrors += uint64(failed)
	s.mu.Unlock()

	if err != nil {
		return pt, fmt.Errorf("%w: packet %d: %w", ErrWrite, pt.Index, err)
	}
	if failed > 0 {
		s.errLog.Do(func() {
			log.Printf("Failed to write %d of %d bytes for packet %d", failed, frame.Size, pt.Index)
		})
	}

	s.notifyCallbacks(pt)

	return pt, nil
}

// pace blocks until the limiter admits the next packet. Only cancellation of
// ctx ends the wait early, even when the delay runs past a deadline.
func (s *Streamer) pace(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}

	r := s.limiter.Reserve()
	delay := r.Delay()
	if delay == 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

func (s *Streamer) notifyCallbacks(pt wave.Point) {
	s.cbMu.RLock()
	defer s.cbMu.RUnlock()

	for _, cb := range s.callbacks {
		if cb != nil {
			cb(pt)
		}
	}
}

// byteWriter adapts a ByteWriter to io.Writer.
type byteWriter struct {
	w io.ByteWriter
}

func (b byteWriter) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := b.w.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}
