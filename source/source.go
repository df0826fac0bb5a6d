/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package source implements the primary ingestion buffer: a Timelapse that
// accepts pushed samples, auto-interpolates across gaps, fans out refresh
// notifications to digests and indicators, and may mirror a linked digest.
//
// HOT PATH [1]: Push on the contiguous, no-gap path (the overwhelmingly
// common case — one new sample appended at the current length). It must
// reach Timelapse.Set and the two Trigger calls without walking any
// interpolation loop.
package source

import (
	"fmt"
	"time"

	"prime-tsengine-go/broadcaster"
	"prime-tsengine-go/interval"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/streamnode"
	"prime-tsengine-go/timelapse"

	"prime-tsengine-go/growingarray"
)

// Dtype is the sum-type tag for what kind of sample a Source carries.
type Dtype int

const (
	DtypePrice Dtype = iota
	DtypeCandle
)

const defaultChunkSize = 3600

// DigestLike is what Source.Link needs from a digest, kept as an interface
// so this package never imports the digest package (digest imports this
// package's SourceLike-shaped methods instead, breaking the cycle).
type DigestLike interface {
	Interval() interval.Interval
	Timestamp() time.Time
	Len() int
	Slice(start, stop int) ([]sample.Value, error)
	SubscribeLinked(fn func(start, end int)) broadcaster.Token
	UnsubscribeLinked(token broadcaster.Token)
}

// Option configures a Source at construction.
type Option func(*Source)

// WithChunkSize overrides the default chunk size (must be >= 60).
func WithChunkSize(n int) Option {
	return func(s *Source) { s.chunkSize = n }
}

// WithMetrics attaches a metrics.Collector; Sources default to metrics.Noop.
func WithMetrics(c metrics.Collector) Option {
	return func(s *Source) { s.metrics = c }
}

// Source is a Timelapse of sample.Value that accepts pushed data.
type Source struct {
	tl       *timelapse.Timelapse[sample.Value]
	dtype    Dtype
	chunkSize int

	hasInitial bool
	initial    sample.Value

	linked    DigestLike
	linkToken broadcaster.Token

	onRefreshDigests    *broadcaster.Broadcaster[streamnode.RefreshRange]
	onRefreshIndicators *broadcaster.Broadcaster[streamnode.RefreshRange]

	metrics metrics.Collector
}

// New constructs a Source. interval must be an allowed source granularity;
// dtype must be Price or Candle; if initial is provided its Kind must match
// dtype.
func New(dtype Dtype, origin time.Time, iv interval.Interval, initial *sample.Value, opts ...Option) (*Source, error) {
	if !iv.AllowedAsSource() {
		return nil, fmt.Errorf("%w: interval is not an allowed source granularity", ErrInvalidArgument)
	}
	if dtype != DtypePrice && dtype != DtypeCandle {
		return nil, fmt.Errorf("%w: unknown dtype", ErrInvalidArgument)
	}

	s := &Source{dtype: dtype, chunkSize: defaultChunkSize, metrics: metrics.Noop}
	for _, opt := range opts {
		opt(s)
	}

	if initial != nil {
		if (dtype == DtypePrice) != (initial.Kind == sample.KindPrice) {
			return nil, fmt.Errorf("%w: initial value dtype mismatch", ErrInvalidArgument)
		}
		s.hasInitial = true
		s.initial = *initial
	}

	ga, err := growingarray.New[sample.Value](sample.Value{}, s.chunkSize, 1)
	if err != nil {
		return nil, err
	}
	s.tl = timelapse.New(iv, origin, ga)
	s.onRefreshDigests = broadcaster.New[streamnode.RefreshRange]()
	s.onRefreshIndicators = broadcaster.New[streamnode.RefreshRange]()
	return s, nil
}

func (s *Source) Dtype() Dtype                  { return s.dtype }
func (s *Source) Interval() interval.Interval   { return s.tl.Interval() }
func (s *Source) Timestamp() time.Time          { return s.tl.Origin() }
func (s *Source) Len() int                      { return s.tl.Len() }
func (s *Source) At(i int) (sample.Value, error) { return s.tl.At(i) }

func (s *Source) Slice(start, stop int) ([]sample.Value, error) {
	return s.tl.Slice(start, stop)
}

// InitialValue returns the source's pre-origin sentinel, if one was set.
func (s *Source) InitialValue() (sample.Value, bool) { return s.initial, s.hasInitial }

// --- streamnode.Node ---

func (s *Source) Root() any { return s }

func (s *Source) IndexFor(stamp time.Time) (int, error) { return s.tl.IndexFor(stamp) }
func (s *Source) StampFor(index int) time.Time          { return s.tl.StampFor(index) }

func (s *Source) Subscribe(fn func(dep streamnode.Node, start, end int)) streamnode.Token {
	return s.onRefreshIndicators.Register(func(r streamnode.RefreshRange) { fn(s, r.Start, r.End) })
}

func (s *Source) Unsubscribe(token streamnode.Token) { s.onRefreshIndicators.Unregister(token) }

// --- digest.SourceLike ---

func (s *Source) SubscribeDigest(fn func(start, end int)) broadcaster.Token {
	return s.onRefreshDigests.Register(func(r streamnode.RefreshRange) { fn(r.Start, r.End) })
}

func (s *Source) UnsubscribeDigest(token broadcaster.Token) { s.onRefreshDigests.Unregister(token) }

// Push writes data at index, defaulting to the current length when index is
// omitted. A gap strictly wider than one slot (index-1 > current length) is
// linearly interpolated from the left value (initial, or the last written
// sample) to data[0]; a gap with no left value fails with ErrUninitialized
// and writes nothing. Pushing into an already-written slot overwrites and
// re-notifies, without re-interpolating neighbors.
func (s *Source) Push(data []sample.Value, index ...int) error {
	idx := s.Len()
	if len(index) > 0 {
		idx = index[0]
	}
	if idx < 0 {
		return fmt.Errorf("%w: negative push index", ErrInvalidArgument)
	}
	n := len(data)
	if n == 0 {
		return fmt.Errorf("%w: push requires at least one sample", ErrInvalidArgument)
	}

	cur := s.Len()
	if idx-1 > cur {
		if err := s.interpolate(cur, idx, data[0]); err != nil {
			return err
		}
	}

	for i, v := range data {
		if err := s.tl.Set(idx+i, v); err != nil {
			return err
		}
	}
	s.metrics.SourcePushed(n)

	s.onRefreshDigests.Trigger(streamnode.RefreshRange{Start: idx, End: idx + n})
	s.onRefreshIndicators.Trigger(streamnode.RefreshRange{Start: idx, End: idx + n})
	return nil
}

// interpolate fills slots [cur, idx) with the componentwise linear ramp from
// the left value to right, per §4.4: slot idx-1 (the last interpolated
// slot) lands exactly on right.
func (s *Source) interpolate(cur, idx int, right sample.Value) error {
	left, ok := s.leftValue(cur)
	if !ok {
		return ErrUninitialized
	}
	gapLen := idx - cur
	for p := 1; p <= gapLen; p++ {
		v := sample.Interpolate(left, right, p, gapLen)
		if err := s.tl.Set(cur+p-1, v); err != nil {
			return err
		}
	}
	s.metrics.SlotsInterpolated(gapLen)
	return nil
}

func (s *Source) leftValue(cur int) (sample.Value, bool) {
	if cur == 0 {
		if s.hasInitial {
			return s.initial, true
		}
		return sample.Value{}, false
	}
	v, err := s.tl.At(cur - 1)
	if err != nil {
		return sample.Value{}, false
	}
	return v, true
}

// Link subscribes to digest's linked-source refresh, unlinking any prior
// digest first, and immediately back-fills from the digest's full range.
func (s *Source) Link(d DigestLike) error {
	if s.linked != nil {
		s.Unlink()
	}
	if d.Interval() < s.Interval() {
		return ErrIntervalMismatch
	}
	if d.Timestamp().Before(s.Timestamp()) {
		return ErrIntervalMismatch
	}
	s.linked = d
	s.linkToken = d.SubscribeLinked(func(start, end int) { s.onLinkedRefresh(start, end) })
	s.onLinkedRefresh(0, d.Len())
	return nil
}

// Unlink detaches from the linked digest; subsequent digest output is
// ignored until Link is called again.
func (s *Source) Unlink() {
	if s.linked == nil {
		return
	}
	s.linked.UnsubscribeLinked(s.linkToken)
	s.linked = nil
}

func (s *Source) onLinkedRefresh(start, end int) {
	if s.linked == nil || end <= start {
		return
	}
	rows, err := s.linked.Slice(start, end)
	if err != nil {
		return
	}
	base, err := s.IndexFor(s.linked.Timestamp())
	if err != nil {
		return
	}
	_ = s.Push(rows, base+start)
}
