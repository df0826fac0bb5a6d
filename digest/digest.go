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

// Package digest aggregates a source into coarser-granularity candles and
// re-broadcasts its own refresh to any source linked to it.
//
// Digest never imports package source; it depends only on the SourceLike
// method set, which *source.Source happens to satisfy. This mirrors the
// streamnode split used between source and indicator.
package digest

import (
	"fmt"
	"time"

	"prime-tsengine-go/broadcaster"
	"prime-tsengine-go/candle"
	"prime-tsengine-go/growingarray"
	"prime-tsengine-go/interval"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/streamnode"
	"prime-tsengine-go/timelapse"
)

const defaultChunkSize = 3600

// SourceLike is what Digest needs from its source.
type SourceLike interface {
	Interval() interval.Interval
	Timestamp() time.Time
	Len() int
	At(i int) (sample.Value, error)
	SubscribeDigest(fn func(start, end int)) broadcaster.Token
	UnsubscribeDigest(token broadcaster.Token)
}

// Option configures a Digest at construction.
type Option func(*Digest)

// WithOrigin overrides the digest's origin timestamp (defaults to the
// source's own timestamp). Binning does not depend on it: source row i always
// folds into bin i/relativeBinSize, so a different origin changes the
// digest's timestamps, not where its bin boundaries fall.
func WithOrigin(t time.Time) Option {
	return func(d *Digest) { d.origin = &t }
}

// WithMetrics attaches a metrics.Collector; Digests default to metrics.Noop.
func WithMetrics(c metrics.Collector) Option {
	return func(d *Digest) { d.metrics = c }
}

// Digest folds a source's rows into Candle bins at a coarser interval.
type Digest struct {
	tl              *timelapse.Timelapse[*candle.Candle]
	source          SourceLike
	relativeBinSize int
	lastSourceIndex int
	attached        bool
	sourceToken     broadcaster.Token

	onRefreshLinkedSources *broadcaster.Broadcaster[streamnode.RefreshRange]

	origin  *time.Time
	metrics metrics.Collector
}

// New binds a Digest to src at interval iv, which must be strictly coarser
// than and an exact multiple of src's interval.
func New(src SourceLike, iv interval.Interval, opts ...Option) (*Digest, error) {
	if !iv.AllowedAsDigest(src.Interval()) {
		return nil, fmt.Errorf("%w: digest interval must exceed and be a multiple of the source interval", ErrInvalidArgument)
	}

	d := &Digest{source: src, metrics: metrics.Noop}
	for _, opt := range opts {
		opt(d)
	}

	origin := src.Timestamp()
	if d.origin != nil {
		origin = *d.origin
	}

	ga, err := growingarray.New[*candle.Candle](nil, defaultChunkSize, 1)
	if err != nil {
		return nil, err
	}
	d.tl = timelapse.New(iv, origin, ga)
	d.relativeBinSize = int(iv / src.Interval())
	d.attached = true
	d.onRefreshLinkedSources = broadcaster.New[streamnode.RefreshRange]()
	d.sourceToken = src.SubscribeDigest(d.onSourceRefresh)
	return d, nil
}

func (d *Digest) Interval() interval.Interval { return d.tl.Interval() }
func (d *Digest) Timestamp() time.Time        { return d.tl.Origin() }
func (d *Digest) Len() int                    { return d.tl.Len() }
func (d *Digest) Attached() bool              { return d.attached }

// At returns the candle at bin index i, or the empty sentinel Candle{} for
// an allocated-but-unfolded bin.
func (d *Digest) At(i int) (candle.Candle, error) {
	c, err := d.tl.At(i)
	if err != nil {
		return candle.Candle{}, err
	}
	if c == nil {
		return candle.Candle{}, nil
	}
	return *c, nil
}

// Slice returns bins [start,stop) as sample.Value, so a linked Source can
// push the result directly.
func (d *Digest) Slice(start, stop int) ([]sample.Value, error) {
	rows, err := d.tl.Slice(start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]sample.Value, len(rows))
	for i, r := range rows {
		if r == nil {
			out[i] = sample.FromCandle(candle.Candle{})
			continue
		}
		out[i] = sample.FromCandle(*r)
	}
	return out, nil
}

func (d *Digest) SubscribeLinked(fn func(start, end int)) broadcaster.Token {
	return d.onRefreshLinkedSources.Register(func(r streamnode.RefreshRange) { fn(r.Start, r.End) })
}

func (d *Digest) UnsubscribeLinked(token broadcaster.Token) {
	d.onRefreshLinkedSources.Unregister(token)
}

// onSourceRefresh folds source rows [start,end) into their bins and
// re-broadcasts the affected bin range. A detached digest ignores it.
func (d *Digest) onSourceRefresh(start, end int) {
	if !d.attached || end <= start {
		return
	}
	binSize := d.relativeBinSize
	folded := 0
	for i := start; i < end; i++ {
		b := i / binSize
		src, err := d.source.At(i)
		if err != nil {
			continue
		}
		c := src.AsCandle()
		existing, _ := d.tl.At(b)
		if existing == nil {
			merged := c
			_ = d.tl.Set(b, &merged)
		} else {
			merged := existing.Merge(c)
			_ = d.tl.Set(b, &merged)
		}
		folded++
		if i > d.lastSourceIndex {
			d.lastSourceIndex = i
		}
	}
	d.metrics.DigestFolded(folded)

	binStart := start / binSize
	binEnd := (end + binSize - 1) / binSize
	d.onRefreshLinkedSources.Trigger(streamnode.RefreshRange{Start: binStart, End: binEnd})
}

// Detach unregisters from the source. Terminal: further source updates are
// ignored after this.
func (d *Digest) Detach() {
	if !d.attached {
		return
	}
	d.source.UnsubscribeDigest(d.sourceToken)
	d.attached = false
}
