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

// Package indicator implements the derived float-valued series of the
// engine: a DAG of nodes that recompute incrementally from one or more
// upstream broadcasters sharing a single common root source.
//
// Every concrete indicator embeds *Base, which owns the float GrowingArray,
// the dependency bookkeeping, and the dispose cascade. Concrete indicators
// cannot be allocated in one step, because their update closures need to
// capture a reference to the very struct being constructed; construction is
// therefore two-phase: NewBase allocates storage, then Attach wires
// dependencies and the update callback once the concrete indicator exists.
package indicator

import (
	"fmt"
	"time"

	"prime-tsengine-go/broadcaster"
	"prime-tsengine-go/growingarray"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/streamnode"
)

const defaultChunkSize = 3600

// disposeNotifier is implemented by *Base so a dependent indicator can
// register to be disposed in cascade when this one disposes, without Base
// needing to know the dependent's concrete type.
type disposeNotifier interface {
	registerDisposeListener(fn func())
}

// widther is implemented by any indicator (via *Base) so a dependent
// indicator can validate "parent width must be 1" without importing the
// dependent's concrete package.
type widther interface {
	Width() int
}

// Base is embedded by every concrete indicator. It is itself a
// streamnode.Node, so indicators can depend on other indicators exactly as
// they depend on a source.
type Base struct {
	width int
	data  *growingarray.GrowingArray[float64]

	deps              []streamnode.Node
	depTokens         []streamnode.Token
	maxRequestedStart map[streamnode.Node]int
	maxRequestedEnd   map[streamnode.Node]int

	root any

	disposed         bool
	disposeListeners []func()

	onRefreshIndicators *broadcaster.Broadcaster[streamnode.RefreshRange]

	update func(start, end int)

	metrics metrics.Collector
}

// BaseOption configures a Base at NewBase time.
type BaseOption func(*Base)

// WithMetrics attaches a metrics.Collector; indicators default to
// metrics.Noop.
func WithMetrics(c metrics.Collector) BaseOption {
	return func(b *Base) { b.metrics = c }
}

// NewBase allocates an indicator's float storage (width columns, NaN fill).
// The result is inert until Attach is called.
func NewBase(width int, opts ...BaseOption) (*Base, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: width must be >= 1", ErrInvalidArgument)
	}
	b := &Base{width: width, metrics: metrics.Noop}
	for _, opt := range opts {
		opt(b)
	}
	ga, err := growingarray.New[float64](nan(), defaultChunkSize, width)
	if err != nil {
		return nil, err
	}
	b.data = ga
	b.onRefreshIndicators = broadcaster.New[streamnode.RefreshRange]()
	return b, nil
}

// Attach wires deps (de-duplicated) to the update callback. All deps must
// resolve to a single common streamnode.Node root, otherwise
// ErrHeterogeneousSources is returned. Attach immediately hydrates from each
// dependency's existing data, exactly as if each had just broadcast
// [0, dep.Len()).
func (b *Base) Attach(deps []streamnode.Node, update func(start, end int)) error {
	unique := make([]streamnode.Node, 0, len(deps))
	seen := make(map[streamnode.Node]bool, len(deps))
	for _, d := range deps {
		if d == nil || seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	if len(unique) == 0 {
		return fmt.Errorf("%w: at least one dependency is required", ErrInvalidArgument)
	}

	roots := make(map[any]bool, 1)
	for _, d := range unique {
		roots[d.Root()] = true
	}
	if len(roots) != 1 {
		return ErrHeterogeneousSources
	}
	for root := range roots {
		b.root = root
	}

	b.deps = unique
	b.depTokens = make([]streamnode.Token, len(unique))
	b.maxRequestedStart = make(map[streamnode.Node]int, len(unique))
	b.maxRequestedEnd = make(map[streamnode.Node]int, len(unique))
	b.update = update

	for i, d := range unique {
		b.maxRequestedStart[d] = 0
		b.maxRequestedEnd[d] = 0
		b.depTokens[i] = d.Subscribe(b.onDependencyUpdate)
		if dn, ok := d.(disposeNotifier); ok {
			dn.registerDisposeListener(b.Dispose)
		}
	}
	for _, d := range unique {
		b.onDependencyUpdate(d, 0, d.Len())
	}
	return nil
}

// onDependencyUpdate implements the coalescing rule of §4.6: the indicator
// must not advance past the slowest dependency, yet must revisit any
// earlier slot any dependency reported changed.
func (b *Base) onDependencyUpdate(dep streamnode.Node, start, end int) {
	if b.disposed {
		return
	}

	if end > b.maxRequestedEnd[dep] {
		b.maxRequestedEnd[dep] = end
	}
	minEnd := -1
	for _, v := range b.maxRequestedEnd {
		if minEnd == -1 || v < minEnd {
			minEnd = v
		}
	}
	effectiveEnd := end
	if minEnd < effectiveEnd {
		effectiveEnd = minEnd
	}

	if start > b.maxRequestedStart[dep] {
		b.maxRequestedStart[dep] = start
	}
	minStart := -1
	for _, v := range b.maxRequestedStart {
		if minStart == -1 || v < minStart {
			minStart = v
		}
	}
	effectiveStart := start
	if minStart < effectiveStart {
		effectiveStart = minStart
	}

	if effectiveEnd <= effectiveStart {
		return
	}

	b.update(effectiveStart, effectiveEnd)
	b.metrics.IndicatorUpdated()
	b.onRefreshIndicators.Trigger(streamnode.RefreshRange{Start: effectiveStart, End: effectiveEnd})
}

// Width is the number of float columns this indicator's rows carry.
func (b *Base) Width() int { return b.width }

// Len is the number of rows written so far.
func (b *Base) Len() int {
	if b.disposed {
		return 0
	}
	return b.data.Len()
}

// Disposed reports whether Dispose has been called.
func (b *Base) Disposed() bool { return b.disposed }

// Row returns the full width-wide row at i.
func (b *Base) Row(i int) ([]float64, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	return b.data.Get(i)
}

// RowSlice returns rows [start, stop).
func (b *Base) RowSlice(start, stop int) ([][]float64, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	return b.data.GetSlice(start, stop)
}

// At reads a scalar value; it requires Width() == 1.
func (b *Base) At(i int) (float64, error) {
	if b.disposed {
		return 0, ErrDisposed
	}
	if b.width != 1 {
		return 0, fmt.Errorf("%w: At requires width 1, this indicator has width %d", ErrInvalidArgument, b.width)
	}
	row, err := b.data.Get(i)
	if err != nil {
		return 0, err
	}
	return row[0], nil
}

// Slice reads scalars [start, stop); it requires Width() == 1.
func (b *Base) Slice(start, stop int) ([]float64, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	if b.width != 1 {
		return nil, fmt.Errorf("%w: Slice requires width 1, this indicator has width %d", ErrInvalidArgument, b.width)
	}
	rows, err := b.data.GetSlice(start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r[0]
	}
	return out, nil
}

// FloatAt satisfies FloatReader; equivalent to At.
func (b *Base) FloatAt(i int) (float64, error) { return b.At(i) }

// FloatSlice satisfies FloatReader; equivalent to Slice.
func (b *Base) FloatSlice(start, stop int) ([]float64, error) { return b.Slice(start, stop) }

// setRow writes a full-width row; called only from concrete indicators'
// update callbacks.
func (b *Base) setRow(i int, row []float64) error {
	if b.disposed {
		return ErrDisposed
	}
	return b.data.Set(i, row)
}

// setScalar writes a width-1 row; called only from concrete indicators'
// update callbacks.
func (b *Base) setScalar(i int, v float64) error {
	return b.setRow(i, []float64{v})
}

// --- streamnode.Node ---

// Root returns the shared root source this indicator ultimately descends
// from, so a further indicator built on top of it can still validate
// homogeneity against its siblings.
func (b *Base) Root() any { return b.root }

func (b *Base) IndexFor(stamp time.Time) (int, error) {
	root, ok := b.root.(streamnode.Node)
	if !ok {
		return 0, fmt.Errorf("%w: indicator has no attached root", ErrInvalidArgument)
	}
	return root.IndexFor(stamp)
}

func (b *Base) StampFor(i int) time.Time {
	root, ok := b.root.(streamnode.Node)
	if !ok {
		return time.Time{}
	}
	return root.StampFor(i)
}

func (b *Base) Subscribe(fn func(dep streamnode.Node, start, end int)) streamnode.Token {
	return b.onRefreshIndicators.Register(func(r streamnode.RefreshRange) { fn(b.self(), r.Start, r.End) })
}

func (b *Base) Unsubscribe(token streamnode.Token) { b.onRefreshIndicators.Unregister(token) }

// self lets Subscribe report the Base itself as the dependency identity;
// concrete indicators are always depended upon by their embedded *Base
// pointer (see resolveFloatParent), so b is the correct identity to report.
func (b *Base) self() streamnode.Node { return b }

func (b *Base) registerDisposeListener(fn func()) {
	b.disposeListeners = append(b.disposeListeners, fn)
}

// Dispose is idempotent: it releases storage, unsubscribes from every
// upstream dependency, and cascades disposal to every subscriber registered
// through Attach (testable property 8).
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.data = nil
	for i, dep := range b.deps {
		dep.Unsubscribe(b.depTokens[i])
	}
	b.metrics.IndicatorDisposed()

	listeners := b.disposeListeners
	b.disposeListeners = nil
	for _, fn := range listeners {
		fn()
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
