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

// Package timelapse pairs a growingarray.GrowingArray with an interval and
// an origin timestamp, translating between index and timestamp space.
package timelapse

import (
	"errors"
	"time"

	"prime-tsengine-go/growingarray"
	"prime-tsengine-go/interval"
)

// ErrOutOfRange is returned by IndexFor when the queried timestamp precedes
// the timelapse's origin — callers must not query before it.
var ErrOutOfRange = errors.New("timelapse: timestamp precedes origin")

// Timelapse is pure delegation over interval, origin timestamp, and data.
type Timelapse[T any] struct {
	interval interval.Interval
	origin   time.Time
	data     *growingarray.GrowingArray[T]
}

// New wraps an already-allocated GrowingArray with interval/origin metadata.
func New[T any](iv interval.Interval, origin time.Time, data *growingarray.GrowingArray[T]) *Timelapse[T] {
	return &Timelapse[T]{interval: iv, origin: origin, data: data}
}

func (t *Timelapse[T]) Interval() interval.Interval { return t.interval }
func (t *Timelapse[T]) Origin() time.Time           { return t.origin }
func (t *Timelapse[T]) Len() int                    { return t.data.Len() }

// StampFor computes timestamp + index*interval.
func (t *Timelapse[T]) StampFor(index int) time.Time {
	return t.origin.Add(time.Duration(index) * t.interval.Duration())
}

// IndexFor truncates toward -infinity: floor((stamp-timestamp)/interval).
// Negative deltas (querying before the origin) are rejected rather than
// silently producing a negative index.
func (t *Timelapse[T]) IndexFor(stamp time.Time) (int, error) {
	delta := stamp.Sub(t.origin)
	if delta < 0 {
		return 0, ErrOutOfRange
	}
	return int(delta / t.interval.Duration()), nil
}

// At returns the single-column value of row index, for width==1 series —
// the static Go analogue of the original's dynamic (n,1) -> (n,) flatten.
func (t *Timelapse[T]) At(index int) (T, error) {
	row, err := t.data.Get(index)
	if err != nil {
		var zero T
		return zero, err
	}
	return row[0], nil
}

// Slice returns the flattened values of rows [start,stop), for width==1
// series.
func (t *Timelapse[T]) Slice(start, stop int) ([]T, error) {
	rows, err := t.data.GetSlice(start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r[0]
	}
	return out, nil
}

// Row returns the full width-many-column row at index, for width>1 series.
func (t *Timelapse[T]) Row(index int) ([]T, error) { return t.data.Get(index) }

// RowSlice returns the full rows [start,stop), for width>1 series.
func (t *Timelapse[T]) RowSlice(start, stop int) ([][]T, error) { return t.data.GetSlice(start, stop) }

// Set writes a single-column value at index, for width==1 series.
func (t *Timelapse[T]) Set(index int, value T) error {
	return t.data.Set(index, []T{value})
}

// SetSlice writes single-column values [start,stop), for width==1 series.
func (t *Timelapse[T]) SetSlice(start, stop int, values []T) error {
	rows := make([][]T, len(values))
	for i, v := range values {
		rows[i] = []T{v}
	}
	return t.data.SetSlice(start, stop, rows)
}

// SetRow writes a full width-many-column row at index.
func (t *Timelapse[T]) SetRow(index int, row []T) error { return t.data.Set(index, row) }

// SetRowSlice writes full rows [start,stop).
func (t *Timelapse[T]) SetRowSlice(start, stop int, rows [][]T) error {
	return t.data.SetSlice(start, stop, rows)
}

// Width returns the underlying array's row width.
func (t *Timelapse[T]) Width() int { return t.data.Width() }
