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

package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prime-tsengine-go/candle"
	"prime-tsengine-go/interval"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/source"
)

func mustSource(t *testing.T) *source.Source {
	t.Helper()
	initial := sample.FromPrice(0)
	s, err := source.New(source.DtypePrice, time.Unix(0, 0).UTC(), interval.Second, &initial)
	require.NoError(t, err)
	return s
}

func push(t *testing.T, s *source.Source, vs ...int64) {
	t.Helper()
	rows := make([]sample.Value, len(vs))
	for i, v := range vs {
		rows[i] = sample.FromPrice(v)
	}
	require.NoError(t, s.Push(rows))
}

// TestFold_MergesIntoCandles is scenario S5: five one-second samples folded
// into the (still open) first one-minute candle capture start/end/min/max.
func TestFold_MergesIntoCandles(t *testing.T) {
	s := mustSource(t)
	d, err := New(s, interval.Minute)
	require.NoError(t, err)

	push(t, s, 10, 12, 8, 15, 11)

	c, err := d.At(0)
	require.NoError(t, err)
	require.Equal(t, int64(10), c.Start)
	require.Equal(t, int64(11), c.End)
	require.Equal(t, int64(8), c.Min)
	require.Equal(t, int64(15), c.Max)
	require.Equal(t, 1, d.Len())
}

func TestFold_PartialBinStaysOpenUntilFilled(t *testing.T) {
	s := mustSource(t)
	d, err := New(s, interval.Minute)
	require.NoError(t, err)

	push(t, s, 10, 12)
	c, err := d.At(0)
	require.NoError(t, err)
	require.Equal(t, int64(10), c.Start)
	require.Equal(t, int64(12), c.End)

	push(t, s, 9, 20, 5)
	c, err = d.At(0)
	require.NoError(t, err)
	require.Equal(t, int64(5), c.Min)
	require.Equal(t, int64(20), c.Max)
}

func TestNew_RejectsNonMultipleInterval(t *testing.T) {
	initial := sample.FromPrice(0)
	s, err := source.New(source.DtypePrice, time.Unix(0, 0).UTC(), interval.Minute, &initial)
	require.NoError(t, err)
	_, err = New(s, interval.Interval(130))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_RejectsSameOrFinerInterval(t *testing.T) {
	s := mustSource(t)
	_, err := New(s, interval.Second)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestLinkedSource_MirrorsDigest verifies scenario S6: a source linked to a
// digest mirrors each bin the digest refreshes, including a still-open one,
// and stops mirroring once unlinked.
func TestLinkedSource_MirrorsDigest(t *testing.T) {
	s := mustSource(t)
	d, err := New(s, interval.Minute)
	require.NoError(t, err)

	mirrorInitial := sample.FromCandle(candle.Candle{})
	mirror, err := source.New(source.DtypeCandle, s.Timestamp(), interval.Minute, &mirrorInitial)
	require.NoError(t, err)
	require.NoError(t, mirror.Link(d))

	push(t, s, 10, 12, 8, 15, 11)
	require.Equal(t, 1, mirror.Len())
	v, err := mirror.At(0)
	require.NoError(t, err)
	require.Equal(t, int64(8), v.Candle.Min)

	mirror.Unlink()
	push(t, s, 1, 2, 3, 4, 5)
	require.Equal(t, 1, mirror.Len())
}

func TestDetach_StopsFolding(t *testing.T) {
	s := mustSource(t)
	d, err := New(s, interval.Minute)
	require.NoError(t, err)

	d.Detach()
	push(t, s, 1, 2, 3, 4, 5)
	require.Equal(t, 0, d.Len())
}
