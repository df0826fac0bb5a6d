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

package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prime-tsengine-go/interval"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/source"
)

func priceSource(t *testing.T, initial *int64) *source.Source {
	t.Helper()
	var init *sample.Value
	if initial != nil {
		v := sample.FromPrice(*initial)
		init = &v
	}
	s, err := source.New(source.DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, init)
	require.NoError(t, err)
	return s
}

func pushPrices(t *testing.T, s *source.Source, vs ...int64) {
	t.Helper()
	rows := make([]sample.Value, len(vs))
	for i, v := range vs {
		rows[i] = sample.FromPrice(v)
	}
	require.NoError(t, s.Push(rows))
}

func requireNaN(t *testing.T, v float64) {
	t.Helper()
	require.True(t, math.IsNaN(v), "expected NaN, got %v", v)
}

// TestMovingMean_ShortTailScenario is scenario S2.
func TestMovingMean_ShortTailScenario(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3, 4, 5)

	mm, err := NewMovingMean(s, 3)
	require.NoError(t, err)

	requireNaN(t, mustAt(t, mm, 0))
	requireNaN(t, mustAt(t, mm, 1))
	require.Equal(t, 2.0, mustAt(t, mm, 2))
	require.Equal(t, 3.0, mustAt(t, mm, 3))
	require.Equal(t, 4.0, mustAt(t, mm, 4))
}

// TestMovingVariance_Scenario is scenario S3.
func TestMovingVariance_Scenario(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3, 4, 5)

	mm, err := NewMovingMean(s, 3)
	require.NoError(t, err)
	mv, err := NewMovingVariance(mm, WithVariance(true), WithStdErr(true), WithUnbiased(true))
	require.NoError(t, err)

	for _, i := range []int{0, 1} {
		row, err := mv.Row(i)
		require.NoError(t, err)
		requireNaN(t, row[0])
		requireNaN(t, row[1])
	}
	for _, i := range []int{2, 3, 4} {
		row, err := mv.Row(i)
		require.NoError(t, err)
		require.InDelta(t, 1.0, row[0], 1e-9)
		require.InDelta(t, 1.0, row[1], 1e-9)
	}
}

// TestSlope_Scenario is scenario S4.
func TestSlope_Scenario(t *testing.T) {
	initial := int64(10)
	s := priceSource(t, &initial)
	pushPrices(t, s, 10, 13, 12, 20)

	sl, err := NewSlope(s)
	require.NoError(t, err)

	want := []float64{0, 3, -1, 8}
	for i, w := range want {
		require.Equal(t, w, mustAt(t, sl, i))
	}
}

func TestSlope_NoInitial_EmitsNaNForFirstSlot(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 10, 13, 12)

	sl, err := NewSlope(s)
	require.NoError(t, err)
	requireNaN(t, mustAt(t, sl, 0))
	require.Equal(t, 3.0, mustAt(t, sl, 1))
}

// TestDisposalCascade verifies testable property 8: disposing an upstream
// indicator disposes every (transitive) subscriber.
func TestDisposalCascade(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3, 4, 5)

	mm, err := NewMovingMean(s, 3)
	require.NoError(t, err)
	mv, err := NewMovingVariance(mm, WithStdErr(true))
	require.NoError(t, err)

	mm.Dispose()
	require.True(t, mm.Disposed())
	require.True(t, mv.Disposed())

	_, err = mv.At(0)
	require.ErrorIs(t, err, ErrDisposed)
	_, err = mm.At(0)
	require.ErrorIs(t, err, ErrDisposed)
}

func TestDisposal_IsIdempotent(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3)
	mm, err := NewMovingMean(s, 2)
	require.NoError(t, err)
	mm.Dispose()
	require.NotPanics(t, func() { mm.Dispose() })
}

// TestCoalescing_NeverAdvancesPastSlowestDependency verifies testable
// property 7 for a two-input Stack: it holds at the range both dependencies
// have reported, and fills a new slot once both have reported it.
func TestCoalescing_NeverAdvancesPastSlowestDependency(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3, 4, 5)

	id, err := NewIdentity(s)
	require.NoError(t, err)
	sl, err := NewSlope(s)
	require.NoError(t, err)

	stack, err := NewStack(id, sl)
	require.NoError(t, err)
	require.Equal(t, 5, stack.Len())

	pushPrices(t, s, 6)
	require.Equal(t, 6, stack.Len())
	row, err := stack.Row(5)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 1}, row)

	// Disposing one of the two dependencies must cascade to Stack too.
	id.Dispose()
	require.True(t, stack.Disposed())
}

func TestNewMovingMean_RejectsShortTail(t *testing.T) {
	s := priceSource(t, nil)
	_, err := NewMovingMean(s, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewMovingMean_RejectsWidthNotOneIndicatorParent(t *testing.T) {
	s := priceSource(t, nil)
	pushPrices(t, s, 1, 2, 3)
	mm, err := NewMovingMean(s, 2)
	require.NoError(t, err)
	mv, err := NewMovingVariance(mm, WithVariance(true), WithStdErr(true))
	require.NoError(t, err)

	_, err = NewMovingMean(mv, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func mustAt(t *testing.T, r interface{ At(int) (float64, error) }, i int) float64 {
	t.Helper()
	v, err := r.At(i)
	require.NoError(t, err)
	return v
}
