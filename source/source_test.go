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

package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prime-tsengine-go/interval"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/streamnode"
)

func priceValues(vs ...int64) []sample.Value {
	out := make([]sample.Value, len(vs))
	for i, v := range vs {
		out[i] = sample.FromPrice(v)
	}
	return out
}

// TestPush_GapInterpolation is scenario S1 from the spec: a gap strictly
// wider than one slot linearly interpolates, floor-rounded, with the last
// interpolated slot landing exactly on the incoming value.
func TestPush_GapInterpolation(t *testing.T) {
	initial := sample.FromPrice(1)
	s, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, &initial)
	require.NoError(t, err)

	require.NoError(t, s.Push(priceValues(2, 4, 6, 8, 10, 12, 14), 4))

	want := []int64{1, 1, 1, 2, 2, 4, 6, 8, 10, 12, 14}
	for i, w := range want {
		v, err := s.At(i)
		require.NoError(t, err)
		require.Equalf(t, w, v.Price, "slot %d", i)
	}

	require.NoError(t, s.Push(priceValues(16, 18, 20, 22)))
	for i, w := range []int64{16, 18, 20, 22} {
		v, err := s.At(11 + i)
		require.NoError(t, err)
		require.Equal(t, w, v.Price)
	}
}

func TestPush_GapWithoutInitial_Fails(t *testing.T) {
	s, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, nil)
	require.NoError(t, err)

	err = s.Push(priceValues(5), 3)
	require.ErrorIs(t, err, ErrUninitialized)
	require.Equal(t, 0, s.Len())
}

func TestPush_OverwriteDoesNotReinterpolate(t *testing.T) {
	initial := sample.FromPrice(0)
	s, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, &initial)
	require.NoError(t, err)

	require.NoError(t, s.Push(priceValues(10, 20, 30)))
	require.NoError(t, s.Push(priceValues(99), 1))

	v, err := s.At(1)
	require.NoError(t, err)
	require.Equal(t, int64(99), v.Price)
	// Neighbors untouched.
	v0, _ := s.At(0)
	v2, _ := s.At(2)
	require.Equal(t, int64(10), v0.Price)
	require.Equal(t, int64(30), v2.Price)
}

// TestLen_NeverDecreases verifies testable property 1 for Source.
func TestLen_NeverDecreases(t *testing.T) {
	initial := sample.FromPrice(1)
	s, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, &initial)
	require.NoError(t, err)

	last := s.Len()
	require.NoError(t, s.Push(priceValues(1, 2, 3)))
	require.GreaterOrEqual(t, s.Len(), last)
	last = s.Len()
	require.NoError(t, s.Push(priceValues(4), 1))
	require.GreaterOrEqual(t, s.Len(), last)
}

func TestNew_RejectsDisallowedInterval(t *testing.T) {
	_, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Interval(7), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPush_NotifiesDigestsAndIndicators(t *testing.T) {
	initial := sample.FromPrice(0)
	s, err := New(DtypePrice, time.Unix(0, 0).UTC(), interval.Hour, &initial)
	require.NoError(t, err)

	var digestSeen, indicatorSeen bool
	s.SubscribeDigest(func(start, end int) { digestSeen = true; require.Equal(t, 0, start); require.Equal(t, 1, end) })
	s.Subscribe(func(_ streamnode.Node, start, end int) { indicatorSeen = true; require.Equal(t, 0, start); require.Equal(t, 1, end) })

	require.NoError(t, s.Push(priceValues(1)))
	require.True(t, digestSeen)
	require.True(t, indicatorSeen)
}
