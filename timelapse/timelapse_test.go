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

package timelapse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prime-tsengine-go/growingarray"
	"prime-tsengine-go/interval"
)

func newFloatTimelapse(t *testing.T) *Timelapse[float64] {
	t.Helper()
	ga, err := growingarray.New(0.0, 60, 1)
	require.NoError(t, err)
	return New(interval.Hour, time.Unix(0, 0).UTC(), ga)
}

// TestTimestampRoundTrip verifies testable property 4.
func TestTimestampRoundTrip(t *testing.T) {
	tl := newFloatTimelapse(t)
	for i := 0; i < 100; i++ {
		stamp := tl.StampFor(i)
		got, err := tl.IndexFor(stamp)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}

func TestIndexFor_RejectsBeforeOrigin(t *testing.T) {
	tl := newFloatTimelapse(t)
	_, err := tl.IndexFor(tl.Origin().Add(-time.Second))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSetAndAt_FlattenWidthOne(t *testing.T) {
	tl := newFloatTimelapse(t)
	require.NoError(t, tl.SetSlice(0, 3, []float64{1, 2, 3}))

	v, err := tl.At(1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	got, err := tl.Slice(0, 3)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, got)
}
