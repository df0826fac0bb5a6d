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

package growingarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsUndersizedChunksAndWidth(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		width     int
	}{
		{"chunk size below minimum", 59, 1},
		{"zero width", 60, 0},
		{"negative width", 60, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0.0, tt.chunkSize, tt.width)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

// TestReadWriteIdentity verifies testable property 2: get_slice after
// set_slice reproduces exactly what was written.
func TestReadWriteIdentity(t *testing.T) {
	ga, err := New(0.0, 60, 1)
	require.NoError(t, err)

	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	require.NoError(t, ga.SetSlice(0, 10, rows))

	got, err := ga.GetSlice(0, 10)
	require.NoError(t, err)
	require.Equal(t, rows, got)
}

// TestFillOnUntouched verifies testable property 3: reads at or beyond the
// logical length, but within allocated chunks, return fill_value.
func TestFillOnUntouched(t *testing.T) {
	ga, err := New(math.NaN(), 60, 1)
	require.NoError(t, err)

	require.NoError(t, ga.Set(5, []float64{42}))
	require.Equal(t, 6, ga.Len())

	row, err := ga.Get(10)
	require.NoError(t, err)
	require.True(t, math.IsNaN(row[0]))

	row, err = ga.Get(59)
	require.NoError(t, err)
	require.True(t, math.IsNaN(row[0]))
}

func TestGet_BeyondAllocatedChunks_ReturnsFillWithoutAllocating(t *testing.T) {
	ga, err := New(-1, 60, 1)
	require.NoError(t, err)

	row, err := ga.Get(1000)
	require.NoError(t, err)
	require.Equal(t, []int{-1}, row)
	require.Equal(t, 0, len(ga.chunks))
}

func TestSetSlice_SpansMultipleChunks(t *testing.T) {
	ga, err := New(0, 60, 1)
	require.NoError(t, err)

	rows := make([][]int, 150)
	for i := range rows {
		rows[i] = []int{i}
	}
	require.NoError(t, ga.SetSlice(10, 160, rows))
	require.Equal(t, 160, ga.Len())
	require.Equal(t, 3, len(ga.chunks))

	got, err := ga.GetSlice(10, 160)
	require.NoError(t, err)
	require.Equal(t, rows, got)

	// slot 0..9 were never written: still fill.
	head, err := ga.GetSlice(0, 10)
	require.NoError(t, err)
	for _, r := range head {
		require.Equal(t, []int{0}, r)
	}
}

func TestSetSlice_RowWidthMismatch(t *testing.T) {
	ga, err := New(0.0, 60, 2)
	require.NoError(t, err)

	err = ga.SetSlice(0, 1, [][]float64{{1}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGet_NegativeIndex(t *testing.T) {
	ga, err := New(0.0, 60, 1)
	require.NoError(t, err)

	_, err = ga.Get(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestMultiColumnRows(t *testing.T) {
	ga, err := New(math.NaN(), 60, 3)
	require.NoError(t, err)

	require.NoError(t, ga.Set(0, []float64{1, 2, 3}))
	row, err := ga.Get(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, row)
}
