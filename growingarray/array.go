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

// Package growingarray implements the chunked, append-mostly, 2-D buffer
// that backs every time series in the engine: Source, Digest, and Indicator
// all own one of these.
//
// HOT PATH [1]: Get/Set on a single row. Indicator._update and Source.push
// call these once per touched slot; they must not allocate beyond the
// returned/copied row itself.
//
// HOT PATH [2]: GetSlice/SetSlice spanning a chunk boundary. Indicator
// tail-window scans read through GetSlice once per refreshed window; the
// chunk-boundary walk in iterateChunks must touch each chunk's backing slice
// directly instead of indexing row-by-row across the whole range.
package growingarray

// GrowingArray is a chunked (rows x width) buffer of T, never shrinking.
// Reads at or beyond the logical length, but within allocated chunks, return
// fill. Reads beyond allocated chunks also return fill without allocating.
type GrowingArray[T any] struct {
	fill      T
	chunkSize int
	width     int
	chunks    [][]T
	length    int
}

// New allocates an empty GrowingArray. chunkSize must be >= 60 rows; width
// must be >= 1 column.
func New[T any](fill T, chunkSize, width int) (*GrowingArray[T], error) {
	if chunkSize < minChunkSize {
		return nil, ErrInvalidArgument
	}
	if width < 1 {
		return nil, ErrInvalidArgument
	}
	return &GrowingArray[T]{fill: fill, chunkSize: chunkSize, width: width}, nil
}

// Len returns the logical length (rows written so far, never decreasing).
func (g *GrowingArray[T]) Len() int { return g.length }

// Width returns the fixed row width.
func (g *GrowingArray[T]) Width() int { return g.width }

// ChunkSize returns the configured chunk size.
func (g *GrowingArray[T]) ChunkSize() int { return g.chunkSize }

func (g *GrowingArray[T]) newChunk() []T {
	chunk := make([]T, g.chunkSize*g.width)
	for i := range chunk {
		chunk[i] = g.fill
	}
	return chunk
}

// ensureChunks allocates enough chunks, each pre-filled with fill, to cover
// row index stop-1.
func (g *GrowingArray[T]) ensureChunks(stop int) {
	need := (stop + g.chunkSize - 1) / g.chunkSize
	for len(g.chunks) < need {
		g.chunks = append(g.chunks, g.newChunk())
	}
}

// iterateChunks walks [start,stop) chunk by chunk, per §4.1's chunked
// slicing algorithm: the first chunk's lower bound is start%chunkSize,
// intermediate chunks span the whole chunk, and the last chunk's upper
// bound is stop%chunkSize (never a zero-length trailing chunk, since the
// last chunk touched is always (stop-1)/chunkSize).
func (g *GrowingArray[T]) iterateChunks(start, stop int, fn func(chunkIndex, localStart, localEnd, dataOffset int)) {
	if stop <= start {
		return
	}
	startChunk := start / g.chunkSize
	stopChunk := (stop - 1) / g.chunkSize
	dataOffset := 0
	for c := startChunk; c <= stopChunk; c++ {
		localStart := 0
		if c == startChunk {
			localStart = start % g.chunkSize
		}
		localEnd := g.chunkSize
		if c == stopChunk {
			e := stop % g.chunkSize
			if e == 0 {
				e = g.chunkSize
			}
			localEnd = e
		}
		fn(c, localStart, localEnd, dataOffset)
		dataOffset += localEnd - localStart
	}
}

// Get reads a single row. Negative indices are rejected; indices at or
// beyond the logical length (but within allocated chunks) or beyond
// allocated storage entirely both yield fill.
func (g *GrowingArray[T]) Get(index int) ([]T, error) {
	if index < 0 {
		return nil, ErrOutOfRange
	}
	row := make([]T, g.width)
	chunkIdx := index / g.chunkSize
	if chunkIdx >= len(g.chunks) {
		for i := range row {
			row[i] = g.fill
		}
		return row, nil
	}
	local := (index % g.chunkSize) * g.width
	copy(row, g.chunks[chunkIdx][local:local+g.width])
	return row, nil
}

// GetSlice reads rows [start,stop). See iterateChunks for the chunk walk.
func (g *GrowingArray[T]) GetSlice(start, stop int) ([][]T, error) {
	if start < 0 {
		return nil, ErrOutOfRange
	}
	if stop < start {
		return nil, ErrInvalidArgument
	}
	rows := make([][]T, stop-start)
	for i := range rows {
		rows[i] = make([]T, g.width)
	}
	g.iterateChunks(start, stop, func(chunkIdx, localStart, localEnd, dataOffset int) {
		n := localEnd - localStart
		if chunkIdx >= len(g.chunks) {
			for i := 0; i < n; i++ {
				for c := 0; c < g.width; c++ {
					rows[dataOffset+i][c] = g.fill
				}
			}
			return
		}
		chunk := g.chunks[chunkIdx]
		for i := 0; i < n; i++ {
			src := (localStart + i) * g.width
			copy(rows[dataOffset+i], chunk[src:src+g.width])
		}
	})
	return rows, nil
}

// Set writes a single row, extending logical length and allocating chunks
// as needed.
func (g *GrowingArray[T]) Set(index int, row []T) error {
	if index < 0 {
		return ErrOutOfRange
	}
	if len(row) != g.width {
		return ErrInvalidArgument
	}
	g.ensureChunks(index + 1)
	chunkIdx := index / g.chunkSize
	local := (index % g.chunkSize) * g.width
	copy(g.chunks[chunkIdx][local:local+g.width], row)
	if index+1 > g.length {
		g.length = index + 1
	}
	return nil
}

// SetSlice writes rows [start,stop); len(rows) must equal stop-start and
// every row must have width columns.
func (g *GrowingArray[T]) SetSlice(start, stop int, rows [][]T) error {
	if start < 0 {
		return ErrOutOfRange
	}
	if stop < start {
		return ErrInvalidArgument
	}
	if len(rows) != stop-start {
		return ErrInvalidArgument
	}
	for _, r := range rows {
		if len(r) != g.width {
			return ErrInvalidArgument
		}
	}
	if stop > 0 {
		g.ensureChunks(stop)
	}
	g.iterateChunks(start, stop, func(chunkIdx, localStart, localEnd, dataOffset int) {
		n := localEnd - localStart
		chunk := g.chunks[chunkIdx]
		for i := 0; i < n; i++ {
			dst := (localStart + i) * g.width
			copy(chunk[dst:dst+g.width], rows[dataOffset+i])
		}
	})
	if stop > g.length {
		g.length = stop
	}
	return nil
}
