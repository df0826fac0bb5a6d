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

// TailBounds returns the upstream read range [lo, end) needed to compute a
// tail window of size tailSize for every output position in [start, end):
// one contiguous read, reused across all output positions.
func TailBounds(start, end, tailSize int) (lo, hi int) {
	lo = start + 1 - tailSize
	if lo < 0 {
		lo = 0
	}
	return lo, end
}

// TailPosition is one output position's tail window, expressed as indices
// local to the slice TailBounds read.
type TailPosition struct {
	LocalStart, LocalEnd int
	Incomplete           bool
	GlobalIndex          int
}

// TailIterate yields one TailPosition per output index in [start, end),
// given the length of the slice TailBounds produced for that same range.
// Incomplete is true when fewer than tailSize samples are available yet
// (i.e. the window would reach before index 0).
func TailIterate(slicedLen, start, end, tailSize int) []TailPosition {
	if end <= start {
		return nil
	}
	offset := slicedLen - end + start
	out := make([]TailPosition, 0, end-start)
	for idx := 0; idx < end-start; idx++ {
		tailEnd := idx + 1 + offset
		tailStart := tailEnd - tailSize
		incomplete := false
		if tailStart < 0 {
			tailStart = 0
			incomplete = true
		}
		out = append(out, TailPosition{
			LocalStart:  tailStart,
			LocalEnd:    tailEnd,
			Incomplete:  incomplete,
			GlobalIndex: start + idx,
		})
	}
	return out
}
