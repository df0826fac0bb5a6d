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

// mapColumn maps each element of data through fn, the Go-generic
// replacement for the original's `_map(data, function, dtype)`: every
// indicator that plucks a single column out of a wider row (a Candle
// component, a source sample) goes through here instead of a hand-rolled
// loop.
func mapColumn[T any](data []T, fn func(T) float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = fn(v)
	}
	return out
}
