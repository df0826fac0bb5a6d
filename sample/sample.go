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

// Package sample replaces the original's dynamic dispatch on dtype with a
// sum type: a Source or Digest row is always a sample.Value carrying either
// a Price or a Candle, tagged by Kind.
package sample

import "prime-tsengine-go/candle"

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	KindPrice Kind = iota
	KindCandle
)

// Value is a single Source/Digest row: either a standardized price or a
// candle, never both.
type Value struct {
	Kind   Kind
	Price  candle.StandardizedPrice
	Candle candle.Candle
}

// FromPrice builds a price-kind Value.
func FromPrice(v candle.StandardizedPrice) Value {
	return Value{Kind: KindPrice, Price: v}
}

// FromCandle builds a candle-kind Value.
func FromCandle(c candle.Candle) Value {
	return Value{Kind: KindCandle, Candle: c}
}

// AsCandle promotes a price-kind Value to a degenerate candle (all four
// fields equal) and returns a candle-kind Value's candle unchanged.
func (v Value) AsCandle() candle.Candle {
	if v.Kind == KindCandle {
		return v.Candle
	}
	return candle.Constant(v.Price)
}

// Interpolate produces the value at step p of total (1 <= p <= total),
// linearly interpolating each underlying integer component independently
// and rounding down (floor, toward minus infinity, matching the engine's worked example:
// the ramp's last interpolated slot, p == total, equals right exactly).
func Interpolate(left, right Value, p, total int) Value {
	if total <= 0 {
		return right
	}
	if left.Kind == KindCandle || right.Kind == KindCandle {
		l, r := left.AsCandle(), right.AsCandle()
		return FromCandle(candle.Candle{
			Start: interpolateInt(l.Start, r.Start, p, total),
			End:   interpolateInt(l.End, r.End, p, total),
			Min:   interpolateInt(l.Min, r.Min, p, total),
			Max:   interpolateInt(l.Max, r.Max, p, total),
		})
	}
	return FromPrice(interpolateInt(left.Price, right.Price, p, total))
}

func interpolateInt(left, right int64, p, total int) int64 {
	delta := right - left
	step := int64(p)
	t := int64(total)
	num := step * delta
	var div int64
	if (num < 0) != (t < 0) && num%t != 0 {
		div = num/t - 1
	} else {
		div = num / t
	}
	return left + div
}
