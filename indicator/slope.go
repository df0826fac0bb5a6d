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

	"prime-tsengine-go/candle"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/streamnode"
)

const slopeTailSize = 2

// SlopeOption configures a Slope at construction.
type SlopeOption func(*slopeConfig)

type slopeConfig struct {
	component      candle.Component
	componentGiven bool
	metrics        metrics.Collector
}

// WithSlopeComponent selects which Candle component to difference, when
// parent is a Candle-typed Source. Defaults to ComponentEnd.
func WithSlopeComponent(c candle.Component) SlopeOption {
	return func(cfg *slopeConfig) { cfg.component, cfg.componentGiven = c, true }
}

// WithSlopeMetrics attaches a metrics.Collector; Slope defaults to
// metrics.Noop.
func WithSlopeMetrics(c metrics.Collector) SlopeOption {
	return func(cfg *slopeConfig) { cfg.metrics = c }
}

// Slope computes the nominal difference between consecutive values: for
// i >= 1, out[i] = x[i] - x[i-1]; for i == 0, out[0] = x[0] - parent.initial,
// or NaN if parent has no initial value. Width 1, tail size 2.
type Slope struct {
	*Base
	parent  FloatReader
	initial float64
	hasInit bool
}

// NewSlope builds a Slope over parent (a *source.Source or a width-1
// indicator).
func NewSlope(parent any, opts ...SlopeOption) (*Slope, error) {
	cfg := slopeConfig{metrics: metrics.Noop}
	for _, opt := range opts {
		opt(&cfg)
	}
	reader, err := resolveFloatParent(parent, cfg.component, cfg.componentGiven)
	if err != nil {
		return nil, err
	}
	initial, hasInit := parentInitial(parent, cfg.component, cfg.componentGiven)

	base, err := NewBase(1, WithMetrics(cfg.metrics))
	if err != nil {
		return nil, err
	}
	s := &Slope{Base: base, parent: reader, initial: initial, hasInit: hasInit}
	if err := base.Attach([]streamnode.Node{reader}, s.update); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Slope) update(start, end int) {
	lo, hi := TailBounds(start, end, slopeTailSize)
	values, err := s.parent.FloatSlice(lo, hi)
	if err != nil {
		return
	}
	for _, pos := range TailIterate(len(values), start, end, slopeTailSize) {
		if pos.Incomplete {
			if !s.hasInit {
				_ = s.setScalar(pos.GlobalIndex, math.NaN())
			} else {
				_ = s.setScalar(pos.GlobalIndex, values[pos.LocalStart]-s.initial)
			}
			continue
		}
		_ = s.setScalar(pos.GlobalIndex, values[pos.LocalEnd-1]-values[pos.LocalStart])
	}
}
