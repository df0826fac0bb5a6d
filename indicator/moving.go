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
	"fmt"
	"math"

	"prime-tsengine-go/candle"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/streamnode"
)

// MovingMeanOption configures a MovingMean at construction.
type MovingMeanOption func(*movingMeanConfig)

type movingMeanConfig struct {
	component      candle.Component
	componentGiven bool
	nanOnShortTail bool
	metrics        metrics.Collector
}

// WithMovingMeanComponent selects which Candle component to average, when
// parent is a Candle-typed Source. Defaults to ComponentEnd.
func WithMovingMeanComponent(c candle.Component) MovingMeanOption {
	return func(cfg *movingMeanConfig) { cfg.component, cfg.componentGiven = c, true }
}

// WithMovingMeanMetrics attaches a metrics.Collector; MovingMean defaults
// to metrics.Noop.
func WithMovingMeanMetrics(c metrics.Collector) MovingMeanOption {
	return func(cfg *movingMeanConfig) { cfg.metrics = c }
}

// WithNaNOnShortTail controls whether positions whose tail window is not yet
// full of tailSize samples read NaN (default true) instead of the partial
// window's sum divided by tailSize.
func WithNaNOnShortTail(v bool) MovingMeanOption {
	return func(cfg *movingMeanConfig) { cfg.nanOnShortTail = v }
}

// MovingMean computes, for each position i, the sample mean of the tailSize
// most recent values ending at i. Width 1.
type MovingMean struct {
	*Base
	parent         FloatReader
	tailSize       int
	nanOnShortTail bool
}

// NewMovingMean builds a MovingMean over parent (a *source.Source or a
// width-1 indicator) with the given tail size (>= 2).
func NewMovingMean(parent any, tailSize int, opts ...MovingMeanOption) (*MovingMean, error) {
	if tailSize < 2 {
		return nil, fmt.Errorf("%w: tail size of a moving mean must be >= 2", ErrInvalidArgument)
	}
	cfg := movingMeanConfig{nanOnShortTail: true, metrics: metrics.Noop}
	for _, opt := range opts {
		opt(&cfg)
	}
	reader, err := resolveFloatParent(parent, cfg.component, cfg.componentGiven)
	if err != nil {
		return nil, err
	}

	base, err := NewBase(1, WithMetrics(cfg.metrics))
	if err != nil {
		return nil, err
	}
	m := &MovingMean{Base: base, parent: reader, tailSize: tailSize, nanOnShortTail: cfg.nanOnShortTail}
	if err := base.Attach([]streamnode.Node{reader}, m.update); err != nil {
		return nil, err
	}
	return m, nil
}

// TailSize returns the configured window size, also consumed by
// MovingVariance to recompute the same window.
func (m *MovingMean) TailSize() int { return m.tailSize }

// Parent returns the upstream reader, also consumed by MovingVariance.
func (m *MovingMean) Parent() FloatReader { return m.parent }

func (m *MovingMean) update(start, end int) {
	lo, hi := TailBounds(start, end, m.tailSize)
	values, err := m.parent.FloatSlice(lo, hi)
	if err != nil {
		return
	}
	for _, pos := range TailIterate(len(values), start, end, m.tailSize) {
		if pos.Incomplete && m.nanOnShortTail {
			_ = m.setScalar(pos.GlobalIndex, math.NaN())
			continue
		}
		var sum float64
		for _, v := range values[pos.LocalStart:pos.LocalEnd] {
			sum += v
		}
		_ = m.setScalar(pos.GlobalIndex, sum/float64(m.tailSize))
	}
}

// MovingVarianceOption configures a MovingVariance at construction.
type MovingVarianceOption func(*movingVarianceConfig)

type movingVarianceConfig struct {
	variance bool
	stderr   bool
	unbiased bool
	metrics  metrics.Collector
}

// WithVariance enables the variance output column.
func WithVariance(v bool) MovingVarianceOption {
	return func(cfg *movingVarianceConfig) { cfg.variance = v }
}

// WithStdErr enables the standard-error output column.
func WithStdErr(v bool) MovingVarianceOption {
	return func(cfg *movingVarianceConfig) { cfg.stderr = v }
}

// WithUnbiased toggles Bessel's correction (divide by T-1 instead of T).
func WithUnbiased(v bool) MovingVarianceOption {
	return func(cfg *movingVarianceConfig) { cfg.unbiased = v }
}

// WithMovingVarianceMetrics attaches a metrics.Collector; MovingVariance
// defaults to metrics.Noop.
func WithMovingVarianceMetrics(c metrics.Collector) MovingVarianceOption {
	return func(cfg *movingVarianceConfig) { cfg.metrics = c }
}

// MovingVariance wraps a MovingMean to compute the variance and/or standard
// error of the same tail window. Width 1 or 2, columns ordered [var?,
// stderr?].
type MovingVariance struct {
	*Base
	mean     *MovingMean
	variance bool
	stderr   bool
	divisor  float64
}

// NewMovingVariance builds a MovingVariance over mean. At least one of
// WithVariance/WithStdErr must be enabled; stderr defaults on, unbiased
// defaults on.
func NewMovingVariance(mean *MovingMean, opts ...MovingVarianceOption) (*MovingVariance, error) {
	cfg := movingVarianceConfig{stderr: true, unbiased: true, metrics: metrics.Noop}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.variance && !cfg.stderr {
		return nil, fmt.Errorf("%w: at least one of variance or stderr must be enabled", ErrInvalidArgument)
	}

	width := 1
	if cfg.variance && cfg.stderr {
		width = 2
	}
	divisor := float64(mean.tailSize)
	if cfg.unbiased {
		divisor--
	}

	base, err := NewBase(width, WithMetrics(cfg.metrics))
	if err != nil {
		return nil, err
	}
	v := &MovingVariance{Base: base, mean: mean, variance: cfg.variance, stderr: cfg.stderr, divisor: divisor}
	if err := base.Attach([]streamnode.Node{mean.Base}, v.update); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *MovingVariance) update(start, end int) {
	means, err := v.mean.Slice(start, end)
	if err != nil {
		return
	}
	lo, hi := TailBounds(start, end, v.mean.tailSize)
	values, err := v.mean.parent.FloatSlice(lo, hi)
	if err != nil {
		return
	}
	for i, pos := range TailIterate(len(values), start, end, v.mean.tailSize) {
		mean := means[i]
		var sumSq float64
		for _, x := range values[pos.LocalStart:pos.LocalEnd] {
			d := x - mean
			sumSq += d * d
		}
		variance := sumSq / v.divisor
		row := make([]float64, 0, 2)
		if v.variance {
			row = append(row, variance)
		}
		if v.stderr {
			row = append(row, math.Sqrt(variance))
		}
		_ = v.setRow(pos.GlobalIndex, row)
	}
}
