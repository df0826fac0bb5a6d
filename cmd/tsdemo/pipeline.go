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

package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"prime-tsengine-go/config"
	"prime-tsengine-go/digest"
	"prime-tsengine-go/indicator"
	"prime-tsengine-go/interval"
	"prime-tsengine-go/metrics"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/source"
)

// pipeline is the trivial adapter the demo runs against: one price Source,
// one Digest folding it into a coarser interval, and a small indicator DAG
// over the source. Wiring the actual bot/instrument lifecycle and a broker
// adapter is out of scope; this stands in for both.
type pipeline struct {
	src     *source.Source
	dig     *digest.Digest
	mean    *indicator.MovingMean
	slope   *indicator.Slope
	stack   *indicator.Stack
	metrics metrics.Collector
}

func newPipeline(cfg config.Config, reg prometheus.Registerer) (*pipeline, error) {
	srcSeconds, err := config.ParseInterval(cfg.SourceInterval)
	if err != nil {
		return nil, err
	}
	digSeconds, err := config.ParseInterval(cfg.DigestInterval)
	if err != nil {
		return nil, err
	}

	var collector metrics.Collector = metrics.Noop
	if reg != nil {
		collector = metrics.NewPrometheusCollector(reg)
	}

	origin := time.Now().UTC().Truncate(time.Second)
	initial := sample.FromPrice(0)
	src, err := source.New(source.DtypePrice, origin, interval.Interval(srcSeconds), &initial, source.WithMetrics(collector))
	if err != nil {
		return nil, fmt.Errorf("pipeline: building source: %w", err)
	}

	dig, err := digest.New(src, interval.Interval(digSeconds), digest.WithMetrics(collector))
	if err != nil {
		return nil, fmt.Errorf("pipeline: building digest: %w", err)
	}

	mean, err := indicator.NewMovingMean(src, cfg.MovingMeanTail, indicator.WithMovingMeanMetrics(collector))
	if err != nil {
		return nil, fmt.Errorf("pipeline: building moving mean: %w", err)
	}
	slope, err := indicator.NewSlope(src, indicator.WithSlopeMetrics(collector))
	if err != nil {
		return nil, fmt.Errorf("pipeline: building slope: %w", err)
	}
	stack, err := indicator.NewStack(mean, slope)
	if err != nil {
		return nil, fmt.Errorf("pipeline: building stack: %w", err)
	}

	return &pipeline{src: src, dig: dig, mean: mean, slope: slope, stack: stack, metrics: collector}, nil
}

// push feeds one price sample at the current source length.
func (p *pipeline) push(price int64) error {
	return p.src.Push([]sample.Value{sample.FromPrice(price)})
}

type pipelineRow struct {
	Index int
	Stamp time.Time
	Price int64
	Mean  float64
	Slope float64
}

func (p *pipeline) rows() ([]pipelineRow, error) {
	n := p.src.Len()
	out := make([]pipelineRow, 0, n)
	for i := 0; i < n; i++ {
		v, err := p.src.At(i)
		if err != nil {
			return nil, err
		}
		row, err := p.stack.Row(i)
		if err != nil {
			return nil, err
		}
		out = append(out, pipelineRow{
			Index: i,
			Stamp: p.src.StampFor(i),
			Price: v.Price,
			Mean:  row[0],
			Slope: row[1],
		})
	}
	return out, nil
}
