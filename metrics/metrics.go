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

// Package metrics instruments the engine's hot paths with Prometheus
// counters, the way ClusterCockpit-cc-backend and Sumatoshi-tech-codefang
// both wire github.com/prometheus/client_golang into their own stores.
// Source, Digest, and Indicator take a Collector via functional option and
// default to a no-op implementation, so instrumentation is opt-in.
package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector receives counts from the reactive engine's hot paths.
type Collector interface {
	SourcePushed(n int)
	SlotsInterpolated(n int)
	DigestFolded(n int)
	IndicatorUpdated()
	IndicatorDisposed()
}

type noopCollector struct{}

func (noopCollector) SourcePushed(int)      {}
func (noopCollector) SlotsInterpolated(int) {}
func (noopCollector) DigestFolded(int)      {}
func (noopCollector) IndicatorUpdated()     {}
func (noopCollector) IndicatorDisposed()    {}

// Noop is the default, zero-cost Collector.
var Noop Collector = noopCollector{}

// PrometheusCollector registers one counter per engine hot path against a
// prometheus.Registerer.
type PrometheusCollector struct {
	pushed           prometheus.Counter
	interpolated     prometheus.Counter
	folded           prometheus.Counter
	indicatorUpdates prometheus.Counter
	disposals        prometheus.Counter
}

// NewPrometheusCollector registers the engine's counters against reg. A
// registration failure (e.g. a duplicate registerer reused across tests)
// is logged, not fatal — the collector still works, just unregistered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		pushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsengine", Name: "source_pushed_samples_total",
			Help: "Samples passed to Source.Push, excluding interpolated slots.",
		}),
		interpolated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsengine", Name: "source_interpolated_slots_total",
			Help: "Slots filled by gap interpolation during Source.Push.",
		}),
		folded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsengine", Name: "digest_folded_samples_total",
			Help: "Source rows folded into a digest bin.",
		}),
		indicatorUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsengine", Name: "indicator_updates_total",
			Help: "Times an indicator's _update ran.",
		}),
		disposals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsengine", Name: "indicator_disposals_total",
			Help: "Indicators disposed, including cascade disposals.",
		}),
	}
	for _, coll := range []prometheus.Collector{c.pushed, c.interpolated, c.folded, c.indicatorUpdates, c.disposals} {
		if err := reg.Register(coll); err != nil {
			log.Printf("metrics: failed to register collector: %v", err)
		}
	}
	return c
}

func (c *PrometheusCollector) SourcePushed(n int)      { c.pushed.Add(float64(n)) }
func (c *PrometheusCollector) SlotsInterpolated(n int) { c.interpolated.Add(float64(n)) }
func (c *PrometheusCollector) DigestFolded(n int)      { c.folded.Add(float64(n)) }
func (c *PrometheusCollector) IndicatorUpdated()       { c.indicatorUpdates.Inc() }
func (c *PrometheusCollector) IndicatorDisposed()      { c.disposals.Inc() }
