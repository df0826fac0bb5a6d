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

// Command tsdemo is a trivial adapter exercising the engine end to end: it
// feeds a price Source, folds it through a Digest, and recomputes a small
// indicator DAG (MovingMean, Slope) on every push. It is not part of the
// engine's public API.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prime-tsengine-go/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tsdemo",
		Short: "Demo pipeline for the time-series engine",
	}
	root.AddCommand(newRunCmd(), newReplCmd())
	return root
}

// loadConfig reads tsdemo.yaml/env into a config.Config, and if MetricsAddr
// is set, starts a background Prometheus endpoint and returns its registry.
func loadConfig() (config.Config, prometheus.Registerer, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return cfg, nil, err
	}
	if cfg.MetricsAddr == "" {
		return cfg, nil, nil
	}
	reg := prometheus.NewRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		_ = http.ListenAndServe(cfg.MetricsAddr, mux)
	}()
	return cfg, reg, nil
}
