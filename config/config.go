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

// Package config loads cmd/tsdemo's settings via spf13/viper. Nothing under
// the core engine packages (growingarray, timelapse, source, digest,
// indicator) reads configuration — they are constructed directly by their
// caller, in the teacher's library-not-framework style.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is cmd/tsdemo's full settings surface: which granularities to run
// the demo pipeline at, and whether to expose Prometheus metrics.
type Config struct {
	SourceInterval string `mapstructure:"source_interval"`
	DigestInterval string `mapstructure:"digest_interval"`
	MovingMeanTail int    `mapstructure:"moving_mean_tail"`
	MetricsAddr    string `mapstructure:"metrics_addr"`
	HistoryFile    string `mapstructure:"history_file"`
}

// Default returns the baseline configuration before any file or flag
// overrides are applied.
func Default() Config {
	return Config{
		SourceInterval: "minute",
		DigestInterval: "hour",
		MovingMeanTail: 5,
		MetricsAddr:    "",
		HistoryFile:    "/tmp/tsdemo_history",
	}
}

// Load reads tsdemo.yaml from the current directory and /etc/tsdemo (if
// present), then TSDEMO_-prefixed environment variables, layered over
// Default. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	v.SetConfigName("tsdemo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/tsdemo")
	v.SetEnvPrefix("TSDEMO")
	v.AutomaticEnv()

	v.SetDefault("source_interval", cfg.SourceInterval)
	v.SetDefault("digest_interval", cfg.DigestInterval)
	v.SetDefault("moving_mean_tail", cfg.MovingMeanTail)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)
	v.SetDefault("history_file", cfg.HistoryFile)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("config: reading tsdemo.yaml: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return cfg, nil
}

// ParseInterval maps the config's interval names to interval.Interval
// seconds, kept here instead of in package interval since it is a
// cmd/tsdemo-only string convenience, not part of the engine's contract.
func ParseInterval(name string) (int64, error) {
	switch name {
	case "second":
		return 1, nil
	case "five_seconds":
		return 5, nil
	case "fifteen_seconds":
		return 15, nil
	case "minute":
		return 60, nil
	case "hour":
		return 3600, nil
	case "day":
		return 86400, nil
	default:
		return 0, fmt.Errorf("config: unknown interval name %q", name)
	}
}
