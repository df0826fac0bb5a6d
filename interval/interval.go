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

// Package interval is the trivial adapter implementing the calendar/interval
// enum the engine treats as an opaque collaborator: a positive count of
// seconds, a predicate for which granularities may anchor a source or a
// digest, and a round() helper.
package interval

import "time"

// Interval is a positive number of seconds.
type Interval int64

// Named granularities. Only those listed in sourceGranularities may anchor a
// Source; the others can still be digest targets.
const (
	Second         Interval = 1
	FiveSeconds    Interval = 5
	FifteenSeconds Interval = 15
	Minute         Interval = 60
	FiveMinutes    Interval = 300
	FifteenMinutes Interval = 900
	Hour           Interval = 3600
	Day            Interval = 86400
)

var sourceGranularities = map[Interval]bool{
	Second:         true,
	FiveSeconds:    true,
	FifteenSeconds: true,
	Minute:         true,
	Hour:           true,
}

// AllowedAsSource reports whether this interval may anchor a Source.
func (i Interval) AllowedAsSource() bool {
	return sourceGranularities[i]
}

// AllowedAsDigest reports whether this interval may anchor a Digest folding
// from a source at the given interval: strictly coarser and an exact
// multiple of it.
func (i Interval) AllowedAsDigest(source Interval) bool {
	if source <= 0 || i <= source {
		return false
	}
	return i%source == 0
}

// Duration converts the interval to a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i) * time.Second
}

// Round returns the nearest lower timestamp aligned to this interval.
func (i Interval) Round(t time.Time) time.Time {
	sec := t.Unix()
	n := int64(i)
	aligned := (sec / n) * n
	if sec < 0 && sec%n != 0 {
		aligned -= n
	}
	return time.Unix(aligned, 0).UTC()
}
