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

import "errors"

var (
	// ErrInvalidArgument covers a bad tail size, an unsatisfied width
	// requirement, a missing candle component, or fewer than one dependency.
	ErrInvalidArgument = errors.New("indicator: invalid argument")
	// ErrHeterogeneousSources is returned when the dependencies passed to
	// Base.Attach do not all resolve to the same root.
	ErrHeterogeneousSources = errors.New("indicator: dependencies do not share a common root source")
	// ErrDisposed is returned by any read on an indicator after Dispose.
	ErrDisposed = errors.New("indicator: disposed")
)
