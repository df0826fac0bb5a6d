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

package source

import "errors"

var (
	// ErrInvalidArgument covers a disallowed interval, an invalid dtype, a
	// negative push index, or an initial value that doesn't match dtype.
	ErrInvalidArgument = errors.New("source: invalid argument")
	// ErrUninitialized is returned by Push when a gap must be interpolated
	// but no left-side value (explicit initial, or prior data) exists.
	ErrUninitialized = errors.New("source: gap requires interpolation but no initial value is set")
	// ErrIntervalMismatch is returned by Link when the digest's interval is
	// smaller than the source's, or its origin precedes the source's.
	ErrIntervalMismatch = errors.New("source: incompatible digest interval or origin for linking")
)
