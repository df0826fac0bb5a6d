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

package growingarray

import "errors"

var (
	// ErrInvalidArgument covers chunk_size < 60, width < 1, stop < start, and
	// row/width mismatches.
	ErrInvalidArgument = errors.New("growingarray: invalid argument")
	// ErrOutOfRange covers negative indices on read or write.
	ErrOutOfRange = errors.New("growingarray: negative index")
)

const minChunkSize = 60
