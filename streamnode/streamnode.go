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

// Package streamnode holds the Node contract shared by Source and Indicator
// so the indicator DAG can treat either uniformly as an upstream dependency
// without source and indicator importing each other.
package streamnode

import (
	"time"

	"prime-tsengine-go/broadcaster"
)

// Token identifies a subscription registered via Node.Subscribe.
type Token = broadcaster.Token

// RefreshRange is the (start,end) payload fired by every broadcaster in the
// indicator DAG: digest refresh, indicator refresh, and linked-source
// refresh all carry just a half-open index range.
type RefreshRange struct {
	Start, End int
}

// Node is anything an Indicator can depend on: a Source or another
// Indicator. Root identifies the ultimate Source a chain of indicators is
// rooted at, for the "all dependencies share one root source" check.
type Node interface {
	Root() any
	Len() int
	IndexFor(stamp time.Time) (int, error)
	StampFor(index int) time.Time
	Subscribe(fn func(dep Node, start, end int)) Token
	Unsubscribe(token Token)
}
