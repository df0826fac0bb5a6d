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

	"prime-tsengine-go/streamnode"
)

// Stack concatenates N width-1 FloatReader parents into one row per
// position, column order matching the parents passed to NewStack. Useful
// for feeding a multi-column predictor or display table from several
// width-1 indicators without hand-writing a combiner each time.
type Stack struct {
	*Base
	parents []FloatReader
}

// NewStack builds a Stack over parents (each a *source.Source or a width-1
// indicator); width equals len(parents).
func NewStack(parents ...any) (*Stack, error) {
	if len(parents) < 2 {
		return nil, fmt.Errorf("%w: Stack requires at least two parents", ErrInvalidArgument)
	}
	readers := make([]FloatReader, len(parents))
	deps := make([]streamnode.Node, len(parents))
	for i, p := range parents {
		r, err := resolveFloatParent(p, 0, false)
		if err != nil {
			return nil, err
		}
		readers[i] = r
		deps[i] = r
	}

	base, err := NewBase(len(parents))
	if err != nil {
		return nil, err
	}
	s := &Stack{Base: base, parents: readers}
	if err := base.Attach(deps, s.update); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stack) update(start, end int) {
	columns := make([][]float64, len(s.parents))
	for i, p := range s.parents {
		vals, err := p.FloatSlice(start, end)
		if err != nil {
			return
		}
		columns[i] = vals
	}
	for idx := 0; idx < end-start; idx++ {
		row := make([]float64, len(columns))
		for c, col := range columns {
			row[c] = col[idx]
		}
		_ = s.setRow(start+idx, row)
	}
}
