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

	"prime-tsengine-go/candle"
	"prime-tsengine-go/source"
	"prime-tsengine-go/streamnode"
)

// Plucking reads one Candle component out of a Candle-typed Source, as a
// plain float series. Width 1.
type Plucking struct {
	*Base
	parent    *source.Source
	component candle.Component
}

// NewPlucking builds a Plucking indicator over parent's component. The
// component argument is always used as given: there is no default, and its
// zero value selects ComponentStart, not ComponentEnd.
func NewPlucking(parent *source.Source, component candle.Component) (*Plucking, error) {
	if parent.Dtype() != source.DtypeCandle {
		return nil, fmt.Errorf("%w: Plucking requires a Candle-typed parent", ErrInvalidArgument)
	}
	if !component.Valid() {
		return nil, fmt.Errorf("%w: component must be one of start/end/min/max", ErrInvalidArgument)
	}

	base, err := NewBase(1)
	if err != nil {
		return nil, err
	}
	p := &Plucking{Base: base, parent: parent, component: component}

	reader := sourceReader{src: parent, component: component, useComponent: true}
	if err := base.Attach([]streamnode.Node{reader}, p.update); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plucking) update(start, end int) {
	reader := sourceReader{src: p.parent, component: p.component, useComponent: true}
	vals, err := reader.FloatSlice(start, end)
	if err != nil {
		return
	}
	for i, v := range vals {
		_ = p.setScalar(start+i, v)
	}
}
