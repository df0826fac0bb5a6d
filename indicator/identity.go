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

import "prime-tsengine-go/streamnode"

// Identity passes a Price source (or a width-1 indicator) through unchanged
// as a float indicator: the width-1 special case of Plucking for non-Candle
// upstreams, useful as a cheap adapter when a float-typed upstream is
// needed but no transformation applies.
type Identity struct {
	*Base
	parent FloatReader
}

// NewIdentity builds an Identity over parent (a *source.Source or a width-1
// indicator).
func NewIdentity(parent any) (*Identity, error) {
	reader, err := resolveFloatParent(parent, 0, false)
	if err != nil {
		return nil, err
	}

	base, err := NewBase(1)
	if err != nil {
		return nil, err
	}
	id := &Identity{Base: base, parent: reader}
	if err := base.Attach([]streamnode.Node{reader}, id.update); err != nil {
		return nil, err
	}
	return id, nil
}

func (id *Identity) update(start, end int) {
	vals, err := id.parent.FloatSlice(start, end)
	if err != nil {
		return
	}
	for i, v := range vals {
		_ = id.setScalar(start+i, v)
	}
}
