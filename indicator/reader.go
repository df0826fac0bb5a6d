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
	"time"

	"prime-tsengine-go/candle"
	"prime-tsengine-go/sample"
	"prime-tsengine-go/source"
	"prime-tsengine-go/streamnode"
)

// FloatReader is what a concrete indicator reads its tail window from: a
// Source (plucked to float, by Candle component or raw Price) or another
// width-1 indicator. It is also a streamnode.Node, so it can be registered
// as a dependency directly.
type FloatReader interface {
	streamnode.Node
	FloatAt(i int) (float64, error)
	FloatSlice(start, stop int) ([]float64, error)
}

// sourceReader adapts a *source.Source into a FloatReader, plucking a
// Candle component when the source is Candle-typed.
type sourceReader struct {
	src          *source.Source
	component    candle.Component
	useComponent bool
}

func (r sourceReader) Root() any                                          { return r.src.Root() }
func (r sourceReader) Len() int                                           { return r.src.Len() }
func (r sourceReader) IndexFor(t time.Time) (int, error)                  { return r.src.IndexFor(t) }
func (r sourceReader) StampFor(i int) time.Time                           { return r.src.StampFor(i) }
// Subscribe reports r itself as the dependency identity (not the underlying
// *source.Source), so the coalescing bookkeeping in Base.Attach keys
// consistently on whatever reader value was registered.
func (r sourceReader) Subscribe(fn func(streamnode.Node, int, int)) streamnode.Token {
	return r.src.Subscribe(func(_ streamnode.Node, start, end int) { fn(r, start, end) })
}
func (r sourceReader) Unsubscribe(tok streamnode.Token) { r.src.Unsubscribe(tok) }

func (r sourceReader) pluck(v sample.Value) float64 {
	if r.useComponent {
		return float64(v.AsCandle().Component(r.component))
	}
	return float64(v.Price)
}

func (r sourceReader) FloatAt(i int) (float64, error) {
	v, err := r.src.At(i)
	if err != nil {
		return 0, err
	}
	return r.pluck(v), nil
}

func (r sourceReader) FloatSlice(start, stop int) ([]float64, error) {
	rows, err := r.src.Slice(start, stop)
	if err != nil {
		return nil, err
	}
	return mapColumn(rows, r.pluck), nil
}

// initialFloat returns the source's pre-origin sentinel as a float, plucked
// the same way as FloatAt/FloatSlice, mirroring Slope's use of
// Source.initial for its first (incomplete-tail) output.
func (r sourceReader) initialFloat() (float64, bool) {
	v, ok := r.src.InitialValue()
	if !ok {
		return 0, false
	}
	return r.pluck(v), true
}

// resolveFloatParent resolves parent (a *source.Source or another width-1
// indicator) into a FloatReader, validating the component argument and the
// width-1 requirement per §4.7.
func resolveFloatParent(parent any, component candle.Component, componentGiven bool) (FloatReader, error) {
	switch p := parent.(type) {
	case *source.Source:
		if p.Dtype() == source.DtypeCandle {
			if componentGiven && !component.Valid() {
				return nil, fmt.Errorf("%w: component must be one of start/end/min/max", ErrInvalidArgument)
			}
			if !componentGiven {
				component = candle.ComponentEnd
			}
			return sourceReader{src: p, component: component, useComponent: true}, nil
		}
		return sourceReader{src: p}, nil
	case FloatReader:
		if w, ok := any(p).(widther); ok && w.Width() != 1 {
			return nil, fmt.Errorf("%w: indicator parent must have width 1", ErrInvalidArgument)
		}
		// A concrete indicator is depended upon through its embedded *Base,
		// the identity Base.Subscribe reports to its subscribers.
		if s, ok := p.(interface{ self() streamnode.Node }); ok {
			if b, ok := s.self().(FloatReader); ok {
				return b, nil
			}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: parent must be a Source or a width-1 indicator", ErrInvalidArgument)
	}
}

// parentInitial returns the left-of-origin sentinel for parent, if any,
// plucked with the same component resolution as resolveFloatParent. Only a
// Source carries one; an indicator parent has none (Slope then emits NaN
// for its first slot).
func parentInitial(parent any, component candle.Component, componentGiven bool) (float64, bool) {
	p, ok := parent.(*source.Source)
	if !ok {
		return 0, false
	}
	r := sourceReader{src: p}
	if p.Dtype() == source.DtypeCandle {
		if !componentGiven {
			component = candle.ComponentEnd
		}
		r = sourceReader{src: p, component: component, useComponent: true}
	}
	return r.initialFloat()
}
