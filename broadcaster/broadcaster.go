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

// Package broadcaster is the trivial adapter implementing the engine's
// out-of-scope "event-subscription primitive": a named multicaster with
// register/unregister/trigger, synchronous and in registration order.
//
// Go functions aren't comparable, so unlike the original's identity-based
// unregister(listener), Register here returns a Token used to unregister —
// the standard Go substitute for object-identity listener removal.
package broadcaster

// Token identifies a registered listener for later Unregister.
type Token uint64

type entry[A any] struct {
	token Token
	fn    func(A)
}

// Broadcaster fans out a single event payload type A to registered
// listeners, synchronously and in registration order.
type Broadcaster[A any] struct {
	next      Token
	listeners []entry[A]
}

// New creates an empty Broadcaster.
func New[A any]() *Broadcaster[A] {
	return &Broadcaster[A]{}
}

// Register adds a listener, permitting duplicates, and returns a Token that
// Unregister can later use to remove exactly this registration.
func (b *Broadcaster[A]) Register(fn func(A)) Token {
	b.next++
	tok := b.next
	b.listeners = append(b.listeners, entry[A]{token: tok, fn: fn})
	return tok
}

// Unregister removes the listener registered under token, if still present.
func (b *Broadcaster[A]) Unregister(token Token) {
	for i, e := range b.listeners {
		if e.token == token {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Len reports the number of currently registered listeners.
func (b *Broadcaster[A]) Len() int { return len(b.listeners) }

// Trigger invokes every listener with args, synchronously, in registration
// order. Listeners are snapshotted before iterating so a listener that
// registers or unregisters during Trigger cannot corrupt the iteration.
func (b *Broadcaster[A]) Trigger(args A) {
	snapshot := make([]entry[A], len(b.listeners))
	copy(snapshot, b.listeners)
	for _, e := range snapshot {
		e.fn(args)
	}
}
