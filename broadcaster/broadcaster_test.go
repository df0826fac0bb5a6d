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

package broadcaster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrigger_InvokesListenersInRegistrationOrder(t *testing.T) {
	b := New[int]()
	var order []int
	b.Register(func(v int) { order = append(order, v*10+1) })
	b.Register(func(v int) { order = append(order, v*10+2) })

	b.Trigger(5)

	require.Equal(t, []int{51, 52}, order)
}

func TestUnregister_RemovesOneOccurrence(t *testing.T) {
	b := New[int]()
	calls := 0
	tok := b.Register(func(int) { calls++ })
	b.Register(func(int) { calls++ })

	b.Unregister(tok)
	b.Trigger(0)

	require.Equal(t, 1, calls)
}

// TestTrigger_ReentrantUnregisterDoesNotCorruptIteration verifies that a
// listener which unregisters another listener mid-trigger still lets every
// listener present at the start of Trigger run exactly once.
func TestTrigger_ReentrantUnregisterDoesNotCorruptIteration(t *testing.T) {
	b := New[int]()
	var fired []string

	var tokC Token
	b.Register(func(int) {
		fired = append(fired, "a")
		b.Unregister(tokC)
	})
	b.Register(func(int) { fired = append(fired, "b") })
	tokC = b.Register(func(int) { fired = append(fired, "c") })

	b.Trigger(0)
	require.Equal(t, []string{"a", "b", "c"}, fired)

	fired = nil
	b.Trigger(0)
	require.Equal(t, []string{"a", "b"}, fired)
}

func TestDuplicateRegistrationsPermitted(t *testing.T) {
	b := New[int]()
	calls := 0
	fn := func(int) { calls++ }
	b.Register(fn)
	b.Register(fn)

	b.Trigger(0)
	require.Equal(t, 2, calls)
}
