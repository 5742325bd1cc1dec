/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"sort"
	"sync"
)

// Table is a signature-keyed map safe for concurrent Put and Get.
// Values are stored fully built, so a Get never observes a partial entry.
type Table[T any] struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps signature to *T.
	m sync.Map // map[string]*T
	// count tracks the number of registered entries.
	count int
}

// Put stores v under sig, replacing any previous entry (last write wins).
// It reports whether an entry was replaced.
func (t *Table[T]) Put(sig string, v *T) (replaced bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, loaded := t.m.Swap(sig, v); loaded {
		return true
	}
	t.count++
	return false
}

// Get returns the entry stored under exactly sig.
func (t *Table[T]) Get(sig string) (*T, bool) {
	v, ok := t.m.Load(sig)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Range calls fn for every entry until fn returns false (order is unspecified).
func (t *Table[T]) Range(fn func(sig string, v *T) bool) {
	t.m.Range(func(key, value any) bool {
		return fn(key.(string), value.(*T))
	})
}

// Signatures returns a sorted snapshot of the stored signatures.
func (t *Table[T]) Signatures() []string {
	out := make([]string, 0, t.Count())
	t.m.Range(func(key, _ any) bool {
		out = append(out, key.(string))
		return true
	})
	sort.Strings(out)
	return out
}

// Count returns the number of stored entries.
func (t *Table[T]) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Reset clears all entries.
func (t *Table[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m.Clear()
	t.count = 0
}
