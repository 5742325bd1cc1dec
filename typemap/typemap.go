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

package typemap

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/signature"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("xdel(typemap): nil reflect.Type provided")
	// ErrUnrenderable is returned when the provided TypeRef cannot be rendered.
	ErrUnrenderable = errors.New("xdel(typemap): unrenderable type ref")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different TypeRef.
	ErrConflictingRegistration = errors.New("xdel(typemap): conflicting type registration")
)

// New constructs an empty TypeMap.
func New(_ apis.Config) apis.TypeMap {
	return &typeMap{}
}

// entry pairs a TypeRef with its rendering, which is its identity.
type entry struct {
	ref  signature.TypeRef
	name string
}

// typeMap is a simple TypeMap implementation backed by sync.Map.
type typeMap struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to entry.
	m sync.Map // map[reflect.Type]entry
	// count tracks the number of registered entries.
	count int
	// gen is bumped by every store and every Reset.
	gen atomic.Uint64
}

// Register associates t with ref.
// It is idempotent for TypeRefs that render identically.
func (r *typeMap) Register(t reflect.Type, ref signature.TypeRef) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	name, err := signature.RenderType(ref)
	if err != nil {
		return errors.Join(ErrUnrenderable, err)
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		if old.(entry).name == name {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(t); ok {
		if old.(entry).name == name {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(t, entry{ref: ref, name: name})
	r.count++
	r.gen.Add(1)
	return nil
}

// Lookup returns the TypeRef registered for t if present.
func (r *typeMap) Lookup(t reflect.Type) (signature.TypeRef, bool) {
	if t == nil {
		return signature.TypeRef{}, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(entry).ref.Clone(), true
	}
	return signature.TypeRef{}, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *typeMap) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Ref:  value.(entry).ref,
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *typeMap) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *typeMap) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
	r.gen.Add(1)
}

// Generation returns the current entry-set version.
func (r *typeMap) Generation() uint64 {
	return r.gen.Load()
}
