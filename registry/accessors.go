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
	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/signature"
)

// NewAccessors constructs an empty AccessorRegistry that canonicalizes
// descriptors according to cfg.
func NewAccessors(cfg apis.Config) apis.AccessorRegistry {
	return &accessors{base: newBase(cfg, "accessors")}
}

// accessors stores field and property accessors.
type accessors struct {
	base
	t Table[invoker.Accessor]
}

// Ensure accessors implements apis.AccessorRegistry.
var _ apis.AccessorRegistry = (*accessors)(nil)

// Add inserts or replaces the accessor for sig. A nil set is stored as
// absent. A nil get is ignored.
func (r *accessors) Add(sig string, get invoker.Getter, set invoker.Setter) {
	if get == nil {
		r.rejected(sig, "nil getter")
		return
	}
	r.added(sig, r.t.Put(sig, invoker.NewAccessor(sig, get, set)))
}

// Store inserts or replaces a under its own signature.
func (r *accessors) Store(a *invoker.Accessor) {
	if a == nil {
		return
	}
	r.added(a.Signature(), r.t.Put(a.Signature(), a))
}

// Find returns the accessor registered under exactly sig.
func (r *accessors) Find(sig string) (*invoker.Accessor, bool) {
	return r.t.Get(sig)
}

// FindMember canonicalizes a field or property descriptor and looks it up.
func (r *accessors) FindMember(m signature.Member) (*invoker.Accessor, bool) {
	sig, ok := r.canonical(m, signature.MemberKind.IsAccessor)
	if !ok {
		return nil, false
	}
	return r.Find(sig)
}

// Range calls fn for every entry until fn returns false.
func (r *accessors) Range(fn func(a *invoker.Accessor) bool) {
	r.t.Range(func(_ string, a *invoker.Accessor) bool { return fn(a) })
}

// Signatures returns a sorted snapshot of registered signatures.
func (r *accessors) Signatures() []string { return r.t.Signatures() }

// Count returns the number of registered entries.
func (r *accessors) Count() int { return r.t.Count() }

// Reset clears all registered entries.
func (r *accessors) Reset() { r.t.Reset() }
