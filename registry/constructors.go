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

// NewConstructors constructs an empty ConstructorRegistry that canonicalizes
// descriptors according to cfg.
func NewConstructors(cfg apis.Config) apis.ConstructorRegistry {
	return &constructors{base: newBase(cfg, "constructors")}
}

// constructors stores constructor invokers.
type constructors struct {
	base
	t Table[invoker.Constructor]
}

// Ensure constructors implements apis.ConstructorRegistry.
var _ apis.ConstructorRegistry = (*constructors)(nil)

// Add inserts or replaces the constructor for sig. A nil fn is ignored.
func (r *constructors) Add(sig string, fn invoker.New) {
	if fn == nil {
		r.rejected(sig, "nil constructor")
		return
	}
	r.added(sig, r.t.Put(sig, invoker.NewConstructor(sig, fn)))
}

// Store inserts or replaces c under its own signature.
func (r *constructors) Store(c *invoker.Constructor) {
	if c == nil {
		return
	}
	r.added(c.Signature(), r.t.Put(c.Signature(), c))
}

// Find returns the constructor registered under exactly sig.
func (r *constructors) Find(sig string) (*invoker.Constructor, bool) {
	return r.t.Get(sig)
}

// FindMember canonicalizes a constructor descriptor and looks it up.
func (r *constructors) FindMember(m signature.Member) (*invoker.Constructor, bool) {
	sig, ok := r.canonical(m, func(k signature.MemberKind) bool { return k == signature.Constructor })
	if !ok {
		return nil, false
	}
	return r.Find(sig)
}

// Range calls fn for every entry until fn returns false.
func (r *constructors) Range(fn func(c *invoker.Constructor) bool) {
	r.t.Range(func(_ string, c *invoker.Constructor) bool { return fn(c) })
}

// Signatures returns a sorted snapshot of registered signatures.
func (r *constructors) Signatures() []string { return r.t.Signatures() }

// Count returns the number of registered entries.
func (r *constructors) Count() int { return r.t.Count() }

// Reset clears all registered entries.
func (r *constructors) Reset() { r.t.Reset() }
