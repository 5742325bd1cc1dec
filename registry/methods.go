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

// NewMethods constructs an empty MethodRegistry that canonicalizes
// descriptors according to cfg.
func NewMethods(cfg apis.Config) apis.MethodRegistry {
	return &methods{base: newBase(cfg, "methods")}
}

// methods stores method invokers.
type methods struct {
	base
	t Table[invoker.Method]
}

// Ensure methods implements apis.MethodRegistry.
var _ apis.MethodRegistry = (*methods)(nil)

// Add inserts or replaces the method for sig. Nil bodies are ignored.
func (r *methods) Add(sig string, body invoker.Body) {
	switch b := body.(type) {
	case nil:
		r.rejected(sig, "nil body")
		return
	case invoker.Func:
		if b == nil {
			r.rejected(sig, "nil func")
			return
		}
	case invoker.Action:
		if b == nil {
			r.rejected(sig, "nil action")
			return
		}
	}
	r.added(sig, r.t.Put(sig, invoker.NewMethod(sig, body)))
}

// AddFunc registers a value-returning method.
func (r *methods) AddFunc(sig string, fn invoker.Func) { r.Add(sig, fn) }

// AddAction registers a void method.
func (r *methods) AddAction(sig string, fn invoker.Action) { r.Add(sig, fn) }

// Store inserts or replaces m under its own signature.
func (r *methods) Store(m *invoker.Method) {
	if m == nil {
		return
	}
	r.added(m.Signature(), r.t.Put(m.Signature(), m))
}

// Find returns the method registered under exactly sig.
func (r *methods) Find(sig string) (*invoker.Method, bool) {
	return r.t.Get(sig)
}

// FindMember canonicalizes a method descriptor and looks it up.
func (r *methods) FindMember(m signature.Member) (*invoker.Method, bool) {
	sig, ok := r.canonical(m, func(k signature.MemberKind) bool { return k == signature.Method })
	if !ok {
		return nil, false
	}
	return r.Find(sig)
}

// Range calls fn for every entry until fn returns false.
func (r *methods) Range(fn func(m *invoker.Method) bool) {
	r.t.Range(func(_ string, m *invoker.Method) bool { return fn(m) })
}

// Signatures returns a sorted snapshot of registered signatures.
func (r *methods) Signatures() []string { return r.t.Signatures() }

// Count returns the number of registered entries.
func (r *methods) Count() int { return r.t.Count() }

// Reset clears all registered entries.
func (r *methods) Reset() { r.t.Reset() }
