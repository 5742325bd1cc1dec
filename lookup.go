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

package xdel

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/resolver"
	"dirpx.dev/xdel/signature"
)

// ErrNotFound is returned by the error-returning shortcuts when no entry is
// registered under the requested signature.
var ErrNotFound = errors.New("xdel: not found")

// AddAccessor registers a field or property accessor under sig (last write
// wins). set may be nil for read-only members.
func AddAccessor(sig string, get invoker.Getter, set invoker.Setter) {
	buildMu.RLock()
	defer buildMu.RUnlock()
	st.Load().acc.Add(sig, get, set)
}

// AddFunc registers a value-returning method under sig.
func AddFunc(sig string, fn invoker.Func) {
	buildMu.RLock()
	defer buildMu.RUnlock()
	st.Load().met.AddFunc(sig, fn)
}

// AddAction registers a void method under sig.
func AddAction(sig string, fn invoker.Action) {
	buildMu.RLock()
	defer buildMu.RUnlock()
	st.Load().met.AddAction(sig, fn)
}

// AddConstructor registers a constructor under sig.
func AddConstructor(sig string, fn invoker.New) {
	buildMu.RLock()
	defer buildMu.RUnlock()
	st.Load().ctor.Add(sig, fn)
}

// RegisterType pins the TypeRef used for t in the global type map.
func RegisterType(t reflect.Type, ref signature.TypeRef) error {
	buildMu.RLock()
	defer buildMu.RUnlock()
	return st.Load().tm.Register(t, ref)
}

// FindAccessor returns the accessor registered under exactly sig.
func FindAccessor(sig string) (*invoker.Accessor, bool) {
	return st.Load().acc.Find(sig)
}

// FindMethod returns the method registered under exactly sig.
func FindMethod(sig string) (*invoker.Method, bool) {
	return st.Load().met.Find(sig)
}

// FindConstructor returns the constructor registered under exactly sig.
func FindConstructor(sig string) (*invoker.Constructor, bool) {
	return st.Load().ctor.Find(sig)
}

// AccessorFor canonicalizes m and returns the matching accessor.
func AccessorFor(m signature.Member) (*invoker.Accessor, bool) {
	return st.Load().acc.FindMember(m)
}

// MethodFor canonicalizes m and returns the matching method.
func MethodFor(m signature.Member) (*invoker.Method, bool) {
	return st.Load().met.FindMember(m)
}

// ConstructorFor canonicalizes m and returns the matching constructor.
func ConstructorFor(m signature.Member) (*invoker.Constructor, bool) {
	return st.Load().ctor.FindMember(m)
}

// TypeRefOf resolves the TypeRef of v's dynamic type.
func TypeRefOf(v any) signature.TypeRef {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeRefOfType resolves the TypeRef of t.
func TypeRefOfType(t reflect.Type) signature.TypeRef {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// AccessorOf returns the accessor for the struct field of t, resolving the
// declaring type through the global resolver.
func AccessorOf(t reflect.Type, field string) (*invoker.Accessor, bool) {
	s := st.Load()
	m, err := resolver.FieldMember(s.res, s.cfg, t, field)
	if err != nil {
		config.Logger(s.cfg).Debug("accessor lookup skipped", "field", field, "error", err)
		return nil, false
	}
	return s.acc.FindMember(m)
}

// MethodOf returns the method name of t, resolving the declaring type and
// parameter types through the global resolver.
func MethodOf(t reflect.Type, name string) (*invoker.Method, bool) {
	s := st.Load()
	m, err := resolver.MethodMember(s.res, s.cfg, t, name)
	if err != nil {
		config.Logger(s.cfg).Debug("method lookup skipped", "method", name, "error", err)
		return nil, false
	}
	return s.met.FindMember(m)
}

// ConstructorOf returns the constructor of t taking params.
func ConstructorOf(t reflect.Type, params ...reflect.Type) (*invoker.Constructor, bool) {
	s := st.Load()
	m, err := resolver.ConstructorMember(s.res, s.cfg, t, params...)
	if err != nil {
		config.Logger(s.cfg).Debug("constructor lookup skipped", "error", err)
		return nil, false
	}
	return s.ctor.FindMember(m)
}

// Get reads the member registered under sig from obj.
func Get(sig string, obj any) (any, error) {
	a, ok := FindAccessor(sig)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sig)
	}
	return a.Get(obj)
}

// Set writes v to the member registered under sig on obj.
func Set(sig string, obj, v any) error {
	a, ok := FindAccessor(sig)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sig)
	}
	return a.Set(obj, v)
}

// Call invokes the method registered under sig. The result is nil for
// void methods.
func Call(sig string, obj any, args ...any) (any, error) {
	m, ok := FindMethod(sig)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sig)
	}
	v, _, err := m.Invoke(obj, args...)
	return v, err
}

// New invokes the constructor registered under sig.
func New(sig string, args ...any) (any, error) {
	c, ok := FindConstructor(sig)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sig)
	}
	return c.Invoke(args...)
}
