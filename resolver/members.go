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

package resolver

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/signature"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("xdel(resolver): nil type")
	// ErrNotStruct is returned when a field is requested on a non-struct type.
	ErrNotStruct = errors.New("xdel(resolver): not a struct type")
	// ErrNoSuchField is returned when the struct has no field of that name.
	ErrNoSuchField = errors.New("xdel(resolver): no such field")
	// ErrNoSuchMethod is returned when neither T nor *T has a method of that name.
	ErrNoSuchMethod = errors.New("xdel(resolver): no such method")
)

// FieldMember describes the struct field name of t (or *t) as a
// signature.Field. Promoted fields are attributed to the struct that
// declares them. Unexported fields get signature.Internal accessibility.
func FieldMember(r apis.Resolver, cfg apis.Config, t reflect.Type, name string) (signature.Member, error) {
	if t == nil {
		return signature.Member{}, ErrNilType
	}
	t = deref(t)
	if t.Kind() != reflect.Struct {
		return signature.Member{}, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	sf, ok := t.FieldByName(name)
	if !ok {
		return signature.Member{}, fmt.Errorf("%w: %s.%s", ErrNoSuchField, t, name)
	}

	owner := t
	for _, i := range sf.Index[:len(sf.Index)-1] {
		owner = deref(owner.Field(i).Type)
	}

	m := signature.FieldOf(r.ResolveType(owner, cfg), sf.Name)
	if !sf.IsExported() {
		m.Access = signature.Internal
	}
	return m, nil
}

// MethodMember describes the exported method name of t as a
// signature.Method. Methods declared on *T are found from T as well.
// Methods promoted from an embedded field are attributed to the type that
// declares them, as FieldMember does for promoted fields.
func MethodMember(r apis.Resolver, cfg apis.Config, t reflect.Type, name string) (signature.Member, error) {
	if t == nil {
		return signature.Member{}, ErrNilType
	}

	base := deref(t)
	var (
		fn   reflect.Type
		skip int
	)
	switch {
	case base.Kind() == reflect.Interface:
		meth, ok := base.MethodByName(name)
		if !ok {
			return signature.Member{}, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, base, name)
		}
		fn = meth.Type
	default:
		meth, ok := reflect.PointerTo(base).MethodByName(name)
		if !ok {
			return signature.Member{}, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, base, name)
		}
		fn, skip = meth.Type, 1
	}

	params := make([]signature.Param, 0, fn.NumIn()-skip)
	for i := skip; i < fn.NumIn(); i++ {
		params = append(params, signature.Param{Type: r.ResolveType(fn.In(i), cfg)})
	}
	m := signature.MethodOf(r.ResolveType(methodOwner(base, name), cfg), name)
	m.Params = params
	return m, nil
}

// methodOwner returns the type declaring method name of struct t, walking
// embedded fields shallowest first. A method t declares itself wins;
// ambiguous promotions stay on t.
func methodOwner(t reflect.Type, name string) reflect.Type {
	if t.Kind() != reflect.Struct || declares(t, name) {
		return t
	}
	seen := map[reflect.Type]bool{t: true}
	level := []reflect.Type{t}
	for len(level) > 0 {
		var found, next []reflect.Type
		for _, s := range level {
			for i := 0; i < s.NumField(); i++ {
				f := s.Field(i)
				if !f.Anonymous {
					continue
				}
				ft := deref(f.Type)
				if seen[ft] {
					continue
				}
				seen[ft] = true
				switch {
				case hasMethod(ft, name):
					found = append(found, ft)
				case ft.Kind() == reflect.Struct:
					next = append(next, ft)
				}
			}
		}
		switch len(found) {
		case 0:
			level = next
		case 1:
			return methodOwner(found[0], name)
		default:
			return t
		}
	}
	return t
}

func hasMethod(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		_, ok := t.MethodByName(name)
		return ok
	}
	_, ok := reflect.PointerTo(t).MethodByName(name)
	return ok
}

// declares reports whether t itself declares method name. reflect lists
// promoted methods like declared ones; the compiler implements them as
// generated wrappers, which is what tells them apart.
func declares(t reflect.Type, name string) bool {
	if m, ok := t.MethodByName(name); ok {
		return !generated(m.Func)
	}
	if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
		return !generated(m.Func)
	}
	return false
}

func generated(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}
	file, _ := f.FileLine(f.Entry())
	return file == "<autogenerated>"
}

// ConstructorMember describes a constructor of t taking params. Go has no
// constructors; these are registered by convention for New-style factories.
func ConstructorMember(r apis.Resolver, cfg apis.Config, t reflect.Type, params ...reflect.Type) (signature.Member, error) {
	if t == nil {
		return signature.Member{}, ErrNilType
	}
	refs := make([]signature.TypeRef, len(params))
	for i, p := range params {
		if p == nil {
			return signature.Member{}, fmt.Errorf("%w: parameter %d", ErrNilType, i)
		}
		refs[i] = r.ResolveType(p, cfg)
	}
	return signature.ConstructorOf(r.ResolveType(deref(t), cfg), refs...), nil
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
