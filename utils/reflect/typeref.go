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

package reflect

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"dirpx.dev/xdel/signature"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (or one of its
	// elements) is an anonymous struct or a non-empty anonymous interface.
	ErrReflectTypeNotNamed = errors.New("reflect: type has no stable name")
	// ErrReflectTooDeep is returned when composite nesting exceeds maxDepth.
	ErrReflectTooDeep = errors.New("reflect: type nesting exceeds limit")
)

// TypeRefOf converts t into a signature.TypeRef.
//
// Conversion policy:
//   - named type with a package -> Namespace = import path, one segment;
//     generic arguments are recovered from reflect's printed name
//   - predeclared type (int, string, error) -> namespace-less name
//   - interface{} -> "any"
//   - ptr/slice/array/map/chan/func -> matching composite over converted elements
//   - anonymous struct or interface with methods -> ErrReflectTypeNotNamed
//
// On error the returned TypeRef has kind signature.Anonymous.
// If maxDepth <= 0, no limit is applied.
func TypeRefOf(t reflect.Type, maxDepth int) (signature.TypeRef, error) {
	return TypeRefWith(t, maxDepth, nil)
}

// Override supplies a fixed TypeRef for t, bypassing conversion.
type Override func(t reflect.Type) (signature.TypeRef, bool)

// TypeRefWith is TypeRefOf with an override consulted for t and for every
// element type reached through composites. Generic arguments recovered from
// printed names are not overridable: they carry no reflect.Type.
func TypeRefWith(t reflect.Type, maxDepth int, override Override) (signature.TypeRef, error) {
	if t == nil {
		return signature.AnonymousType(), ErrReflectNilType
	}
	c := converter{maxDepth: maxDepth, override: override}
	ref, err := c.typeRef(t, 0)
	if err != nil {
		return signature.AnonymousType(), err
	}
	return ref, nil
}

type converter struct {
	maxDepth int
	override Override
}

func (c converter) typeRef(t reflect.Type, depth int) (signature.TypeRef, error) {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return signature.TypeRef{}, ErrReflectTooDeep
	}
	if c.override != nil {
		if ref, ok := c.override(t); ok {
			return ref, nil
		}
	}
	if t == unsafePointer {
		return signature.Type("unsafe.Pointer"), nil
	}
	if name := t.Name(); name != "" {
		if t.PkgPath() == "" {
			return signature.Builtin(name), nil
		}
		ref, err := ParseTypeName(t.PkgPath() + "." + name)
		if err != nil {
			return signature.TypeRef{}, fmt.Errorf("%w: %s", err, t)
		}
		return ref, nil
	}

	elem := func() (signature.TypeRef, error) { return c.typeRef(t.Elem(), depth+1) }

	switch t.Kind() {
	case reflect.Pointer:
		e, err := elem()
		if err != nil {
			return e, err
		}
		return signature.PointerTo(e), nil

	case reflect.Slice:
		e, err := elem()
		if err != nil {
			return e, err
		}
		return signature.SliceOf(e), nil

	case reflect.Array:
		e, err := elem()
		if err != nil {
			return e, err
		}
		return signature.ArrayOf(t.Len(), e), nil

	case reflect.Chan:
		e, err := elem()
		if err != nil {
			return e, err
		}
		return signature.ChanOf(chanDir(t.ChanDir()), e), nil

	case reflect.Map:
		k, err := c.typeRef(t.Key(), depth+1)
		if err != nil {
			return k, err
		}
		e, err := elem()
		if err != nil {
			return e, err
		}
		return signature.MapOf(k, e), nil

	case reflect.Func:
		in := make([]signature.TypeRef, t.NumIn())
		for i := range in {
			r, err := c.typeRef(t.In(i), depth+1)
			if err != nil {
				return r, err
			}
			in[i] = r
		}
		out := make([]signature.TypeRef, t.NumOut())
		for i := range out {
			r, err := c.typeRef(t.Out(i), depth+1)
			if err != nil {
				return r, err
			}
			out[i] = r
		}
		return signature.FuncOf(in, out, t.IsVariadic()), nil

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return signature.Builtin("any"), nil
		}
	}
	return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrReflectTypeNotNamed, t)
}

var unsafePointer = reflect.TypeOf(unsafe.Pointer(nil))

func chanDir(d reflect.ChanDir) signature.ChanDir {
	switch d {
	case reflect.RecvDir:
		return signature.RecvOnly
	case reflect.SendDir:
		return signature.SendOnly
	default:
		return signature.Both
	}
}
