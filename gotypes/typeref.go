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

package gotypes

import (
	"errors"
	"fmt"
	"go/types"

	"dirpx.dev/xdel/signature"
)

var (
	// ErrAnonymousType is returned for struct and non-empty interface literals.
	ErrAnonymousType = errors.New("xdel(gotypes): anonymous type")
	// ErrTypeParam is returned when a type mentions an unbound type parameter.
	ErrTypeParam = errors.New("xdel(gotypes): unbound type parameter")
	// ErrTooDeep is returned when composite nesting exceeds the limit.
	ErrTooDeep = errors.New("xdel(gotypes): type nesting exceeds limit")
	// ErrUnsupportedType is returned for types with no canonical spelling.
	ErrUnsupportedType = errors.New("xdel(gotypes): unsupported type")
)

// TypeRef converts a go/types type into a signature.TypeRef that renders
// exactly like the reflect-based resolver does for the same run-time type:
// named types are namespaced by import path, byte and rune are spelled
// uint8 and int32, and interface{} is "any".
// If maxDepth <= 0, no limit is applied.
func TypeRef(t types.Type, maxDepth int) (signature.TypeRef, error) {
	ref, err := typeRef(t, maxDepth, 0)
	if err != nil {
		return signature.AnonymousType(), err
	}
	return ref, nil
}

func typeRef(t types.Type, maxDepth, depth int) (signature.TypeRef, error) {
	if maxDepth > 0 && depth > maxDepth {
		return signature.TypeRef{}, ErrTooDeep
	}
	sub := func(t types.Type) (signature.TypeRef, error) { return typeRef(t, maxDepth, depth+1) }

	switch t := types.Unalias(t).(type) {
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			// error, comparable
			return signature.Builtin(obj.Name()), nil
		}
		if t.TypeParams().Len() > 0 && t.TypeArgs().Len() == 0 {
			return signature.TypeRef{}, fmt.Errorf("%w: uninstantiated %s", ErrTypeParam, obj.Name())
		}
		args := make([]signature.TypeRef, t.TypeArgs().Len())
		for i := range args {
			a, err := sub(t.TypeArgs().At(i))
			if err != nil {
				return a, err
			}
			args[i] = a
		}
		return signature.Type(obj.Pkg().Path()+"."+obj.Name(), args...), nil

	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return signature.Type("unsafe.Pointer"), nil
		}
		if t.Info()&types.IsUntyped != 0 {
			return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
		}
		// Typ is indexed by kind; byte and rune share uint8 and int32 kinds.
		return signature.Builtin(types.Typ[t.Kind()].Name()), nil

	case *types.Pointer:
		e, err := sub(t.Elem())
		return signature.PointerTo(e), err

	case *types.Slice:
		e, err := sub(t.Elem())
		return signature.SliceOf(e), err

	case *types.Array:
		e, err := sub(t.Elem())
		return signature.ArrayOf(int(t.Len()), e), err

	case *types.Map:
		k, err := sub(t.Key())
		if err != nil {
			return k, err
		}
		e, err := sub(t.Elem())
		return signature.MapOf(k, e), err

	case *types.Chan:
		e, err := sub(t.Elem())
		return signature.ChanOf(chanDir(t.Dir()), e), err

	case *types.Signature:
		in, err := tuple(t.Params(), sub)
		if err != nil {
			return signature.TypeRef{}, err
		}
		out, err := tuple(t.Results(), sub)
		if err != nil {
			return signature.TypeRef{}, err
		}
		return signature.FuncOf(in, out, t.Variadic()), nil

	case *types.Interface:
		if t.Empty() {
			return signature.Builtin("any"), nil
		}
		return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrAnonymousType, t)

	case *types.Struct:
		return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrAnonymousType, t)

	case *types.TypeParam:
		return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrTypeParam, t)
	}
	return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func tuple(tup *types.Tuple, sub func(types.Type) (signature.TypeRef, error)) ([]signature.TypeRef, error) {
	if tup.Len() == 0 {
		return nil, nil
	}
	out := make([]signature.TypeRef, tup.Len())
	for i := range out {
		r, err := sub(tup.At(i).Type())
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func chanDir(d types.ChanDir) signature.ChanDir {
	switch d {
	case types.RecvOnly:
		return signature.RecvOnly
	case types.SendOnly:
		return signature.SendOnly
	default:
		return signature.Both
	}
}
