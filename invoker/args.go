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

package invoker

import "reflect"

// Arg returns args[i] as T. It is meant for registration closures: a
// missing argument fails the call with ErrArgumentCount and an argument of
// the wrong type with ErrTypeMismatch, instead of an uncontrolled panic.
//
// A nil argument yields the zero T when T is an interface, pointer, map,
// slice, chan or func type.
func Arg[T any](args []any, i int) T {
	if i < 0 || i >= len(args) {
		panic(newArgError(ErrArgumentCount, "argument %d requested, %d supplied", i, len(args)))
	}
	return as[T](args[i], "argument", i)
}

// Self returns the receiver obj as T, failing with ErrTypeMismatch.
func Self[T any](obj any) T {
	return as[T](obj, "instance", -1)
}

// Value returns the value passed to a setter as T, failing with ErrTypeMismatch.
func Value[T any](v any) T {
	return as[T](v, "value", -1)
}

// as converts v to T or raises a classified type mismatch.
func as[T any](v any, what string, pos int) T {
	if t, ok := v.(T); ok {
		return t
	}
	var zero T
	if v == nil && nilable(reflect.TypeFor[T]()) {
		return zero
	}
	if pos >= 0 {
		panic(newArgError(ErrTypeMismatch, "%s %d: have %T, want %v", what, pos, v, reflect.TypeFor[T]()))
	}
	panic(newArgError(ErrTypeMismatch, "%s: have %T, want %v", what, v, reflect.TypeFor[T]()))
}

// nilable reports whether nil is a valid value of t.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
