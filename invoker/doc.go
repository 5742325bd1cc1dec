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

// Package invoker holds the callable units stored in the xdel registries.
//
// An Accessor wraps a getter and an optional setter, a Method wraps either
// a value-returning Func or a void Action, and a Constructor wraps a
// factory. The closures are supplied by generated registration code and
// index their arguments positionally:
//
//	registry.AddFunc("N.Calc.Add(System.Int32, System.Int32)", func(obj any, a []any) any {
//		return invoker.Self[*Calc](obj).Add(invoker.Arg[int](a, 0), invoker.Arg[int](a, 1))
//	})
//
// Too few arguments fail with ErrArgumentCount and badly typed ones with
// ErrTypeMismatch, whether the closure uses the helpers above or plain
// a[i].(T) and a[:n] expressions. Plain indexing is classified from the
// runtime failure: an index or slice bound past the supplied arguments is
// an argument count failure, any other bounds failure is a bug in the
// member and propagates. The helpers are exact and should be preferred;
// a member that itself indexes a slice exactly as long as the arguments,
// past its end, is indistinguishable from a missing argument.
// A failed call leaves the invoker usable.
package invoker
