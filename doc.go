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

// Package xdel is a process-wide directory of fast, reflection-free member
// invokers keyed by canonical signature strings.
//
// A registration stage (usually generated code, run once at start-up) adds
// a closure for every field, property, method and constructor it wants to
// expose. At run time, callers look invokers up either by the exact
// signature string or by a member descriptor, which is canonicalized with
// package signature first. Both routes agree for the same member:
//
//	xdel.AddAccessor("N.Point.X", getX, setX)
//	acc, ok := xdel.AccessorFor(signature.FieldOf(signature.Type("N.Point"), "X"))
//
// # Design
//
// The core is a read-mostly global snapshot (state) holding:
//
//   - Config: lookup policy (minimum accessibility, nesting limit for type
//     walks, memoization) and the debug logger.
//
//   - TypeMap: explicit reflect.Type to signature.TypeRef pins, e.g. to make
//     int32 render as System.Int32 so Go-side lookups match keys produced by
//     another toolchain.
//
//   - Resolver: turns Go values and reflect types into TypeRefs, trying in
//     order apis.Namer, the TypeMap, then reflection. It backs AccessorOf,
//     MethodOf and ConstructorOf.
//
//   - Accessors, Methods, Constructors: the three signature-keyed
//     registries (package registry).
//
//   - Builder: the factory for all of the above. On every reconfiguration
//     it rebuilds the non-pinned layers and migrates registered entries.
//
// Readers load the snapshot atomically and never lock. Writers (SetConfig,
// SetBuilder, SetExt, SetTypeMap, SetResolver, SetAll) serialize on a build
// mutex, assemble a new snapshot and publish it with an atomic swap.
// Registration (AddAccessor and friends) holds that mutex shared, so an Add
// racing a rebuild lands in the registry that survives it.
//
// # Lookups
//
// Every lookup answers "found" or "not found". A descriptor that cannot be
// canonicalized, or names a member the registration stage skips (below the
// minimum accessibility, ref/out parameters, anonymous types), is simply
// not found; the reason is logged at debug level. The shortcuts Get, Set,
// Call and New wrap a miss in ErrNotFound and pass invocation failures
// through as *invoker.Error. Failed invocations never evict an entry.
//
// # Start-up
//
// Generated modules either call Initialize directly or queue themselves
// from init with Register and let the binary run InitializeRegistered once.
// Initializers run concurrently; the first error cancels the rest.
//
// # Pinning
//
// SetTypeMap and SetResolver install a layer and pin it, so later rebuilds
// keep it until UnpinTypeMap or UnpinResolver. SetAll is the hard reset
// used by tests to inject a mock Builder; Reset restores defaults.
//
// # Extension config
//
// The snapshot also carries an opaque ext value owned by the embedding
// binary. xdel does not interpret it; the active Builder receives it on each
// rebuild.
package xdel
