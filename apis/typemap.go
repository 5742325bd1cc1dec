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

package apis

import (
	"reflect"

	"dirpx.dev/xdel/signature"
)

// TypeMap provides explicit, reflection-free TypeRefs for known Go types.
// It lets a process pin the canonical name of a type, e.g. render int32 as
// System.Int32 to stay compatible with keys produced elsewhere.
type TypeMap interface {
	// Register associates t with ref.
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(t reflect.Type, ref signature.TypeRef) error
	// Lookup returns the TypeRef registered for t if present.
	Lookup(t reflect.Type) (ref signature.TypeRef, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Generation changes whenever the set of entries changes, including on
	// Reset. Caches of derived TypeRefs use it as their version.
	Generation() uint64
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, ref) association in a TypeMap snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Ref is the associated TypeRef.
	Ref signature.TypeRef
}
