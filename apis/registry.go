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
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/signature"
)

// AccessorRegistry maps field and property signatures to accessors.
// Implementations must be safe for concurrent Add and Find.
type AccessorRegistry interface {
	// Add inserts or replaces the accessor for sig. set may be nil when the
	// member cannot be written.
	Add(sig string, get invoker.Getter, set invoker.Setter)
	// Store inserts or replaces an existing accessor under its own signature.
	Store(a *invoker.Accessor)
	// Find returns the accessor registered under exactly sig.
	Find(sig string) (*invoker.Accessor, bool)
	// FindMember canonicalizes m and looks the result up.
	FindMember(m signature.Member) (*invoker.Accessor, bool)
	// Range calls fn for every entry until fn returns false (order is unspecified).
	Range(fn func(a *invoker.Accessor) bool)
	// Signatures returns a sorted snapshot of registered signatures.
	Signatures() []string
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// MethodRegistry maps method signatures to method invokers.
// Implementations must be safe for concurrent Add and Find.
type MethodRegistry interface {
	// Add inserts or replaces the method for sig.
	Add(sig string, body invoker.Body)
	// AddFunc registers a value-returning method.
	AddFunc(sig string, fn invoker.Func)
	// AddAction registers a void method.
	AddAction(sig string, fn invoker.Action)
	// Store inserts or replaces an existing method under its own signature.
	Store(m *invoker.Method)
	// Find returns the method registered under exactly sig.
	Find(sig string) (*invoker.Method, bool)
	// FindMember canonicalizes m and looks the result up.
	FindMember(m signature.Member) (*invoker.Method, bool)
	// Range calls fn for every entry until fn returns false (order is unspecified).
	Range(fn func(m *invoker.Method) bool)
	// Signatures returns a sorted snapshot of registered signatures.
	Signatures() []string
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// ConstructorRegistry maps constructor signatures to constructors.
// Implementations must be safe for concurrent Add and Find.
type ConstructorRegistry interface {
	// Add inserts or replaces the constructor for sig.
	Add(sig string, fn invoker.New)
	// Store inserts or replaces an existing constructor under its own signature.
	Store(c *invoker.Constructor)
	// Find returns the constructor registered under exactly sig.
	Find(sig string) (*invoker.Constructor, bool)
	// FindMember canonicalizes m and looks the result up.
	FindMember(m signature.Member) (*invoker.Constructor, bool)
	// Range calls fn for every entry until fn returns false (order is unspecified).
	Range(fn func(c *invoker.Constructor) bool)
	// Signatures returns a sorted snapshot of registered signatures.
	Signatures() []string
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
