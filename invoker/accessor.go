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

// Getter reads a member from obj. obj is nil for static members.
type Getter func(obj any) any

// Setter writes value to a member of obj. obj is nil for static members.
type Setter func(obj, value any)

// Accessor reads and optionally writes a field or property.
// A nil setter means the member cannot be written.
type Accessor struct {
	sig string
	get Getter
	set Setter
}

// NewAccessor wraps get and an optional set. set is kept absent when nil;
// it is never replaced by a no-op.
func NewAccessor(sig string, get Getter, set Setter) *Accessor {
	return &Accessor{sig: sig, get: get, set: set}
}

// Signature returns the signature the accessor was registered under.
func (a *Accessor) Signature() string { return a.sig }

// CanSet reports whether a setter was registered.
func (a *Accessor) CanSet() bool { return a.set != nil }

// Get reads the member from obj.
func (a *Accessor) Get(obj any) (v any, err error) {
	defer guard("get", a.sig, -1, &err)
	return a.get(obj), nil
}

// Set writes value to the member of obj. It fails with
// ErrUnsupportedOperation when no setter exists.
func (a *Accessor) Set(obj, value any) (err error) {
	if a.set == nil {
		return &Error{Op: "set", Signature: a.sig, Err: ErrUnsupportedOperation}
	}
	defer guard("set", a.sig, -1, &err)
	a.set(obj, value)
	return nil
}
