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

// New creates an instance from positional arguments.
type New func(args []any) any

// Constructor creates new instances of a type.
type Constructor struct {
	sig string
	fn  New
}

// NewConstructor wraps fn.
func NewConstructor(sig string, fn New) *Constructor {
	return &Constructor{sig: sig, fn: fn}
}

// Signature returns the signature the constructor was registered under.
func (c *Constructor) Signature() string { return c.sig }

// Invoke creates a new instance.
func (c *Constructor) Invoke(args ...any) (v any, err error) {
	defer guard("new", c.sig, len(args), &err)
	// Capacity is capped so reslicing past the arguments fails too.
	return c.fn(args[:len(args):len(args)]), nil
}
