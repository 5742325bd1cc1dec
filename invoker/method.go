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

// Func invokes a method that returns a value.
type Func func(obj any, args []any) any

// Action invokes a method that returns nothing.
type Action func(obj any, args []any)

// Body is the closure behind a Method: either a Func or an Action.
// The set of implementations is closed.
type Body interface {
	call(obj any, args []any) (any, bool)
}

func (f Func) call(obj any, args []any) (any, bool) { return f(obj, args), true }

func (f Action) call(obj any, args []any) (any, bool) {
	f(obj, args)
	return nil, false
}

// Method invokes a static or instance method.
type Method struct {
	sig  string
	body Body
}

// NewMethod wraps body. body must be a non-nil Func or Action.
func NewMethod(sig string, body Body) *Method {
	return &Method{sig: sig, body: body}
}

// Signature returns the signature the method was registered under.
func (m *Method) Signature() string { return m.sig }

// Returns reports whether the method yields a value.
func (m *Method) Returns() bool {
	_, ok := m.body.(Func)
	return ok
}

// Invoke calls the method on obj (nil for static methods). ok is false when
// the method returns nothing; its side effects still happen.
func (m *Method) Invoke(obj any, args ...any) (v any, ok bool, err error) {
	defer guard("invoke", m.sig, len(args), &err)
	// Capacity is capped so reslicing past the arguments fails too.
	v, ok = m.body.call(obj, args[:len(args):len(args)])
	return v, ok, nil
}
