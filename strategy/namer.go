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

package strategy

import (
	"reflect"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/signature"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is a zero-cost fast path: if v implements apis.Namer,
// return its CanonicalType() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if v implements apis.Namer and returns its CanonicalType().
func (*namerStrategy) TryResolve(v any, _ apis.Config) (signature.TypeRef, bool) {
	if v == nil {
		return signature.TypeRef{}, false
	}
	if n, ok := v.(apis.Namer); ok {
		return n.CanonicalType(), true
	}
	return signature.TypeRef{}, false
}

// TryResolveType checks whether the zero value of t implements apis.Namer.
// Pointer types are tried through a fresh instance of their element.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (signature.TypeRef, bool) {
	if t == nil || !t.Implements(namerType) {
		return signature.TypeRef{}, false
	}
	switch t.Kind() {
	case reflect.Interface:
		// No instance -> cannot use Namer.
		return signature.TypeRef{}, false
	case reflect.Pointer:
		return reflect.New(t.Elem()).Interface().(apis.Namer).CanonicalType(), true
	default:
		return reflect.Zero(t).Interface().(apis.Namer).CanonicalType(), true
	}
}

var namerType = reflect.TypeFor[apis.Namer]()
