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

// NewTypeMapStrategy creates an apis.Strategy that uses an apis.TypeMap.
func NewTypeMapStrategy(tm apis.TypeMap) apis.Strategy {
	return &typeMapStrategy{tm: tm}
}

// typeMapStrategy consults a provided apis.TypeMap (reflection-free lookup).
type typeMapStrategy struct {
	tm apis.TypeMap
}

// Ensure typeMapStrategy implements apis.Strategy.
var _ apis.Strategy = (*typeMapStrategy)(nil)

// TryResolve looks up v's type in the type map.
func (s *typeMapStrategy) TryResolve(v any, _ apis.Config) (signature.TypeRef, bool) {
	if v == nil || s.tm == nil {
		return signature.TypeRef{}, false
	}
	return s.tm.Lookup(reflect.TypeOf(v))
}

// TryResolveType looks up t in the type map.
func (s *typeMapStrategy) TryResolveType(t reflect.Type, _ apis.Config) (signature.TypeRef, bool) {
	if t == nil || s.tm == nil {
		return signature.TypeRef{}, false
	}
	return s.tm.Lookup(t)
}
