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

package builder

import (
	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/registry"
	"dirpx.dev/xdel/resolver"
	"dirpx.dev/xdel/strategy"
	"dirpx.dev/xdel/typemap"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildTypeMap builds and returns a new apis.TypeMap based on the provided configuration
// and pre-existing type map. If a pre-existing type map is provided, its entries are copied
// into the new one.
func (b *builder) BuildTypeMap(cfg apis.Config, prev apis.TypeMap, _ any) apis.TypeMap {
	tm := typemap.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			if err := tm.Register(e.Type, e.Ref); err != nil {
				config.Logger(cfg).Debug("type pin dropped on rebuild", "type", e.Type.String(), "error", err)
			}
		}
	}
	return tm
}

// BuildResolver builds and returns a new apis.Resolver over tm. The chain is
// Namer, then explicit type map pins, then reflection (which also honors pins
// for element types). prev is not reused: strategy caches are keyed on config.
func (b *builder) BuildResolver(_ apis.Config, tm apis.TypeMap, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewTypeMapStrategy(tm),
		strategy.NewReflectStrategy(tm),
	)
}

// BuildAccessors builds a new apis.AccessorRegistry, copying every entry of prev.
func (b *builder) BuildAccessors(cfg apis.Config, prev apis.AccessorRegistry, _ any) apis.AccessorRegistry {
	r := registry.NewAccessors(cfg)
	if prev != nil {
		prev.Range(func(a *invoker.Accessor) bool {
			r.Store(a)
			return true
		})
	}
	return r
}

// BuildMethods builds a new apis.MethodRegistry, copying every entry of prev.
func (b *builder) BuildMethods(cfg apis.Config, prev apis.MethodRegistry, _ any) apis.MethodRegistry {
	r := registry.NewMethods(cfg)
	if prev != nil {
		prev.Range(func(m *invoker.Method) bool {
			r.Store(m)
			return true
		})
	}
	return r
}

// BuildConstructors builds a new apis.ConstructorRegistry, copying every entry of prev.
func (b *builder) BuildConstructors(cfg apis.Config, prev apis.ConstructorRegistry, _ any) apis.ConstructorRegistry {
	r := registry.NewConstructors(cfg)
	if prev != nil {
		prev.Range(func(c *invoker.Constructor) bool {
			r.Store(c)
			return true
		})
	}
	return r
}
