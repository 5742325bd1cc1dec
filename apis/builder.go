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

// Builder composes the resolver and the three registries from a Config.
// Implementations may migrate state from previous instances (prev), or ignore them.
type Builder interface {
	// BuildTypeMap constructs a TypeMap. May migrate entries from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildTypeMap(cfg Config, prev TypeMap, ext any) TypeMap
	// BuildResolver constructs a Resolver over tm. May reuse state from prev.
	BuildResolver(cfg Config, tm TypeMap, prev Resolver, ext any) Resolver
	// BuildAccessors constructs an AccessorRegistry. May migrate entries from prev.
	BuildAccessors(cfg Config, prev AccessorRegistry, ext any) AccessorRegistry
	// BuildMethods constructs a MethodRegistry. May migrate entries from prev.
	BuildMethods(cfg Config, prev MethodRegistry, ext any) MethodRegistry
	// BuildConstructors constructs a ConstructorRegistry. May migrate entries from prev.
	BuildConstructors(cfg Config, prev ConstructorRegistry, ext any) ConstructorRegistry
}
