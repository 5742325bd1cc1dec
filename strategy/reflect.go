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
	"sync"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/signature"
	uref "dirpx.dev/xdel/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives TypeRefs via
// reflection using utils/reflect.TypeRefWith. Element types found in tm
// (which may be nil) keep their pinned TypeRef.
func NewReflectStrategy(tm apis.TypeMap) apis.Strategy {
	return &reflectStrategy{tm: tm}
}

// reflectStrategy is the universal fallback. It maps named types to
// "importpath.Name<Args>" and composites to their Go spelling.
type reflectStrategy struct {
	tm apis.TypeMap
	// cache holds resolved refs when cfg.Memoize is set.
	cache sync.Map // key: cacheKey, val: cached
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all inputs that affect resolution.
type cacheKey struct {
	t        reflect.Type
	maxDepth int
	// gen is the type map generation; any change to the pins invalidates old entries.
	gen uint64
}

type cached struct {
	ref signature.TypeRef
	ok  bool
}

// TryResolve computes the TypeRef for v's dynamic type.
func (s *reflectStrategy) TryResolve(v any, cfg apis.Config) (signature.TypeRef, bool) {
	if v == nil {
		return signature.TypeRef{}, false
	}
	return s.byType(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the TypeRef for t.
func (s *reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (signature.TypeRef, bool) {
	if t == nil {
		return signature.TypeRef{}, false
	}
	return s.byType(t, cfg)
}

// byType resolves t, memoizing when cfg.Memoize is set.
func (s *reflectStrategy) byType(t reflect.Type, cfg apis.Config) (signature.TypeRef, bool) {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	if !cfg.Memoize {
		return s.compute(t, maxDepth, cfg)
	}

	key := cacheKey{t: t, maxDepth: maxDepth}
	if s.tm != nil {
		key.gen = s.tm.Generation()
	}
	// Cached refs are never handed out; callers get their own copy.
	if v, ok := s.cache.Load(key); ok {
		c := v.(cached)
		return c.ref.Clone(), c.ok
	}
	ref, ok := s.compute(t, maxDepth, cfg)
	s.cache.Store(key, cached{ref: ref, ok: ok})
	return ref.Clone(), ok
}

func (s *reflectStrategy) compute(t reflect.Type, maxDepth int, cfg apis.Config) (signature.TypeRef, bool) {
	var override uref.Override
	if s.tm != nil {
		override = s.tm.Lookup
	}
	ref, err := uref.TypeRefWith(t, maxDepth, override)
	if err != nil {
		config.Logger(cfg).Debug("type not resolvable", "type", t.String(), "error", err)
		return ref, false
	}
	return ref, true
}
