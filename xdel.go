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

package xdel

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/builder"
	"dirpx.dev/xdel/config"
)

// init initializes the global state.
func init() {
	st.Store(fresh(config.DefaultConfig(), builder.New()))
}

var (
	// ErrNilTypeMap is returned when a builder returns a nil type map.
	ErrNilTypeMap = errors.New("xdel: builder returned nil type map")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("xdel: builder returned nil resolver")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("xdel: builder returned nil registry")
)

// fresh builds an empty state from cfg and b.
func fresh(cfg apis.Config, b apis.Builder) *state {
	s := &state{cfg: cfg, bld: b}
	s.tm = b.BuildTypeMap(cfg, nil, nil)
	s.res = b.BuildResolver(cfg, s.tm, nil, nil)
	s.acc = b.BuildAccessors(cfg, nil, nil)
	s.met = b.BuildMethods(cfg, nil, nil)
	s.ctor = b.BuildConstructors(cfg, nil, nil)
	return s
}

// swap serializes a reconfiguration: edit adjusts a copy of the current
// state, then every non-pinned layer is rebuilt through the (possibly new)
// builder, migrating entries from the old layers, and the result is
// published atomically.
func swap(edit func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	next := *old
	edit(&next)
	b := next.bld

	// Type map
	if !next.ptm {
		next.tm = b.BuildTypeMap(next.cfg, old.tm, next.ext)
	}
	// Resolver
	if !next.pres {
		next.res = b.BuildResolver(next.cfg, next.tm, old.res, next.ext)
	}
	// Registries always migrate; their entries are the registration stage's output.
	next.acc = b.BuildAccessors(next.cfg, old.acc, next.ext)
	next.met = b.BuildMethods(next.cfg, old.met, next.ext)
	next.ctor = b.BuildConstructors(next.cfg, old.ctor, next.ext)

	// Ensure non-nil layers.
	switch {
	case next.tm == nil:
		panic(ErrNilTypeMap)
	case next.res == nil:
		panic(ErrNilResolver)
	case next.acc == nil, next.met == nil, next.ctor == nil:
		panic(ErrNilRegistry)
	}

	config.Logger(next.cfg).Debug("xdel state rebuilt",
		"accessors", next.acc.Count(),
		"methods", next.met.Count(),
		"constructors", next.ctor.Count(),
		"typemap_pinned", next.ptm,
		"resolver_pinned", next.pres,
	)

	// Store the new state atomically.
	st.Store(&next)
}

// SetAll explicitly sets global state components and rebuilds the rest.
//
// A nil cfg or bld leaves that component unchanged; ext is always replaced.
// A non-nil tm or res is installed and pinned; a nil one is unpinned and
// rebuilt by the builder.
func SetAll(cfg *apis.Config, ext any, tm apis.TypeMap, res apis.Resolver, bld apis.Builder) {
	swap(func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if bld != nil {
			next.bld = bld
		}
		next.tm, next.ptm = pinOr(next.tm, tm, false)
		next.res, next.pres = pinOr(next.res, res, false)
	})
}

// pinOr returns (v, true) when v is non-nil, else (cur, pinned).
func pinOr[T comparable](cur, v T, pinned bool) (T, bool) {
	var zero T
	if v != zero {
		return v, true
	}
	return cur, pinned
}

// Reset replaces the global state with an empty default one: default
// config, default builder, no pins, no entries and no queued initializers.
// Intended for tests.
func Reset() {
	buildMu.Lock()
	st.Store(fresh(config.DefaultConfig(), builder.New()))
	buildMu.Unlock()

	initMu.Lock()
	queued = nil
	initMu.Unlock()
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the
// non-pinned layers with it. Registered entries are kept.
func SetConfig(cfg apis.Config) {
	swap(func(next *state) { next.cfg = cfg })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the non-pinned layers.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	swap(func(next *state) { next.bld = b })
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	swap(func(next *state) { next.ext = ext })
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// TypeMap returns the global type map.
func TypeMap() apis.TypeMap {
	return st.Load().tm
}

// SetTypeMap sets and pins the global type map, rebuilding the resolver
// over it unless the resolver is pinned.
func SetTypeMap(tm apis.TypeMap) {
	if tm == nil {
		return
	}
	swap(func(next *state) { next.tm, next.ptm = tm, true })
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	swap(func(next *state) { next.res, next.pres = res, true })
}

// IsTypeMapPinned reports whether the global type map is pinned (kept across rebuilds).
func IsTypeMapPinned() bool {
	return st.Load().ptm
}

// UnpinTypeMap lets the next rebuild replace the global type map again.
func UnpinTypeMap() {
	swap(func(next *state) { next.ptm = false })
}

// IsResolverPinned reports whether the global resolver is pinned (kept across rebuilds).
func IsResolverPinned() bool {
	return st.Load().pres
}

// UnpinResolver lets the next rebuild replace the global resolver again.
func UnpinResolver() {
	swap(func(next *state) { next.pres = false })
}

// Accessors returns the global accessor registry.
func Accessors() apis.AccessorRegistry {
	return st.Load().acc
}

// Methods returns the global method registry.
func Methods() apis.MethodRegistry {
	return st.Load().met
}

// Constructors returns the global constructor registry.
func Constructors() apis.ConstructorRegistry {
	return st.Load().ctor
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots. Registration holds it for reading so that no
// Add lands in a registry that a concurrent rebuild has already migrated.
var buildMu sync.RWMutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
// The registries it points to are themselves concurrent and mutable.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// tm is the global type map.
	tm apis.TypeMap
	// res is the global resolver.
	res apis.Resolver
	// acc, met and ctor are the global registries.
	acc  apis.AccessorRegistry
	met  apis.MethodRegistry
	ctor apis.ConstructorRegistry
	// bld is the global builder.
	bld apis.Builder
	// ptm indicates whether the type map is pinned.
	ptm bool
	// pres indicates whether the resolver is pinned.
	pres bool
}
