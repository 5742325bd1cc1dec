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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/builder"
	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/signature"
	"dirpx.dev/xdel/typemap"
)

// userType is a plain named type with no special behavior.
// It is used to test fallback via reflection.
type userType struct{ N int }

// hotType implements apis.Namer and is used to verify that the
// Namer-based strategy takes priority over other strategies.
type hotType struct{}

func (hotType) CanonicalType() signature.TypeRef { return signature.Type("Hot.Name") }

// defaultCfg returns a sane configuration for tests.
func defaultCfg() apis.Config {
	return config.DefaultConfig()
}

// TestBuildTypeMap_Basic asserts that BuildTypeMap returns a non-nil,
// working TypeMap and migrates entries from prev.
func TestBuildTypeMap_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid type map.
	tm := b.BuildTypeMap(defaultCfg(), nil, nil)
	if tm == nil {
		t.Fatal("BuildTypeMap returned nil")
	}

	tt := reflect.TypeOf(userType{})
	if err := tm.Register(tt, signature.Type("N.User")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	next := b.BuildTypeMap(defaultCfg(), tm, nil)
	if got, ok := next.Lookup(tt); !ok || got.String() != "N.User" {
		t.Fatalf("Lookup after rebuild: ok=%v got=%q want=%q", ok, got, "N.User")
	}
	if next.Count() != 1 {
		t.Fatalf("Count after rebuild: %d", next.Count())
	}
}

// TestBuildResolver_Order_NamerThenTypeMapThenReflect verifies resolution priority:
// 1. If the value implements apis.Namer, use CanonicalType().
// 2. Otherwise, if the type is pinned in the TypeMap, use that.
// 3. Otherwise, fall back to the reflect-based strategy.
func TestBuildResolver_Order_NamerThenTypeMapThenReflect(t *testing.T) {
	b := builder.New()
	cfg := defaultCfg()

	tm := b.BuildTypeMap(cfg, nil, nil)

	// Pin a type so the type map strategy can pick it up.
	type fromTypeMap struct{}
	ttPinned := reflect.TypeOf(fromTypeMap{})
	if err := tm.Register(ttPinned, signature.Type("N.Pinned")); err != nil {
		t.Fatalf("Register(fromTypeMap) failed: %v", err)
	}
	// Namer must still win over a pin.
	_ = tm.Register(reflect.TypeOf(hotType{}), signature.Type("N.HotPinned"))

	res := b.BuildResolver(cfg, tm, nil, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	// (1) Namer should win.
	if got := res.Resolve(hotType{}, cfg).String(); got != "Hot.Name" {
		t.Fatalf("Namer priority broken: got %q want %q", got, "Hot.Name")
	}

	// (2) TypeMap should be next.
	if got := res.ResolveType(ttPinned, cfg).String(); got != "N.Pinned" {
		t.Fatalf("TypeMap strategy broken: got %q want %q", got, "N.Pinned")
	}

	// (3) Reflect strategy is the fallback.
	got := res.ResolveType(reflect.TypeOf(userType{}), cfg)
	if got.Namespace != "dirpx.dev/xdel/builder_test" || got.Name() != "userType" {
		t.Fatalf("Reflect strategy returned %q", got)
	}
}

// TestBuildRegistries_Migrate asserts that rebuilt registries keep every
// entry and every invoker of their predecessors.
func TestBuildRegistries_Migrate(t *testing.T) {
	b := builder.New()
	cfg := defaultCfg()

	acc := b.BuildAccessors(cfg, nil, nil)
	acc.Add("N.User.N", func(o any) any { return invoker.Self[*userType](o).N }, nil)
	met := b.BuildMethods(cfg, nil, nil)
	met.AddAction("N.User.Reset()", func(o any, _ []any) { invoker.Self[*userType](o).N = 0 })
	ctor := b.BuildConstructors(cfg, nil, nil)
	ctor.Add("N.User.User()", func([]any) any { return &userType{N: 1} })

	strict := config.NewConfig(config.WithMinAccessibility(signature.Public))
	acc2 := b.BuildAccessors(strict, acc, nil)
	met2 := b.BuildMethods(strict, met, nil)
	ctor2 := b.BuildConstructors(strict, ctor, nil)

	if acc2.Count() != 1 || met2.Count() != 1 || ctor2.Count() != 1 {
		t.Fatalf("counts after rebuild: %d %d %d", acc2.Count(), met2.Count(), ctor2.Count())
	}

	c, ok := ctor2.Find("N.User.User()")
	if !ok {
		t.Fatal("constructor lost on rebuild")
	}
	u, err := c.Invoke()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := acc2.Find("N.User.N")
	if v, err := a.Get(u); err != nil || v != 1 {
		t.Fatalf("Get = %v, %v", v, err)
	}
	m, _ := met2.Find("N.User.Reset()")
	if _, _, err := m.Invoke(u); err != nil {
		t.Fatal(err)
	}
	if u.(*userType).N != 0 {
		t.Fatal("Reset did not run")
	}

	// The new registries use the new floor.
	internal := signature.FieldOf(signature.Type("N.User"), "N")
	internal.Access = signature.Internal
	if _, ok := acc.FindMember(internal); !ok {
		t.Fatal("old registry should accept internal members")
	}
	if _, ok := acc2.FindMember(internal); ok {
		t.Fatal("new registry should reject internal members")
	}
}

// TestBuildResolver_WithExternalTypeMap asserts that BuildResolver will
// accept *any* apis.TypeMap implementation (not only the one created by
// this builder), and still resolve names from it.
func TestBuildResolver_WithExternalTypeMap(t *testing.T) {
	tm := typemap.New(config.DefaultConfig())

	if err := tm.Register(reflect.TypeOf(userType{}), signature.Type("U")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	res := builder.New().BuildResolver(defaultCfg(), tm, nil, nil)
	if got := res.ResolveType(reflect.TypeOf(userType{}), defaultCfg()).String(); got != "U" {
		t.Fatalf("resolver did not use type map pin: got %q want %q", got, "U")
	}
	if got := res.ResolveType(reflect.TypeOf([]*userType{}), defaultCfg()).String(); got != "[]*U" {
		t.Fatalf("resolver did not pin element type: got %q want %q", got, "[]*U")
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Resolve/ResolveType concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := defaultCfg()

	tm := b.BuildTypeMap(cfg, nil, nil)
	_ = tm.Register(reflect.TypeOf(userType{}), signature.Type("N.User"))

	res := b.BuildResolver(cfg, tm, nil, nil)

	types := []reflect.Type{
		reflect.TypeOf(userType{}),
		reflect.TypeOf(hotType{}),
		reflect.TypeOf(&userType{}),
		reflect.TypeOf([]userType{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[(i+id)%len(types)]
				_ = res.ResolveType(tt, cfg)
				_ = res.Resolve(hotType{}, cfg)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
