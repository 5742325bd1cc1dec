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
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/invoker"
	"dirpx.dev/xdel/registry"
	"dirpx.dev/xdel/signature"
)

// ---------------------- Helpers ----------------------

// Reset to a clean snapshot using our test builder.
// This fully replaces builder, config, ext and rebuilds every layer.
// Pins are reset because we pass nil tm/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, nil, nil, b)
	tb.Cleanup(Reset)
}

func cfgWith(depth int, floor signature.Accessibility) apis.Config {
	return apis.Config{MinAccessibility: floor, MaxDepth: depth, Memoize: true}
}

// ---------------------- Test doubles (mocks) ----------------------

type mockTypeMap struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]signature.TypeRef
	gen  uint64
}

func newMockTypeMap(id string) *mockTypeMap {
	return &mockTypeMap{id: id, data: make(map[reflect.Type]signature.TypeRef)}
}

func (m *mockTypeMap) Register(t reflect.Type, ref signature.TypeRef) error {
	m.mu.Lock()
	m.data[t] = ref
	m.gen++
	m.mu.Unlock()
	return nil
}
func (m *mockTypeMap) Lookup(t reflect.Type) (signature.TypeRef, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[t]
	return r, ok
}
func (m *mockTypeMap) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for t, r := range m.data {
		out = append(out, apis.Entry{Type: t, Ref: r})
	}
	return out
}
func (m *mockTypeMap) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockTypeMap) Reset() {
	m.mu.Lock()
	m.data = make(map[reflect.Type]signature.TypeRef)
	m.gen++
	m.mu.Unlock()
}
func (m *mockTypeMap) Generation() uint64 { m.mu.Lock(); defer m.mu.Unlock(); return m.gen }

type mockResolver struct {
	id       string
	resolveC int
	mu       sync.Mutex
}

func (r *mockResolver) Resolve(_ any, cfg apis.Config) signature.TypeRef {
	r.mu.Lock()
	r.resolveC++
	r.mu.Unlock()
	return signature.Type("Mock." + r.id + "_" + strconv.Itoa(cfg.MaxDepth))
}

func (r *mockResolver) ResolveType(_ reflect.Type, cfg apis.Config) signature.TypeRef {
	return r.Resolve(nil, cfg)
}

type mockBuilder struct {
	mu           sync.Mutex
	lastCfg      apis.Config
	lastExt      any
	lastPrevTMID string
	tmCounter    int
	resCounter   int
	regCounter   int
}

func (b *mockBuilder) BuildTypeMap(cfg apis.Config, prev apis.TypeMap, ext any) apis.TypeMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if mt, ok := prev.(*mockTypeMap); ok {
		b.lastPrevTMID = mt.id
	}
	b.tmCounter++
	return newMockTypeMap("tm#" + strconv.Itoa(b.tmCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.TypeMap, _ apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.resCounter++
	return &mockResolver{id: "res" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) BuildAccessors(cfg apis.Config, prev apis.AccessorRegistry, _ any) apis.AccessorRegistry {
	b.count()
	r := registry.NewAccessors(cfg)
	if prev != nil {
		prev.Range(func(a *invoker.Accessor) bool { r.Store(a); return true })
	}
	return r
}

func (b *mockBuilder) BuildMethods(cfg apis.Config, prev apis.MethodRegistry, _ any) apis.MethodRegistry {
	b.count()
	r := registry.NewMethods(cfg)
	if prev != nil {
		prev.Range(func(m *invoker.Method) bool { r.Store(m); return true })
	}
	return r
}

func (b *mockBuilder) BuildConstructors(cfg apis.Config, prev apis.ConstructorRegistry, _ any) apis.ConstructorRegistry {
	b.count()
	r := registry.NewConstructors(cfg)
	if prev != nil {
		prev.Range(func(c *invoker.Constructor) bool { r.Store(c); return true })
	}
	return r
}

func (b *mockBuilder) count() {
	b.mu.Lock()
	b.regCounter++
	b.mu.Unlock()
}

func (b *mockBuilder) counters() (tm, res int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tmCounter, b.resCounter
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	// snapshot 1
	s1TM := TypeMap()
	s1Res := Resolver()
	s1Acc := Accessors()

	// change cfg -> every layer should rebuild (not pinned)
	SetConfig(cfgWith(4, signature.Public))

	if s1TM == TypeMap() {
		t.Fatalf("type map was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == Resolver() {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}
	if s1Acc == Accessors() {
		t.Fatalf("accessors were not rebuilt on SetConfig")
	}

	b.mu.Lock()
	gotCfg, prevID := b.lastCfg, b.lastPrevTMID
	b.mu.Unlock()
	if gotCfg.MaxDepth != 4 || gotCfg.MinAccessibility != signature.Public {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevID != s1TM.(*mockTypeMap).id {
		t.Fatalf("builder did not receive the previous type map: %q", prevID)
	}
	if got := TypeRefOf(1).String(); got != "Mock.res2_4" {
		t.Fatalf("resolver does not see new cfg: %q", got)
	}
}

func TestSetTypeMap_Pins_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	custom := newMockTypeMap("custom")
	SetTypeMap(custom)
	if !IsTypeMapPinned() {
		t.Fatal("SetTypeMap should pin")
	}

	beforeRes := Resolver()
	SetConfig(cfgWith(6, signature.Internal))

	if TypeMap() != custom {
		t.Fatalf("pinned type map was rebuilt unexpectedly")
	}
	if Resolver() == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	// Pin resolver
	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	tmBefore := TypeMap()

	// Change cfg -> expect: type map rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(cfgWith(6, signature.Internal))

	if Resolver() != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if TypeMap() == tmBefore {
		t.Fatalf("type map was not rebuilt on SetConfig when resolver is pinned")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	// Start with builder A
	a := &mockBuilder{}
	resetWithBuilder(t, a, cfgWith(8, signature.Internal), nil)

	// Pin resolver, leave type map unpinned
	SetResolver(&mockResolver{id: "pinned"})
	tmBefore := TypeMap()
	resBefore := Resolver()

	// Swap to builder B -> rebuild through B right away.
	b := &mockBuilder{}
	SetBuilder(b)

	if TypeMap() == tmBefore {
		t.Fatalf("type map did not rebuild after SetBuilder (unpinned)")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
	if tm, res := b.counters(); tm != 1 || res != 0 {
		t.Fatalf("builder B counters: tm=%d res=%d", tm, res)
	}
	if Builder() != b {
		t.Fatalf("builder not replaced")
	}

	SetBuilder(nil)
	if Builder() != b {
		t.Fatalf("nil builder must be ignored")
	}
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	// Ensure snapshot uses our mock builder
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	// Change ext -> should rebuild unpinned layers via current builder (b) and pass ext
	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	ec, ok := got.(extCfg)
	if !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext properly: %#v", got)
	}
	if v, ok := ExtAs[extCfg](); !ok || v.X != 42 {
		t.Fatalf("ExtAs = %#v, %v", v, ok)
	}

	// Pin both and ensure no rebuild on SetExt
	SetTypeMap(TypeMap())
	SetResolver(Resolver())
	tmBefore, resBefore := b.counters()
	SetExt(extCfg{X: 7})
	tmAfter, resAfter := b.counters()
	if tmAfter != tmBefore || resAfter != resBefore {
		t.Fatalf("SetExt should not rebuild when both layers are pinned")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	SetTypeMap(TypeMap())
	SetResolver(Resolver())

	tm1 := TypeMap()
	res1 := Resolver()
	SetConfig(cfgWith(4, signature.Internal))
	if TypeMap() != tm1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinTypeMap()
	UnpinResolver()
	if IsTypeMapPinned() || IsResolverPinned() {
		t.Fatal("unpin did not clear pins")
	}
	SetConfig(cfgWith(6, signature.Internal))
	if TypeMap() == tm1 {
		t.Fatalf("type map should rebuild after UnpinTypeMap+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestRebuild_Migrates_Entries(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	AddAccessor("N.P.X", func(any) any { return 1 }, nil)
	AddAction("N.P.Run()", func(any, []any) {})
	AddConstructor("N.P.P()", func([]any) any { return 0 })

	SetConfig(cfgWith(6, signature.Internal))
	SetBuilder(&mockBuilder{})

	if _, ok := FindAccessor("N.P.X"); !ok {
		t.Fatal("accessor lost on rebuild")
	}
	if _, ok := FindMethod("N.P.Run()"); !ok {
		t.Fatal("method lost on rebuild")
	}
	if _, ok := FindConstructor("N.P.P()"); !ok {
		t.Fatal("constructor lost on rebuild")
	}
}

func TestAdd_Concurrent_With_Rebuild(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	writers := runtime.GOMAXPROCS(0) * 4
	const perWriter = 200

	var wg sync.WaitGroup
	wg.Add(writers + 1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			SetConfig(cfgWith(4+i%5, signature.Internal))
		}
	}()
	for w := 0; w < writers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				AddAccessor("N.P.F"+strconv.Itoa(w)+"_"+strconv.Itoa(i), func(any) any { return nil }, nil)
			}
		}(w)
	}
	wg.Wait()

	if got, want := Accessors().Count(), writers*perWriter; got != want {
		t.Fatalf("entries lost across rebuilds: got %d, want %d", got, want)
	}
}

func TestTypeRefOf_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(8, signature.Internal), nil)

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = TypeRefOf(token{})
				_ = TypeRefOfType(reflect.TypeOf(token{}))
				_, _ = FindAccessor("N.P.X")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(cfgWith(4+(i%5), signature.Accessibility(i%7)))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
