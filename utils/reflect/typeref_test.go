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

package reflect_test

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/xdel/signature"
	uref "dirpx.dev/xdel/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type P[K comparable, V any] struct{}

const pkg = "dirpx.dev/xdel/utils/reflect_test"

func render(t *testing.T, ref signature.TypeRef) string {
	t.Helper()
	s, err := signature.RenderType(ref)
	if err != nil {
		t.Fatalf("RenderType: %v", err)
	}
	return s
}

func TestTypeRefOf(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"plain struct", reflect.TypeOf(A{}), pkg + ".A"},
		{"ptr", reflect.TypeOf(&A{}), "*" + pkg + ".A"},
		{"slice", reflect.TypeOf([]A{}), "[]" + pkg + ".A"},
		{"array", reflect.TypeOf([2]A{}), "[2]" + pkg + ".A"},
		{"map", reflect.TypeOf(map[string]A{}), "map[string]" + pkg + ".A"},
		{"recv chan", reflect.TypeOf((<-chan int)(nil)), "<-chan int"},
		{"send chan", reflect.TypeOf((chan<- int)(nil)), "chan<- int"},
		{"builtin", reflect.TypeOf(0), "int"},
		{"error", reflect.TypeOf((*error)(nil)).Elem(), "error"},
		{"any", reflect.TypeOf((*any)(nil)).Elem(), "any"},
		{"other package", reflect.TypeOf((*io.Reader)(nil)).Elem(), "io.Reader"},
		{"generic", reflect.TypeOf(G[int]{}), pkg + ".G<int>"},
		{"generic of named", reflect.TypeOf(G[A]{}), pkg + ".G<" + pkg + ".A>"},
		{"nested generic", reflect.TypeOf(G[G[[]A]]{}), pkg + ".G<" + pkg + ".G<[]" + pkg + ".A>>"},
		{"two args", reflect.TypeOf(P[string, *A]{}), pkg + ".P<string, *" + pkg + ".A>"},
		{"func", reflect.TypeOf(func(int, ...string) (bool, error) { return false, nil }), "func(int, ...string) (bool, error)"},
		{"generic of any", reflect.TypeOf(G[any]{}), pkg + ".G<any>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := uref.TypeRefOf(tc.typ, 0)
			if err != nil {
				t.Fatalf("TypeRefOf(%v): %v", tc.typ, err)
			}
			if got := render(t, ref); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTypeRefOf_Errors(t *testing.T) {
	if _, err := uref.TypeRefOf(nil, 0); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil type: got %v, want ErrReflectNilType", err)
	}

	anon := []reflect.Type{
		reflect.TypeOf(struct{ X int }{}),
		reflect.TypeOf([]struct{}{}),
		reflect.TypeOf((*interface{ M() })(nil)).Elem(),
		reflect.TypeOf(G[struct{}]{}),
	}
	for _, typ := range anon {
		ref, err := uref.TypeRefOf(typ, 0)
		if !errors.Is(err, uref.ErrReflectTypeNotNamed) {
			t.Fatalf("%v: got %v, want ErrReflectTypeNotNamed", typ, err)
		}
		if ref.Kind != signature.Anonymous {
			t.Fatalf("%v: got kind %v, want Anonymous", typ, ref.Kind)
		}
	}
}

func TestTypeRefOf_MaxDepth(t *testing.T) {
	tt := reflect.TypeOf((***A)(nil))

	if _, err := uref.TypeRefOf(tt, 1); !errors.Is(err, uref.ErrReflectTooDeep) {
		t.Fatalf("maxDepth=1: got %v, want ErrReflectTooDeep", err)
	}
	ref, err := uref.TypeRefOf(tt, 8)
	if err != nil {
		t.Fatalf("maxDepth=8: %v", err)
	}
	if got := render(t, ref); got != "***"+pkg+".A" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTypeName(t *testing.T) {
	got, err := uref.ParseTypeName("gopkg.in/yaml.v3.Node")
	if err != nil {
		t.Fatal(err)
	}
	want := signature.Type("gopkg.in/yaml.v3.Node")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	got, err = uref.ParseTypeName("example.com/p.Box[map[string][]int,chan (<-chan example.com/q.T)]")
	if err != nil {
		t.Fatal(err)
	}
	want = signature.Type("example.com/p.Box",
		signature.MapOf(signature.Builtin("string"), signature.SliceOf(signature.Builtin("int"))),
		signature.ChanOf(signature.Both, signature.ChanOf(signature.RecvOnly, signature.Type("example.com/q.T"))),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypeName_Malformed(t *testing.T) {
	for _, s := range []string{"", "p.Box[int", "map[int", "[x]int", "p.T]", "func(int"} {
		if _, err := uref.ParseTypeName(s); !errors.Is(err, uref.ErrMalformedTypeName) {
			t.Fatalf("%q: got %v, want ErrMalformedTypeName", s, err)
		}
	}
}

func BenchmarkTypeRefOf(b *testing.B) {
	typ := reflect.TypeOf(map[string][]G[A]{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = uref.TypeRefOf(typ, 0)
	}
}

func TestTypeRefWith_Override(t *testing.T) {
	int32T := reflect.TypeOf(int32(0))
	override := func(t reflect.Type) (signature.TypeRef, bool) {
		if t == int32T {
			return signature.Type("System.Int32"), true
		}
		return signature.TypeRef{}, false
	}

	ref, err := uref.TypeRefWith(reflect.TypeOf(map[string][]int32{}), 0, override)
	if err != nil {
		t.Fatal(err)
	}
	if got := render(t, ref); got != "map[string][]System.Int32" {
		t.Fatalf("got %q", got)
	}
}
