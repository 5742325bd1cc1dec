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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/signature"
	"dirpx.dev/xdel/strategy"
)

type namedType struct{}

// implements apis.Namer
func (namedType) CanonicalType() signature.TypeRef { return signature.Type("Custom.Name") }

type ptrNamed struct{ ns string }

func (p *ptrNamed) CanonicalType() signature.TypeRef { return signature.Type("Custom.Ptr" + p.ns) }

func TestNamerStrategy_TryResolve(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{} // config is irrelevant for NamerStrategy

	// With value implementing apis.Namer -> handled = true
	got, ok := s.TryResolve(namedType{}, conf)
	if !ok || got.String() != "Custom.Name" {
		t.Fatalf("TryResolve: got (%q,%v), want (Custom.Name,true)", got, ok)
	}

	// With non-namer value -> handled = false
	got, ok = s.TryResolve(struct{}{}, conf)
	if ok || got.Kind != signature.Named || len(got.Segments) != 0 {
		t.Fatalf("TryResolve(non-namer): got (%v,%v), want (zero,false)", got, ok)
	}

	// Nil -> not handled
	if _, ok := s.TryResolve(nil, conf); ok {
		t.Fatal("TryResolve(nil): want ok=false")
	}
}

func TestNamerStrategy_TryResolveType(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{}

	cases := []struct {
		name string
		typ  reflect.Type
		want string
		ok   bool
	}{
		{"value receiver", reflect.TypeOf(namedType{}), "Custom.Name", true},
		{"pointer to value receiver", reflect.TypeOf(&namedType{}), "Custom.Name", true},
		{"pointer receiver", reflect.TypeOf(&ptrNamed{}), "Custom.Ptr", true},
		{"pointer receiver by value", reflect.TypeOf(ptrNamed{}), "", false},
		{"interface", reflect.TypeFor[apis.Namer](), "", false},
		{"non-namer", reflect.TypeOf(0), "", false},
		{"nil", nil, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tc.typ, conf)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.String() != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// Ensure the local type actually satisfies apis.Namer (compile-time).
var _ apis.Namer = (*namedType)(nil)
