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

package manifest_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/xdel/manifest"
	"dirpx.dev/xdel/signature"
)

func TestParseType(t *testing.T) {
	i32 := signature.Type("System.Int32")
	str := signature.Type("System.String")
	point := signature.Type("N.Point")

	cases := []struct {
		in   string
		want signature.TypeRef
	}{
		{"int", signature.Builtin("int")},
		{"System.Int32", i32},
		{"List`1<System.String>", signature.TypeRef{Kind: signature.Named, Segments: []signature.Segment{{Name: "List", Args: []signature.TypeRef{str}}}}},
		{"System.Collections.Generic.Dictionary`2<System.Int32, System.String>",
			signature.Type("System.Collections.Generic.Dictionary", i32, str)},
		{"N.Outer<System.Int32>.Inner", signature.Type("N.Outer", i32).Nested("Inner")},
		{"N:Outer.Inner<System.Int32>", signature.Type("N.Outer").Nested("Inner", i32)},
		{"*N.Point", signature.PointerTo(point)},
		{"[]*N.Point", signature.SliceOf(signature.PointerTo(point))},
		{"[4]N.Point", signature.ArrayOf(4, point)},
		{"map[string][]int", signature.MapOf(signature.Builtin("string"), signature.SliceOf(signature.Builtin("int")))},
		{"<-chan N.Point", signature.ChanOf(signature.RecvOnly, point)},
		{"chan<- N.Point", signature.ChanOf(signature.SendOnly, point)},
		{"chan int", signature.ChanOf(signature.Both, signature.Builtin("int"))},
		{"N.Box<N.Box<int>>", signature.Type("N.Box", signature.Type("N.Box", signature.Builtin("int")))},
		{"anonymous", signature.AnonymousType()},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := manifest.ParseType(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseType(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestParseType_RoundTripsRender(t *testing.T) {
	for _, s := range []string{
		"N.Box<System.Int32>",
		"N.Outer<System.Int32>.Inner",
		"System.Collections.Generic.IDictionary<System.Int32, System.Collections.Generic.ICollection<System.String>>",
		"map[string][]*N.Point",
	} {
		ref, err := manifest.ParseType(s)
		require.NoError(t, err)
		out, err := signature.RenderType(ref)
		require.NoError(t, err)
		assert.Equal(t, s, out)
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, s := range []string{"", "N.Box<", "N.Box<int", "N.Box<int]", "[x]int", "map[int", "N.T.", "N.T junk"} {
		t.Run(s, func(t *testing.T) {
			_, err := manifest.ParseType(s)
			require.ErrorIs(t, err, manifest.ErrTypeExpr)
		})
	}
}
