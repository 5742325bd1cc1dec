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
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/xdel/manifest"
	"dirpx.dev/xdel/signature"
)

// wantRendered lists what testdata/members.* render to; nil marks members
// that are skipped at registration.
var wantRendered = []string{
	"N.Point.X",
	"N.Box<System.Int32>.Value",
	"N.Pair.Pair(System.Int32, System.Int32)",
	"System.String.Contains(System.Char)",
	"N.Outer<System.Int32>.Inner.Get()",
	"N.Util.Convert<System.Int32, System.String>(System.Int32)",
	"N.StringExt.Shout(System.String, System.Int32)",
	"N.Shapes.Merge(map[string][]*N.Point)",
	"",
	"",
}

func renderAll(t *testing.T, ms []signature.Member) []string {
	t.Helper()
	out := make([]string, len(ms))
	for i, m := range ms {
		s, err := signature.Canonical(m, signature.Internal)
		if err == nil {
			out[i] = s
		}
	}
	return out
}

func TestLoad_Fixtures(t *testing.T) {
	for _, name := range []string{"members.yaml", "members.toml"} {
		t.Run(name, func(t *testing.T) {
			ms, err := manifest.Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			require.Len(t, ms, len(wantRendered))

			if diff := cmp.Diff(wantRendered, renderAll(t, ms)); diff != "" {
				t.Errorf("rendered mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, signature.Private, ms[8].Access)
			assert.False(t, ms[9].HasGetter)
			assert.True(t, ms[9].HasSetter)
			require.NotNil(t, ms[6].ReducedFrom)
			assert.True(t, ms[6].ReducedFrom.Static)
		})
	}
}

func TestLoad_FormatsAgree(t *testing.T) {
	y, err := manifest.Load(filepath.Join("testdata", "members.yaml"))
	require.NoError(t, err)
	tm, err := manifest.Load(filepath.Join("testdata", "members.toml"))
	require.NoError(t, err)

	if diff := cmp.Diff(y, tm); diff != "" {
		t.Errorf("yaml and toml disagree (-yaml +toml):\n%s", diff)
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := manifest.Load("members.json")
	require.ErrorIs(t, err, manifest.ErrUnknownFormat)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name   string
		format manifest.Format
		src    string
		want   error
	}{
		{"unknown kind", manifest.YAML, "members:\n  - kind: event\n    type: N.T\n", manifest.ErrUnknownKind},
		{"unknown access", manifest.YAML, "members:\n  - kind: field\n    type: N.T\n    name: X\n    access: friend\n", manifest.ErrUnknownAccess},
		{"bad type", manifest.YAML, "members:\n  - kind: field\n    type: N.T<\n    name: X\n", manifest.ErrTypeExpr},
		{"unknown toml key", manifest.TOML, "[[members]]\nkind = \"field\"\ntype = \"N.T\"\nname = \"X\"\nvisibility = \"public\"\n", manifest.ErrUnknownFields},
		{"unknown format", manifest.Format("json"), "{}", manifest.ErrUnknownFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Decode(strings.NewReader(tc.src), tc.format)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecode_UnknownYAMLKey(t *testing.T) {
	_, err := manifest.Decode(strings.NewReader("members:\n  - kind: field\n    type: N.T\n    nmae: X\n"), manifest.YAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nmae")
}

func TestDecode_ErrorNamesEntry(t *testing.T) {
	src := "members:\n  - kind: field\n    type: N.T\n    name: A\n  - kind: bogus\n    type: N.T\n"
	_, err := manifest.Decode(strings.NewReader(src), manifest.YAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member 1")
}

func TestDecode_Empty(t *testing.T) {
	ms, err := manifest.Decode(strings.NewReader(""), manifest.YAML)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestDecode_ParamModifiers(t *testing.T) {
	src := "members:\n  - kind: method\n    type: N.T\n    name: M\n    params: [\"in System.Int32\", \"ref System.Int32\", \"out System.String\", System.Char]\n"
	ms, err := manifest.Decode(strings.NewReader(src), manifest.YAML)
	require.NoError(t, err)
	require.Len(t, ms, 1)

	got := make([]signature.RefKind, 0, 4)
	for _, p := range ms[0].Params {
		got = append(got, p.Ref)
	}
	assert.Equal(t, []signature.RefKind{signature.In, signature.Ref, signature.Out, signature.ByValue}, got)
	require.ErrorIs(t, signature.Check(ms[0], signature.Internal), signature.ErrByRefParameter)
}
