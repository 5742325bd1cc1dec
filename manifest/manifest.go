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

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dirpx.dev/xdel/signature"
)

// Format is a manifest encoding.
type Format string

const (
	// YAML is the default manifest format.
	YAML Format = "yaml"
	// TOML manifests use [[members]] tables.
	TOML Format = "toml"
)

var (
	// ErrUnknownFormat is returned for unrecognized file extensions or formats.
	ErrUnknownFormat = errors.New("xdel(manifest): unknown format")
	// ErrUnknownKind is returned for a member kind other than field,
	// property, method or constructor.
	ErrUnknownKind = errors.New("xdel(manifest): unknown member kind")
	// ErrUnknownAccess is returned for an unrecognized accessibility.
	ErrUnknownAccess = errors.New("xdel(manifest): unknown accessibility")
	// ErrUnknownRef is returned for an unrecognized parameter modifier.
	ErrUnknownRef = errors.New("xdel(manifest): unknown parameter modifier")
	// ErrUnknownFields is returned when a manifest has keys Decode does not know.
	ErrUnknownFields = errors.New("xdel(manifest): unknown fields")
)

// File is the on-disk manifest.
type File struct {
	Members []MemberSpec `yaml:"members" toml:"members"`
}

// MemberSpec is one member descriptor as written in a manifest.
type MemberSpec struct {
	// Kind is field, property, method or constructor.
	Kind string `yaml:"kind" toml:"kind"`
	// Type is the declaring type expression (see ParseType).
	Type string `yaml:"type" toml:"type"`
	// Name is ignored for constructors.
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	// Params are type expressions, optionally prefixed with "in ", "ref " or "out ".
	Params []string `yaml:"params,omitempty" toml:"params,omitempty"`
	// TypeArgs are the method's own generic arguments.
	TypeArgs []string `yaml:"type_args,omitempty" toml:"type_args,omitempty"`
	Static   bool     `yaml:"static,omitempty" toml:"static,omitempty"`
	// Access defaults to public.
	Access string `yaml:"access,omitempty" toml:"access,omitempty"`
	// Getter and Setter apply to properties and default to true.
	Getter   *bool `yaml:"getter,omitempty" toml:"getter,omitempty"`
	Setter   *bool `yaml:"setter,omitempty" toml:"setter,omitempty"`
	Const    bool  `yaml:"const,omitempty" toml:"const,omitempty"`
	ReadOnly bool  `yaml:"readonly,omitempty" toml:"readonly,omitempty"`
	// ReducedFrom is the static definition an extension method call reduces from.
	ReducedFrom *MemberSpec `yaml:"reduced_from,omitempty" toml:"reduced_from,omitempty"`
}

// Load reads a manifest file, picking the format from its extension
// (.yaml, .yml or .toml).
func Load(path string) ([]signature.Member, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	ms, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Decode parses a manifest and converts every entry into a signature.Member.
// Unknown keys are rejected so typos do not silently drop settings.
func Decode(r io.Reader, format Format) ([]signature.Member, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true) // Reject unknown fields
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrUnknownFields, undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	out := make([]signature.Member, 0, len(f.Members))
	for i, entry := range f.Members {
		m, err := entry.Member()
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Member converts the manifest entry into a descriptor.
func (s MemberSpec) Member() (signature.Member, error) {
	var m signature.Member
	var err error

	if m.Kind, err = parseKind(s.Kind); err != nil {
		return m, err
	}
	if m.Declaring, err = ParseType(s.Type); err != nil {
		return m, fmt.Errorf("type: %w", err)
	}
	if m.Access, err = ParseAccess(s.Access); err != nil {
		return m, err
	}
	m.Name = s.Name
	m.Static = s.Static
	m.Const = s.Const
	m.ReadOnly = s.ReadOnly
	m.HasGetter = m.Kind == signature.Property && (s.Getter == nil || *s.Getter)
	m.HasSetter = m.Kind == signature.Property && (s.Setter == nil || *s.Setter)

	for i, p := range s.Params {
		param, err := parseParam(p)
		if err != nil {
			return m, fmt.Errorf("param %d: %w", i, err)
		}
		m.Params = append(m.Params, param)
	}
	for i, a := range s.TypeArgs {
		ref, err := ParseType(a)
		if err != nil {
			return m, fmt.Errorf("type arg %d: %w", i, err)
		}
		m.TypeArgs = append(m.TypeArgs, ref)
	}
	if s.ReducedFrom != nil {
		def, err := s.ReducedFrom.Member()
		if err != nil {
			return m, fmt.Errorf("reduced_from: %w", err)
		}
		m.ReducedFrom = &def
	}
	return m, nil
}

func parseKind(s string) (signature.MemberKind, error) {
	switch strings.ToLower(s) {
	case "field":
		return signature.Field, nil
	case "property":
		return signature.Property, nil
	case "method":
		return signature.Method, nil
	case "constructor", "ctor":
		return signature.Constructor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var accessByName = map[string]signature.Accessibility{
	"":                       signature.Public,
	"public":                 signature.Public,
	"protected_or_internal":  signature.ProtectedOrInternal,
	"internal":               signature.Internal,
	"protected":              signature.Protected,
	"protected_and_internal": signature.ProtectedAndInternal,
	"private":                signature.Private,
	"not_applicable":         signature.NotApplicable,
}

// ParseAccess maps an accessibility name such as "public" or
// "protected_or_internal" to its value. The empty string means public.
func ParseAccess(s string) (signature.Accessibility, error) {
	a, ok := accessByName[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccess, s)
	}
	return a, nil
}

func parseParam(s string) (signature.Param, error) {
	s = strings.TrimSpace(s)
	ref := signature.ByValue
	if mod, rest, ok := strings.Cut(s, " "); ok {
		switch mod {
		case "in":
			ref, s = signature.In, rest
		case "ref":
			ref, s = signature.Ref, rest
		case "out":
			ref, s = signature.Out, rest
		}
	}
	t, err := ParseType(s)
	if err != nil {
		return signature.Param{}, err
	}
	return signature.Param{Type: t, Ref: ref}, nil
}
