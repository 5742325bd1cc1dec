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

package signature

import "strings"

// TypeKind classifies a TypeRef.
type TypeKind uint8

const (
	// Named is a type with a declared name, optionally generic and nested.
	Named TypeKind = iota
	// Pointer is *Elem.
	Pointer
	// Slice is []Elem.
	Slice
	// Array is [Len]Elem.
	Array
	// Map is map[Key]Elem.
	Map
	// Chan is a channel of Elem in direction Dir.
	Chan
	// Func is a function type with In and Out.
	Func
	// Anonymous marks a type that has no stable name (anonymous structs,
	// interface literals, compiler-synthesized types). It never renders.
	Anonymous
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case Named:
		return "named"
	case Pointer:
		return "pointer"
	case Slice:
		return "slice"
	case Array:
		return "array"
	case Map:
		return "map"
	case Chan:
		return "chan"
	case Func:
		return "func"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ChanDir is the direction of a Chan TypeRef.
type ChanDir uint8

const (
	// Both is a bidirectional channel.
	Both ChanDir = iota
	// RecvOnly is <-chan.
	RecvOnly
	// SendOnly is chan<-.
	SendOnly
)

// Segment is one level of a named type path. A type nested inside another
// type has one segment per enclosing type, outermost first.
type Segment struct {
	// Name is the unparameterized type name, without any arity marker.
	Name string
	// Args are the generic arguments applied at this level.
	Args []TypeRef
}

// TypeRef is a data-only description of a type. It carries no link to any
// live reflection or compiler object, so rendering it is a pure function.
type TypeRef struct {
	Kind      TypeKind
	Namespace string
	Segments  []Segment

	Elem *TypeRef
	Key  *TypeRef
	Len  int
	Dir  ChanDir

	In       []TypeRef
	Out      []TypeRef
	Variadic bool
}

// Type builds a named TypeRef from a dotted path such as
// "System.Collections.Generic.List". The last element becomes the type
// name, everything before it the namespace. Use Nested for nested types.
func Type(full string, args ...TypeRef) TypeRef {
	ns, name := "", full
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		ns, name = full[:i], full[i+1:]
	}
	return TypeRef{
		Kind:      Named,
		Namespace: ns,
		Segments:  []Segment{{Name: StripArity(name), Args: args}},
	}
}

// Builtin builds a TypeRef for a type without namespace, e.g. "int".
func Builtin(name string) TypeRef {
	return TypeRef{Kind: Named, Segments: []Segment{{Name: name}}}
}

// Nested returns a copy of t with an additional nested segment appended.
func (t TypeRef) Nested(name string, args ...TypeRef) TypeRef {
	segs := make([]Segment, len(t.Segments), len(t.Segments)+1)
	copy(segs, t.Segments)
	t.Segments = append(segs, Segment{Name: StripArity(name), Args: args})
	return t
}

// PointerTo returns *t.
func PointerTo(t TypeRef) TypeRef { return TypeRef{Kind: Pointer, Elem: &t} }

// SliceOf returns []t.
func SliceOf(t TypeRef) TypeRef { return TypeRef{Kind: Slice, Elem: &t} }

// ArrayOf returns [n]t.
func ArrayOf(n int, t TypeRef) TypeRef { return TypeRef{Kind: Array, Len: n, Elem: &t} }

// MapOf returns map[k]v.
func MapOf(k, v TypeRef) TypeRef { return TypeRef{Kind: Map, Key: &k, Elem: &v} }

// ChanOf returns a channel of t in direction dir.
func ChanOf(dir ChanDir, t TypeRef) TypeRef { return TypeRef{Kind: Chan, Dir: dir, Elem: &t} }

// FuncOf returns a function type.
func FuncOf(in, out []TypeRef, variadic bool) TypeRef {
	return TypeRef{Kind: Func, In: in, Out: out, Variadic: variadic}
}

// Clone returns a deep copy of t that shares no slices or pointers with it.
func (t TypeRef) Clone() TypeRef {
	if t.Segments != nil {
		segs := make([]Segment, len(t.Segments))
		for i, s := range t.Segments {
			segs[i] = Segment{Name: s.Name, Args: cloneAll(s.Args)}
		}
		t.Segments = segs
	}
	if t.Elem != nil {
		e := t.Elem.Clone()
		t.Elem = &e
	}
	if t.Key != nil {
		k := t.Key.Clone()
		t.Key = &k
	}
	t.In = cloneAll(t.In)
	t.Out = cloneAll(t.Out)
	return t
}

func cloneAll(ts []TypeRef) []TypeRef {
	if ts == nil {
		return nil
	}
	out := make([]TypeRef, len(ts))
	for i, a := range ts {
		out[i] = a.Clone()
	}
	return out
}

// AnonymousType returns the unrenderable TypeRef.
func AnonymousType() TypeRef { return TypeRef{Kind: Anonymous} }

// Name returns the innermost unparameterized type name ("" if not named).
func (t TypeRef) Name() string {
	if t.Kind != Named || len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1].Name
}

// IsGeneric reports whether any segment carries generic arguments.
func (t TypeRef) IsGeneric() bool {
	for _, s := range t.Segments {
		if len(s.Args) > 0 {
			return true
		}
	}
	return false
}

// String renders t, or returns "<invalid>" when t cannot be rendered.
func (t TypeRef) String() string {
	s, err := RenderType(t)
	if err != nil {
		return "<invalid>"
	}
	return s
}

// StripArity removes a trailing arity marker: "List`1" -> "List".
func StripArity(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}
