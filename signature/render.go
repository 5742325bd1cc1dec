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

import (
	"strconv"
	"strings"
)

// maxRenderDepth bounds recursion through pathological TypeRef graphs.
const maxRenderDepth = 64

// RenderType renders the fully qualified, canonical name of t:
//
//	Namespace.Outer<A, B>.Inner
//
// Composite Go types render in Go syntax over canonical element names.
func RenderType(t TypeRef) (string, error) {
	var sb strings.Builder
	if err := writeType(&sb, t, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render renders the canonical signature of m. It does not check whether m
// is eligible for registration; see Check.
//
//	fields, properties: Namespace.Type<Args>.Name
//	methods:            Namespace.Type<Args>.Name<MethodArgs>(P1, P2)
//	constructors:       Namespace.Type<Args>.Type<MethodArgs>(P1, P2)
func Render(m Member) (string, error) {
	m = m.Identity()
	if m.Kind > Constructor {
		return "", ErrInvalidKind
	}
	if m.Declaring.Kind != Named || len(m.Declaring.Segments) == 0 {
		return "", ErrAnonymousType
	}

	var sb strings.Builder
	if err := writeType(&sb, m.Declaring, 0); err != nil {
		return "", err
	}
	sb.WriteByte('.')

	switch m.Kind {
	case Field, Property:
		if m.Name == "" {
			return "", ErrEmptyName
		}
		sb.WriteString(m.Name)
		return sb.String(), nil
	case Constructor:
		sb.WriteString(m.Declaring.Name())
	default:
		if m.Name == "" {
			return "", ErrEmptyName
		}
		sb.WriteString(m.Name)
	}

	if len(m.TypeArgs) > 0 {
		if err := writeArgs(&sb, m.TypeArgs, 0); err != nil {
			return "", err
		}
	}

	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeType(&sb, p.Type, 0); err != nil {
			return "", err
		}
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

// MustRender is like Render but panics on error. Intended for package-level
// signature constants in registration code.
func MustRender(m Member) string {
	s, err := Render(m)
	if err != nil {
		panic(err)
	}
	return s
}

// writeType appends the canonical rendering of t to sb.
func writeType(sb *strings.Builder, t TypeRef, depth int) error {
	if depth > maxRenderDepth {
		return ErrTooDeep
	}
	switch t.Kind {
	case Named:
		if len(t.Segments) == 0 {
			return ErrAnonymousType
		}
		if t.Namespace != "" {
			sb.WriteString(t.Namespace)
			sb.WriteByte('.')
		}
		for i, seg := range t.Segments {
			if i > 0 {
				sb.WriteByte('.')
			}
			name := StripArity(seg.Name)
			if name == "" {
				return ErrAnonymousType
			}
			sb.WriteString(name)
			if len(seg.Args) > 0 {
				if err := writeArgs(sb, seg.Args, depth+1); err != nil {
					return err
				}
			}
		}
		return nil

	case Pointer:
		sb.WriteByte('*')
		return writeElem(sb, t.Elem, depth)

	case Slice:
		sb.WriteString("[]")
		return writeElem(sb, t.Elem, depth)

	case Array:
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(t.Len))
		sb.WriteByte(']')
		return writeElem(sb, t.Elem, depth)

	case Map:
		if t.Key == nil {
			return ErrIncompleteType
		}
		sb.WriteString("map[")
		if err := writeType(sb, *t.Key, depth+1); err != nil {
			return err
		}
		sb.WriteByte(']')
		return writeElem(sb, t.Elem, depth)

	case Chan:
		switch t.Dir {
		case RecvOnly:
			sb.WriteString("<-chan ")
		case SendOnly:
			sb.WriteString("chan<- ")
		default:
			sb.WriteString("chan ")
		}
		return writeElem(sb, t.Elem, depth)

	case Func:
		return writeFunc(sb, t, depth)

	default:
		return ErrAnonymousType
	}
}

func writeElem(sb *strings.Builder, elem *TypeRef, depth int) error {
	if elem == nil {
		return ErrIncompleteType
	}
	return writeType(sb, *elem, depth+1)
}

// writeArgs appends "<A, B>".
func writeArgs(sb *strings.Builder, args []TypeRef, depth int) error {
	sb.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeType(sb, a, depth); err != nil {
			return err
		}
	}
	sb.WriteByte('>')
	return nil
}

// writeFunc appends "func(A, ...B) (C, D)".
func writeFunc(sb *strings.Builder, t TypeRef, depth int) error {
	sb.WriteString("func(")
	for i, in := range t.In {
		if i > 0 {
			sb.WriteString(", ")
		}
		if t.Variadic && i == len(t.In)-1 {
			sb.WriteString("...")
			if in.Kind == Slice && in.Elem != nil {
				in = *in.Elem
			}
		}
		if err := writeType(sb, in, depth+1); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	switch len(t.Out) {
	case 0:
	case 1:
		sb.WriteByte(' ')
		return writeType(sb, t.Out[0], depth+1)
	default:
		sb.WriteString(" (")
		for i, out := range t.Out {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := writeType(sb, out, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	}
	return nil
}
