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
	"errors"
	"fmt"
)

var (
	// ErrAnonymousType is returned when a type has no stable, renderable name.
	ErrAnonymousType = errors.New("xdel(signature): anonymous or synthesized type")
	// ErrIncompleteType is returned when a composite TypeRef lacks its element or key.
	ErrIncompleteType = errors.New("xdel(signature): incomplete composite type")
	// ErrTooDeep is returned when type nesting exceeds the render limit.
	ErrTooDeep = errors.New("xdel(signature): type nesting too deep")
	// ErrEmptyName is returned when a field, property or method has no name.
	ErrEmptyName = errors.New("xdel(signature): empty member name")
	// ErrInvalidKind is returned for an unknown MemberKind.
	ErrInvalidKind = errors.New("xdel(signature): invalid member kind")
	// ErrLowAccessibility marks members declared below the minimum accessibility.
	ErrLowAccessibility = errors.New("xdel(signature): accessibility below minimum")
	// ErrByRefParameter marks members with ref or out parameters.
	ErrByRefParameter = errors.New("xdel(signature): by-ref parameter")
	// ErrWriteOnly marks properties without a getter.
	ErrWriteOnly = errors.New("xdel(signature): write-only property")
)

// Check reports whether m may be registered. A non-nil error means the
// registration stage skips m and every lookup for it yields "not found".
// floor is the lowest accepted accessibility; NotApplicable disables the check.
func Check(m Member, floor Accessibility) error {
	m = m.Identity()
	if m.Kind > Constructor {
		return ErrInvalidKind
	}
	if floor != NotApplicable && m.Access < floor {
		return fmt.Errorf("%w: %s < %s", ErrLowAccessibility, m.Access, floor)
	}
	if m.Kind == Property && !m.HasGetter {
		return ErrWriteOnly
	}
	for i, p := range m.Params {
		if p.Ref == Ref || p.Ref == Out {
			return fmt.Errorf("%w: parameter %d", ErrByRefParameter, i)
		}
	}
	if !renderable(m.Declaring, 0) {
		return ErrAnonymousType
	}
	for _, p := range m.Params {
		if !renderable(p.Type, 0) {
			return ErrAnonymousType
		}
	}
	for _, a := range m.TypeArgs {
		if !renderable(a, 0) {
			return ErrAnonymousType
		}
	}
	return nil
}

// Canonical checks m and renders it. It is the single entry point used by
// registries when looking members up by descriptor.
func Canonical(m Member, floor Accessibility) (string, error) {
	if err := Check(m, floor); err != nil {
		return "", err
	}
	return Render(m)
}

// renderable reports whether t contains no anonymous parts.
func renderable(t TypeRef, depth int) bool {
	if depth > maxRenderDepth {
		return false
	}
	switch t.Kind {
	case Named:
		if len(t.Segments) == 0 {
			return false
		}
		for _, s := range t.Segments {
			if StripArity(s.Name) == "" {
				return false
			}
			for _, a := range s.Args {
				if !renderable(a, depth+1) {
					return false
				}
			}
		}
		return true
	case Pointer, Slice, Array, Chan:
		return t.Elem != nil && renderable(*t.Elem, depth+1)
	case Map:
		return t.Key != nil && t.Elem != nil &&
			renderable(*t.Key, depth+1) && renderable(*t.Elem, depth+1)
	case Func:
		for _, in := range t.In {
			if !renderable(in, depth+1) {
				return false
			}
		}
		for _, out := range t.Out {
			if !renderable(out, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
