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

package gotypes

import (
	"errors"
	"fmt"
	"go/types"
	"sort"
	"strings"

	"dirpx.dev/xdel/signature"
)

// ErrGenericDeclaration marks generic types, whose members have no concrete
// signature until instantiated.
var ErrGenericDeclaration = errors.New("xdel(gotypes): generic declaration")

// Options controls Scan.
type Options struct {
	// IncludeUnexported adds unexported types, fields and methods with
	// signature.Internal accessibility.
	IncludeUnexported bool
	// MaxDepth bounds type nesting; <= 0 means unlimited.
	MaxDepth int
}

// Skipped records a declaration Scan could not describe.
type Skipped struct {
	// Name is "Type", "Type.Member" or a function name.
	Name string
	// Err is the reason.
	Err error
}

// Result is the output of Scan, in declaration-name order.
type Result struct {
	Members []signature.Member
	Skipped []Skipped
}

// Scan describes the members of every named type declared at package level
// in pkg: struct fields, methods (value and pointer receivers) and
// constructors. A constructor is a package function named New* whose first
// result is T or *T for a type T of pkg.
func Scan(pkg *types.Package, opts Options) Result {
	s := scanner{opts: opts}
	scope := pkg.Scope()
	names := scope.Names()
	sort.Strings(names)

	for _, name := range names {
		obj := scope.Lookup(name)
		if !obj.Exported() && !opts.IncludeUnexported {
			continue
		}
		switch o := obj.(type) {
		case *types.TypeName:
			if o.IsAlias() {
				continue
			}
			if named, ok := o.Type().(*types.Named); ok {
				s.named(named)
			}
		case *types.Func:
			s.constructor(pkg, o)
		}
	}
	return s.res
}

type scanner struct {
	opts Options
	res  Result
}

func (s *scanner) skip(name string, err error) {
	s.res.Skipped = append(s.res.Skipped, Skipped{Name: name, Err: err})
}

func (s *scanner) named(named *types.Named) {
	name := named.Obj().Name()
	if named.TypeParams().Len() > 0 {
		s.skip(name, ErrGenericDeclaration)
		return
	}
	decl, err := TypeRef(named, s.opts.MaxDepth)
	if err != nil {
		s.skip(name, err)
		return
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !f.Exported() && !s.opts.IncludeUnexported {
				continue
			}
			m := signature.FieldOf(decl, f.Name())
			m.Access = access(f)
			s.res.Members = append(s.res.Members, m)
		}
	case *types.Interface:
		// Embedded interfaces contribute to the outer method set, as reflect
		// reports it.
		for i := 0; i < u.NumMethods(); i++ {
			s.method(decl, name, u.Method(i))
		}
		return
	}

	for i := 0; i < named.NumMethods(); i++ {
		s.method(decl, name, named.Method(i))
	}
}

func (s *scanner) method(decl signature.TypeRef, owner string, fn *types.Func) {
	if !fn.Exported() && !s.opts.IncludeUnexported {
		return
	}
	sig := fn.Type().(*types.Signature)
	params, err := s.params(sig)
	if err != nil {
		s.skip(owner+"."+fn.Name(), err)
		return
	}
	m := signature.MethodOf(decl, fn.Name())
	m.Params = params
	m.Access = access(fn)
	s.res.Members = append(s.res.Members, m)
}

func (s *scanner) constructor(pkg *types.Package, fn *types.Func) {
	if !strings.HasPrefix(fn.Name(), "New") {
		return
	}
	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 || sig.Results().Len() == 0 {
		return
	}
	res := sig.Results().At(0).Type()
	if p, ok := res.(*types.Pointer); ok {
		res = p.Elem()
	}
	named, ok := types.Unalias(res).(*types.Named)
	if !ok || named.Obj().Pkg() != pkg || named.TypeParams().Len() > 0 {
		return
	}

	decl, err := TypeRef(named, s.opts.MaxDepth)
	if err != nil {
		s.skip(fn.Name(), err)
		return
	}
	params, err := s.params(sig)
	if err != nil {
		s.skip(fn.Name(), err)
		return
	}
	m := signature.Member{Declaring: decl, Kind: signature.Constructor, Params: params, Static: true, Access: access(fn)}
	s.res.Members = append(s.res.Members, m)
}

func (s *scanner) params(sig *types.Signature) ([]signature.Param, error) {
	out := make([]signature.Param, sig.Params().Len())
	for i := range out {
		v := sig.Params().At(i)
		ref, err := TypeRef(v.Type(), s.opts.MaxDepth)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		out[i] = signature.Param{Type: ref}
	}
	return out, nil
}

func access(obj types.Object) signature.Accessibility {
	if obj.Exported() {
		return signature.Public
	}
	return signature.Internal
}
