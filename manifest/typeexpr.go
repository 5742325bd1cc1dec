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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/xdel/signature"
)

// ErrTypeExpr is returned for malformed type expressions.
var ErrTypeExpr = errors.New("xdel(manifest): malformed type expression")

// ParseType parses a manifest type expression.
//
// Named types are written the way they render, with generic arguments on
// the segment they belong to: "N.Outer<System.Int32>.Inner". The namespace
// is everything before the first segment; an explicit ':' may mark where it
// ends ("N:Outer.Inner"), otherwise the last '.' before the first '<' does.
// A name without '.' is a namespace-less builtin such as "int". Arity
// markers ("List`1") are accepted and stripped.
//
// Go composites use Go syntax: "*T", "[]T", "[4]T", "map[K]V", "chan T",
// "<-chan T", "chan<- T". The keyword "anonymous" yields an unrenderable
// type, which makes a descriptor ineligible.
func ParseType(s string) (signature.TypeRef, error) {
	p := &exprParser{src: strings.TrimSpace(s)}
	ref, err := p.typ()
	if err != nil {
		return signature.AnonymousType(), err
	}
	if p.pos != len(p.src) {
		return signature.AnonymousType(), p.fail("trailing input")
	}
	return ref, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) fail(what string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrTypeExpr, what, p.pos, p.src)
}

func (p *exprParser) eat(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *exprParser) space() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) typ() (signature.TypeRef, error) {
	p.space()
	switch {
	case p.eat("*"):
		e, err := p.typ()
		return signature.PointerTo(e), err
	case p.eat("[]"):
		e, err := p.typ()
		return signature.SliceOf(e), err
	case p.eat("map["):
		k, err := p.typ()
		if err != nil {
			return k, err
		}
		if !p.eat("]") {
			return signature.TypeRef{}, p.fail("expected ']'")
		}
		v, err := p.typ()
		return signature.MapOf(k, v), err
	case p.eat("["):
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return signature.TypeRef{}, p.fail("unterminated array length")
		}
		n, err := strconv.Atoi(p.src[p.pos : p.pos+end])
		if err != nil || n < 0 {
			return signature.TypeRef{}, p.fail("bad array length")
		}
		p.pos += end + 1
		e, err := p.typ()
		return signature.ArrayOf(n, e), err
	case p.eat("<-chan "):
		e, err := p.typ()
		return signature.ChanOf(signature.RecvOnly, e), err
	case p.eat("chan<- "):
		e, err := p.typ()
		return signature.ChanOf(signature.SendOnly, e), err
	case p.eat("chan "):
		e, err := p.typ()
		return signature.ChanOf(signature.Both, e), err
	}
	return p.named()
}

// ident reads up to the next delimiter; stop lists extra delimiters.
func (p *exprParser) ident(stop string) string {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>,[] "+stop, rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *exprParser) named() (signature.TypeRef, error) {
	head := p.ident("")
	if head == "" {
		return signature.TypeRef{}, p.fail("expected type name")
	}
	if head == "anonymous" {
		return signature.AnonymousType(), nil
	}

	ref := signature.TypeRef{Kind: signature.Named}
	var names []string
	if i := strings.IndexByte(head, ':'); i >= 0 {
		ref.Namespace = head[:i]
		names = strings.Split(head[i+1:], ".")
	} else if i := strings.LastIndexByte(head, '.'); i >= 0 {
		ref.Namespace, names = head[:i], []string{head[i+1:]}
	} else {
		names = []string{head}
	}
	for _, n := range names {
		ref.Segments = append(ref.Segments, signature.Segment{Name: signature.StripArity(n)})
	}

	for {
		if p.eat("<") {
			args, err := p.args()
			if err != nil {
				return signature.TypeRef{}, err
			}
			ref.Segments[len(ref.Segments)-1].Args = args
		}
		if !p.eat(".") {
			break
		}
		n := p.ident(".")
		if n == "" {
			return signature.TypeRef{}, p.fail("expected nested type name")
		}
		ref.Segments = append(ref.Segments, signature.Segment{Name: signature.StripArity(n)})
	}
	for _, s := range ref.Segments {
		if s.Name == "" {
			return signature.TypeRef{}, p.fail("empty segment")
		}
	}
	return ref, nil
}

func (p *exprParser) args() ([]signature.TypeRef, error) {
	var out []signature.TypeRef
	for {
		a, err := p.typ()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		p.space()
		if p.eat(">") {
			return out, nil
		}
		if !p.eat(",") {
			return nil, p.fail("expected ',' or '>'")
		}
	}
}
