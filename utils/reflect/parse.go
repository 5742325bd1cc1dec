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

package reflect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/xdel/signature"
)

// ErrMalformedTypeName is returned when a printed type name cannot be parsed.
var ErrMalformedTypeName = errors.New("reflect: malformed type name")

// ParseTypeName parses a type as printed by the runtime for generic
// instantiations, e.g. "example.com/p.Box[example.com/p.T,map[string]int]".
//
// Named types split at the last '.' before any '[' into namespace and name;
// a name without '.' is predeclared. "interface {}" parses as "any". Anonymous
// structs and interfaces with methods fail with ErrReflectTypeNotNamed.
func ParseTypeName(s string) (signature.TypeRef, error) {
	p := &parser{src: s}
	ref, err := p.parseType()
	if err != nil {
		return signature.AnonymousType(), err
	}
	if p.pos != len(p.src) {
		return signature.AnonymousType(), p.fail("trailing input")
	}
	return ref, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(what string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrMalformedTypeName, what, p.pos, p.src)
}

func (p *parser) rest() string { return p.src[p.pos:] }

func (p *parser) eat(prefix string) bool {
	if strings.HasPrefix(p.rest(), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) parseType() (signature.TypeRef, error) {
	p.skipSpace()
	switch {
	case p.eat("*"):
		e, err := p.parseType()
		return signature.PointerTo(e), err

	case p.eat("[]"):
		e, err := p.parseType()
		return signature.SliceOf(e), err

	case p.eat("["):
		end := strings.IndexByte(p.rest(), ']')
		if end < 0 {
			return signature.TypeRef{}, p.fail("unterminated array length")
		}
		n, err := strconv.Atoi(p.rest()[:end])
		if err != nil {
			return signature.TypeRef{}, p.fail("bad array length")
		}
		p.pos += end + 1
		e, err := p.parseType()
		return signature.ArrayOf(n, e), err

	case p.eat("map["):
		k, err := p.parseType()
		if err != nil {
			return k, err
		}
		if !p.eat("]") {
			return signature.TypeRef{}, p.fail("expected ']' after map key")
		}
		v, err := p.parseType()
		return signature.MapOf(k, v), err

	case p.eat("<-chan "):
		e, err := p.parseChanElem()
		return signature.ChanOf(signature.RecvOnly, e), err

	case p.eat("chan<- "):
		e, err := p.parseChanElem()
		return signature.ChanOf(signature.SendOnly, e), err

	case p.eat("chan "):
		e, err := p.parseChanElem()
		return signature.ChanOf(signature.Both, e), err

	case p.eat("func("):
		return p.parseFunc()

	case p.eat("interface {}"):
		return signature.Builtin("any"), nil

	case strings.HasPrefix(p.rest(), "struct {"), strings.HasPrefix(p.rest(), "interface {"):
		return signature.TypeRef{}, fmt.Errorf("%w: %s", ErrReflectTypeNotNamed, p.rest())
	}
	return p.parseNamed()
}

// parseChanElem handles the parenthesized form "chan (<-chan int)".
func (p *parser) parseChanElem() (signature.TypeRef, error) {
	if !p.eat("(") {
		return p.parseType()
	}
	e, err := p.parseType()
	if err != nil {
		return e, err
	}
	if !p.eat(")") {
		return signature.TypeRef{}, p.fail("expected ')'")
	}
	return e, nil
}

func (p *parser) parseFunc() (signature.TypeRef, error) {
	var in []signature.TypeRef
	variadic := false
	for !p.eat(")") {
		if len(in) > 0 && !p.eat(",") {
			return signature.TypeRef{}, p.fail("expected ',' in parameter list")
		}
		p.skipSpace()
		if p.eat("...") {
			variadic = true
		}
		t, err := p.parseType()
		if err != nil {
			return t, err
		}
		if variadic {
			t = signature.SliceOf(t)
		}
		in = append(in, t)
	}

	var out []signature.TypeRef
	if !p.eat(" ") {
		return signature.FuncOf(in, out, variadic), nil
	}
	if !p.eat("(") {
		t, err := p.parseType()
		if err != nil {
			return t, err
		}
		return signature.FuncOf(in, []signature.TypeRef{t}, variadic), nil
	}
	for !p.eat(")") {
		if len(out) > 0 && !p.eat(",") {
			return signature.TypeRef{}, p.fail("expected ',' in result list")
		}
		t, err := p.parseType()
		if err != nil {
			return t, err
		}
		out = append(out, t)
	}
	return signature.FuncOf(in, out, variadic), nil
}

func (p *parser) parseNamed() (signature.TypeRef, error) {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("[],() ", rune(p.src[p.pos])) {
		p.pos++
	}
	full := p.src[start:p.pos]
	if full == "" {
		return signature.TypeRef{}, p.fail("expected type name")
	}

	var args []signature.TypeRef
	if p.eat("[") {
		for !p.eat("]") {
			if len(args) > 0 && !p.eat(",") {
				return signature.TypeRef{}, p.fail("expected ',' in type arguments")
			}
			a, err := p.parseType()
			if err != nil {
				return a, err
			}
			args = append(args, a)
			if p.pos >= len(p.src) {
				return signature.TypeRef{}, p.fail("unterminated type arguments")
			}
		}
	}

	if strings.IndexByte(full, '.') < 0 {
		ref := signature.Builtin(full)
		ref.Segments[0].Args = args
		return ref, nil
	}
	return signature.Type(full, args...), nil
}
