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

package invoker

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedOperation is returned by Accessor.Set when the member
	// has no setter (read-only, const or getter-only).
	ErrUnsupportedOperation = errors.New("xdel(invoker): unsupported operation")
	// ErrArgumentCount is returned when fewer arguments are supplied than
	// the registered closure reads.
	ErrArgumentCount = errors.New("xdel(invoker): argument count mismatch")
	// ErrTypeMismatch is returned when an instance, argument or value has a
	// runtime type the registered closure cannot accept.
	ErrTypeMismatch = errors.New("xdel(invoker): type mismatch")
)

// Error describes a failed invocation. Err is one of the package sentinels.
type Error struct {
	// Op is the operation that failed: "get", "set", "invoke" or "new".
	Op string
	// Signature is the signature the invoker was registered under.
	Signature string
	// Err is the classified failure.
	Err error
	// Detail carries the underlying runtime message, if any.
	Detail string
}

// Error implements error.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Signature != "" {
		sb.WriteByte(' ')
		sb.WriteString(e.Signature)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap returns the classified sentinel.
func (e *Error) Unwrap() error { return e.Err }

// argError is raised by the typed helpers (Arg, Self, Value) and recovered
// by the invokers.
type argError struct {
	err    error
	detail string
}

// Runtime bounds failures, e.g. "index out of range [2] with length 1",
// "slice bounds out of range [:2] with capacity 1" or "[3:1]".
var (
	indexBounds = regexp.MustCompile(`out of range \[[^\]]*?(\d+)\] with (?:length|capacity) (\d+)$`)
	sliceBounds = regexp.MustCompile(`slice bounds out of range \[(\d+):(\d+)\]$`)
)

// classify turns a recovered panic value into a classified failure. nargs
// is the number of arguments the closure received, or -1 when it takes
// none. A bounds failure counts as ErrArgumentCount only when it reaches
// past exactly nargs elements; other runtime errors come from the member
// itself, so classify returns nil and the caller re-raises them.
func classify(r any, nargs int) *argError {
	switch v := r.(type) {
	case *argError:
		return v
	case *runtime.TypeAssertionError:
		return &argError{err: ErrTypeMismatch, detail: v.Error()}
	case runtime.Error:
		if nargs >= 0 && pastArgs(v.Error(), nargs) {
			return &argError{err: ErrArgumentCount, detail: v.Error()}
		}
	}
	return nil
}

// pastArgs reports whether msg is a bounds failure on a slice of n elements
// at a position >= n.
func pastArgs(msg string, n int) bool {
	if m := indexBounds.FindStringSubmatch(msg); m != nil {
		return atoi(m[2]) == n && atoi(m[1]) >= n
	}
	if m := sliceBounds.FindStringSubmatch(msg); m != nil {
		return atoi(m[2]) == n && atoi(m[1]) > n
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// guard converts argument failures raised while running a closure into an
// *Error stored in *errp. Other panics propagate unchanged.
func guard(op, sig string, nargs int, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	ae := classify(r, nargs)
	if ae == nil {
		panic(r)
	}
	*errp = &Error{Op: op, Signature: sig, Err: ae.err, Detail: ae.detail}
}

func newArgError(err error, format string, args ...any) *argError {
	return &argError{err: err, detail: fmt.Sprintf(format, args...)}
}

// Error implements error so an unrecovered argError prints usefully.
func (e *argError) Error() string {
	return e.err.Error() + ": " + e.detail
}
