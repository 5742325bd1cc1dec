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

package apis

import (
	"log/slog"

	"dirpx.dev/xdel/signature"
)

// Config carries read-only knobs shared by registries and resolvers.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MinAccessibility is the lowest declared accessibility a member may
	// have to be found by descriptor. Members below it resolve to "not found".
	// signature.NotApplicable disables the check.
	MinAccessibility signature.Accessibility

	// MaxDepth limits how deep type walks (pointer, slice, generic
	// arguments, func parameters) may go when deriving a TypeRef from a Go
	// handle. Acts as a safety guard against pathological nesting.
	MaxDepth int

	// Memoize controls whether reflect-derived TypeRefs are cached per type.
	Memoize bool

	// Logger receives debug records about skipped registrations and lookups.
	// Nil means discard.
	Logger *slog.Logger
}
