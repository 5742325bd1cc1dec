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

// Package signature renders member descriptors into canonical signature
// strings, the keys of the xdel registries.
//
// A signature has the form
//
//	Namespace.Outer.Inner<GenArg1, GenArg2>.Member<MethodGenArg>(ParamType1, ParamType2)
//
// Nested types use "." like namespaces do. Generic argument brackets are
// omitted entirely when a type or method has no arguments. Methods and
// constructors always carry a parameter list, "()" when empty; fields and
// properties never do. A constructor's member segment is the declaring
// type's own unparameterized name.
//
// Descriptors (Member, TypeRef) are plain values. Rendering depends on
// nothing but its input, so the same descriptor always yields the same
// string, and two descriptors of the same member built from different
// handles (reflect, go/types, a manifest file, hand-written code) agree.
package signature
