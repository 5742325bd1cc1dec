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

// Package gotypes describes Go declarations as signature.Member values
// using go/types, so tooling can compute the signatures a registration
// stage would produce without running the code.
//
// TypeRef agrees with the reflect-based resolver: the same type yields the
// same rendering whether it is reached through go/types or reflect.
package gotypes
