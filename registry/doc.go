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

// Package registry implements the three signature-keyed directories of
// xdel: accessors, methods and constructors.
//
// Each registry supports insert-or-replace (last write wins) and two
// lookups: by signature string, matched exactly, and by descriptor, which
// is canonicalized first. Both agree for the same member. A descriptor
// lookup answers "not found" when the member is of the wrong kind, falls
// below the configured minimum accessibility, has ref/out parameters or
// mentions an anonymous type; the reason is only logged at debug level.
//
// Registries are safe for concurrent Add and Find. Entries are stored fully
// constructed, so readers never observe a partial entry, and invocation
// failures never evict them.
package registry
