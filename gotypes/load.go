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
	"context"
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName | packages.NeedTypes

// ErrNoPackages is returned when the patterns match nothing.
var ErrNoPackages = errors.New("xdel(gotypes): no packages matched")

// Load type-checks the packages matching patterns (standard go list
// patterns such as "./..." or an import path), resolved relative to dir.
func Load(ctx context.Context, dir string, patterns ...string) ([]*types.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("xdel(gotypes): loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}

	// Check for package errors
	var errs []error
	out := make([]*types.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		if pkg.Types != nil {
			out = append(out, pkg.Types)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("xdel(gotypes): package errors: %w", errors.Join(errs...))
	}
	return out, nil
}
