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

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/gotypes"
	"dirpx.dev/xdel/internal/ctxlog"
	"dirpx.dev/xdel/signature"
)

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dir        string
		unexported bool
	)

	cmd := &cobra.Command{
		Use:   "scan <pattern>...",
		Short: "Print signatures of the members declared in Go packages",
		Long: `Load and type-check the Go packages matching the patterns and print the
signature of every struct field, method and New* constructor they declare.

Patterns are the ones go list accepts, such as ./... or an import path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, rootOpts, dir, unexported, args)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "directory patterns are resolved in")
	cmd.Flags().BoolVar(&unexported, "unexported", false, "include unexported types and members")

	return cmd
}

func runScan(cmd *cobra.Command, opts *RootOptions, dir string, unexported bool, patterns []string) error {
	ctx := cmd.Context()
	log := ctxlog.FromContext(ctx)

	pkgs, err := gotypes.Load(ctx, dir, patterns...)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load packages", err)
	}

	cfg := config.DefaultConfig()
	var entries []Entry
	for _, pkg := range pkgs {
		res := gotypes.Scan(pkg, gotypes.Options{IncludeUnexported: unexported, MaxDepth: cfg.MaxDepth})
		log.Debug("package scanned", "package", pkg.Path(), "members", len(res.Members), "skipped", len(res.Skipped))

		for _, m := range res.Members {
			e := Entry{Source: pkg.Path(), Index: -1}
			if s, err := signature.Render(m); err != nil {
				e.Error = err.Error()
			} else {
				e.Signature = s
			}
			entries = append(entries, e)
		}
		for _, sk := range res.Skipped {
			entries = append(entries, Entry{Source: pkg.Path() + "." + sk.Name, Index: -1, Error: sk.Err.Error()})
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Emit("ok", entries, func(w io.Writer) {
		for _, e := range entries {
			switch {
			case e.Error == "":
				fmt.Fprintln(w, e.Signature)
			case opts.Verbose:
				fmt.Fprintf(w, "# skipped %s: %s\n", e.Where(), e.Error)
			}
		}
	})
}
