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

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dirpx.dev/xdel/internal/ctxlog"
	"dirpx.dev/xdel/manifest"
	"dirpx.dev/xdel/signature"
)

// dumper prints descriptors without pointer addresses so dumps are stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "render <manifest>...",
		Short: "Print the canonical signature of every descriptor",
		Long: `Render every member descriptor in the given YAML or TOML manifests.

Descriptors that cannot be rendered (anonymous types, empty names) are
reported in place. Use check to see which descriptors a registry would skip.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootOpts, dump, args)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump each descriptor")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RootOptions, dump bool, files []string) error {
	log := ctxlog.FromContext(cmd.Context())

	var entries []Entry
	for _, file := range files {
		members, err := manifest.Load(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot load manifest", err)
		}
		log.Debug("manifest loaded", "file", file, "members", len(members))

		for i, m := range members {
			e := Entry{Source: file, Index: i}
			if s, err := signature.Render(m); err != nil {
				e.Error = err.Error()
			} else {
				e.Signature = s
			}
			if dump {
				e.Dump = dumper.Sdump(m)
			}
			entries = append(entries, e)
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Emit("ok", entries, func(w io.Writer) {
		for _, e := range entries {
			if e.Error != "" {
				fmt.Fprintf(w, "%s: error: %s\n", e.Where(), e.Error)
			} else {
				fmt.Fprintln(w, e.Signature)
			}
			if e.Dump != "" {
				fmt.Fprint(w, e.Dump)
			}
		}
	})
}
