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

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"dirpx.dev/xdel/internal/ctxlog"
	"dirpx.dev/xdel/manifest"
	"dirpx.dev/xdel/signature"
)

// Collision is a pair of distinct descriptors sharing one signature.
type Collision struct {
	Signature string `json:"signature"`
	First     string `json:"first"`
	Second    string `json:"second"`
}

// CheckResult is the output of the check command.
type CheckResult struct {
	Eligible   int         `json:"eligible"`
	Skipped    []Entry     `json:"skipped,omitempty"`
	Collisions []Collision `json:"collisions,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var minAccess string

	cmd := &cobra.Command{
		Use:   "check <manifest>...",
		Short: "Report skipped descriptors and signature collisions",
		Long: `Check the descriptors in the given manifests against the registration rules.

Descriptors a registry would skip are listed with the reason. Two distinct
descriptors rendering to the same signature are a collision; any collision
makes check exit with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor, err := manifest.ParseAccess(minAccess)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --min-access", err)
			}
			return runCheck(cmd, rootOpts, floor, args)
		},
	}

	cmd.Flags().StringVar(&minAccess, "min-access", "internal",
		"lowest accessibility a registry accepts (public|protected_or_internal|internal|protected|protected_and_internal|private|not_applicable)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *RootOptions, floor signature.Accessibility, files []string) error {
	log := ctxlog.FromContext(cmd.Context())

	type seen struct {
		where  string
		member signature.Member
	}
	bySig := make(map[string]seen)

	var res CheckResult
	for _, file := range files {
		members, err := manifest.Load(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot load manifest", err)
		}
		for i, m := range members {
			e := Entry{Source: file, Index: i}
			s, err := signature.Canonical(m, floor)
			if err != nil {
				e.Error = err.Error()
				res.Skipped = append(res.Skipped, e)
				log.Debug("descriptor skipped", "at", e.Where(), "reason", err)
				continue
			}
			res.Eligible++

			prev, dup := bySig[s]
			if !dup {
				bySig[s] = seen{where: e.Where(), member: m}
				continue
			}
			if cmp.Equal(prev.member.Identity(), m.Identity()) {
				log.Debug("duplicate descriptor", "signature", s, "first", prev.where, "second", e.Where())
				continue
			}
			res.Collisions = append(res.Collisions, Collision{Signature: s, First: prev.where, Second: e.Where()})
		}
	}

	status := "ok"
	if len(res.Collisions) > 0 {
		status = "error"
	}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	err := f.Emit(status, res, func(w io.Writer) {
		for _, e := range res.Skipped {
			fmt.Fprintf(w, "skip %s: %s\n", e.Where(), e.Error)
		}
		for _, c := range res.Collisions {
			fmt.Fprintf(w, "collision %s: %s and %s\n", c.Signature, c.First, c.Second)
		}
		fmt.Fprintf(w, "%d eligible, %d skipped, %d collisions\n", res.Eligible, len(res.Skipped), len(res.Collisions))
	})
	if err != nil {
		return err
	}
	if len(res.Collisions) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d signature collision(s)", len(res.Collisions)))
	}
	return nil
}
