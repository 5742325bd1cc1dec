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

package registry

import (
	"log/slog"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/signature"
)

// base carries what the three registries share: the lookup policy and a logger.
type base struct {
	// cfg is the configuration used for descriptor lookups.
	cfg apis.Config
	// log receives debug records about skipped entries.
	log *slog.Logger
	// kind names the registry in log records.
	kind string
}

func newBase(cfg apis.Config, kind string) base {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return base{cfg: cfg, log: config.Logger(cfg).With("registry", kind), kind: kind}
}

// canonical renders m for lookup. It returns false, and logs why, when m is
// of the wrong kind for this registry or was never eligible for registration.
func (b *base) canonical(m signature.Member, accept func(signature.MemberKind) bool) (string, bool) {
	if !accept(m.Identity().Kind) {
		b.log.Debug("lookup skipped", "reason", "member kind", "kind", m.Kind.String(), "member", m.Name)
		return "", false
	}
	sig, err := signature.Canonical(m, b.cfg.MinAccessibility)
	if err != nil {
		b.log.Debug("lookup skipped", "reason", err.Error(), "member", m.Name)
		return "", false
	}
	return sig, true
}

func (b *base) added(sig string, replaced bool) {
	b.log.Debug("registered", "signature", sig, "replaced", replaced)
}

func (b *base) rejected(sig, reason string) {
	b.log.Debug("registration ignored", "signature", sig, "reason", reason)
}
