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

package xdel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/xdel/config"
	"dirpx.dev/xdel/internal/ctxlog"
)

// Initializer populates the registries for one module, typically by calling
// AddAccessor, AddFunc, AddAction and AddConstructor.
type Initializer func(ctx context.Context) error

var (
	// initMu guards queued.
	initMu sync.Mutex
	// queued holds initializers registered from package init functions.
	queued []Initializer
)

// Register queues init to run at the next InitializeRegistered call.
// It is meant to be called from package init functions.
func Register(init Initializer) {
	if init == nil {
		return
	}
	initMu.Lock()
	defer initMu.Unlock()
	queued = append(queued, init)
}

// InitializeRegistered runs and dequeues every initializer queued with
// Register. Initializers queued later run at the next call.
func InitializeRegistered(ctx context.Context) error {
	initMu.Lock()
	inits := queued
	queued = nil
	initMu.Unlock()
	return Initialize(ctx, inits...)
}

// Initialize runs inits concurrently and waits for all of them. The first
// error cancels the context passed to the others and is returned. Entries
// added by initializers that succeeded stay registered. Each initializer's
// context carries the configured logger; see Logger.
func Initialize(ctx context.Context, inits ...Initializer) error {
	if len(inits) == 0 {
		return nil
	}
	log := config.Logger(Config())

	g, gctx := errgroup.WithContext(ctx)
	for i, init := range inits {
		if init == nil {
			continue
		}
		g.Go(func() error {
			if err := init(ctxlog.WithLogger(gctx, log.With("initializer", i))); err != nil {
				return fmt.Errorf("xdel: initializer %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug("initialization failed", "error", err)
		return err
	}
	s := st.Load()
	log.Debug("initialization done",
		"initializers", len(inits),
		"accessors", s.acc.Count(),
		"methods", s.met.Count(),
		"constructors", s.ctor.Count(),
	)
	return nil
}

// Logger returns the logger carried by an initializer's context, or a
// logger that discards everything.
func Logger(ctx context.Context) *slog.Logger {
	return ctxlog.FromContext(ctx)
}
