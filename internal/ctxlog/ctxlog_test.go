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

package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/xdel/internal/ctxlog"
)

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := ctxlog.WithLogger(context.Background(), logger)
	got := ctxlog.FromContext(ctx)
	require.Same(t, logger, got)

	got.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "k=v")
}

func TestFromContext_MissingIsSilent(t *testing.T) {
	l := ctxlog.FromContext(context.Background())
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))

	l = ctxlog.FromContext(ctxlog.WithLogger(context.Background(), nil))
	require.NotNil(t, l)
}
