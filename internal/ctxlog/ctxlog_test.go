package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(WithLogger(context.Background(), logger), "module", "a.hcl")
	FromContext(ctx).Info("loaded")

	assert.Contains(t, buf.String(), "module=a.hcl")
	assert.Contains(t, buf.String(), "msg=loaded")
}

func TestFromContext_MissingLoggerPanics(t *testing.T) {
	require.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
		FromContext(context.Background())
	})
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		FromContext(Discard(context.Background())).Error("dropped")
	})
}
