package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	f := RequestField(ctx)
	assert.Equal(t, KeyRequestID, f.Key)
	assert.Equal(t, "req-1", f.String)
}

func TestNewBuildsEveryLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "bogus"} {
		assert.NotNil(t, New("production", lvl))
	}
	assert.True(t, New("production", "debug").Core().Enabled(-1))
	assert.False(t, New("production", "warn").Core().Enabled(0))
}
