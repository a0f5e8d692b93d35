package logger

import (
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func TestRedisLoggerHook_ProcessHook(t *testing.T) {
	buf := captureDefault(t)
	hook := NewRedisLogger(time.Hour)
	ctx := context.Background()

	miss := hook.ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	assert.ErrorIs(t, miss(ctx, redis.NewStringCmd(ctx, "get", "user:info:1")), redis.Nil)
	assert.Empty(t, buf.String())

	boom := errors.New("connection reset")
	failing := hook.ProcessHook(func(context.Context, redis.Cmder) error { return boom })
	assert.ErrorIs(t, failing(ctx, redis.NewStatusCmd(ctx, "auth", "secret")), boom)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Redis Error", lines[0]["msg"])
	assert.Equal(t, "auth", lines[0]["command"])
	assert.Equal(t, "[PROTECTED]", lines[0]["args"])
}

func TestRedisLoggerHook_Slow(t *testing.T) {
	buf := captureDefault(t)
	hook := &RedisLoggerHook{SlowThreshold: -1}
	ctx := context.Background()

	pipe := hook.ProcessPipelineHook(func(context.Context, []redis.Cmder) error { return nil })
	require.NoError(t, pipe(ctx, []redis.Cmder{redis.NewIntCmd(ctx, "sadd", "post:counter:dirty", 1)}))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Redis Pipeline Slow", lines[0]["msg"])
	assert.EqualValues(t, 1, lines[0]["cmd_count"])
}

func TestNewRedisLogger_Default(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, NewRedisLogger(0).SlowThreshold)
}
