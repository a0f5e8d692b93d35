package logger

import (
	"bytes"
	"context"
	"encoding/json"
	log "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "job-123"), "hello")
	l.InfoContext(context.Background(), "no trace")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "job-123", lines[0][TraceIDKey])
	assert.NotContains(t, lines[1], TraceIDKey)
}

func TestTeeHandler_RemoteOnlyGetsTracedRecords(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.InfoContext(context.Background(), "startup")
	l.InfoContext(WithTraceID(context.Background(), "t-1"), "like created")

	assert.Len(t, decodeLines(t, &local), 2)
	remoteLines := decodeLines(t, &remote)
	require.Len(t, remoteLines, 1)
	assert.Equal(t, "like created", remoteLines[0]["msg"])
}

func TestTraceID_Empty(t *testing.T) {
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestSqlOperation(t *testing.T) {
	assert.Equal(t, "INSERT", sqlOperation("INSERT INTO `likes` (`user_id`) VALUES (1)"))
	assert.Equal(t, "UPDATE", sqlOperation("  update posts set likes_count = likes_count + 1"))
	assert.Equal(t, "Query", sqlOperation(""))
}
