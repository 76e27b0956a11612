package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")
	ctx := context.Background()

	DebugLog(ctx, "hidden")
	InfoLog(ctx, "hidden %d", 1)
	WarnLog(ctx, "shown %s", "warn")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown warn", lines[0]["message"])
	assert.Equal(t, "warn", lines[0]["level"])
}

func TestErrorLog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "bogus")
	ctx := context.Background()

	ErrorLogErr(ctx, "query failed", errors.New("boom"))
	ErrorLog(ctx, "report %s failed: %v", "salesmen", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "query failed", lines[0]["message"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "report salesmen failed: boom", lines[1]["message"])
	assert.NotContains(t, lines[1], "error")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info")

	ctx := WithLogger(context.Background(), map[string]interface{}{"report": "salesmen"})
	InfoLog(ctx, "running")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "salesmen", lines[0]["report"])
}
