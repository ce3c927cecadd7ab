package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/arbitrage/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("code", "X").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"code":"X"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewBadLevelDefaultsToInfo(t *testing.T) {
	log := New(io.Discard, "chatty", false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log = New(io.Discard, "", true)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestRotator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.log")
	r := &Rotator{Filename: path, MaxSize: 10, MaxBackups: 2}

	for _, line := range []string{"first-01\n", "second-2\n", "third-03\n", "fourth-4\n"} {
		_, err := r.Write([]byte(line))
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	read := func(name string) string {
		b, err := os.ReadFile(name)
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, "fourth-4\n", read(path))
	assert.Equal(t, "third-03\n", read(path+".1"))
	assert.Equal(t, "second-2\n", read(path+".2"))
	_, err := os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatorAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	r := NewRotator(path, 1, 3)
	_, err := r.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(b))
}

func TestAuditWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	a := OpenAudit(path, 1, 1, zerolog.Nop())

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a.Record(engine.Event{ID: "01A", Time: at, Action: "cycle.create", CycleID: 1,
		Fields: map[string]string{"planned_days": "15"}})
	a.Record(engine.Event{ID: "01B", Time: at, Action: "sale", CycleID: 1, DayID: 2,
		Fields: map[string]string{"ref": "R", "net_profit": "4.6325"}})
	require.NoError(t, a.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, "cycle.create", lines[0]["action"])
	assert.Equal(t, "sale", lines[1]["action"])
	assert.EqualValues(t, 2, lines[1]["day"])
	fields := lines[1]["fields"].(map[string]any)
	assert.Equal(t, "4.6325", fields["net_profit"])
	assert.True(t, strings.HasPrefix(lines[0]["at"].(string), "2025-03-01T09:00:00"))
}
