package trace

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(name), l.String())
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFiltersScopes(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.False(t, LevelError.ShouldEmit(ScopeDriver))
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	dir := Begin(tr, ScopeDriver, "parse-dir", 0)
	file := Begin(tr, ScopeFile, "parse", dir.ID()).WithExtra("file", "a.zc").WithExtra("errors", "0")
	file.End("")
	Begin(tr, ScopeNode, "fn", file.ID()).End("")
	dir.End("1 file")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "→ driver:parse-dir")
	assert.Contains(t, lines[2], "← file:parse {errors=0, file=a.zc}")
	assert.Contains(t, lines[3], "← driver:parse-dir (1 file)")
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopePass, "cache-hit", "a.zc", 0)
	assert.Contains(t, buf.String(), `"kind":"point"`)
	assert.Contains(t, buf.String(), `"name":"cache-hit"`)
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		ring.Emit(&Event{Name: name, Scope: ScopeFile, Kind: KindPoint})
	}
	snap := ring.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Name)
	assert.Equal(t, "c", snap[1].Name)
}

func TestNewAtErrorLevelIsRingOnly(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeStream, Output: &buf})
	require.NoError(t, err)
	_, isRing := tr.(*RingTracer)
	assert.True(t, isRing)
}

func TestContextPropagation(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	assert.Zero(t, ParentID(context.Background()))

	tr := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	assert.Same(t, tr, FromContext(ctx))

	root, ctx := StartSpan(ctx, ScopeDriver, "zenc parse")
	assert.Equal(t, root.ID(), ParentID(ctx))
	assert.Same(t, tr, FromContext(ctx))

	dir, dirCtx := StartSpan(ctx, ScopeDriver, "parse-dir")
	dir.End("")
	root.End("ok")
	assert.Equal(t, root.ID(), ParentID(ctx))
	assert.Equal(t, dir.ID(), ParentID(dirCtx))

	snap := tr.Snapshot()
	require.Len(t, snap, 4)
	assert.Zero(t, snap[0].ParentID)
	assert.Equal(t, root.ID(), snap[1].ParentID)
	assert.Equal(t, "parse-dir", snap[1].Name)
}

func TestStreamToStderrIsNotClosed(t *testing.T) {
	for _, path := range []string{"", "-"} {
		w, err := Config{OutputPath: path}.output()
		require.NoError(t, err)
		_, closes := w.(io.Closer)
		assert.False(t, closes, "path %q", path)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		got, err := ParseMode(strings.ToUpper(m.String()))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("disk")
	assert.Error(t, err)
	assert.Equal(t, "unknown", StorageMode(9).String())
}

func TestSpansRecordGoroutine(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	Begin(ring, ScopeFile, "lex", 0).End("")

	done := make(chan struct{})
	go func() {
		defer close(done)
		Begin(ring, ScopeFile, "parse", 0).End("")
	}()
	<-done

	snap := ring.Snapshot()
	require.Len(t, snap, 4)
	assert.NotZero(t, snap[0].GID)
	assert.Equal(t, snap[0].GID, snap[1].GID)
	assert.NotEqual(t, snap[0].GID, snap[2].GID)
}
