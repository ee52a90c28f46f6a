package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWatchedSource(t *testing.T) {
	assert.True(t, isWatchedSource("src/main.zc"))
	assert.True(t, isWatchedSource("/p/zenc.toml"))
	assert.False(t, isWatchedSource("notes.md"))
	assert.False(t, isWatchedSource("main.zc.swp"))
}

func TestWatchRerunsOnChange(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.zc": addSrc})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchSources(ctx, dir, 20*time.Millisecond, io.Discard, func() error {
			runs.Add(1)
			return errDiagnostics
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.zc"), []byte("const N: usize = 4;\n"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchStopsOnRunError(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.zc": addSrc})
	err := watchSources(context.Background(), dir, time.Millisecond, io.Discard, func() error {
		return os.ErrPermission
	})
	assert.ErrorIs(t, err, os.ErrPermission)
}
