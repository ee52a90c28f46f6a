package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode("", "/p")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Parse.MaxDiagnostics)
	assert.Equal(t, []string{DefaultInclude}, cfg.Sources.Include)
	assert.Equal(t, "/p", cfg.Root)
}

func TestDecodeFull(t *testing.T) {
	cfg, err := Decode(`
[parse]
max_diagnostics = 10
jobs = 4
recover = true

[sources]
include = ["src/**/*.zc", "lib/*.zc"]
exclude = ["src/gen/**"]
`, "/p")
	require.NoError(t, err)
	assert.Equal(t, ParseConfig{MaxDiagnostics: 10, Jobs: 4, Recover: true}, cfg.Parse)
	assert.Equal(t, []string{"src/gen/**"}, cfg.Sources.Exclude)

	assert.True(t, cfg.Match("src/main.zc"))
	assert.True(t, cfg.Match("src/deep/x/y.zc"))
	assert.True(t, cfg.Match("./lib/io.zc"))
	assert.False(t, cfg.Match("lib/sub/io.zc"))
	assert.False(t, cfg.Match("src/gen/tables.zc"))
	assert.False(t, cfg.Match("src/main.c"))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("[parse]\nmax_diag = 1\n", "")
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "parse.max_diag")

	_, err = Decode("[sources]\ninclude = [\"src/[\"]\n", "")
	require.ErrorIs(t, err, ErrBadPattern)

	_, err = Decode("[parse]\njobs = -1\n", "")
	require.Error(t, err)

	_, err = Decode("[parse\n", "")
	require.Error(t, err)
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("[parse]\njobs = 2\n"), 0o600))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	cfg, found, err := Load(sub)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, cfg.Parse.Jobs)
	assert.Equal(t, filepath.Join(root, ConfigFileName), cfg.Path)
	assert.Equal(t, root, cfg.Root)
}

func TestLoadWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, found, err := Load(dir)
	require.NoError(t, err)
	// над TempDir не должно быть zenc.toml
	if found {
		t.Skip("zenc.toml found above temp dir")
	}
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, []string{DefaultInclude}, cfg.Sources.Include)
}

func TestCollectSources(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"main.zc", "src/a.zc", "src/gen/b.zc", "src/notes.txt", ".git/x.zc"} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o600))
	}
	cfg := Default(root)
	cfg.Sources.Exclude = []string{"src/gen/**"}

	files, err := cfg.CollectSources(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "main.zc"),
		filepath.Join(root, "src", "a.zc"),
	}, files)
}

func TestCombine(t *testing.T) {
	var d Digest
	d[0] = 1
	a, b := Combine(d, 1), Combine(d, 2)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Combine(d, 1))
	assert.False(t, a.IsZero())
	assert.Len(t, a.String(), 64)
}
