package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

const addSrc = "fn add(a: i32, b: i32) -> i32 { a + b }\n"

func TestParseFileSexp(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	out, _, err := runCLI(t, "parse", "--format", "sexp", filepath.Join(dir, "add.zc"))
	require.NoError(t, err)
	assert.Contains(t, out, "(fn add (params (a i32) (b i32)) (-> i32) (block (tail (+ a b))))")
}

func TestParseFileTree(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	out, _, err := runCLI(t, "parse", filepath.Join(dir, "add.zc"))
	require.NoError(t, err)
	assert.Contains(t, out, "(1 items)")
	assert.Contains(t, out, "└─ ")
}

func TestParseReportsErrors(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.zc": "fn f(x: ) { }\n"})
	out, errOut, err := runCLI(t, "parse", filepath.Join(dir, "bad.zc"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "SYN2005")
}

func TestParseDirHonoursConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"zenc.toml":    "[sources]\nexclude = [\"skip/**\"]\n",
		"main.zc":      addSrc,
		"lib/util.zc":  "const N: usize = 4;\n",
		"skip/bad.zc":  "fn f(x: ) { }\n",
		"notes/readme": "not a source file",
	})
	out, _, err := runCLI(t, "parse", "--format", "sexp", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "== lib/util.zc ==")
	assert.Contains(t, out, "== main.zc ==")
	assert.NotContains(t, out, "skip/bad.zc")
	assert.Contains(t, out, "(const N (: usize) (= 4))")
}

func TestParseQuietDropsHeaders(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.zc": addSrc})
	out, _, err := runCLI(t, "--quiet", "parse", "--format", "sexp", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "==")
}

func TestParseUsesCache(t *testing.T) {
	t.Setenv("ZENC_CACHE_DIR", t.TempDir())
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	path := filepath.Join(dir, "add.zc")

	out, _, err := runCLI(t, "parse", "--cache", "--format", "sexp", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(fn add")

	out, _, err = runCLI(t, "parse", "--cache", "--format", "sexp", path)
	require.NoError(t, err)
	assert.Equal(t, "(cached: 1 items)\n", out)

	out, _, err = runCLI(t, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "removed ")

	out, _, err = runCLI(t, "parse", "--cache", "--format", "sexp", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(fn add")
}

func TestDiagShortRecoversByDefault(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.zc": "fn a() { x = ; }\nfn b() { }\nfn c() { y = ; }\n"})
	out, _, err := runCLI(t, "diag", "--format", "short", filepath.Join(dir, "bad.zc"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "ERROR SYN2006 ")
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("SYN2006")))

	out, _, err = runCLI(t, "diag", "--recover=false", "--format", "short", filepath.Join(dir, "bad.zc"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("SYN2006")))
}

func TestDiagCleanFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"ok.zc": addSrc})
	out, _, err := runCLI(t, "diag", filepath.Join(dir, "ok.zc"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiagJSONDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.zc":  addSrc,
		"bad.zc": "fn f(x: ) { }\n",
	})
	out, _, err := runCLI(t, "diag", "--format", "json", dir)
	require.ErrorIs(t, err, errDiagnostics)

	var payload struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, 1, payload.Count)
	assert.Equal(t, "SYN2005", payload.Diagnostics[0].Code)
}

func TestDiagSarif(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.zc": "fn f(x: ) { }\n"})
	out, _, err := runCLI(t, "diag", "--format", "sarif", filepath.Join(dir, "bad.zc"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, `"version": "2.1.0"`)
	assert.Contains(t, out, `"ruleId": "SYN2005"`)
}

func TestTokenizeJSON(t *testing.T) {
	dir := writeTree(t, map[string]string{"v.zc": "var x = 1;"})
	out, _, err := runCLI(t, "tokenize", "--format", "json", filepath.Join(dir, "v.zc"))
	require.NoError(t, err)

	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &toks))
	require.NotEmpty(t, toks)
	assert.Equal(t, "var", toks[0].Text)
	assert.Equal(t, "end of file", toks[len(toks)-1].Kind)
}

func TestTimingsGoToStderr(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	_, errOut, err := runCLI(t, "--timings", "parse", "--format", "sexp", filepath.Join(dir, "add.zc"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "parse")
}

func TestTraceToFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	tracePath := filepath.Join(t.TempDir(), "trace.ndjson")
	_, _, err := runCLI(t, "--trace", tracePath, "--trace-level", "debug", "parse", "--format", "sexp", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "parse-dir")
	assert.Contains(t, string(data), "zenc parse")
}

func TestTraceRingDumpedOnFailure(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.zc": "fn f(x: ) { }\n"})
	_, errOut, err := runCLI(t, "--trace-level", "detail", "--trace-mode", "ring", "parse", filepath.Join(dir, "bad.zc"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, errOut, "trace: last events")
	assert.Contains(t, errOut, "zenc parse")
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "version", "--format", "json", "--full")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "zenc", payload.Tool)
	assert.Equal(t, "unknown", payload.GitCommit)
	assert.Positive(t, payload.SchemaVersion)
}

func TestInvalidFlags(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	path := filepath.Join(dir, "add.zc")
	for _, args := range [][]string{
		{"parse", "--format", "json", path},
		{"parse", "--ui", "maybe", path},
		{"--color", "sometimes", "parse", path},
		{"diag", "--path-mode", "weird", path},
		{"tokenize", "--format", "xml", path},
	} {
		_, _, err := runCLI(t, args...)
		require.Error(t, err, "%v", args)
		assert.NotErrorIs(t, err, errDiagnostics)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := writeTree(t, map[string]string{"add.zc": addSrc})
	profDir := t.TempDir()
	cpu := filepath.Join(profDir, "cpu.pprof")
	mem := filepath.Join(profDir, "mem.pprof")
	_, _, err := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "parse", filepath.Join(dir, "add.zc"))
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}
