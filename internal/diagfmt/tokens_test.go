package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/lexer"
	"zenc/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.zc", []byte("var x; // c\n"))
	toks, errs := lexer.Tokenize(fs.Get(id), lexer.Options{})
	require.Empty(t, errs)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, toks, fs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "var")
	assert.Contains(t, lines[1], `"x" at 1:5-1:6`)
	assert.Contains(t, lines[3], "end of file")
	assert.Contains(t, lines[3], "leading:")

	buf.Reset()
	require.NoError(t, FormatTokensJSON(&buf, toks, fs))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 4)
	assert.Equal(t, "identifier", out[1].Kind)
	assert.Equal(t, uint32(4), out[1].Start)
	assert.Equal(t, uint32(5), out[1].Col)
}
