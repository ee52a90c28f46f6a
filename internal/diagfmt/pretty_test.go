package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/diag"
	"zenc/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("var x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.zc", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.zc:1:9"},
		{"Relative path", PathModeRelative, "src/test.zc:1:9"},
		{"Basename only", PathModeBasename, "test.zc:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			assert.Contains(t, output, tt.contains)
			assert.Contains(t, output, "ERROR")
			assert.Contains(t, output, "LEX1002")
			assert.Contains(t, output, "Unterminated string")
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.zc", "test.zc:1:9"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.zc", "file.zc:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("var x = 42\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar,
				source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()
			assert.True(t, strings.HasPrefix(output, tt.expected), output)
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.zc", []byte("fn main() {\n    var x = 1 +;\n}\n"))
	bag := diag.NewBag(4)
	// ";" в позиции 27
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 27, End: 28}, "expected expression"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "main.zc:2:16: ERROR SYN2006: expected expression\n" +
		"   2 |     var x = 1 +;\n" +
		"     |                ^\n"
	assert.Equal(t, want, buf.String())
}

func TestPrettyWideCharsShiftCaret(t *testing.T) {
	fs := source.NewFileSet()
	// "界" занимает две колонки терминала
	fileID := fs.AddVirtual("w.zc", []byte("\"界\" $\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 6, End: 7}, "unknown character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "     |      ^", lines[2])
}

func TestPrettyContextAndRangeUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.zc", []byte("a\nbcdef\ng\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 3, End: 6}, "unexpected"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	want := "c.zc:2:2: ERROR SYN2001: unexpected\n" +
		"   1 | a\n" +
		"   2 | bcdef\n" +
		"     |  ^~~\n" +
		"   3 | g\n"
	assert.Equal(t, want, buf.String())
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.zc", []byte("import core::util\n"))

	primary := source.Span{File: fileID, Start: 6, End: 10}
	d := diag.New(diag.SevWarning, diag.SynUnexpectedToken, primary, "unexpected token").
		WithNote(source.Span{File: fileID, Start: 11, End: 15}, "remove trailing identifier")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	assert.Contains(t, buf.String(), "note: test.zc:1:12: remove trailing identifier")

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	assert.NotContains(t, buf.String(), "note:")
}

func TestPrettyMaxReportsHidden(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.zc", []byte("x y z\n"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "unexpected"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Max: 1})
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "SYN2001"))
	assert.Contains(t, out, "2 more diagnostic(s) not shown")
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.zc", []byte("$\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "unknown"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}
