package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.zc", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n'
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
	if got := fs.Position(Span{File: id, Start: 4, End: 5}); got != "a.zc:2:2" {
		t.Errorf("Position() = %q", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.zc", []byte("first\nsecond\n")))
	if got := f.GetLine(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("line 9 = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("bom and crlf", func(t *testing.T) {
		out, flags, err := Normalize([]byte("\xEF\xBB\xBFa\r\nb"))
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != "a\nb" {
			t.Fatalf("content = %q", out)
		}
		if flags&FileHadBOM == 0 || flags&FileNormalizedCRLF == 0 {
			t.Fatalf("flags = %b", flags)
		}
	})
	t.Run("utf16 little endian", func(t *testing.T) {
		// "hi" в UTF-16LE с BOM
		out, flags, err := Normalize([]byte{0xFF, 0xFE, 'h', 0, 'i', 0})
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != "hi" {
			t.Fatalf("content = %q", out)
		}
		if flags&FileTranscoded == 0 {
			t.Fatalf("expected FileTranscoded, flags = %b", flags)
		}
	})
	t.Run("invalid utf8", func(t *testing.T) {
		if _, _, err := Normalize([]byte{'a', 0xC3}); err == nil {
			t.Fatal("expected error for truncated sequence")
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.zc")
	if err := os.WriteFile(path, []byte("var x = 1;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var x = 1;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if latest, ok := fs.GetLatest(path); !ok || latest != id {
		t.Fatalf("GetLatest = %v, %v", latest, ok)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.zc")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
