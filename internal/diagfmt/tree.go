package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"zenc/internal/ast"
	"zenc/internal/source"
)

// treeNode is one list of the canonical dump: a head atom plus inline atoms
// and nested lists.
type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTSexp writes the canonical S-expression dump of a file.
func FormatASTSexp(w io.Writer, b *ast.Builder, fileID ast.FileID) error {
	_, err := fmt.Fprintln(w, ast.Dump(b, fileID))
	return err
}

// FormatASTTree renders a parsed file as a box-drawn tree built from the
// canonical dump. Lists made only of atoms stay on one line.
func FormatASTTree(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	header := "File"
	if fs != nil && int(f.Span.File) < fs.Len() {
		header = formatPath(fs, f.Span.File, PathModeAuto)
	}
	fmt.Fprintf(w, "%s (%d items)\n", header, len(f.Items))
	for i, it := range f.Items {
		root, err := parseSexp(ast.DumpItem(b, it))
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		writeTree(w, root, "", i == len(f.Items)-1)
	}
	return nil
}

func writeTree(w io.Writer, n *treeNode, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label)
	for i, c := range n.children {
		writeTree(w, c, prefix+next, i == len(n.children)-1)
	}
}

// parseSexp reads one list from the dump. Quoted atoms may contain parens.
func parseSexp(s string) (*treeNode, error) {
	r := sexpReader{src: s}
	r.skipSpace()
	n, err := r.node()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if r.pos != len(r.src) {
		return nil, fmt.Errorf("trailing input at %d", r.pos)
	}
	return n, nil
}

type sexpReader struct {
	src string
	pos int
}

func (r *sexpReader) skipSpace() {
	for r.pos < len(r.src) && strings.IndexByte(" \t\n", r.src[r.pos]) >= 0 {
		r.pos++
	}
}

func (r *sexpReader) node() (*treeNode, error) {
	if r.pos >= len(r.src) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if r.src[r.pos] != '(' {
		return &treeNode{label: r.atom()}, nil
	}
	r.pos++
	var atoms []string
	var lists []*treeNode
	for {
		r.skipSpace()
		if r.pos >= len(r.src) {
			return nil, fmt.Errorf("unclosed list")
		}
		if r.src[r.pos] == ')' {
			r.pos++
			break
		}
		if r.src[r.pos] == '(' {
			child, err := r.node()
			if err != nil {
				return nil, err
			}
			lists = append(lists, child)
			continue
		}
		atom := r.atom()
		if len(lists) > 0 {
			// атом после вложенного списка сохраняет порядок как отдельный узел
			lists = append(lists, &treeNode{label: atom})
			continue
		}
		atoms = append(atoms, atom)
	}
	n := &treeNode{label: strings.Join(atoms, " "), children: lists}
	if len(lists) == 0 {
		n.label = "(" + n.label + ")"
	}
	return n, nil
}

func (r *sexpReader) atom() string {
	start := r.pos
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case c == '"' || c == '\'' || c == '`':
			r.skipQuoted(c)
			continue
		case c == '(' || c == ')' || c == ' ' || c == '\n' || c == '\t':
			return r.src[start:r.pos]
		}
		r.pos++
	}
	return r.src[start:r.pos]
}

func (r *sexpReader) skipQuoted(q byte) {
	r.pos++
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if c == '\\' && q != '`' {
			r.pos += 2
			continue
		}
		r.pos++
		if c == q {
			return
		}
	}
	if r.pos > len(r.src) {
		r.pos = len(r.src)
	}
}
