package testkit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Case is one entry of a YAML corpus file.
type Case struct {
	Name    string   `yaml:"name"`
	Mode    string   `yaml:"mode,omitempty"` // file (по умолчанию), expr, type
	Recover bool     `yaml:"recover,omitempty"`
	Input   string   `yaml:"input"`
	Want    string   `yaml:"want,omitempty"`
	Errors  []string `yaml:"errors,omitempty"`
}

// CaseFile is the document layout of a corpus file.
type CaseFile struct {
	Cases []Case `yaml:"cases"`
}

// Output is what a corpus test produced for one case.
type Output struct {
	Got    string
	Errors []string
}

// Corpus is a table-driven test whose table lives in YAML files.
type Corpus struct {
	// Root is the directory with *.yaml files, relative to the test file calling Run.
	Root string
	// Refresh names an environment variable holding a doublestar glob over
	// "<file>/<case name>"; matching cases are rewritten with the actual output.
	Refresh string
	// Test runs one case.
	Test func(t *testing.T, c Case) Output
}

// Run executes every case of every corpus file as a subtest.
func (c Corpus) Run(t *testing.T) {
	t.Helper()
	root := filepath.Join(callerDir(0), c.Root)

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("testkit: error while walking %q: %v", root, err)
	}
	slices.Sort(files)

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("testkit: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}

	for _, path := range files {
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		t.Run(rel, func(t *testing.T) {
			doc, err := LoadCaseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			changed := false
			for i := range doc.Cases {
				cs := &doc.Cases[i]
				t.Run(cs.Name, func(t *testing.T) {
					out := c.Test(t, *cs)
					if ok, _ := doublestar.Match(refresh, rel+"/"+cs.Name); refresh != "" && ok {
						cs.Want, cs.Errors = out.Got, out.Errors
						changed = true
						return
					}
					if msg := Compare(out.Got, cs.Want); msg != "" {
						t.Errorf("output mismatch:\n%s", msg)
					}
					if msg := Compare(strings.Join(out.Errors, "\n"), strings.Join(cs.Errors, "\n")); msg != "" {
						t.Errorf("errors mismatch:\n%s", msg)
					}
				})
			}
			if changed {
				if err := WriteCaseFile(path, doc); err != nil {
					t.Fatal(err)
				}
				t.Logf("testkit: refreshed %s", rel)
			}
		})
	}
}

// LoadCaseFile decodes one corpus file. Unknown fields are rejected.
func LoadCaseFile(path string) (*CaseFile, error) {
	// #nosec G304 -- path comes from the corpus walk
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc CaseFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	seen := make(map[string]bool, len(doc.Cases))
	for _, cs := range doc.Cases {
		if cs.Name == "" {
			return nil, fmt.Errorf("%s: case without name", path)
		}
		if seen[cs.Name] {
			return nil, fmt.Errorf("%s: duplicate case %q", path, cs.Name)
		}
		seen[cs.Name] = true
	}
	return &doc, nil
}

// WriteCaseFile rewrites a corpus file.
func WriteCaseFile(path string, doc *CaseFile) (err error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Compare returns "" when got equals want (ignoring a trailing newline) and a
// unified diff otherwise.
func Compare(got, want string) string {
	got = strings.TrimRight(got, "\n")
	want = strings.TrimRight(want, "\n")
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want + "\n"),
		B:        difflib.SplitLines(got + "\n"),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// ErrNoCaller is returned when the runtime cannot report the test file location.
var ErrNoCaller = errors.New("testkit: could not determine caller directory")

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic(ErrNoCaller)
	}
	return filepath.Dir(file)
}
