package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"zenc/internal/project"
	"zenc/internal/testkit"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addParserCorpusSeeds(f)
	// хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("fn main() -> i32 { return 0; }\n"))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != project.SourceExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addParserCorpusSeeds reuses the inputs of the parser YAML corpus.
func addParserCorpusSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "parser", "testdata", "corpus", "*.yaml"))
	if err != nil {
		return
	}
	for _, path := range paths {
		doc, err := testkit.LoadCaseFile(path)
		if err != nil {
			continue
		}
		for _, c := range doc.Cases {
			f.Add(clampSeed([]byte(c.Input)))
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
