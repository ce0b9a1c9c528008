package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var languageSeeds = []string{
	"",
	"fn main { ret 0 }",
	"fn name(a: int, b: int): int { var c c = a + b ret c }",
	"result add(one: float, two: float): float { fn { return one + two } }",
	"fn add(one: float, two: float) => add { ret one }",
	"fn { //* a\n return one + two\n */\n}",
	"/* a /* b */ c */ fn f { g(x, y) }",
	"fn f { x = a ^ b }",
	"fn f { x = a + b + c }",
	"fn f(a) { }",
	"result r { fn { ret",
	"}}}} {{{{ fn ( ) : => /* */ //",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.ro file under the repository testdata tree.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ro" {
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

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
