package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"a = 1",
	"name = \"svc\", port = 8080, tags = {\"a\", \"b\"}",
	"{1, 2, 3}",
	"{a = {b = {c = null}}}",
	"{ {} }",
	"x = -0.5, y = 3.25, z = true",
	"# comment\nkey = \"multi\nline\\\" string\"\n",
	"{\"quoted key\" = 1, plain = 2,}",
	"a = 1 b = 2",
	"{1 2}",
	"12a",
	"truee",
	"{",
	"}",
	"\"open",
	"@x = &",
	"9223372036854775808",
	"a = 1\x00b = 2",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.crypt файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".crypt" {
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
