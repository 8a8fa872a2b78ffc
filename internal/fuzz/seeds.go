package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"//",
	"/**/",
	"/***/",
	"/// \\brief Aaa\n/// \\param [in,out] x Bbb\n",
	"/** \\param[inout] p\n *  \\returns ok */",
	"// \\verbatim\n// raw \\b\n// \\endverbatim",
	"// \\code unterminated",
	"// \\fn void f(int)\n",
	"// <a href=\"x\" title='y' z>q</a> <br/> </br>",
	"// <a href=\"unterminated",
	"// <",
	"// </",
	"// \\",
	"// @brief @c word @em",
	"// \\f$ x^2 \\f$ \\f[ y \\f]",
	"// \\endverbatim \\endcode",
	"\ufeff/// \\brief bom\r\n/// crlf\r\n",
	"/* *\n * * \\param\n */",
	"//\t\\b\t\n//\n//\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники с комментариями
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".h", ".c", ".cc", ".cpp", ".hpp":
		default:
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

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
