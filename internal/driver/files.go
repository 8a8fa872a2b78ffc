package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doccomment/internal/config"
)

// ListFiles returns root itself when it is a file, otherwise every file under
// root whose extension is in exts, sorted. Hidden directories are skipped.
func ListFiles(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	if len(exts) == 0 {
		exts = config.DefaultExtensions
	}
	filter := config.Extract{Extensions: exts}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filter.HasExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
