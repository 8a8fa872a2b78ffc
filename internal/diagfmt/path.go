package diagfmt

import (
	"path/filepath"

	"doccomment/internal/source"
)

// autoPathLimit is the longest absolute path PathModeAuto prints in full.
const autoPathLimit = 40

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if baseDir == "" {
			return f.Path
		}
		if rel, err := source.RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
			return source.BaseName(f.Path)
		}
		return f.Path
	}
}
