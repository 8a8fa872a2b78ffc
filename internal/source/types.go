package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (tests, stdin, fuzzers).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- bounded by FileSet.Add
}

// Slice returns the bytes covered by span, clamped to the file.
func (f *File) Slice(span Span) []byte {
	end := min(span.End, f.Len())
	start := min(span.Start, end)
	return f.Content[start:end]
}

// FullSpan returns a span covering the whole file.
func (f *File) FullSpan() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}
