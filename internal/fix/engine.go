package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"doccomment/internal/diag"
	"doccomment/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first always-safe fix, or the first fix at all.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix.
	ApplyModeAll
	// ApplyModeID applies the fix with ApplyOptions.TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes new contents without writing; virtual files are allowed.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	Path          string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one modified file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and writes the edited files. Edits are given in original offsets; each file
// is rewritten right to left so earlier offsets stay valid.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skips, changes := stage(fs, selected, opts.DryRun)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skips...)
	result.FileChanges = changes
	if len(applied) == 0 {
		return result, ErrNoFixes
	}
	if opts.DryRun {
		return result, nil
	}

	for _, ch := range changes {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(ch.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(ch.Path, ch.Content, mode); err != nil {
			return result, fmt.Errorf("write %s: %w", ch.Path, err)
		}
	}
	return result, nil
}

// QualifiedID is the run-unique identifier of the idx-th fix of d, as accepted
// by ApplyModeID.
func QualifiedID(d diag.Diagnostic, idx int) string {
	f := d.Fixes[idx]
	if f.ID == "" {
		return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
	}
	return fmt.Sprintf("%s@%d:%d", f.ID, d.Primary.File, d.Primary.Start)
}

// gatherCandidates flattens diagnostics into fixes. Fixes without edits and
// repeated ids are skipped; missing ids are derived from code and position.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]struct{})
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			f.ID = QualifiedID(d, idx)
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders by file and position, then by insertion order.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		switch {
		case pa.File != pb.File:
			return int(pa.File) - int(pb.File)
		case pa.Start != pb.Start:
			return int(pa.Start) - int(pb.Start)
		case pa.End != pb.End:
			return int(pa.End) - int(pb.End)
		case a.fix.IsPreferred != b.fix.IsPreferred:
			if a.fix.IsPreferred {
				return -1
			}
			return 1
		}
		return a.order - b.order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		var (
			selected []candidate
			skipped  []SkippedFix
		)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: "applicability is " + cand.fix.Applicability.String(),
			})
		}
		return selected, skipped
	default:
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}, nil
			}
		}
		return candidates[:1], nil
	}
}

// stage validates every selected fix against the original file contents and
// earlier accepted edits, then renders the new contents per file.
func stage(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange) {
	var (
		applied []AppliedFix
		skipped []SkippedFix
	)
	accepted := make(map[source.FileID][]diag.TextEdit)
	var order []source.FileID

	for _, cand := range selected {
		if reason := check(fs, cand.fix.Edits, accepted, dryRun); reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			if _, ok := accepted[e.Span.File]; !ok {
				order = append(order, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Path:          filePath(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}

	changes := make([]FileChange, 0, len(order))
	for _, id := range order {
		edits := accepted[id]
		changes = append(changes, FileChange{
			Path:      filePath(fs, id),
			EditCount: len(edits),
			Content:   onDisk(fs.Get(id), rewrite(fs.Get(id).Content, edits)),
		})
	}
	slices.SortFunc(changes, func(a, b FileChange) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	return applied, skipped, changes
}

// check returns a skip reason, or "" when all edits of a fix can be applied.
func check(fs *source.FileSet, edits []diag.TextEdit, accepted map[source.FileID][]diag.TextEdit, dryRun bool) string {
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return fmt.Sprintf("unknown file %d", e.Span.File)
		}
		f := fs.Get(e.Span.File)
		if f.Flags&source.FileVirtual != 0 && !dryRun {
			return "target file is virtual"
		}
		if e.Span.End < e.Span.Start || e.Span.End > f.Len() {
			return "edit span out of range"
		}
		if e.OldText != "" && string(f.Slice(e.Span)) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits in " + f.Path
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edits overlap. Spans are half-open; two
// insertions never conflict, an insertion conflicts with a span strictly
// containing its position.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End
	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart < aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// rewrite applies non-overlapping edits from the end of the buffer backwards.
// Insertions at the same offset keep their acceptance order.
func rewrite(content []byte, edits []diag.TextEdit) []byte {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.TextEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(b.Span.Start) - int(a.Span.Start)
		}
		return int(b.Span.End) - int(a.Span.End)
	})
	// для вставок в одну позицию идём в обратном порядке принятия
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Span.Start == sorted[i].Span.Start && sorted[j].Span.End == sorted[i].Span.End {
			j++
		}
		slices.Reverse(sorted[i:j])
		i = j
	}

	out := slices.Clone(content)
	for _, e := range sorted {
		out = slices.Concat(out[:e.Span.Start], []byte(e.NewText), out[e.Span.End:])
	}
	return out
}

// onDisk undoes the normalization FileSet.Load applied on read.
func onDisk(f *source.File, content []byte) []byte {
	if f.Flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&source.FileHadBOM != 0 {
		content = slices.Concat([]byte{0xEF, 0xBB, 0xBF}, content)
	}
	return content
}

func filePath(fs *source.FileSet, id source.FileID) string {
	if fs == nil || int(id) >= fs.Len() {
		return ""
	}
	return fs.Get(id).Path
}
