package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind selects how the lexer and parser treat a command.
type Kind uint8

const (
	// KindInline commands live inside paragraphs. Unknown names default here.
	KindInline Kind = iota
	// KindBlock commands close the current paragraph and own the next one.
	KindBlock
	// KindParam is a block command followed by an optional direction and a name.
	KindParam
	// KindVerbatimBlock swallows raw lines until its end command.
	KindVerbatimBlock
	// KindVerbatimLine swallows the rest of its line.
	KindVerbatimLine
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindBlock:
		return "block"
	case KindParam:
		return "param"
	case KindVerbatimBlock:
		return "verbatim-block"
	case KindVerbatimLine:
		return "verbatim-line"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Flag carries traits beyond the command kind.
type Flag uint8

const (
	FlagNone Flag = 0
	// FlagTakesDirection enables the [in]/[out]/[in,out] annotation on param commands.
	FlagTakesDirection Flag = 1 << iota
	// FlagBrief marks summary commands; a comment should carry at most one.
	FlagBrief
	// FlagReturns marks commands describing the return value.
	FlagReturns
)

// RenderKind hints how an inline command's argument is displayed.
type RenderKind uint8

const (
	RenderNormal RenderKind = iota
	RenderBold
	RenderMonospaced
	RenderEmphasized
)

func (r RenderKind) String() string {
	switch r {
	case RenderBold:
		return "bold"
	case RenderMonospaced:
		return "monospaced"
	case RenderEmphasized:
		return "emphasized"
	default:
		return "normal"
	}
}

// Traits describe a single command.
type Traits struct {
	Name    string
	Kind    Kind
	NumArgs int
	Flags   Flag
	// EndName is the closing command of a verbatim block, without marker.
	EndName string
	Render  RenderKind
}

func (t Traits) HasFlag(f Flag) bool   { return t.Flags&f != 0 }
func (t Traits) IsInline() bool        { return t.Kind == KindInline }
func (t Traits) IsParam() bool         { return t.Kind == KindParam }
func (t Traits) IsVerbatimBlock() bool { return t.Kind == KindVerbatimBlock }
func (t Traits) IsVerbatimLine() bool  { return t.Kind == KindVerbatimLine }

// IsBlock reports whether the command starts a new block; param commands are blocks too.
func (t Traits) IsBlock() bool {
	return t.Kind == KindBlock || t.Kind == KindParam
}

// TakesDirection reports whether a bracketed direction may follow the name.
func (t Traits) TakesDirection() bool {
	return t.Kind == KindParam && t.HasFlag(FlagTakesDirection)
}

// ErrInvalidTraits is returned by Register for malformed command descriptions.
var ErrInvalidTraits = errors.New("invalid command traits")

// Registry maps command names to traits. It is built once and then only read,
// so a single registry may be shared by parsers running in parallel.
type Registry struct {
	byName map[string]Traits
}

// New returns an empty registry: every command parses as a zero-arg inline command.
func New() *Registry {
	return &Registry{byName: make(map[string]Traits)}
}

// Default returns a fresh registry holding the built-in commands.
func Default() *Registry {
	r := &Registry{byName: make(map[string]Traits, len(builtins))}
	for _, t := range builtins {
		r.byName[t.Name] = t
	}
	return r
}

// Lookup returns the traits for name. Unknown names get inline zero-arg traits and false.
func (r *Registry) Lookup(name string) (Traits, bool) {
	if r != nil {
		if t, ok := r.byName[name]; ok {
			return t, true
		}
	}
	return Traits{Name: name, Kind: KindInline}, false
}

// VerbatimBlockFor returns the verbatim block that name closes, if any.
// A name closing several blocks reports the alphabetically first one.
func (r *Registry) VerbatimBlockFor(endName string) (Traits, bool) {
	if r == nil || endName == "" {
		return Traits{}, false
	}
	var (
		found Traits
		ok    bool
	)
	for _, t := range r.byName {
		if t.Kind != KindVerbatimBlock || t.EndName != endName {
			continue
		}
		if !ok || t.Name < found.Name {
			found, ok = t, true
		}
	}
	return found, ok
}

// Register adds or replaces a command.
func (r *Registry) Register(t Traits) error {
	if err := validate(t); err != nil {
		return err
	}
	r.byName[t.Name] = t
	return nil
}

// RegisterBlock is a shortcut for zero-arg block commands.
func (r *Registry) RegisterBlock(name string) error {
	return r.Register(Traits{Name: name, Kind: KindBlock})
}

// RegisterInline registers an inline command taking numArgs words.
func (r *Registry) RegisterInline(name string, numArgs int) error {
	return r.Register(Traits{Name: name, Kind: KindInline, NumArgs: numArgs})
}

// RegisterParam registers a param command; withDirection enables [in]/[out].
func (r *Registry) RegisterParam(name string, withDirection bool) error {
	t := Traits{Name: name, Kind: KindParam}
	if withDirection {
		t.Flags |= FlagTakesDirection
	}
	return r.Register(t)
}

// RegisterVerbatimBlock registers a begin/end pair.
func (r *Registry) RegisterVerbatimBlock(name, endName string) error {
	return r.Register(Traits{Name: name, Kind: KindVerbatimBlock, EndName: endName})
}

// RegisterVerbatimLine registers a command that takes the rest of its line.
func (r *Registry) RegisterVerbatimLine(name string) error {
	return r.Register(Traits{Name: name, Kind: KindVerbatimLine})
}

// Clone returns an independent copy, so callers can extend defaults safely.
func (r *Registry) Clone() *Registry {
	out := &Registry{byName: make(map[string]Traits, len(r.byName))}
	for k, v := range r.byName {
		out.byName[k] = v
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Specs returns all registered traits sorted by name.
func (r *Registry) Specs() []Traits {
	out := make([]Traits, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Traits) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Fingerprint is a stable digest of the registry contents; caches key on it.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	for _, t := range r.Specs() {
		fmt.Fprintf(h, "%s|%d|%d|%d|%s|%d\n", t.Name, t.Kind, t.NumArgs, t.Flags, t.EndName, t.Render)
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}

func validate(t Traits) error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTraits)
	}
	if !validName(t.Name) {
		return fmt.Errorf("%w: %q is not a command name", ErrInvalidTraits, t.Name)
	}
	if t.NumArgs < 0 || t.NumArgs > 1 {
		return fmt.Errorf("%w: %q: only 0 or 1 arguments are supported, got %d", ErrInvalidTraits, t.Name, t.NumArgs)
	}
	if t.Kind > KindVerbatimLine {
		return fmt.Errorf("%w: %q: unknown kind %d", ErrInvalidTraits, t.Name, t.Kind)
	}
	if t.Kind == KindVerbatimBlock && t.EndName == "" {
		return fmt.Errorf("%w: verbatim block %q needs an end command", ErrInvalidTraits, t.Name)
	}
	if t.Kind != KindVerbatimBlock && t.EndName != "" {
		return fmt.Errorf("%w: %q: end command only applies to verbatim blocks", ErrInvalidTraits, t.Name)
	}
	if t.HasFlag(FlagTakesDirection) && t.Kind != KindParam {
		return fmt.Errorf("%w: %q: only param commands take a direction", ErrInvalidTraits, t.Name)
	}
	return nil
}

// validName accepts what the lexer can produce as a command name.
func validName(name string) bool {
	if len(name) == 2 && name[0] == 'f' {
		switch name[1] {
		case '$', '[', ']', '{', '}':
			return true
		}
	}
	for i := 0; i < len(name); i++ {
		if !IsNameByte(name[i]) {
			return false
		}
	}
	return true
}

// IsNameByte matches the characters of an ordinary command name.
func IsNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
