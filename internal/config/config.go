// Package config loads doccomment.toml: which comments to extract, extra
// commands for the registry and diagnostic limits.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"doccomment/internal/commands"
	"doccomment/internal/extract"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the decoded and validated doccomment.toml.
type Config struct {
	// Path is empty for built-in defaults.
	Path        string
	Extract     Extract
	Commands    Commands
	Diagnostics Diagnostics
}

type Extract struct {
	Mode       extract.Mode
	Extensions []string // lower-case, with leading dot
}

// Commands are registered on top of commands.Default().
type Commands struct {
	Block         []string
	Inline        []string // one-argument inline commands
	Param         []string
	VerbatimLine  []string
	VerbatimBlock []VerbatimBlock
}

type VerbatimBlock struct {
	Name string `toml:"name"`
	End  string `toml:"end"`
}

type Diagnostics struct {
	// Max caps diagnostics per run; 0 means unlimited.
	Max int
}

// DefaultExtensions are scanned when a directory is given.
var DefaultExtensions = []string{".c", ".h", ".cc", ".cpp", ".hpp", ".go", ".sg"}

func Default() Config {
	return Config{
		Extract: Extract{
			Mode:       extract.ModeDoc,
			Extensions: slices.Clone(DefaultExtensions),
		},
		Diagnostics: Diagnostics{Max: 100},
	}
}

// file mirrors the TOML layout; decoded values are checked before use.
type file struct {
	Extract struct {
		Mode       string   `toml:"mode"`
		Extensions []string `toml:"extensions"`
	} `toml:"extract"`
	Commands struct {
		Block         []string        `toml:"block"`
		Inline        []string        `toml:"inline"`
		Param         []string        `toml:"param"`
		VerbatimLine  []string        `toml:"verbatim_line"`
		VerbatimBlock []VerbatimBlock `toml:"verbatim_block"`
	} `toml:"commands"`
	Diagnostics struct {
		Max int `toml:"max"`
	} `toml:"diagnostics"`
}

// Load decodes path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	var raw file
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys: %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	invalid := func(key, format string, args ...any) error {
		return fmt.Errorf("%s: %w: %s: %s", path, ErrInvalidConfig, key, fmt.Sprintf(format, args...))
	}

	if meta.IsDefined("extract", "mode") {
		mode, err := extract.ParseMode(raw.Extract.Mode)
		if err != nil {
			return Config{}, invalid("extract.mode", "%v", err)
		}
		cfg.Extract.Mode = mode
	}
	if meta.IsDefined("extract", "extensions") {
		exts := make([]string, 0, len(raw.Extract.Extensions))
		for _, e := range raw.Extract.Extensions {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" || e == "." {
				return Config{}, invalid("extract.extensions", "empty extension")
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			if !slices.Contains(exts, e) {
				exts = append(exts, e)
			}
		}
		cfg.Extract.Extensions = exts
	}

	cfg.Commands = Commands{
		Block:         raw.Commands.Block,
		Inline:        raw.Commands.Inline,
		Param:         raw.Commands.Param,
		VerbatimLine:  raw.Commands.VerbatimLine,
		VerbatimBlock: raw.Commands.VerbatimBlock,
	}
	if _, err := cfg.Commands.Apply(commands.Default()); err != nil {
		return Config{}, invalid("commands", "%v", err)
	}

	if meta.IsDefined("diagnostics", "max") {
		if raw.Diagnostics.Max < 0 {
			return Config{}, invalid("diagnostics.max", "must be >= 0, got %d", raw.Diagnostics.Max)
		}
		cfg.Diagnostics.Max = raw.Diagnostics.Max
	}
	return cfg, nil
}

// Apply registers the configured commands on a clone of base.
func (c Commands) Apply(base *commands.Registry) (*commands.Registry, error) {
	reg := base.Clone()
	var errs []error
	for _, name := range c.Block {
		errs = append(errs, reg.RegisterBlock(name))
	}
	for _, name := range c.Inline {
		errs = append(errs, reg.RegisterInline(name, 1))
	}
	for _, name := range c.Param {
		errs = append(errs, reg.RegisterParam(name, false))
	}
	for _, name := range c.VerbatimLine {
		errs = append(errs, reg.RegisterVerbatimLine(name))
	}
	for _, vb := range c.VerbatimBlock {
		errs = append(errs, reg.RegisterVerbatimBlock(vb.Name, vb.End))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Registry builds the command registry described by the config.
func (c Config) Registry() (*commands.Registry, error) {
	return c.Commands.Apply(commands.Default())
}

// Empty reports whether no extra commands are configured.
func (c Commands) Empty() bool {
	return len(c.Block)+len(c.Inline)+len(c.Param)+len(c.VerbatimLine)+len(c.VerbatimBlock) == 0
}

// HasExtension reports whether path should be scanned in directory mode.
func (e Extract) HasExtension(path string) bool {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], `/\`) {
		return false
	}
	return slices.Contains(e.Extensions, strings.ToLower(path[i:]))
}
