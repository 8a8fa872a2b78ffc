package driver

import (
	"doccomment/internal/commands"
	"doccomment/internal/config"
	"doccomment/internal/extract"
	"doccomment/internal/observ"
)

// Options control how files are scanned and parsed.
type Options struct {
	// Commands is shared read-only by all workers; nil means commands.Default().
	Commands *commands.Registry
	Mode     extract.Mode
	// Extensions filter directory walks; empty means config.DefaultExtensions.
	Extensions     []string
	MaxDiagnostics int
	// Jobs <= 0 means GOMAXPROCS.
	Jobs   int
	Cache  *DiskCache
	Events chan<- Event
	Timer  *observ.Timer
}

// OptionsFromConfig maps a loaded doccomment.toml onto driver options.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Commands:       reg,
		Mode:           cfg.Extract.Mode,
		Extensions:     cfg.Extract.Extensions,
		MaxDiagnostics: cfg.Diagnostics.Max,
	}, nil
}

func (o Options) registry() *commands.Registry {
	if o.Commands == nil {
		return commands.Default()
	}
	return o.Commands
}
