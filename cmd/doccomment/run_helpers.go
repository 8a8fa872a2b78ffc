package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doccomment/internal/diagfmt"
	"doccomment/internal/driver"
	"doccomment/internal/source"
	"doccomment/internal/trace"
)

// addScanFlags registers the flags shared by commands that parse many files.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse parse results from the disk cache ($XDG_CACHE_HOME/doccomment)")
	cmd.Flags().Bool("cache-clear", false, "drop the disk cache before running")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

type scanResult struct {
	fs      *source.FileSet
	results []driver.FileResult
	opts    driver.Options
}

// scan parses target (file or directory) according to the shared flags.
func scan(cmd *cobra.Command, target string) (*scanResult, error) {
	opts, _, err := driverOptions(cmd)
	if err != nil {
		return nil, err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.Jobs = jobs

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	if useCache || clearCache {
		cache, cacheErr := driver.OpenDiskCache("doccomment")
		if cacheErr != nil {
			return nil, fmt.Errorf("open cache: %w", cacheErr)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	files, err := driver.ListFiles(target, opts.Extensions)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.BeginCtx(cmd.Context(), trace.ScopeDriver, cmd.Name())
	defer span.End("")

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(mode, len(files)) && !quiet(cmd) {
		fs, results, err = parseWithUI(ctx, cmd.Name()+" "+target, files, opts)
	} else {
		fs, results, err = driver.ParseFiles(ctx, files, opts)
	}
	if err != nil {
		return nil, err
	}
	return &scanResult{fs: fs, results: results, opts: opts}, nil
}

// pathMode maps --fullpath onto diagfmt path rendering.
func pathMode(cmd *cobra.Command) diagfmt.PathMode {
	if full, _ := cmd.Flags().GetBool("fullpath"); full {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}
