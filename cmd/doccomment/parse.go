package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doccomment/internal/diagfmt"
	"doccomment/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|directory>",
	Short: "Print the parsed tree of every documentation comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	addScanFlags(parseCmd)
}

type fileCommentsJSON struct {
	Path     string                  `json:"path"`
	Comments []diagfmt.ASTNodeOutput `json:"comments"`
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := scan(cmd, args[0])
	if err != nil {
		return err
	}

	bag := driver.Diagnostics(res.results, res.opts.MaxDiagnostics)
	if bag.Len() > 0 && !quiet(cmd) {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, res.fs, diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stderr),
			PathMode: diagfmt.PathModeAuto,
		})
	}

	done := res.opts.Timer.Track("render")
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		files := make([]fileCommentsJSON, 0, len(res.results))
		for _, r := range res.results {
			entry := fileCommentsJSON{Path: r.Path, Comments: make([]diagfmt.ASTNodeOutput, 0, len(r.Comments))}
			for _, c := range r.Comments {
				entry.Comments = append(entry.Comments, diagfmt.CommentOutput(r.Builder, c.Root))
			}
			files = append(files, entry)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(files)
	default:
		err = printTrees(cmd, res)
	}
	done("")
	printTimings(cmd, res.opts.Timer)
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return exitError(1)
	}
	return nil
}

func printTrees(cmd *cobra.Command, res *scanResult) error {
	out := cmd.OutOrStdout()
	multi := len(res.results) > 1
	for _, r := range res.results {
		if len(r.Comments) == 0 {
			continue
		}
		if multi {
			if _, err := fmt.Fprintf(out, "== %s ==\n", r.Path); err != nil {
				return err
			}
		}
		for _, c := range r.Comments {
			if err := diagfmt.FormatCommentPretty(out, r.Builder, c.Root, res.fs); err != nil {
				return err
			}
		}
	}
	return nil
}
