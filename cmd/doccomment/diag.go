package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"doccomment/internal/diag"
	"doccomment/internal/diagfmt"
	"doccomment/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory>",
	Short: "Report problems in documentation comments",
	Long:  `Parse every documentation comment under the target and print diagnostics. Exit status is 1 when errors were found, or warnings with --strict.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().Bool("strict", false, "treat warnings as errors for the exit status")
	diagCmd.Flags().Bool("no-info", false, "hide info diagnostics")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("preview", false, "preview fix results (implies --suggest)")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Int("context", 0, "source lines shown around each diagnostic (pretty)")
	addScanFlags(diagCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	noInfo, err := cmd.Flags().GetBool("no-info")
	if err != nil {
		return fmt.Errorf("failed to get no-info flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}

	res, err := scan(cmd, args[0])
	if err != nil {
		return err
	}

	// статус выхода считается по полному набору, лимит влияет только на вывод
	all := driver.Diagnostics(res.results, 0)
	var keep func(diag.Diagnostic) bool
	if noInfo {
		keep = func(d diag.Diagnostic) bool { return d.Severity != diag.SevInfo }
	}
	bag := driver.Limit(all, res.opts.MaxDiagnostics, keep)

	done := res.opts.Timer.Track("render")
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, bag, res.fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode(cmd),
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest || preview,
			IncludePreviews:  preview,
		})
	case "short":
		_, err = io.WriteString(out, diag.FormatGoldenDiagnostics(bag.Items(), res.fs, withNotes))
	default:
		diagfmt.Pretty(out, bag, res.fs, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stdout),
			Context:     contextLines,
			PathMode:    pathMode(cmd),
			ShowNotes:   withNotes,
			ShowFixes:   suggest || preview,
			ShowPreview: preview,
		})
		if !quiet(cmd) {
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s), %d comment(s), %s\n",
				len(res.results), driver.Comments(res.results), summarize(bag))
		}
	}
	done("")
	printTimings(cmd, res.opts.Timer)
	if err != nil {
		return err
	}

	if all.HasErrors() || (strict && all.HasWarnings()) {
		return exitError(1)
	}
	return nil
}

func summarize(bag *diag.Bag) string {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	s := fmt.Sprintf("%d error(s), %d warning(s), %d info", errs, warns, infos)
	if n := bag.Dropped(); n > 0 {
		s += fmt.Sprintf(", %d not shown", n)
	}
	return s
}
