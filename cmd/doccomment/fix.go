package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"doccomment/internal/diag"
	"doccomment/internal/driver"
	"doccomment/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply available fixes to documentation comments",
	Long:  "Parse comments, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Bool("list", false, "list available fixes and exit")
	addScanFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	res, err := scan(cmd, args[0])
	if err != nil {
		return err
	}
	diagnostics := driver.Diagnostics(res.results, 0).Items()

	out := cmd.OutOrStdout()
	if list {
		return listFixes(out, res, diagnostics)
	}

	done := res.opts.Timer.Track("fix")
	applied, applyErr := fix.Apply(res.fs, diagnostics, fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	done("")
	printTimings(cmd, res.opts.Timer)
	return handleApplyResult(out, applied, applyErr, dryRun)
}

func listFixes(out io.Writer, res *scanResult, diagnostics []diag.Diagnostic) error {
	n := 0
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			file := res.fs.Get(d.Primary.File)
			start, _ := res.fs.Resolve(d.Primary)
			if _, err := fmt.Fprintf(out, "%s:%d:%d: %s [%s] %s\n",
				file.Path, start.Line, start.Col, f.Title, fix.QualifiedID(d, i), f.Applicability); err != nil {
				return err
			}
			n++
		}
	}
	if n == 0 {
		_, err := fmt.Fprintln(out, "No fixes available.")
		return err
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			fmt.Fprintln(out, "Files that would change:")
		} else {
			fmt.Fprintln(out, "Updated files:")
		}
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			label := skip.Title
			if label == "" {
				label = skip.ID
			}
			fmt.Fprintf(out, "  %s: %s\n", label, skip.Reason)
		}
	}

	if errors.Is(applyErr, fix.ErrNoFixes) {
		_, err := fmt.Fprintln(out, "No fixes applied.")
		return err
	}
	return applyErr
}
