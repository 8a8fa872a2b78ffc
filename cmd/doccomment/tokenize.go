package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doccomment/internal/diagfmt"
	"doccomment/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the tokens of every documentation comment in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, _, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 && !quiet(cmd) {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 0,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		comments := make([]diagfmt.CommentTokens, 0, len(result.Comments))
		for _, c := range result.Comments {
			comments = append(comments, diagfmt.CommentTokens{
				Start:  c.Group.Span.Start,
				End:    c.Group.Span.End,
				Tokens: diagfmt.TokensOutput(c.Tokens, result.FileSet),
			})
		}
		err = diagfmt.FormatTokensJSON(out, comments)
	default:
		for i, c := range result.Comments {
			start, _ := result.FileSet.Resolve(c.Group.Span)
			if _, err = fmt.Fprintf(out, "comment #%d at %s:%d:%d\n", i+1, result.File.Path, start.Line, start.Col); err != nil {
				break
			}
			if err = diagfmt.FormatTokensPretty(out, c.Tokens, result.FileSet); err != nil {
				break
			}
		}
	}
	printTimings(cmd, opts.Timer)
	return err
}
