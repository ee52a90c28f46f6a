package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zenc/internal/diag"
	"zenc/internal/diagfmt"
	"zenc/internal/driver"
	"zenc/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.zc|directory>",
		Short: "Tokenize a Zen-C source file or directory",
		Long:  `Tokenize breaks Zen-C sources down into their tokens, including leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) (err error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	t, err := resolveTarget(args[0])
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, g, t)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	prettyOpts := diagfmt.PrettyOpts{Color: g.useColor(errOut), Context: 2}

	var bag *diag.Bag
	if !t.isDir {
		res, err := driver.Tokenize(cmd.Context(), t.path, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		bag = res.Bag
		diagfmt.Pretty(errOut, bag, res.FileSet, prettyOpts)
		if format == "json" {
			err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
		} else {
			err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
		}
		if err != nil {
			return err
		}
	} else {
		res, err := driver.TokenizeDir(cmd.Context(), t.path, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		bag = res.Bag(g.maxDiagnostics)
		diagfmt.Pretty(errOut, bag, res.FileSet, prettyOpts)
		for i, fr := range res.Files {
			if !g.quiet {
				fmt.Fprintf(out, "== %s ==\n", res.FileSet.Get(fr.FileID).FormatPath(source.PathRelative, res.FileSet.BaseDir()))
			}
			if format == "json" {
				err = diagfmt.FormatTokensJSON(out, res.Tokens[i], res.FileSet)
			} else {
				err = diagfmt.FormatTokensPretty(out, res.Tokens[i], res.FileSet)
			}
			if err != nil {
				return err
			}
		}
	}

	printTimings(errOut, opts.Timer)
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
