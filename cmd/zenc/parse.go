package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zenc/internal/diagfmt"
	"zenc/internal/driver"
	"zenc/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.zc|directory>",
		Short: "Parse a Zen-C source file or directory and print the AST",
		Long:  `Parse analyzes a Zen-C source file or every selected *.zc file in a directory and prints their syntax trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|sexp)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("recover", false, "keep parsing after the first syntax error")
	cmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	cmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "sexp" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
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

	if !t.isDir {
		res, err := driver.Parse(cmd.Context(), t.path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		diagfmt.Pretty(errOut, res.Bag, res.FileSet, prettyOpts)
		if err := printAST(out, res.FileSet, res.FileResult, format); err != nil {
			return err
		}
		printTimings(errOut, opts.Timer)
		if res.Bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	var res *driver.DirResult
	if shouldUseTUI(mode, out, g.quiet) {
		res, err = parseDirWithUI(cmd.Context(), out, "parse "+t.path, t.path, opts)
	} else {
		res, err = driver.ParseDir(cmd.Context(), t.path, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	diagfmt.Pretty(errOut, res.Bag(g.maxDiagnostics), res.FileSet, prettyOpts)
	for idx, fr := range res.Files {
		if !g.quiet {
			if idx > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", res.FileSet.Get(fr.FileID).FormatPath(source.PathRelative, res.FileSet.BaseDir()))
		}
		if err := printAST(out, res.FileSet, fr, format); err != nil {
			return err
		}
	}
	printTimings(errOut, opts.Timer)
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printAST(w io.Writer, fs *source.FileSet, fr *driver.FileResult, format string) error {
	switch {
	case fr.Cached:
		_, err := fmt.Fprintf(w, "(cached: %d items)\n", fr.Items)
		return err
	case fr.Builder == nil || !fr.AST.IsValid():
		return nil
	case format == "sexp":
		return diagfmt.FormatASTSexp(w, fr.Builder, fr.AST)
	default:
		return diagfmt.FormatASTTree(w, fr.Builder, fr.AST, fs)
	}
}
