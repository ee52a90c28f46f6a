package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"zenc/internal/diag"
	"zenc/internal/diagfmt"
	"zenc/internal/driver"
	"zenc/internal/source"
	"zenc/internal/version"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.zc|directory>",
		Short: "Report syntax diagnostics for a Zen-C source file or directory",
		Long:  `Run the lexer and parser over Zen-C sources and report every diagnostic; the exit status is 1 when any error is found`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("recover", true, "keep parsing after the first syntax error")
	cmd.Flags().Bool("cache", false, "reuse cached diagnostics for unchanged files")
	cmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("watch", false, "re-run whenever a source file changes")
	return cmd
}

// runDiagnose parses the target and prints its diagnostics. Unlike parse it
// recovers by default, so a single run lists every syntax error.
func runDiagnose(cmd *cobra.Command, args []string) (err error) {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeStr)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	watch, err := flags.GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
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

	once := func() error {
		t, err := resolveTarget(args[0])
		if err != nil {
			return err
		}
		opts, err := driverOptions(cmd, g, t)
		if err != nil {
			return err
		}
		if !flags.Changed("recover") {
			opts.Recover = true
		}

		var (
			bag *diag.Bag
			fs  *source.FileSet
		)
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		switch {
		case !t.isDir:
			res, err := driver.Parse(cmd.Context(), t.path, opts)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
			bag, fs = res.Bag, res.FileSet
		case shouldUseTUI(mode, errOut, g.quiet) && format == "pretty":
			res, err := parseDirWithUI(cmd.Context(), errOut, "diag "+t.path, t.path, opts)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
			bag, fs = res.Bag(0), res.FileSet
		default:
			res, err := driver.ParseDir(cmd.Context(), t.path, opts)
			if err != nil {
				return fmt.Errorf("diagnosis failed: %w", err)
			}
			bag, fs = res.Bag(0), res.FileSet
		}
		bag.Sort()

		switch format {
		case "pretty":
			diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
				Color:     g.useColor(out),
				Context:   2,
				PathMode:  pathMode,
				ShowNotes: withNotes,
				Max:       g.maxDiagnostics,
			})
			if !g.quiet && bag.Len() > 0 {
				fmt.Fprintf(out, "%d diagnostic(s)\n", bag.Len())
			}
		case "short":
			if s := diag.FormatGoldenDiagnostics(bag.Items(), fs, withNotes); s != "" {
				fmt.Fprintln(out, s)
			}
		case "json":
			err = diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     withNotes,
				Max:              g.maxDiagnostics,
			})
		case "sarif":
			err = diagfmt.Sarif(out, bag, fs, diagfmt.SarifRunMeta{
				ToolName:       "zenc",
				ToolVersion:    version.Version,
				InvocationArgs: append([]string{"zenc", "diag"}, args...),
			})
		}
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}

		printTimings(errOut, opts.Timer)
		if bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}
	if !watch {
		return once()
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchSources(ctx, args[0], watchDebounce, cmd.ErrOrStderr(), once)
}
