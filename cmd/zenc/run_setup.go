package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zenc/internal/prof"
)

// startRun enables tracing and profiling for a command. The returned
// function must be called exactly once with the command outcome.
func startRun(cmd *cobra.Command) (func(failed bool), error) {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUPath, err = pf.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemPath, err = pf.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.TracePath, err = pf.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	session, err := prof.Start(cfg)
	if err != nil {
		stopTrace(true)
		return nil, err
	}
	return func(failed bool) {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
		stopTrace(failed)
	}, nil
}
