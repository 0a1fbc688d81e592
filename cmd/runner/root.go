// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shelterdsl/runner/pkg/errutil"
)

// Execute builds and runs the root command, returning the process exit
// code: 0 on success, 1 on a fatal runtime error, 2 on a usage error.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

// NewRootCmd creates the root command. Bare invocation (`runner a.lbp
// b.lbp ...`) runs the same logic as the `run` subcommand, per spec §6.
func NewRootCmd() *cobra.Command {
	runCmd := NewRunCmd()

	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Run a two-character shelter simulation",
		Long: `runner simulates two characters sharing a fallout shelter,
tick by tick, driven by their character scripts and a shared world and
task catalog.`,
		Args:          runCmd.Args,
		RunE:          runCmd.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addRunFlags(cmd)
	cmd.AddCommand(runCmd)

	return cmd
}

// exitCodeFor maps a returned error to the documented process exit code.
func exitCodeFor(err error) int {
	logger := slog.Default()
	errutil.LogError(logger, "run failed", err)

	if oopsErr, ok := oops.AsOops(err); ok {
		if code := oopsErr.Code(); code != nil && fmt.Sprintf("%v", code) == "usage_error" {
			return 2
		}
	}
	return 1
}

func init() {
	// A bare invocation with no flags still needs stderr logging before
	// config.Load runs, in case argument parsing itself fails.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}
