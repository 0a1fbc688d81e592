// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const aliceScript = `character "Alice" {
  plan {
    rule "default" priority 1 { task "Reading"; }
  }
}
`

const bobScript = `character "Bob" {
  plan {
    rule "default" priority 1 { task "Cooking"; }
  }
}
`

func TestExecuteRunsAFullSimulationSuccessfully(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := writeScript(t, "alice.lbp", aliceScript)
	b := writeScript(t, "bob.lbp", bobScript)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{a, b, "--days", "1", "--log-format", "text"})
	err := cmd.Execute()

	require.NoError(t, err)
}

func TestExecuteViaExplicitRunSubcommand(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := writeScript(t, "alice.lbp", aliceScript)
	b := writeScript(t, "bob.lbp", bobScript)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"run", a, b, "--days", "1"})
	err := cmd.Execute()

	require.NoError(t, err)
}

func TestExecuteWrongArgCountIsUsageError(t *testing.T) {
	defer goleak.VerifyNone(t)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"only-one-arg"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

func TestExecuteMissingCharacterFileIsFatalError(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := writeScript(t, "alice.lbp", aliceScript)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{a, "/nonexistent/path/bob.lbp", "--days", "1"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 1, exitCodeFor(err))
}

func TestExecuteDuplicateCharacterNamesIsUsageError(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := writeScript(t, "alice.lbp", aliceScript)
	aAgain := writeScript(t, "alice2.lbp", aliceScript)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{a, aAgain, "--days", "1"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

func TestExecuteInvalidLogFormatIsUsageError(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := writeScript(t, "alice.lbp", aliceScript)
	b := writeScript(t, "bob.lbp", bobScript)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{a, b, "--log-format", "xml"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}
