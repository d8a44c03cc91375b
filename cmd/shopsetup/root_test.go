package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steipete/shopsetup/internal/deps"
	"github.com/steipete/shopsetup/internal/prompt"
	"github.com/steipete/shopsetup/internal/setup"
)

type exitRunner struct {
	code  int
	calls int
}

func (r *exitRunner) Run(context.Context, string, []string, io.Writer, io.Writer) (int, error) {
	r.calls++
	return r.code, nil
}

// newTestRoot mirrors rootCmd's silencing so run sees the raw error.
func newTestRoot(runE func(cmd *cobra.Command, args []string) error, subs ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{
		Use:           "shopsetup",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}
	root.AddCommand(subs...)
	return root
}

func TestRun_InstallFailureExitsOneWithSingleDiagnostic(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	runner := &exitRunner{code: 1}

	root := newTestRoot(func(cmd *cobra.Command, args []string) error {
		b, err := setup.New(setup.Options{
			EnvPath:  filepath.Join(dir, ".env"),
			DepsPath: filepath.Join(dir, "node_modules"),
			Prompter: prompt.New(strings.NewReader("ABC123\n\n8080\ny\n"), &stdout),
			Installer: &deps.Installer{
				Command: []string{"npm", "install"},
				Stdout:  &stdout,
				Stderr:  &stderr,
				Runner:  runner,
			},
			Out: &stdout,
			Err: &stderr,
		})
		if err != nil {
			return err
		}
		return b.Run(cmd.Context())
	})
	root.SetArgs([]string{})

	code := run(context.Background(), root, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 1, strings.Count(stderr.String(), "❌"))
	assert.True(t, strings.HasPrefix(stderr.String(), "❌ Error installing dependencies: "))
	assert.NotContains(t, stdout.String(), "Would you like to populate")
	assert.NotContains(t, stdout.String(), "Setup completed")
}

func TestRun_SuccessExitsZero(t *testing.T) {
	var stderr bytes.Buffer
	root := newTestRoot(func(*cobra.Command, []string) error { return nil })
	root.SetArgs([]string{})

	assert.Equal(t, 0, run(context.Background(), root, &stderr))
	assert.Empty(t, stderr.String())
}

func TestRun_PlainErrorIsReportedOnce(t *testing.T) {
	var stderr bytes.Buffer
	root := newTestRoot(func(*cobra.Command, []string) error { return errors.New("stdin closed") })
	root.SetArgs([]string{})

	assert.Equal(t, 1, run(context.Background(), root, &stderr))
	assert.Equal(t, "❌ Setup failed: stdin closed\n", stderr.String())
}

func TestRun_SubcommandErrorUsesCommandName(t *testing.T) {
	var stderr bytes.Buffer
	seed := &cobra.Command{
		Use:  "seed",
		RunE: func(*cobra.Command, []string) error { return errors.New("database is locked") },
	}
	root := newTestRoot(func(*cobra.Command, []string) error { return nil }, seed)
	root.SetArgs([]string{"seed"})

	assert.Equal(t, 1, run(context.Background(), root, &stderr))
	assert.Equal(t, "❌ seed failed: database is locked\n", stderr.String())
}

func TestRun_PanicExitsOne(t *testing.T) {
	var stderr bytes.Buffer
	root := newTestRoot(func(*cobra.Command, []string) error {
		var m map[string]int
		m["x"] = 1
		return nil
	})
	root.SetArgs([]string{})

	assert.Equal(t, 1, run(context.Background(), root, &stderr))
	assert.True(t, strings.HasPrefix(stderr.String(), "❌ Setup failed: "))
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
}

func TestExitCode_FatalErrorIsNotPrintedAgain(t *testing.T) {
	var stderr bytes.Buffer
	root := newTestRoot(nil)
	err := &setup.FatalError{Stage: setup.StageInstall, Err: errors.New("exit status 1")}

	require.Equal(t, 1, exitCode(root, root, err, &stderr))
	assert.Empty(t, stderr.String())
	require.Equal(t, 0, exitCode(root, root, nil, &stderr))
}
