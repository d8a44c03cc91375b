// Package deps checks for the backend's installed-dependencies marker and
// runs the package manager when it is missing.
package deps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result describes a finished install command. A non-zero ExitCode is not
// an error by itself; call Err to map it.
type Result struct {
	Command  []string
	ExitCode int
	Duration time.Duration
}

// InstallError is the fatal outcome of a failed install.
type InstallError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command failed: %s (exit status %d)", e.Command, e.ExitCode)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Err returns an *InstallError for a non-zero exit, nil otherwise.
func (r Result) Err() error {
	if r.ExitCode == 0 {
		return nil
	}
	return &InstallError{Command: strings.Join(r.Command, " "), ExitCode: r.ExitCode}
}

// Installed reports whether the marker directory exists.
func Installed(marker string) (bool, error) {
	info, err := os.Stat(marker)
	if err == nil {
		return info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", marker, err)
}

// ParseCommand splits a configured command line on whitespace.
func ParseCommand(line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("install command is empty")
	}
	return fields, nil
}

// Runner starts a command and waits for it. It returns an error only when
// the process could not be run at all.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (int, error)
}

type Installer struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
	Runner  Runner
}

// Install runs the command synchronously. There is no timeout.
func (i *Installer) Install(ctx context.Context) (Result, error) {
	if len(i.Command) == 0 {
		return Result{}, errors.New("install command is empty")
	}
	runner := i.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	start := time.Now()
	code, err := runner.Run(ctx, i.Dir, i.Command, i.Stdout, i.Stderr)
	res := Result{Command: i.Command, ExitCode: code, Duration: time.Since(start)}
	if err != nil {
		return res, &InstallError{Command: strings.Join(i.Command, " "), ExitCode: code, Err: err}
	}
	return res, nil
}

// ExecRunner runs commands with os/exec, streaming output to the given
// writers. The child's stdin is the null device: the operator's input
// belongs to the prompter.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
