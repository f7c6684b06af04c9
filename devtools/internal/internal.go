// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains helpers shared by the devtools commands.
package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// EnsureRoot changes the working directory to the module root, identified by
// the presence of go.mod. It panics when no module root can be found, since
// every devtool is only meaningful inside the repository.
func EnsureRoot() {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			if err := os.Chdir(dir); err != nil {
				panic(err)
			}
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("not inside a Go module")
		}
		dir = parent
	}
}

// Runner executes external commands. Devtools go through it so tests can
// substitute a fake.
type Runner interface {
	// Run executes the command, streaming its output to stdout and stderr.
	// The returned error is the command's own failure, untranslated.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
}

// ExecRunner runs commands on the local host.
type ExecRunner struct {
	// Env, if non-nil, is the environment of started commands in
	// "key=value" form. The process environment is used otherwise.
	Env []string
}

// Run implements the [Runner] interface.
func (r ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if r.Env != nil {
		cmd.Env = r.Env
	}
	return cmd.Run()
}

// ExitCode extracts the child process exit code from err.
// It returns 0 for nil, and 1 for errors that carry no exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// HookScript is the Git pre-commit hook installed by the devtools.
const HookScript = `#!/bin/sh
echo "==> Running pre-commit checks..."
exec go tool pre-commit
`

func hookPath(dir string) string {
	return filepath.Join(dir, ".git", "hooks", "pre-commit")
}

// HookInstalled reports whether the pre-commit hook in dir is ours.
func HookInstalled(dir string) bool {
	data, err := os.ReadFile(hookPath(dir))
	return err == nil && bytes.Equal(data, []byte(HookScript))
}

// InstallHook writes the pre-commit hook script into the repository at dir.
// Installing over an already installed hook is a no-op.
func InstallHook(dir string) error {
	path := hookPath(dir)
	if data, err := os.ReadFile(path); err == nil {
		if bytes.Equal(data, []byte(HookScript)) {
			return nil
		}
		return fmt.Errorf("%s exists and is not managed by the devtools", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(HookScript), 0o755)
}

// UninstallHook removes the pre-commit hook from the repository at dir,
// restoring the pre-install state. Removing an absent hook is a no-op; a hook
// not managed by the devtools is left alone.
func UninstallHook(dir string) error {
	path := hookPath(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(data, []byte(HookScript)) {
		return fmt.Errorf("%s is not managed by the devtools, not removing", path)
	}
	return os.Remove(path)
}
