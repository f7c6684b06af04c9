// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/planteuf/planteuf/testutil"
)

func TestHookRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// Installing then uninstalling returns the repository to its
	// pre-install state.
	testutil.AssertEqual(t, HookInstalled(dir), false)

	if err := InstallHook(dir); err != nil {
		t.Fatalf("InstallHook: %v", err)
	}
	testutil.AssertEqual(t, HookInstalled(dir), true)

	data, err := os.ReadFile(filepath.Join(dir, ".git", "hooks", "pre-commit"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	testutil.AssertEqual(t, string(data), HookScript)

	// Installing twice is a no-op.
	if err := InstallHook(dir); err != nil {
		t.Fatalf("InstallHook (second): %v", err)
	}

	if err := UninstallHook(dir); err != nil {
		t.Fatalf("UninstallHook: %v", err)
	}
	testutil.AssertEqual(t, HookInstalled(dir), false)

	// Uninstalling an absent hook is a no-op.
	if err := UninstallHook(dir); err != nil {
		t.Fatalf("UninstallHook (absent): %v", err)
	}
}

func TestHookForeignScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".git", "hooks", "pre-commit")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	// A hook we did not write is left alone.
	if err := InstallHook(dir); err == nil {
		t.Fatal("InstallHook must refuse to overwrite a foreign hook")
	}
	if err := UninstallHook(dir); err == nil {
		t.Fatal("UninstallHook must refuse to remove a foreign hook")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("foreign hook went missing: %v", err)
	}
}

func TestExecRunner(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := ExecRunner{}.Run(context.Background(), &stdout, &stderr, "sh", "-c", "echo out; echo err >&2")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, stdout.String(), "out\n")
	testutil.AssertEqual(t, stderr.String(), "err\n")
}

func TestExitCode(t *testing.T) {
	testutil.AssertEqual(t, ExitCode(nil), 0)
	testutil.AssertEqual(t, ExitCode(errors.New("plain")), 1)

	var stdout, stderr bytes.Buffer
	err := ExecRunner{}.Run(context.Background(), &stdout, &stderr, "sh", "-c", "exit 42")
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("want *exec.ExitError, got %v", err)
	}
	testutil.AssertEqual(t, ExitCode(err), 42)
}

func TestEnsureRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	EnsureRoot()

	got, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	gotEval, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, gotEval, want)
}
