// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planteuf/planteuf/cli"
	"github.com/planteuf/planteuf/devtools/internal"
	"github.com/planteuf/planteuf/testutil"
)

func TestProgressMessage(t *testing.T) {
	command := []string{"go", "test", "./..."}

	cases := map[string]struct {
		width int
		want  string
	}{
		"no terminal": {
			width: 0,
			want:  "[2/10] Running check go test ./...",
		},
		"message fits": {
			width: 80,
			want:  "[2/10] Running check go test ./...",
		},
		"shortened with ellipsis": {
			width: 28,
			want:  "[2/10] Running check go t...",
		},
		"too narrow for ellipsis": {
			width: 23,
			want:  "[2/10] Running check go",
		},
		"narrower than the prefix": {
			width: 10,
			want:  "[2/10] Running check ",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := progressMessage(2, 10, command, tc.width)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

// setupRepo creates a throwaway module root with a pre-commit config and
// makes it the working directory.
func setupRepo(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(dir, configFile), []byte(config), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadChecks(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		setupRepo(t, `-- pre-commit.json --
[
  {"run": ["go", "vet", "./..."]},
  {"run": ["go", "test", "./..."], "only_in_ci": true}
]
`)
		checks, err := loadChecks()
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, checks, []check{
			{Run: []string{"go", "vet", "./..."}},
			{Run: []string{"go", "test", "./..."}, OnlyInCI: true},
		})
	})

	t.Run("missing config file", func(t *testing.T) {
		setupRepo(t, "")
		if _, err := loadChecks(); err == nil {
			t.Fatal("want error for missing config file")
		}
	})

	t.Run("no checks defined", func(t *testing.T) {
		setupRepo(t, "-- copyright.json --\n{}\n")
		_, err := loadChecks()
		if err == nil || !strings.Contains(err.Error(), "no pre-commit checks") {
			t.Fatalf("want missing checks error, got %v", err)
		}
	})

	t.Run("malformed checks", func(t *testing.T) {
		setupRepo(t, "-- pre-commit.json --\nnot json\n")
		if _, err := loadChecks(); err == nil {
			t.Fatal("want error for malformed pre-commit.json")
		}
	})

	t.Run("empty run command", func(t *testing.T) {
		setupRepo(t, "-- pre-commit.json --\n[{\"run\": []}]\n")
		_, err := loadChecks()
		if err == nil || !strings.Contains(err.Error(), "empty run command") {
			t.Fatalf("want empty run command error, got %v", err)
		}
	})
}

func TestRealMain(t *testing.T) {
	config := `-- pre-commit.json --
[
  {"run": ["true"]},
  {"run": ["echo", "ci only"], "only_in_ci": true},
  {"run": ["echo", "local only"], "skip_in_ci": true}
]
`

	t.Run("local run installs the hook", func(t *testing.T) {
		dir := setupRepo(t, config)

		var out bytes.Buffer
		e := &cli.Env{
			Stdin:  strings.NewReader(""),
			Stdout: &out,
			Stderr: &out,
			Getenv: func(string) string { return "" },
		}
		err := cli.Run(cli.WithEnv(context.Background(), e), cli.AppFunc(realMain))
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, internal.HookInstalled(dir), true)

		// The only_in_ci check stays out of a local run.
		stdout := out.String()
		if !strings.Contains(stdout, "All 2 checks passed.") {
			t.Fatalf("want 2 checks to run locally, got: %q", stdout)
		}
	})

	t.Run("CI run skips hook install and filters checks", func(t *testing.T) {
		dir := setupRepo(t, config)

		var out bytes.Buffer
		e := &cli.Env{
			Stdin:  strings.NewReader(""),
			Stdout: &out,
			Stderr: &out,
			Getenv: func(s string) string {
				if s == "CI" {
					return "true"
				}
				return ""
			},
		}
		err := cli.Run(cli.WithEnv(context.Background(), e), cli.AppFunc(realMain))
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, internal.HookInstalled(dir), false)

		stdout := out.String()
		if !strings.Contains(stdout, "All 2 checks passed.") {
			t.Fatalf("want 2 checks to run in CI, got: %q", stdout)
		}
		if strings.Contains(stdout, "local only") {
			t.Fatalf("skip_in_ci check ran in CI: %q", stdout)
		}
	})

	t.Run("failing check reports its output", func(t *testing.T) {
		setupRepo(t, `-- pre-commit.json --
[{"run": ["sh", "-c", "echo broken; exit 1"]}]
`)

		var out bytes.Buffer
		e := &cli.Env{
			Stdin:  strings.NewReader(""),
			Stdout: &out,
			Stderr: &out,
			Getenv: func(string) string { return "" },
		}
		err := cli.Run(cli.WithEnv(context.Background(), e), cli.AppFunc(realMain))
		if err == nil {
			t.Fatal("want failing check to error")
		}
		if !strings.Contains(err.Error(), "failed") || !strings.Contains(err.Error(), "broken") {
			t.Fatalf("error must carry the check output, got: %v", err)
		}
	})
}
