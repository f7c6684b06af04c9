// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/planteuf/planteuf/cli"
	"github.com/planteuf/planteuf/devtools/internal"
	"github.com/planteuf/planteuf/settings"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Run(ctx, newApp())
	cancel()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode maps the run error to the process exit code. The -version and
// -help exits are silent: -version is a successful run, and the flag package
// already printed the usage for -help. Everything else is printed, and the
// exit code of a failed tool propagates unmodified.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil, errors.Is(err, cli.ErrExitVersion):
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 1
	}
	fmt.Fprintln(stderr, err)
	return internal.ExitCode(err)
}

type app struct {
	runner internal.Runner
}

func newApp() *app {
	return &app{runner: internal.ExecRunner{}}
}

// target is a named, invokable unit of the development workflow.
// Targets without a description are hidden from help.
type target struct {
	name string
	desc string
	run  func(a *app, ctx context.Context) error
}

func targets() []target {
	return []target{
		{"help", "Show this help.", (*app).help},
		{"install-hooks", "Install the Git pre-commit hook.", (*app).installHooks},
		{"uninstall-hooks", "Remove the Git pre-commit hook.", (*app).uninstallHooks},
		{"envvars", "Regenerate ENVVARS.md from the settings registry.", (*app).envvars},
		{"lint", "Run staticcheck.", (*app).lint},
		{"vet", "Run go vet.", (*app).vet},
		{"format", "Add license headers and format the source tree.", (*app).format},
		{"format-check", "Verify headers and formatting without rewriting.", (*app).formatCheck},
		{"check", "Verify that go.mod and go.sum are consistent.", (*app).check},
		{"test", "Run the test suite through docker compose.", (*app).test},

		// Aliases kept for muscle memory; not listed by help.
		{"typing", "", (*app).vet},
	}
}

func (a *app) Run(ctx context.Context) error {
	internal.EnsureRoot()
	env := cli.GetEnv(ctx)

	name := "help"
	if len(env.Args) > 0 {
		name = env.Args[0]
	}
	for _, t := range targets() {
		if t.name == name {
			return t.run(a, ctx)
		}
	}
	return fmt.Errorf("%w: unknown target %q", cli.ErrInvalidArgs, name)
}

func (a *app) help(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	fmt.Fprint(env.Stdout, "Available targets:\n\n")
	for _, t := range targets() {
		if t.desc == "" {
			continue
		}
		fmt.Fprintf(env.Stdout, "  %-16s %s\n", t.name, t.desc)
	}
	return nil
}

func (a *app) installHooks(ctx context.Context) error {
	if err := internal.InstallHook("."); err != nil {
		return err
	}
	cli.GetEnv(ctx).Logf("Installed .git/hooks/pre-commit.")
	return nil
}

func (a *app) uninstallHooks(ctx context.Context) error {
	if err := internal.UninstallHook("."); err != nil {
		return err
	}
	cli.GetEnv(ctx).Logf("Removed .git/hooks/pre-commit.")
	return nil
}

// envvarsFile is regenerated by the envvars target.
const envvarsFile = "ENVVARS.md"

func (a *app) envvars(ctx context.Context) error {
	if err := os.WriteFile(envvarsFile, envvarsDoc(), 0o644); err != nil {
		return err
	}
	cli.GetEnv(ctx).Logf("Wrote %s.", envvarsFile)
	return nil
}

func envvarsDoc() []byte {
	var b bytes.Buffer
	b.WriteString("# Environment variables\n\n")
	b.WriteString("<!-- Generated by 'go tool dev envvars'. Do not edit. -->\n\n")
	b.WriteString("| Name | Default | Description |\n")
	b.WriteString("|------|---------|-------------|\n")
	for _, v := range settings.Vars() {
		def := ""
		if v.Default != "" {
			def = fmt.Sprintf("`%s`", v.Default)
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", v.Name, def, v.Description)
	}
	return b.Bytes()
}

func (a *app) lint(ctx context.Context) error {
	return a.exec(ctx, "go", "tool", "staticcheck", "./...")
}

func (a *app) vet(ctx context.Context) error {
	return a.exec(ctx, "go", "vet", "./...")
}

func (a *app) format(ctx context.Context) error {
	if err := a.exec(ctx, "go", "tool", "addcopyright"); err != nil {
		return err
	}
	return a.exec(ctx, "gofmt", "-w", ".")
}

func (a *app) formatCheck(ctx context.Context) error {
	if err := a.exec(ctx, "go", "tool", "addcopyright", "-check"); err != nil {
		return err
	}
	env := cli.GetEnv(ctx)
	// gofmt -l exits zero even when files need formatting, so the check is
	// on its output instead.
	var out bytes.Buffer
	if err := a.runner.Run(ctx, &out, env.Stderr, "gofmt", "-l", "."); err != nil {
		return err
	}
	if unformatted := strings.TrimSpace(out.String()); unformatted != "" {
		return fmt.Errorf("files need formatting:\n%s", unformatted)
	}
	return nil
}

func (a *app) check(ctx context.Context) error {
	return a.exec(ctx, "go", "mod", "tidy", "-diff")
}

func (a *app) test(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if env.Getenv("CI_COMMIT_REF_SLUG") == "" {
		os.Setenv("CI_COMMIT_REF_SLUG", "latest")
	}

	composeFile := env.Getenv("COMPOSE_FILE")
	if composeFile == "" {
		composeFile = "compose.yaml"
	}

	compose, err := a.composeCommand(ctx)
	if err != nil {
		return err
	}
	args := append(compose[1:], "-f", composeFile, "run", "--rm", "tests")
	return a.exec(ctx, compose[0], args...)
}

// composeCommand resolves the compose invocation: COMPOSE_BINARY when set,
// otherwise "docker compose" if the plugin is available, falling back to the
// standalone docker-compose binary.
func (a *app) composeCommand(ctx context.Context) ([]string, error) {
	env := cli.GetEnv(ctx)

	if bin := env.Getenv("COMPOSE_BINARY"); bin != "" {
		if bin == "docker" {
			return []string{"docker", "compose"}, nil
		}
		return []string{bin}, nil
	}

	var discard bytes.Buffer
	if err := a.runner.Run(ctx, &discard, &discard, "docker", "compose", "version"); err == nil {
		return []string{"docker", "compose"}, nil
	}
	return []string{"docker-compose"}, nil
}

func (a *app) exec(ctx context.Context, name string, args ...string) error {
	env := cli.GetEnv(ctx)
	return a.runner.Run(ctx, env.Stdout, env.Stderr, name, args...)
}
