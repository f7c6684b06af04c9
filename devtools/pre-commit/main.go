// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/tools/txtar"

	"github.com/planteuf/planteuf/cli"
	"github.com/planteuf/planteuf/devtools/internal"
)

const configFile = ".devtools.txtar"

type check struct {
	Run      []string `json:"run"`
	SkipInCI bool     `json:"skip_in_ci"`
	OnlyInCI bool     `json:"only_in_ci"`
}

func loadChecks() ([]check, error) {
	ar, err := txtar.ParseFile(configFile)
	if err != nil {
		return nil, err
	}
	var checks []check
	for _, f := range ar.Files {
		if f.Name == "pre-commit.json" {
			if err := json.Unmarshal(f.Data, &checks); err != nil {
				return nil, fmt.Errorf("%s: %w", configFile, err)
			}
		}
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("%s contains no pre-commit checks", configFile)
	}
	for i, c := range checks {
		if len(c.Run) == 0 {
			return nil, fmt.Errorf("%s: check %d has an empty run command", configFile, i+1)
		}
	}
	return checks, nil
}

func main() { cli.Main(cli.AppFunc(realMain)) }

func realMain(ctx context.Context) error {
	internal.EnsureRoot()
	env := cli.GetEnv(ctx)

	checks, err := loadChecks()
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"

	if !isCI {
		if err := internal.InstallHook("."); err != nil {
			return err
		}
	}

	var runnable []check
	for _, c := range checks {
		if isCI && c.SkipInCI {
			continue
		}
		if !isCI && c.OnlyInCI {
			continue
		}
		runnable = append(runnable, c)
	}

	width := terminalWidth(env)
	for i, c := range runnable {
		fmt.Fprintln(env.Stdout, progressMessage(i+1, len(runnable), c.Run, width))
		if err := c.run(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintf(env.Stdout, "All %d checks passed.\n", len(runnable))
	return nil
}

func terminalWidth(env *cli.Env) int {
	f, ok := env.Stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// progressMessage renders the per-check progress line, shortened to fit the
// terminal width. The "[n/total] Running check " prefix is never cut.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	msg := prefix + strings.Join(command, " ")
	if width <= 0 || len(msg) <= width {
		return msg
	}
	if width < len(prefix) {
		return prefix
	}
	if width-3 >= len(prefix) {
		return msg[:width-3] + "..."
	}
	return msg[:width]
}

func (c check) run(ctx context.Context) error {
	var buf bytes.Buffer
	err := internal.ExecRunner{}.Run(ctx, &buf, &buf, c.Run[0], c.Run[1:]...)
	if err != nil {
		return fmt.Errorf("check %q failed: %v:\n%v", c.Run, err, buf.String())
	}
	return nil
}
