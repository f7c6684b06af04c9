// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Pre-commit installs and runs the Git pre-commit check set.

On its first run in a non-CI environment, it creates the
.git/hooks/pre-commit script. This script calls 'go tool pre-commit' again,
ensuring that the checks run on every subsequent commit.

Checks are configured through a .devtools.txtar file in the project's root
directory. This file is a txtar archive containing a pre-commit.json file
with a JSON array of check objects, each with the following fields:

  - run: A string array where the first element is the command to run and the
    rest are its arguments (e.g., ["go", "tool", "dev", "vet"]).
  - skip_in_ci: A boolean that, if true, causes the check to be skipped when
    the CI environment variable is set to "true".
  - only_in_ci: A boolean that, if true, causes the check to run only when
    the CI environment variable is set to "true".
*/
package main

import (
	_ "embed"

	"github.com/planteuf/planteuf/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
