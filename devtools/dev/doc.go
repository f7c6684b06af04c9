// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Dev runs the development workflow targets of the planteuf repository.

Usage:

	go tool dev [target]

Running it without a target, or with the help target, lists all documented
targets. A target shells out to the underlying tool and propagates its exit
code unmodified.

The test target runs the suite through docker compose. It honors the
COMPOSE_FILE and COMPOSE_BINARY environment variables (the binary is
auto-detected when unset) and defaults CI_COMMIT_REF_SLUG to "latest".
*/
package main

import (
	_ "embed"

	"github.com/planteuf/planteuf/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
