// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Planteuf is the task orchestration daemon.

It restores the dispatch queue from MongoDB on startup, then executes queued
tasks with a bounded pool of workers until interrupted.

Configuration comes from the environment (see ENVVARS.md), optionally
overlaid with a .env file and planteuf.toml in the working directory.
*/
package main

import (
	_ "embed"

	"github.com/planteuf/planteuf/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
