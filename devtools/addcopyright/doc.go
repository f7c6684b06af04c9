// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Addcopyright adds a copyright header to source files that lack one.

It recursively walks the current directory and checks whether a file, based
on its extension, should carry a copyright header. If the header is missing,
the tool prepends a notice based on a template.

Configuration lives in the copyright.json file inside the .devtools.txtar
archive at the project's root: a JSON object with an "exclusions" array of
path suffixes to skip. Templates and header markers are built in per
extension.
*/
package main

import (
	_ "embed"

	"github.com/planteuf/planteuf/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
