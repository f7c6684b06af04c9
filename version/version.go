// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the currently running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/planteuf/planteuf/syncx"
)

// Info describes the currently running binary.
type Info struct {
	// Name is the name of the binary, without the path.
	Name string
	// Version is the version of the binary, derived from the build
	// information embedded by the Go toolchain.
	Version string
	// Commit is the VCS revision the binary was built from, if known.
	Commit string
	// GoVersion is the version of the Go toolchain that built the binary.
	GoVersion string
}

// String implements the [fmt.Stringer] interface.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	fmt.Fprintf(&sb, " built with %s (%s/%s)\n", i.GoVersion, runtime.GOOS, runtime.GOARCH)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns the build information of the currently running binary.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name:      CmdName(),
			Version:   "devel",
			GoVersion: runtime.Version(),
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			i.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 8 {
				i.Commit = s.Value[:8]
			}
		}
		return i
	})
}

var cmdName syncx.Lazy[string]

// CmdName returns the base name of the currently running binary.
func CmdName() string {
	return cmdName.Get(func() string {
		exe, err := os.Executable()
		if err != nil {
			return "planteuf"
		}
		return strings.TrimSuffix(filepath.Base(exe), ".exe")
	})
}
