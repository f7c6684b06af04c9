// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/planteuf/planteuf/cli"
	"github.com/planteuf/planteuf/devtools/internal"
)

const configFile = ".devtools.txtar"

var templates = map[string]string{
	".go": `// © %d Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

`,
}

var headers = map[string]string{
	".go": "// ©",
}

type config struct {
	Exclusions []string `json:"exclusions"`
}

func (cfg *config) isExcluded(path string) bool {
	for _, ex := range cfg.Exclusions {
		if strings.HasSuffix(path, ex) {
			return true
		}
	}
	return false
}

func parseConfig() (*config, error) {
	cfg := new(config)

	ar, err := txtar.ParseFile(configFile)
	if err != nil {
		return nil, err
	}
	for _, f := range ar.Files {
		if f.Name == "copyright.json" {
			if err := json.Unmarshal(f.Data, cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", configFile, err)
			}
		}
	}

	return cfg, nil
}

func main() { cli.Main(new(app)) }

type app struct {
	dry   bool
	check bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have a copyright header added, without making changes.")
	fs.BoolVar(&a.check, "check", false, "Fail if any file is missing a copyright header, without making changes.")
}

func (a *app) Run(ctx context.Context) error {
	internal.EnsureRoot()

	env := cli.GetEnv(ctx)

	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	var missing []string
	err = filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || cfg.isExcluded(path) {
			return nil
		}
		ext := filepath.Ext(path)
		tmpl, ok := templates[ext]
		if !ok {
			return nil
		}
		header := headers[ext]

		info, err := d.Info()
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if bytes.HasPrefix(content, []byte(header)) {
			// Already has a copyright header.
			return nil
		}

		if a.check {
			missing = append(missing, path)
			return nil
		}

		hdr := fmt.Sprintf(tmpl, info.ModTime().Year())

		var buf bytes.Buffer
		buf.WriteString(hdr)
		buf.Write(content)

		if a.dry {
			env.Logf("Would add copyright header to file %s:\n%s", path, hdr)
			return nil
		}
		return os.WriteFile(path, buf.Bytes(), 0o644)
	})
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("files are missing a copyright header:\n%s", strings.Join(missing, "\n"))
	}
	return nil
}
