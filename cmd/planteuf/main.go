// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/planteuf/planteuf/cli"
	"github.com/planteuf/planteuf/logger"
	"github.com/planteuf/planteuf/mongodb"
	"github.com/planteuf/planteuf/sanitize"
	"github.com/planteuf/planteuf/settings"
	"github.com/planteuf/planteuf/task"
	"github.com/planteuf/planteuf/unwrap"
)

func main() { cli.Main(cli.AppFunc(run)) }

// taskSanitizer redacts credentials from task payloads before logging.
// The patterns follow the original deployment's redaction list.
var taskSanitizer = unwrap.Value(sanitize.New(sanitize.Config{
	SanitizeKeys: []string{"password", "secret", "token", "api_key"},
}))

func run(ctx context.Context) error {
	cfg, err := settings.Load(cli.GetEnv(ctx).Getenv)
	if err != nil {
		return err
	}

	log := logger.New(nil)
	log.Level.Set(cfg.LogLevel)
	if cfg.LogFilename != "" {
		f, err := os.OpenFile(cfg.LogFilename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.Attach(slog.NewTextHandler(f, &slog.HandlerOptions{Level: log.Level}))
	} else {
		log.AttachConsole(os.Stderr)
	}
	ctx = logger.Put(ctx, log)

	uri, err := cfg.MongoURI()
	if err != nil {
		return err
	}
	store, err := mongodb.Open(ctx, uri, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	orc := task.NewOrchestrator(store, task.NewQueue(), taskSanitizer)
	if err := orc.RefreshQueue(ctx); err != nil {
		return err
	}

	runner := task.NewRunner(orc, cfg.TaskWorkers)
	runner.Register(task.EventTest, task.HandlerFunc(func(ctx context.Context, t *task.Task) error {
		logger.Info(ctx, "test task executed", slog.String("task_id", t.ID))
		return nil
	}))

	if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
