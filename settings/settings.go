// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package settings loads planteuf configuration from the environment.
//
// Values are resolved in order of precedence: process environment, .env file,
// planteuf.toml, built-in default. Every recognized variable is declared in
// the registry returned by [Vars], which also drives the generated ENVVARS.md.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Var describes a single environment variable recognized by planteuf.
type Var struct {
	Name        string
	Default     string
	Description string
}

// Vars returns the registry of all recognized environment variables, in
// documentation order.
func Vars() []Var {
	return []Var{
		{"LOGGING_LEVEL", "INFO", "Log level: DEBUG, INFO, WARNING, ERROR or CRITICAL."},
		{"LOGGING_FILENAME", "", "Log to this file instead of the console."},
		{"MONGO_USERNAME", "", "MongoDB user name."},
		{"MONGO_PASSWORD", "", "MongoDB password."},
		{"MONGO_HOST", "", "MongoDB host."},
		{"MONGO_PORT", "0", "MongoDB port."},
		{"MONGO_DB", "", "MongoDB database name."},
		{"TASK_WORKERS", "4", "Number of concurrent task workers."},
		{"CI_COMMIT_REF_SLUG", "latest", "Image tag used by the compose test target."},
		{"COMPOSE_FILE", "compose.yaml", "Compose file used by the test target."},
		{"COMPOSE_BINARY", "", "Compose binary; auto-detected when empty."},
	}
}

// Settings holds the resolved configuration of the planteuf daemon.
type Settings struct {
	LogLevel    slog.Level
	LogFilename string

	MongoUsername string
	MongoPassword string
	MongoHost     string
	MongoPort     int
	MongoDB       string

	TaskWorkers int
}

// tomlFile mirrors the optional planteuf.toml overlay.
type tomlFile struct {
	Logging struct {
		Level    string `toml:"level"`
		Filename string `toml:"filename"`
	} `toml:"logging"`
	Mongo struct {
		Username string `toml:"username"`
		Password string `toml:"password"`
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		Database string `toml:"database"`
	} `toml:"mongo"`
	Task struct {
		Workers int `toml:"workers"`
	} `toml:"task"`
}

var logLevels = map[string]slog.Level{
	"CRITICAL": slog.LevelError,
	"ERROR":    slog.LevelError,
	"WARNING":  slog.LevelWarn,
	"INFO":     slog.LevelInfo,
	"DEBUG":    slog.LevelDebug,
	"NOTSET":   slog.LevelDebug,
}

// Load resolves settings using getenv for environment lookups, the .env file
// and planteuf.toml in the current directory. A nil getenv means [os.Getenv].
func Load(getenv func(string) string) (*Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var file tomlFile
	if _, err := os.Stat("planteuf.toml"); err == nil {
		if _, err := toml.DecodeFile("planteuf.toml", &file); err != nil {
			return nil, fmt.Errorf("settings: parse planteuf.toml: %w", err)
		}
	}

	// Unlike godotenv.Load, Read does not touch the process environment,
	// keeping the precedence order under our control.
	dotenv, err := godotenv.Read()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("settings: read .env: %w", err)
	}

	lookup := func(name, fromFile string) string {
		if v := getenv(name); v != "" {
			return v
		}
		if v := dotenv[name]; v != "" {
			return v
		}
		return fromFile
	}

	s := &Settings{
		LogLevel:      slog.LevelInfo,
		LogFilename:   lookup("LOGGING_FILENAME", file.Logging.Filename),
		MongoUsername: lookup("MONGO_USERNAME", file.Mongo.Username),
		MongoPassword: lookup("MONGO_PASSWORD", file.Mongo.Password),
		MongoHost:     lookup("MONGO_HOST", file.Mongo.Host),
		MongoDB:       lookup("MONGO_DB", file.Mongo.Database),
		TaskWorkers:   4,
	}

	if name := lookup("LOGGING_LEVEL", file.Logging.Level); name != "" {
		if lvl, ok := logLevels[name]; ok {
			s.LogLevel = lvl
		}
	}

	if port := lookup("MONGO_PORT", ""); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("settings: MONGO_PORT: %w", err)
		}
		s.MongoPort = p
	} else if file.Mongo.Port != 0 {
		s.MongoPort = file.Mongo.Port
	}

	if workers := lookup("TASK_WORKERS", ""); workers != "" {
		w, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("settings: TASK_WORKERS: %w", err)
		}
		s.TaskWorkers = w
	} else if file.Task.Workers != 0 {
		s.TaskWorkers = file.Task.Workers
	}

	return s, nil
}

// MongoURI builds the MongoDB connection string. It fails when any of the
// required connection settings is missing.
func (s *Settings) MongoURI() (string, error) {
	if s.MongoUsername == "" || s.MongoPassword == "" || s.MongoHost == "" || s.MongoPort == 0 || s.MongoDB == "" {
		return "", fmt.Errorf("settings: missing MongoDB environment variables")
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", s.MongoUsername, s.MongoPassword, s.MongoHost, s.MongoPort), nil
}
