// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads club-sort settings from a YAML or JSON file with
// CLUBSORT_ environment overrides.
package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/someonegg/clubmatch/report"
	"github.com/someonegg/clubmatch/roster"
)

const envPrefix = "CLUBSORT_"

const (
	StrategyRankFirst  = "rank-first"
	StrategyPopularity = "popularity"
)

type TableConfig struct {
	Path  string `json:"path"`
	Sheet string `json:"sheet"`
	// Header skips the first row. Only used for the student table; a club
	// header row is dropped as malformed anyway.
	Header bool `json:"header"`
}

type OutputConfig struct {
	Format string `json:"format"`
	// Path is the report file; empty writes to stdout.
	Path string `json:"path"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

type MetricsConfig struct {
	// Textfile is where run gauges are written; empty disables them.
	Textfile string `json:"textfile"`
}

type Config struct {
	Strategy string              `json:"strategy"`
	Clubs    TableConfig         `json:"clubs"`
	Students TableConfig         `json:"students"`
	Aliases  map[string][]string `json:"aliases"`
	Output   OutputConfig        `json:"output"`
	Logging  LoggingConfig       `json:"logging"`
	Metrics  MetricsConfig       `json:"metrics"`
}

// Load reads path, which may be empty to use defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, errors.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}

	// CLUBSORT_OUTPUT__FORMAT=csv sets output.format.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyRankFirst
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks enumerated fields. Table paths are checked by the loader.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyRankFirst, StrategyPopularity:
	default:
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}

	ok := false
	for _, f := range report.Formats {
		if c.Output.Format == f {
			ok = true
		}
	}
	if !ok {
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}

// RosterOptions maps the table settings onto the loader's.
func (c Config) RosterOptions() roster.Options {
	return roster.Options{
		Clubs:         roster.Source{Path: c.Clubs.Path, Sheet: c.Clubs.Sheet},
		Students:      roster.Source{Path: c.Students.Path, Sheet: c.Students.Sheet},
		StudentHeader: c.Students.Header,
		Aliases:       c.Aliases,
	}
}
