// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/clubmatch"
	"github.com/someonegg/clubmatch/config"
	"github.com/someonegg/clubmatch/internal/logging"
	"github.com/someonegg/clubmatch/internal/metrics"
	"github.com/someonegg/clubmatch/report"
	"github.com/someonegg/clubmatch/roster"
)

// loadConfig reads the config file, then lets flags override it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	set := func(flag string, dst *string) {
		if ctx.IsSet(flag) {
			*dst = ctx.String(flag)
		}
	}
	set("clubs", &cfg.Clubs.Path)
	set("students", &cfg.Students.Path)
	set("clubs-sheet", &cfg.Clubs.Sheet)
	set("students-sheet", &cfg.Students.Sheet)
	set("log-level", &cfg.Logging.Level)
	if ctx.IsSet("student-header") {
		cfg.Students.Header = ctx.Bool("student-header")
	}
	if ctx.Command.Name == "assign" {
		set("strategy", &cfg.Strategy)
		set("format", &cfg.Output.Format)
		set("output", &cfg.Output.Path)
		set("metrics-file", &cfg.Metrics.Textfile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newAllocator(strategy string, log zerolog.Logger) (clubmatch.Allocator, error) {
	switch strategy {
	case config.StrategyRankFirst:
		return clubmatch.RankFirstAllocator(log), nil
	case config.StrategyPopularity:
		return clubmatch.PopularityAllocator(log), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

func loadRoster(cfg *config.Config, log zerolog.Logger) (*roster.Roster, error) {
	r, err := roster.Load(cfg.RosterOptions())
	if err != nil {
		if errors.Cause(err) == roster.ErrMissingInput {
			return nil, fmt.Errorf("please supply both the clubs and the student votes tables: %w", err)
		}
		return nil, fmt.Errorf("load roster failed: %w", err)
	}

	for _, issue := range r.Issues {
		log.Warn().Str("table", issue.Table).Int("row", issue.Row).Msg(issue.Reason)
	}
	log.Info().Int("clubs", len(r.Clubs)).Int("students", len(r.Students)).
		Int("issues", len(r.Issues)).Msg("roster loaded")
	return r, nil
}

func doAssign(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	log := logging.New("assign", cfg.Logging.Level)

	r, err := loadRoster(cfg, log)
	if err != nil {
		return err
	}

	allocator, err := newAllocator(cfg.Strategy, log)
	if err != nil {
		return err
	}
	a := allocator.Allocate(r.Clubs, r.Students)

	rep := report.New(r.Clubs, r.Students, a)
	summ := rep.Summary
	log.Info().Str("strategy", cfg.Strategy).
		Ints("by_rank", summ.ByRank[1:]).
		Int("unassigned", summ.Unplaced).
		Int("seats_left", summ.SeatsLeft).
		Msg("students assigned")

	out := stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create report file failed: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := rep.Write(out, cfg.Output.Format); err != nil {
		return fmt.Errorf("write report failed: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		rec, err := metrics.NewRecorder(nil)
		if err != nil {
			return err
		}
		rec.Record(r.Clubs, summ, a, len(r.Issues))
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	return nil
}

func doCheck(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	log := logging.New("check", cfg.Logging.Level)

	r, err := loadRoster(cfg, log)
	if err != nil {
		return err
	}

	if err := clubmatch.Validate(r.Clubs); err != nil {
		fmt.Fprintf(stdout, "invalid clubs: %v\n", err)
	}

	fmt.Fprintf(stdout, "%d clubs, %d students, %d issues\n", len(r.Clubs), len(r.Students), len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(stdout, "  %s\n", issue)
	}

	unmatched := r.Unmatched()
	choices := make([]string, 0, len(unmatched))
	for c := range unmatched {
		choices = append(choices, c)
	}
	sort.Strings(choices)
	if len(choices) > 0 {
		fmt.Fprintln(stdout, "choices naming no club:")
	}
	for _, c := range choices {
		fmt.Fprintf(stdout, "  %q x%d\n", c, unmatched[c])
	}

	return nil
}
