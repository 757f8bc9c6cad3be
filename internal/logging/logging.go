// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog loggers shared by the commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output is where loggers write. Reports go to stdout, so logs do not.
var Output io.Writer = os.Stderr

// New returns a logger for the given component at the given level. The
// format is detected via the APP_ENV variable: "dev" selects a console
// writer, anything else JSON lines.
func New(component, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = Output
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		w = zerolog.ConsoleWriter{Out: Output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
}
