// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	t.Cleanup(func() { Output = prev })
	return &buf
}

func TestNewJSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	buf := capture(t)

	l := New("assign", "debug")
	l.Debug().Int("rank", 1).Msg("placed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "assign", line["component"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "placed", line["message"])
	assert.EqualValues(t, 1, line["rank"])
}

func TestNewLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")

	assert.Equal(t, zerolog.WarnLevel, New("x", "WARN").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("x", "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("x", "loud").GetLevel())
}

func TestNewConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	buf := capture(t)

	l := New("assign", "info")
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component=")
}
