/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"DEBUG":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLoggerIsRegistered(t *testing.T) {
	l := NewLogger("REGISTRY")
	assert.Same(t, l, NewLogger("REGISTRY"))

	assert.True(t, SetLoggerLevel("REGISTRY", "error"))
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	assert.False(t, SetLoggerLevel("NO_SUCH_LOGGER", "error"))

	ConfigureLogLevel("debug")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestTextFormatterIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	ConfigureConsoleOutput(&buf)
	t.Cleanup(func() { ConfigureConsoleOutput(nil) })

	l := NewLogger("TEXT")
	l.SetLevel(logrus.InfoLevel)
	l.WithField("table", "member").Info("paged query")

	line := buf.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "paged query")
	assert.Contains(t, line, "table")
	assert.Contains(t, line, "member")
}

func TestJSONFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "JSON"}
	entry := logrus.NewEntry(logrus.New()).WithField("size", 2)
	entry.Message = "done"
	entry.Level = logrus.WarnLevel

	b, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "warning", rec["level"])
	assert.Equal(t, "JSON", rec["model"])
	assert.Equal(t, "done", rec["message"])
	assert.Equal(t, map[string]interface{}{"size": float64(2)}, rec["fields"])
}

func TestDotPathCompact(t *testing.T) {
	assert.Equal(t, "database.manager.go", dotPathCompact("database/manager.go", 30))
	assert.Equal(t, "d.manager.go", dotPathCompact("database/manager.go", 12))
	assert.Equal(t, "ager.go", dotPathCompact("database/manager.go", 7))
	assert.Equal(t, "", dotPathCompact("database/manager.go", 0))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("SIEVE_TEST_INT", "7")
	t.Setenv("SIEVE_TEST_BAD_INT", "x")
	t.Setenv("SIEVE_TEST_BOOL", "true")
	t.Setenv("SIEVE_TEST_DURATION", "250ms")

	assert.Equal(t, 7, EnvDefaultInt("SIEVE_TEST_INT", 1))
	assert.Equal(t, 1, EnvDefaultInt("SIEVE_TEST_BAD_INT", 1))
	assert.True(t, EnvDefaultBool("SIEVE_TEST_BOOL", false))
	assert.Equal(t, "fallback", EnvDefaultString("SIEVE_TEST_UNSET", "fallback"))
	assert.Equal(t, "250ms", EnvDefaultDuration("SIEVE_TEST_DURATION", 0).String())
}
