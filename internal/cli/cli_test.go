package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/specialistvlad/typecollect/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Flags(t *testing.T) {
	// --- Arrange ---
	args := []string{
		"-config", "project.hcl",
		"-root", "schemas",
		"-o", "out.yaml",
		"-format", "YAML",
		"-compact",
		"-namespace-prefix", "com.acme",
		"-metrics-file", "run.prom",
		"-log-level", "debug",
		"schemas/a.hcl", "schemas/b",
	}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, &app.Config{
		ConfigPath:      "project.hcl",
		Inputs:          []string{"schemas/a.hcl", "schemas/b"},
		Root:            "schemas",
		OutputPath:      "out.yaml",
		Format:          "yaml",
		Compact:         true,
		NamespacePrefix: "com.acme",
		MetricsFile:     "run.prom",
		LogFormat:       "text",
		LogLevel:        "debug",
	}, cfg)
}

func TestParse_LongOutputWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-output", "a.json", "-o", "b.json", "x.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "a.json", cfg.OutputPath)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "json, yaml")
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]struct {
		args    []string
		message string
	}{
		"unknown flag":          {[]string{"-nope"}, "flag provided but not defined: -nope"},
		"bad format":            {[]string{"-format", "xml"}, "invalid format"},
		"bad log format":        {[]string{"-log-format", "xml"}, "invalid log-format"},
		"bad log level":         {[]string{"-log-level", "loud"}, "invalid log-level"},
		"health without watch":  {[]string{"-healthcheck-port", "9000"}, "watch mode"},
		"health port too large": {[]string{"-watch", "-healthcheck-port", "99999"}, "out of range"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.message)
		})
	}
}
