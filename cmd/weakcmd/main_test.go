package main

import (
	"bytes"
	"github.com/saylorsolutions/weakcmd/cli"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

func TestRun_AllScenarios(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"all", "-n", "16", "--rounds", "3"}, &out, &errOut)
	require.NoError(t, err, errOut.String())

	output := out.String()
	assert.Contains(t, output, "executed 3 times while alive, count=3")
	assert.Contains(t, output, "execute #6: total=5 canExecute=false")
	assert.Contains(t, output, "invalid cast")
	assert.Contains(t, output, "3 rounds of 16 concurrent")
	assert.Contains(t, errOut.String(), `"msg":"Scenario passed"`, "Logs should be JSON when not writing to a terminal")
}

func TestRun_DefaultsToAll(t *testing.T) {
	t.Setenv(envGoroutines, "4")
	var out, errOut bytes.Buffer
	require.NoError(t, run(nil, &out, &errOut), errOut.String())
	assert.Equal(t, len(scenarios), strings.Count(errOut.String(), `"msg":"Scenario passed"`))
	assert.Contains(t, out.String(), "10 rounds of 4 concurrent")
}

func TestRun_SingleScenario(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"command", "--json=false"}, &out, &errOut))
	assert.Equal(t, 6, strings.Count(out.String(), "execute #"))
	assert.Contains(t, errOut.String(), "msg=\"Scenario passed\" scenario=command")
	assert.NotContains(t, errOut.String(), "scenario=stress")
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out, &errOut))
	assert.Empty(t, errOut.String())
	for _, name := range append(scenarioNames(), "all") {
		assert.Contains(t, out.String(), "\n  "+name)
	}

	out.Reset()
	require.NoError(t, run([]string{"stress", "-h"}, &out, &errOut))
	assert.Contains(t, out.String(), "weakcmd stress [FLAGS]")
	assert.Contains(t, out.String(), "--goroutines")
	assert.NotContains(t, out.String(), "Stress round complete")

	out.Reset()
	require.NoError(t, run([]string{"cast", "--help"}, &out, &errOut))
	assert.Contains(t, out.String(), "--log-level")
	assert.NotContains(t, out.String(), "--goroutines", "Only concurrent scenarios accept concurrency flags")
}

func TestRun_Errors(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.ErrorIs(t, run([]string{"nope"}, &out, &errOut), cli.ErrUnknownCommand)

	err := run([]string{"stress", "-n", "0"}, &out, &errOut)
	assert.ErrorIs(t, err, &cli.UsageError{})
	assert.Contains(t, out.String(), "goroutines must be >= 1")
	assert.Contains(t, out.String(), "USAGE:\nweakcmd stress [FLAGS]")

	out.Reset()
	assert.ErrorIs(t, run([]string{"action", "--rounds", "2"}, &out, &errOut), &cli.UsageError{})
	assert.Contains(t, out.String(), "unknown flag: --rounds")
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		args       []string
		concurrent bool
		env        map[string]string
		errText    string
		validate   func(t *testing.T, cfg *config)
	}{
		"Defaults": {
			concurrent: true,
			validate: func(t *testing.T, cfg *config) {
				assert.Equal(t, 64, cfg.goroutines)
				assert.Equal(t, 10, cfg.rounds)
				assert.Equal(t, slog.LevelInfo, cfg.logLevel)
				assert.Equal(t, []string{"stress"}, cfg.scenarios)
				assert.False(t, cfg.jsonSet)
			},
		},
		"Not concurrent": {
			validate: func(t *testing.T, cfg *config) {
				assert.Equal(t, 1, cfg.goroutines)
				assert.Equal(t, 1, cfg.rounds)
			},
		},
		"Environment": {
			concurrent: true,
			env: map[string]string{
				envGoroutines: "8",
				envLogLevel:   " debug ",
			},
			validate: func(t *testing.T, cfg *config) {
				assert.Equal(t, 8, cfg.goroutines)
				assert.Equal(t, slog.LevelDebug, cfg.logLevel)
			},
		},
		"Flags override environment": {
			args:       []string{"--goroutines", "4", "--log-level", "warn", "--json"},
			concurrent: true,
			env: map[string]string{
				envGoroutines: "8",
			},
			validate: func(t *testing.T, cfg *config) {
				assert.Equal(t, 4, cfg.goroutines)
				assert.Equal(t, slog.LevelWarn, cfg.logLevel)
				assert.True(t, cfg.json)
				assert.True(t, cfg.jsonSet)
			},
		},
		"Invalid environment ignored": {
			concurrent: true,
			env: map[string]string{
				envGoroutines: "many",
			},
			validate: func(t *testing.T, cfg *config) {
				assert.Equal(t, 64, cfg.goroutines)
			},
		},
		"Bad log level": {
			args:    []string{"--log-level", "loud"},
			errText: "invalid log level",
		},
		"Bad goroutines": {
			args:       []string{"-n", "0"},
			concurrent: true,
			errText:    "goroutines must be >= 1",
		},
		"Bad rounds": {
			args:       []string{"--rounds", "-1"},
			concurrent: true,
			errText:    "rounds must be >= 1",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(envGoroutines, "")
			t.Setenv(envLogLevel, "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			flags := flag.NewFlagSet("test", flag.ContinueOnError)
			bindFlags(flags, tc.concurrent)
			require.NoError(t, flags.Parse(tc.args))
			cfg, err := loadConfig(flags, "stress")
			if tc.errText != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, &cli.UsageError{})
				assert.Contains(t, err.Error(), tc.errText)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tc.validate(t, cfg)
		})
	}
}
