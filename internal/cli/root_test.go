// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "aadd", cmd.Use)
	assert.Contains(t, cmd.Long, "Affine Arithmetic Decision Diagrams")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, cmdName := range []string{"eval", "version"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

// run executes the root command with args and src on the standard input.
func run(t *testing.T, src string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(src))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const script = `
var x := range(1, 2, "x", "m")
var c := x > 1.5
var y := ite(c, x * 2, x)
y - x
`

func TestEvalText(t *testing.T) {
	out, err := run(t, script, "eval")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "x "))
	assert.Contains(t, lines[0], "leaves=1 height=0")
	assert.Contains(t, lines[1], "unknown")
	assert.Contains(t, lines[1], "true=1 false=1")
	assert.Contains(t, lines[2], "leaves=2 height=1")
	assert.True(t, strings.HasPrefix(lines[3], "line 5"))
}

func TestEvalJSON(t *testing.T) {
	out, err := run(t, script, "eval", "--format", "json", "-")
	require.NoError(t, err)

	var resp struct {
		Status string   `json:"status"`
		Data   []Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 4)

	x := resp.Data[0]
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, "real", x.Kind)
	require.NotNil(t, x.Min)
	require.NotNil(t, x.Max)
	assert.InDelta(t, 1, *x.Min, 1e-9)
	assert.InDelta(t, 2, *x.Max, 1e-9)

	c := resp.Data[1]
	assert.Equal(t, "bool", c.Kind)
	assert.Equal(t, "unknown", c.Value)

	// y - x is x on the branch where x > 1.5, and 0 elsewhere
	d := resp.Data[3]
	require.NotNil(t, d.Min)
	assert.InDelta(t, 0, *d.Min, 1e-3)
	assert.InDelta(t, 2, *d.Max, 1e-3)
}

func TestEvalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.aa")
	require.NoError(t, os.WriteFile(path, []byte("var z := 1 + 2\n"), 0o644))
	docs := filepath.Join(dir, "docs.yaml")

	out, err := run(t, "", "eval", path, "--docs", docs)
	require.NoError(t, err)
	assert.Contains(t, out, "z  3")

	b, err := os.ReadFile(docs)
	require.NoError(t, err)
	assert.Contains(t, string(b), "symbols:")
}

func TestEvalDot(t *testing.T) {
	out, err := run(t, script, "eval", "--dot", "y")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph G {"))

	_, err = run(t, script, "eval", "--dot", "w")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		args []string
		code int
		msg  string
	}{
		{"parse", "var x = 1", []string{"eval"}, ExitFailure, ErrCodeParse},
		{"eval", "y", []string{"eval"}, ExitFailure, ErrCodeEval},
		{"missing file", "", []string{"eval", "/nonexistent/script"}, ExitCommandError, ErrCodeIO},
		{"missing config", "1", []string{"eval", "--config", "/nonexistent/settings.yaml"}, ExitCommandError, ErrCodeConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.src, tt.args...)
			require.Error(t, err)
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.code, exitErr.Code)
			assert.Contains(t, out, "Error ["+tt.msg+"]")
		})
	}
}

func TestEvalConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("join_threshold: 0.5\ncache_size: 100\n"), 0o644))
	_, err := run(t, script, "eval", "--config", path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("lp_tolerance: -1\n"), 0o644))
	_, err = run(t, script, "eval", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version", "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data VersionInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, Version, resp.Data.Version)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "aadd dev"))
}
