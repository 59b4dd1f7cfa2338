// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeParse, "syntax error", map[string]string{"file": "a.aa"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
	assert.Equal(t, "syntax error", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextVerbose(t *testing.T) {
	out, errw := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := NewOutputFormatter(&RootOptions{Format: "text", Verbose: true}, out, errw)
	assert.False(t, formatter.Color, "a buffer is not a terminal")
	assert.Equal(t, "name", formatter.Bold("name"))

	formatter.VerboseLog("found %d file(s)", 2)
	assert.Equal(t, "found 2 file(s)\n", errw.String())

	require.NoError(t, formatter.Error(ErrCodeEval, "failed", "some details"))
	assert.Equal(t, "Error [E002]: failed\nDetails: some details\n", out.String())

	formatter.Color = true
	assert.Equal(t, "\x1b[1mname\x1b[0m", formatter.Bold("name"))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "reading", errors.New("inner")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "reading: inner", errors.Unwrap(wrapped).Error())
	assert.Equal(t, "boom", NewExitError(ExitFailure, "boom").Error())
}
