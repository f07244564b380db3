package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", WrapExitError(ExitCommandError, "boom", errors.New("cause")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", NewExitError(ExitFailure, "boom").Error())

	err := WrapExitError(ExitCommandError, "boom", errors.New("cause"))
	assert.Equal(t, "boom: cause", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "cause")
}

func TestFormatterErrorJSON(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out}
	require.NoError(t, f.Error(ErrCodeManifest, "cannot read manifest", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeManifest, resp.Error.Code)
	assert.Equal(t, "cannot read manifest", resp.Error.Message)
	_, err := uuid.Parse(resp.TraceID)
	assert.NoError(t, err)
}

func TestFormatterErrorTextGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut}
	require.NoError(t, f.Error(ErrCodeWriteFailed, "disk full", nil))

	assert.Empty(t, out.String())
	assert.Equal(t, "Error [E_WRITE_FAILED]: disk full\n", errOut.String())
}

func TestFormatterVerboseLog(t *testing.T) {
	var errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &bytes.Buffer{}, ErrWriter: &errOut, Verbose: false}
	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
}

func TestGetErrWriterFallsBackToWriter(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Writer: &out}
	assert.Equal(t, &out, f.GetErrWriter())
}
