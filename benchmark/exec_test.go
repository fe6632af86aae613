//go:build darwin || linux
// +build darwin linux

package benchmark

import (
	"io"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)
	return e
}

func mustCommand(t *testing.T, e *Engine, cmdStr string, meas []Meas) *Command {
	t.Helper()
	cmd, err := NewCommand(cmdStr, e.Shell(), "", OutputNull, meas)
	require.NoError(t, err)
	return cmd
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42.5\n", 42.5, false},
		{"  3.14 abc", 3.14, false},
		{"1e-3x", 0.001, false},
		{"-2.5", -2.5, false},
		{"+7", 7, false},
		{".5", 0.5, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLeadingFloat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestSpawnWaitExitCode(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "exit 3", testMeas(t))

	rm, err := e.spawnWait(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, rm.exitCode)
}

func TestSpawnWaitSignalExitCode(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "kill $$", testMeas(t))

	rm, err := e.spawnWait(cmd, nil)
	require.NoError(t, err)
	// SIGTERM is 15, signal death maps to 128 + signal number
	assert.Equal(t, 143, rm.exitCode)
}

func TestSpawnWaitMeasuresWallTime(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "sleep 0.05", testMeas(t))

	rm, err := e.spawnWait(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rm.exitCode)
	assert.Greater(t, rm.wall, 0.04)
	assert.Less(t, rm.wall, 2.0)
	assert.GreaterOrEqual(t, rm.user, 0.0)
	assert.GreaterOrEqual(t, rm.sys, 0.0)
}

func TestSpawnWaitCapture(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "echo hello", testMeas(t))

	capture, err := newCaptureFile()
	require.NoError(t, err)
	defer releaseCaptureFile(capture)

	rm, err := e.spawnWait(cmd, capture)
	require.NoError(t, err)
	assert.Equal(t, 0, rm.exitCode)

	_, err = capture.Seek(0, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(capture)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestExtractDirectParse(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "echo 42.5", testMeas(t))

	capture, err := newCaptureFile()
	require.NoError(t, err)
	defer releaseCaptureFile(capture)

	_, err = e.spawnWait(cmd, capture)
	require.NoError(t, err)

	v, err := e.extract(capture, Meas{Name: "value"})
	require.NoError(t, err)
	assert.Equal(t, 42.5, v)
}

func TestExtractWithCommand(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "printf 'a\\nb\\nc\\n'", testMeas(t))

	capture, err := newCaptureFile()
	require.NoError(t, err)
	defer releaseCaptureFile(capture)

	_, err = e.spawnWait(cmd, capture)
	require.NoError(t, err)

	v, err := e.extract(capture, Meas{Name: "lines", Cmd: "wc -l"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestExtractFailure(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	cmd := mustCommand(t, e, "echo not-a-number", testMeas(t))

	capture, err := newCaptureFile()
	require.NoError(t, err)
	defer releaseCaptureFile(capture)

	_, err = e.spawnWait(cmd, capture)
	require.NoError(t, err)

	_, err = e.extract(capture, Meas{Name: "value"})
	assert.True(t, errors.Is(err, ErrExtractor))

	_, err = e.extract(capture, Meas{Name: "value", Cmd: "false"})
	assert.True(t, errors.Is(err, ErrExtractor))
}

func TestRunPrepare(t *testing.T) {
	e := testEngine(t, DefaultConfig())

	require.NoError(t, e.runPrepare("true"))

	err := e.runPrepare("false")
	assert.True(t, errors.Is(err, ErrPrepare))
}

func TestCaptureFileUniqueAndRemoved(t *testing.T) {
	a, err := newCaptureFile()
	require.NoError(t, err)
	b, err := newCaptureFile()
	require.NoError(t, err)

	assert.NotEqual(t, a.Name(), b.Name())

	nameA := a.Name()
	releaseCaptureFile(a)
	releaseCaptureFile(b)

	_, err = os.Stat(nameA)
	assert.True(t, os.IsNotExist(err))
}
