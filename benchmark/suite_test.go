package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suiteYAML = `
time_limit: 3
warmup_time: 0.5
min_runs: 5
prepare: "sync"
shell: /bin/sh
workers: 2
nresamp: 1000
commands:
  - sleep {t}
  - true
params:
  - name: t
    list: ["0.01", "0.02"]
  - name: n
    range:
      begin: 1
      end: 3
      step: 1
measurements:
  - name: branches
    units: "1"
    cmd: "grep branches"
`

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite(t *testing.T) {
	s, err := LoadSuite(writeSuite(t, suiteYAML))
	require.NoError(t, err)

	assert.Equal(t, 3.0, s.TimeLimit)
	assert.Equal(t, 0.5, s.WarmupTime)
	assert.Equal(t, 5, s.MinRuns)
	assert.Equal(t, "sync", s.Prepare)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, 1000, s.NResamples)
	assert.Equal(t, []string{"sleep {t}", "true"}, s.Commands)

	params, err := s.ParamList()
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, Param{Name: "t", Values: []string{"0.01", "0.02"}}, params[0])
	assert.Equal(t, Param{Name: "n", Values: []string{"1", "2", "3"}}, params[1])

	meas := s.MeasList()
	require.Len(t, meas, 1)
	assert.Equal(t, "branches", meas[0].Name)
	assert.Equal(t, "grep branches", meas[0].Cmd)
	assert.Equal(t, MeasCustom, meas[0].Unit.Kind)
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite("/nonexistent/suite.yaml")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLoadSuiteBadYAML(t *testing.T) {
	_, err := LoadSuite(writeSuite(t, "commands: ["))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestSuiteParamWithoutValues(t *testing.T) {
	s := &Suite{Params: []SuiteParam{{Name: "t"}}}
	_, err := s.ParamList()
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestSuiteParamWithoutName(t *testing.T) {
	s := &Suite{Params: []SuiteParam{{List: []string{"1"}}}}
	_, err := s.ParamList()
	assert.True(t, errors.Is(err, ErrConfig))
}
