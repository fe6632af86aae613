package benchmark

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeas(t *testing.T) []Meas {
	t.Helper()
	meas, err := MeasList(nil)
	require.NoError(t, err)
	return meas
}

func TestSplitShell(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"none", nil},
		{"", nil},
		{"/bin/sh", []string{"/bin/sh"}},
		{"env -i bash", []string{"env", "-i", "bash"}},
	}
	for _, tt := range tests {
		got, err := SplitShell(tt.shell)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewCommandNoShell(t *testing.T) {
	cmd, err := NewCommand(`echo "a b" c`, nil, "", OutputNull, testMeas(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"echo", "a b", "c"}, cmd.Argv)
	assert.True(t, strings.HasSuffix(cmd.Exec, "echo"))
	assert.Equal(t, `echo "a b" c`, cmd.Str)
}

func TestNewCommandShell(t *testing.T) {
	shell := []string{"/bin/sh"}
	cmd, err := NewCommand("echo hi | wc -c", shell, "", OutputNull, testMeas(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"/bin/sh", "-c", "echo hi | wc -c"}, cmd.Argv)
	assert.Equal(t, "/bin/sh", cmd.Exec)
}

func TestNewCommandMissingExecutable(t *testing.T) {
	_, err := NewCommand("definitely-not-a-command-1b2c", nil, "", OutputNull, testMeas(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestNewCommandEmpty(t *testing.T) {
	_, err := NewCommand("", nil, "", OutputNull, testMeas(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestParamFromRange(t *testing.T) {
	p, err := ParamFromRange("t", 0.01, 0.08, 0.01)
	require.NoError(t, err)

	assert.Equal(t, "t", p.Name)
	require.Len(t, p.Values, 8)
	assert.Equal(t, "0.01", p.Values[0])
	assert.Equal(t, "0.08", p.Values[7])
}

func TestParamFromRangeIntegers(t *testing.T) {
	p, err := ParamFromRange("n", 1, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, p.Values)
}

func TestParamFromRangeBadStep(t *testing.T) {
	_, err := ParamFromRange("t", 0, 1, 0)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = ParamFromRange("t", 1, 0, 1)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestExpandTemplates(t *testing.T) {
	meas := testMeas(t)
	params := []Param{{Name: "n", Values: []string{"1", "2"}}}

	cmds, groups, err := ExpandTemplates(
		[]string{"echo {n}", "true"}, params, []string{"/bin/sh"}, "", OutputNull, meas)
	require.NoError(t, err)

	require.Len(t, cmds, 3)
	assert.Equal(t, "echo 1", cmds[0].Str)
	assert.Equal(t, "echo 2", cmds[1].Str)
	assert.Equal(t, "true", cmds[2].Str)

	require.Len(t, groups, 1)
	assert.Equal(t, "echo {n}", groups[0].Template)
	assert.Equal(t, "n", groups[0].Var)
	assert.Equal(t, []GroupValue{{Value: "1", CmdIdx: 0}, {Value: "2", CmdIdx: 1}}, groups[0].Values)
}

func TestExpandTemplatesEmpty(t *testing.T) {
	_, _, err := ExpandTemplates(nil, nil, nil, "", OutputNull, testMeas(t))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestExpandTemplatesTwoParams(t *testing.T) {
	params := []Param{
		{Name: "a", Values: []string{"1"}},
		{Name: "b", Values: []string{"2"}},
	}
	_, _, err := ExpandTemplates([]string{"echo {a} {b}"}, params, nil, "", OutputNull, testMeas(t))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestExpandTemplatesDuplicateParam(t *testing.T) {
	params := []Param{
		{Name: "a", Values: []string{"1"}},
		{Name: "a", Values: []string{"2"}},
	}
	_, _, err := ExpandTemplates([]string{"echo {a}"}, params, nil, "", OutputNull, testMeas(t))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestMeasListReservesWallClock(t *testing.T) {
	meas, err := MeasList([]Meas{{Name: "branches", Cmd: "grep branches"}})
	require.NoError(t, err)

	require.Len(t, meas, 2)
	assert.Equal(t, "wall clock", meas[0].Name)
	assert.Equal(t, MeasSeconds, meas[0].Unit.Kind)
	assert.Equal(t, "branches", meas[1].Name)
}

func TestMeasListDuplicateNames(t *testing.T) {
	_, err := MeasList([]Meas{{Name: "x"}, {Name: "x"}})
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestParseUnit(t *testing.T) {
	assert.Equal(t, Unit{Kind: MeasSeconds}, ParseUnit("s"))
	assert.Equal(t, Unit{Kind: MeasMilliseconds}, ParseUnit("ms"))
	assert.Equal(t, Unit{Kind: MeasMicroseconds}, ParseUnit("us"))
	assert.Equal(t, Unit{Kind: MeasNanoseconds}, ParseUnit("ns"))
	assert.Equal(t, Unit{Kind: MeasCustom, Name: "bytes"}, ParseUnit("bytes"))

	assert.Equal(t, "bytes", ParseUnit("bytes").String())
	assert.Equal(t, "s", ParseUnit("s").String())
	assert.True(t, ParseUnit("ms").IsTime())
	assert.False(t, ParseUnit("bytes").IsTime())
}
