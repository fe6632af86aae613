//go:build darwin || linux
// +build darwin linux

package benchmark

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRanges(t *testing.T) {
	tests := []struct {
		n, w int
		want [][2]int
	}{
		{4, 2, [][2]int{{0, 2}, {2, 4}}},
		{5, 2, [][2]int{{0, 2}, {2, 5}}},
		{4, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
		{7, 3, [][2]int{{0, 2}, {2, 4}, {4, 7}}},
	}
	for _, tt := range tests {
		got := splitRanges(tt.n, tt.w)
		assert.Equal(t, tt.want, got, "n=%d w=%d", tt.n, tt.w)
	}
}

func TestSplitRangesCoverEverything(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for w := 1; w <= n; w++ {
			ranges := splitRanges(n, w)
			require.Len(t, ranges, w)
			assert.Equal(t, 0, ranges[0][0])
			assert.Equal(t, n, ranges[w-1][1])
			for i := 1; i < w; i++ {
				assert.Equal(t, ranges[i-1][1], ranges[i][0], "ranges must be contiguous")
			}
		}
	}
}

func runFixed(t *testing.T, workers int, cmdStrs []string) []*Bench {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Runs = 3
	cfg.Workers = workers
	e := testEngine(t, cfg)

	benches := make([]*Bench, len(cmdStrs))
	for i, s := range cmdStrs {
		benches[i] = NewBench(mustCommand(t, e, s, testMeas(t)), "")
	}
	require.NoError(t, e.Run(benches))
	return benches
}

func TestRunWorkerCountIndependence(t *testing.T) {
	cmds := []string{"true", "echo hi", "exit 3"}

	sequential := runFixed(t, 1, cmds)
	parallel := runFixed(t, 2, cmds)
	overParallel := runFixed(t, 16, cmds)

	for i := range cmds {
		assert.Equal(t, sequential[i].RunCount(), parallel[i].RunCount())
		assert.Equal(t, sequential[i].RunCount(), overParallel[i].RunCount())
		assert.Equal(t, sequential[i].ExitCodes, parallel[i].ExitCodes)
		assert.Equal(t, sequential[i].ExitCodes, overParallel[i].ExitCodes)
	}
}

func TestRunEmpty(t *testing.T) {
	e := testEngine(t, DefaultConfig())
	err := e.Run(nil)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestRunStoresErrorOnRecord(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runs = 2
	cfg.Workers = 2
	e := testEngine(t, cfg)

	meas, err := MeasList([]Meas{{Name: "broken", Cmd: "false"}})
	require.NoError(t, err)

	good := NewBench(mustCommand(t, e, "true", testMeas(t)), "")
	bad := NewBench(mustCommand(t, e, "echo hi", meas), "")

	err = e.Run([]*Bench{good, bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractor))

	assert.NoError(t, good.Err())
	assert.Error(t, bad.Err())
}

func TestRunSequentialStopsAtFirstError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runs = 2
	e := testEngine(t, cfg)

	meas, err := MeasList([]Meas{{Name: "broken", Cmd: "false"}})
	require.NoError(t, err)

	bad := NewBench(mustCommand(t, e, "echo hi", meas), "")
	never := NewBench(mustCommand(t, e, "true", testMeas(t)), "")

	err = e.Run([]*Bench{bad, never})
	require.Error(t, err)
	assert.Error(t, bad.Err())
	assert.Equal(t, 0, never.RunCount())
}
