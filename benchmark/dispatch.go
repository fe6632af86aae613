package benchmark

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Holodome/csbench/logger"
)

// splitRanges partitions n records into w contiguous ranges of equal width;
// the last range absorbs the remainder
func splitRanges(n, w int) [][2]int {
	chunk := n / w
	ranges := make([][2]int, w)
	for i := 0; i < w; i++ {
		lo := i * chunk
		hi := lo + chunk
		if i == w-1 {
			hi = n
		}
		ranges[i] = [2]int{lo, hi}
	}
	return ranges
}

// Run executes all benchmark records. With a single worker records run
// sequentially in vector order; otherwise the vector is split into
// contiguous ranges and each range is owned exclusively by one worker, so
// the sample vectors need no locking. A failing benchmark terminates its
// range; the dispatcher waits for every worker and reports the first error.
func (e *Engine) Run(benches []*Bench) error {
	if len(benches) == 0 {
		return errors.Wrap(ErrConfig, "empty command list")
	}

	w := e.cfg.Workers
	if w > len(benches) {
		w = len(benches)
	}

	if w <= 1 {
		log := logger.NewWorkerLogger(e.log.GetLevel(), false, -1)
		for _, b := range benches {
			if err := e.runBench(b, log); err != nil {
				b.err = err
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for i, r := range splitRanges(len(benches), w) {
		part := benches[r[0]:r[1]]
		log := logger.NewWorkerLogger(e.log.GetLevel(), false, i)
		g.Go(func() error {
			for _, b := range part {
				if err := e.runBench(b, log); err != nil {
					b.err = err
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
