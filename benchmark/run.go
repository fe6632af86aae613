package benchmark

import (
	"os"
	"time"

	"github.com/Holodome/csbench/logger"
)

// pace grows the adaptive batch size. The accumulator is inflated by 5%
// until its floor moves, so small batches step by one and large batches
// grow geometrically.
type pace struct {
	accum float64
	batch int
}

func newPace() *pace {
	return &pace{accum: 1.0, batch: 1}
}

// next advances to the following batch size. Batch sizes never decrease.
func (p *pace) next() int {
	for int(p.accum) == p.batch {
		p.accum *= 1.05
	}
	p.batch = int(p.accum)
	return p.batch
}

// stopNow is the adaptive stop predicate, checked after each outer iteration
func (e *Engine) stopNow(total int, elapsed float64) bool {
	if e.cfg.MinRuns > 0 && total < e.cfg.MinRuns {
		return false
	}
	if e.cfg.MaxRuns > 0 && total >= e.cfg.MaxRuns {
		return true
	}
	return elapsed >= e.cfg.TimeLimit
}

// oneRun performs a single measured run: prepare, spawn, then custom
// measurement extraction in descriptor order. A failed extraction discards
// the whole run, so no vector is appended to.
func (e *Engine) oneRun(b *Bench) error {
	if b.PrepareCmd != "" {
		if err := e.runPrepare(b.PrepareCmd); err != nil {
			return err
		}
	}

	var capture *os.File
	if len(b.Cmd.Meas) > 1 {
		var err error
		capture, err = newCaptureFile()
		if err != nil {
			return err
		}
		defer releaseCaptureFile(capture)
	}

	rm, err := e.spawnWait(b.Cmd, capture)
	if err != nil {
		return err
	}

	customs := make([]float64, 0, len(b.Cmd.Meas)-1)
	for _, m := range b.Cmd.Meas[1:] {
		v, err := e.extract(capture, m)
		if err != nil {
			return err
		}
		customs = append(customs, v)
	}

	b.record(rm, customs)
	return nil
}

// runBench populates one benchmark record until the stop predicate holds
func (e *Engine) runBench(b *Bench, log logger.Logger) error {
	log.Debug("benchmarking %q", b.Cmd.Str)

	if e.cfg.WarmupTime > 0 {
		deadline := time.Now().Add(time.Duration(e.cfg.WarmupTime * float64(time.Second)))
		for time.Now().Before(deadline) {
			if _, err := e.spawnWait(b.Cmd, nil); err != nil {
				return err
			}
		}
	}

	if e.cfg.Runs > 0 {
		for i := 0; i < e.cfg.Runs; i++ {
			if err := e.oneRun(b); err != nil {
				return err
			}
		}
		log.Debug("%q: %d fixed runs", b.Cmd.Str, b.RunCount())
		return nil
	}

	start := time.Now()
	p := newPace()
	total := 0
	for {
		batch := p.batch
		for i := 0; i < batch; i++ {
			if err := e.oneRun(b); err != nil {
				return err
			}
			total++
		}
		p.next()

		if e.stopNow(total, time.Since(start).Seconds()) {
			break
		}
	}

	log.Debug("%q: %d runs in %.2f sec", b.Cmd.Str, total, time.Since(start).Seconds())
	return nil
}
