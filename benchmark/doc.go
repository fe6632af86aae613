// Package benchmark is the execution engine of csbench.
//
// It runs user commands repeatedly under an immutable configuration and
// fills benchmark records with per-run samples: wall-clock time, user and
// system CPU time, the exit code, and any custom measurements extracted
// from the captured stdout.
//
// The engine consists of the process runner (spawn, redirect, wait, rusage),
// the custom measurement extractor, the benchmark loop (warmup plus either a
// fixed run count or an adaptive batch loop bounded by a wall-time budget),
// and the parallel dispatcher that hands contiguous ranges of the benchmark
// vector to worker goroutines.
//
// Example:
//
//	cfg := benchmark.DefaultConfig()
//	cfg.TimeLimit = 3
//	engine, err := benchmark.NewEngine(cfg, nil)
//	if err != nil {
//		return err
//	}
//	shell, _ := benchmark.SplitShell(cfg.Shell)
//	meas, _ := benchmark.MeasList(nil)
//	cmds, groups, err := benchmark.ExpandTemplates(
//		[]string{"sleep 0.01"}, nil, shell, cfg.InputFile(), cfg.Output, meas)
//	if err != nil {
//		return err
//	}
//	benches := make([]*benchmark.Bench, len(cmds))
//	for i, cmd := range cmds {
//		benches[i] = benchmark.NewBench(cmd, cfg.Prepare)
//	}
//	if err := engine.Run(benches); err != nil {
//		return err
//	}
//	_ = groups
package benchmark
