// Package analyze turns raw benchmark records into the results bundle:
// per-benchmark distribution summaries and density curves, fastest-command
// selection per measurement, pairwise speed ratios, and parameter-sweep
// group analyses with complexity fits.
package analyze

import (
	"math"
	"strconv"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/pkg/errors"

	"github.com/Holodome/csbench/benchmark"
	"github.com/Holodome/csbench/stats"
)

// Results is the bundle handed over by the execution engine. It owns the
// benchmark records and their sample vectors; the measurement descriptors
// and groups are shared references.
type Results struct {
	Meas    []benchmark.Meas
	Benches []*benchmark.Bench
	Groups  []benchmark.CmdGroup
}

// BenchAnalysis is the per-benchmark statistical summary, one distribution
// and two density curves per measurement
type BenchAnalysis struct {
	Bench *benchmark.Bench
	// Distr, KDE and KDEExt are indexed by measurement
	Distr  []*stats.Distribution
	KDE    []*stats.KDE
	KDEExt []*stats.KDE
}

// SpeedRatio compares one benchmark against the fastest one
type SpeedRatio struct {
	// Ratio is mean_i / mean_fastest
	Ratio float64
	// Stdev is the propagated standard deviation of the ratio
	Stdev float64
}

// GroupAnalysis summarizes one parameter sweep under one measurement
type GroupAnalysis struct {
	Group *benchmark.CmdGroup
	// Means is the mean point estimate per parameter value
	Means []float64
	// Fastest and Slowest index Group.Values
	Fastest int
	Slowest int
	// Numeric is set when every parameter value parses as a number
	Numeric bool
	// Fit is the complexity fit, present only for numeric groups
	Fit *stats.Fit
}

// MeasAnalysis is the cross-benchmark view of one measurement
type MeasAnalysis struct {
	Meas    benchmark.Meas
	MeasIdx int
	// Fastest is the index of the bench with the smallest mean
	Fastest int
	// Ratios compares every bench against the fastest, indexed by bench
	Ratios []SpeedRatio
	Groups []*GroupAnalysis
}

// Analysis is the complete analyzed results bundle
type Analysis struct {
	// RunID is a human-readable label of this run used in reports
	RunID   string
	Results *Results
	Benches []*BenchAnalysis
	PerMeas []*MeasAnalysis
}

// Analyze computes the full analysis of a results bundle. Every record must
// have completed its runs; partially executed bundles are rejected.
func Analyze(res *Results, nresamp int, seed uint32) (*Analysis, error) {
	if len(res.Benches) == 0 {
		return nil, errors.New("empty results bundle")
	}
	for _, b := range res.Benches {
		if err := b.Err(); err != nil {
			return nil, errors.Wrapf(err, "benchmark %q failed", b.Cmd.Str)
		}
		if b.RunCount() == 0 {
			return nil, errors.Errorf("benchmark %q has no runs", b.Cmd.Str)
		}
	}

	a := &Analysis{
		RunID:   petname.Generate(2, "-"),
		Results: res,
	}

	for i, b := range res.Benches {
		// Estimates must not depend on how benches were scheduled, so the
		// PRNG is re-seeded per record.
		rng := stats.NewRNG(seed + uint32(i)*0x9e3779b9)

		ba := &BenchAnalysis{Bench: b}
		for _, vec := range b.Meas {
			d := stats.Describe(vec, nresamp, rng)
			ba.Distr = append(ba.Distr, d)
			ba.KDE = append(ba.KDE, stats.NewKDE(vec, d, false))
			ba.KDEExt = append(ba.KDEExt, stats.NewKDE(vec, d, true))
		}
		a.Benches = append(a.Benches, ba)
	}

	for m := range res.Meas {
		a.PerMeas = append(a.PerMeas, a.analyzeMeas(m))
	}

	return a, nil
}

func (a *Analysis) mean(bench, meas int) float64 {
	return a.Benches[bench].Distr[meas].Mean.Point
}

func (a *Analysis) stdev(bench, meas int) float64 {
	return a.Benches[bench].Distr[meas].Stdev.Point
}

// analyzeMeas selects the fastest bench for one measurement, computes the
// speed ratios against it and analyzes every group
func (a *Analysis) analyzeMeas(meas int) *MeasAnalysis {
	ma := &MeasAnalysis{
		Meas:    a.Results.Meas[meas],
		MeasIdx: meas,
	}

	for i := range a.Results.Benches {
		if a.mean(i, meas) < a.mean(ma.Fastest, meas) {
			ma.Fastest = i
		}
	}

	fm := a.mean(ma.Fastest, meas)
	fs := a.stdev(ma.Fastest, meas)
	for i := range a.Results.Benches {
		ma.Ratios = append(ma.Ratios, speedRatio(a.mean(i, meas), a.stdev(i, meas), fm, fs))
	}

	for g := range a.Results.Groups {
		ma.Groups = append(ma.Groups, a.analyzeGroup(&a.Results.Groups[g], meas))
	}

	return ma
}

// speedRatio computes r = mi/mj with the propagated stdev
// r * sqrt((si/mi)^2 + (sj/mj)^2)
func speedRatio(mi, si, mj, sj float64) SpeedRatio {
	if mi == 0 || mj == 0 {
		return SpeedRatio{}
	}
	r := mi / mj
	return SpeedRatio{
		Ratio: r,
		Stdev: r * math.Sqrt((si/mi)*(si/mi)+(sj/mj)*(sj/mj)),
	}
}

func (a *Analysis) analyzeGroup(g *benchmark.CmdGroup, meas int) *GroupAnalysis {
	ga := &GroupAnalysis{Group: g, Numeric: true}

	xs := make([]float64, 0, len(g.Values))
	for i, v := range g.Values {
		mean := a.mean(v.CmdIdx, meas)
		ga.Means = append(ga.Means, mean)

		if mean < ga.Means[ga.Fastest] {
			ga.Fastest = i
		}
		if mean > ga.Means[ga.Slowest] {
			ga.Slowest = i
		}

		x, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			ga.Numeric = false
		}
		xs = append(xs, x)
	}

	if ga.Numeric {
		fit := stats.FitComplexity(xs, ga.Means)
		ga.Fit = &fit
	}
	return ga
}
