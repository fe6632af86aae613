package analyze

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"

	"github.com/Holodome/csbench/benchmark"
)

var (
	boldS  = color.New(color.Bold).SprintFunc()
	greenS = color.New(color.FgGreen).SprintFunc()
	cyanS  = color.New(color.FgCyan).SprintFunc()
	redS   = color.New(color.FgRed).SprintFunc()
)

// formatValue renders a measurement value in its unit. Time values pick the
// scale that keeps the mantissa readable.
func formatValue(v float64, u benchmark.Unit) string {
	if !u.IsTime() {
		return fmt.Sprintf("%.5g %s", v, u.String())
	}

	// normalize to seconds first
	switch u.Kind {
	case benchmark.MeasMilliseconds:
		v *= 1e-3
	case benchmark.MeasMicroseconds:
		v *= 1e-6
	case benchmark.MeasNanoseconds:
		v *= 1e-9
	}

	av := math.Abs(v)
	switch {
	case av == 0 || av >= 1:
		return fmt.Sprintf("%.3f s", v)
	case av >= 1e-3:
		return fmt.Sprintf("%.3f ms", v*1e3)
	case av >= 1e-6:
		return fmt.Sprintf("%.3f us", v*1e6)
	default:
		return fmt.Sprintf("%.3f ns", v*1e9)
	}
}

func writeBench(w io.Writer, ba *BenchAnalysis, meas []benchmark.Meas) {
	fmt.Fprintf(w, "benchmark %s\n", boldS(ba.Bench.Cmd.Str))

	nonzero := 0
	for _, code := range ba.Bench.ExitCodes {
		if code != 0 {
			nonzero++
		}
	}
	if nonzero == ba.Bench.RunCount() {
		fmt.Fprintf(w, "  %s\n", redS("all runs exited with non-zero code"))
	} else if nonzero != 0 {
		fmt.Fprintf(w, "  %s\n", redS(fmt.Sprintf("%d of %d runs exited with non-zero code", nonzero, ba.Bench.RunCount())))
	}

	for i, m := range meas {
		d := ba.Distr[i]
		fmt.Fprintf(w, "  %s: %d runs\n", cyanS(m.Name), ba.Bench.RunCount())
		fmt.Fprintf(w, "    mean  %s (%s .. %s)\n",
			greenS(formatValue(d.Mean.Point, m.Unit)),
			formatValue(d.Mean.Lower, m.Unit), formatValue(d.Mean.Upper, m.Unit))
		fmt.Fprintf(w, "    stdev %s (%s .. %s)\n",
			formatValue(d.Stdev.Point, m.Unit),
			formatValue(d.Stdev.Lower, m.Unit), formatValue(d.Stdev.Upper, m.Unit))
		fmt.Fprintf(w, "    range %s .. %s\n",
			formatValue(d.Q.Min, m.Unit), formatValue(d.Q.Max, m.Unit))
		if n := d.Outliers.Count(); n != 0 {
			fmt.Fprintf(w, "    %d outliers (%.0f%% of variance attributable to outliers)\n",
				n, d.Outliers.Var*100)
		}
	}
}

func writeComparison(w io.Writer, a *Analysis, ma *MeasAnalysis) {
	fastest := a.Results.Benches[ma.Fastest]
	fmt.Fprintf(w, "measurement %s: fastest is %s\n", cyanS(ma.Meas.Name), boldS(fastest.Cmd.Str))
	for i, b := range a.Results.Benches {
		if i == ma.Fastest {
			continue
		}
		r := ma.Ratios[i]
		fmt.Fprintf(w, "  %s is %.2f ± %.2f times slower\n", b.Cmd.Str, r.Ratio, r.Stdev)
	}
}

func writeGroup(w io.Writer, ma *MeasAnalysis, ga *GroupAnalysis) {
	g := ga.Group
	fmt.Fprintf(w, "group %s (parameter %s, measurement %s)\n",
		boldS(g.Template), g.Var, ma.Meas.Name)
	for i, v := range g.Values {
		marker := " "
		if i == ga.Fastest {
			marker = greenS("<")
		} else if i == ga.Slowest {
			marker = redS(">")
		}
		fmt.Fprintf(w, "  %s=%s: %s %s\n", g.Var, v.Value,
			formatValue(ga.Means[i], ma.Meas.Unit), marker)
	}
	if ga.Numeric && ga.Fit != nil {
		fmt.Fprintf(w, "  complexity %s (coef %.5g, rms %.3f)\n",
			greenS(ga.Fit.Complexity.String()), ga.Fit.Coef, ga.Fit.RMS)
	}
}

// WriteReport renders the analyzed results bundle as a plain-text report.
// Colors follow the package-global color.NoColor setting.
func WriteReport(w io.Writer, a *Analysis) error {
	fmt.Fprintf(w, "run %s: %d benchmarks, %d measurements\n\n",
		boldS(a.RunID), len(a.Results.Benches), len(a.Results.Meas))

	for _, ba := range a.Benches {
		writeBench(w, ba, a.Results.Meas)
	}

	if len(a.Results.Benches) > 1 {
		fmt.Fprintln(w)
		for _, ma := range a.PerMeas {
			writeComparison(w, a, ma)
		}
	}

	for _, ma := range a.PerMeas {
		for _, ga := range ma.Groups {
			fmt.Fprintln(w)
			writeGroup(w, ma, ga)
		}
	}

	return nil
}
