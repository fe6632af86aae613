// Package stats is the statistics kernel of csbench: bootstrap estimation,
// quantile snapshots, outlier classification, kernel density estimates and
// complexity fitting over parameterized command families.
package stats

import (
	"math"
	"sort"
)

// Estimate is a point statistic together with its bootstrap envelope.
// The bounds are the minimum and maximum of the statistic across resamples,
// not percentiles, so the envelope widens as the resample count grows.
type Estimate struct {
	Lower float64
	Point float64
	Upper float64
}

// Quantiles is a snapshot of the sorted sample
type Quantiles struct {
	Min float64
	P1  float64
	P5  float64
	Q1  float64
	Q3  float64
	P95 float64
	P99 float64
	Max float64
}

// Outliers holds Tukey-fence classification counts, the fence values and the
// fraction of variance attributable to outliers
type Outliers struct {
	LowSevereX  float64
	LowMildX    float64
	HighMildX   float64
	HighSevereX float64

	LowSevere  int
	LowMild    int
	HighMild   int
	HighSevere int

	// Var is the outlier variance fraction in [0, 1]
	Var float64
}

// Count returns the total number of classified outliers
func (o *Outliers) Count() int {
	return o.LowSevere + o.LowMild + o.HighMild + o.HighSevere
}

// Distribution is the per-measurement summary of one benchmark
type Distribution struct {
	Q        Quantiles
	Mean     Estimate
	Stdev    Estimate
	Outliers Outliers
}

// Mean returns the arithmetic mean of x
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Stdev returns the population standard deviation of x (divides by n)
func Stdev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	mean := Mean(x)
	var sum float64
	for _, v := range x {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(x)))
}

func allEqual(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] != x[0] {
			return false
		}
	}
	return true
}

// Bootstrap estimates the variability of stat on x by resampling with
// replacement nresamp times. Degenerate samples (fewer than two values, or
// all values equal) collapse the envelope to the point estimate.
func Bootstrap(x []float64, nresamp int, rng *RNG, stat func([]float64) float64) Estimate {
	point := stat(x)
	if len(x) < 2 || nresamp <= 0 || allEqual(x) {
		return Estimate{Lower: point, Point: point, Upper: point}
	}

	lower := math.Inf(1)
	upper := math.Inf(-1)
	tmp := make([]float64, len(x))
	for i := 0; i < nresamp; i++ {
		for j := range tmp {
			tmp[j] = x[rng.Intn(len(x))]
		}
		v := stat(tmp)
		if v < lower {
			lower = v
		}
		if v > upper {
			upper = v
		}
	}

	// The point statistic itself belongs to the envelope
	if point < lower {
		lower = point
	}
	if point > upper {
		upper = point
	}

	return Estimate{Lower: lower, Point: point, Upper: upper}
}

// Snapshot computes the quantile snapshot of x
func Snapshot(x []float64) Quantiles {
	if len(x) == 0 {
		return Quantiles{}
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	n := len(sorted)
	return Quantiles{
		Min: sorted[0],
		P1:  sorted[n/100],
		P5:  sorted[n*5/100],
		Q1:  sorted[n/4],
		Q3:  sorted[n*3/4],
		P95: sorted[n*95/100],
		P99: sorted[n*99/100],
		Max: sorted[n-1],
	}
}

// ClassifyOutliers classifies every sample against the Tukey fences derived
// from q. Each sample lands in at most one bucket; severe fences take
// precedence over mild ones.
func ClassifyOutliers(x []float64, q Quantiles, mean, stdev float64) Outliers {
	iqr := q.Q3 - q.Q1

	o := Outliers{
		LowSevereX:  q.Q1 - 3*iqr,
		LowMildX:    q.Q1 - 1.5*iqr,
		HighMildX:   q.Q3 + 1.5*iqr,
		HighSevereX: q.Q3 + 3*iqr,
	}

	for _, v := range x {
		switch {
		case v < o.LowSevereX:
			o.LowSevere++
		case v > o.HighSevereX:
			o.HighSevere++
		case v < o.LowMildX:
			o.LowMild++
		case v > o.HighMildX:
			o.HighMild++
		}
	}

	o.Var = OutlierVariance(mean, stdev, len(x))
	return o
}

// OutlierVariance estimates the share of stdev attributable to outliers
// under a contaminated normal model. The result is clamped to [0, 1].
func OutlierVariance(mean, stdev float64, n int) float64 {
	if n == 0 || stdev == 0 {
		return 0
	}

	a := float64(n)
	ua := mean / a
	ugMin := ua / 2
	sg := math.Min(ugMin/4, stdev/math.Sqrt(a))
	sg2 := sg * sg
	sb2 := stdev * stdev

	cMax := func(x float64) float64 {
		k := ua - x
		k0 := -a * a * k * k
		k1 := sb2 - a*sg2 + a*k*k
		det := k1*k1 - 4*sg2*k0
		return math.Floor(-2 * k0 / (k1 + math.Sqrt(det)))
	}

	varOut := func(c float64) float64 {
		ac := a - c
		return (ac / a) * (sb2 - ac*sg2)
	}

	v := math.Min(varOut(1), varOut(math.Min(cMax(0), cMax(ugMin)))) / sb2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Describe computes the full distribution summary of one sample vector
func Describe(x []float64, nresamp int, rng *RNG) *Distribution {
	q := Snapshot(x)
	mean := Bootstrap(x, nresamp, rng, Mean)
	stdev := Bootstrap(x, nresamp, rng, Stdev)

	return &Distribution{
		Q:        q,
		Mean:     mean,
		Stdev:    stdev,
		Outliers: ClassifyOutliers(x, q, mean.Point, stdev.Point),
	}
}
