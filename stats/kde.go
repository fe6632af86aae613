package stats

import "math"

// kdePoints is the number of grid points a density curve is sampled at
const kdePoints = 200

// KDE is a sampled gaussian kernel density estimate of one sample vector
type KDE struct {
	X []float64
	Y []float64

	// MeanX is the sample mean, MeanY the curve height at it
	MeanX float64
	MeanY float64
}

func gauss(u float64) float64 {
	return math.Exp(-u*u/2) / math.Sqrt(2*math.Pi)
}

// bandwidth is the Silverman-style rule of thumb
func bandwidth(stdev, iqr float64, n int) float64 {
	h := 0.9 * math.Min(stdev, iqr/1.34) * math.Pow(float64(n), -0.2)
	if h <= 0 {
		// degenerate sample, pick an arbitrary narrow kernel
		h = 1e-9
	}
	return h
}

// NewKDE builds the density curve of x over the regular domain
// [max(mean-3*stdev, p5), min(mean+3*stdev, p95)]. The extended variant
// widens it to [max(mean-6*stdev, p1), min(mean+6*stdev, p99)].
func NewKDE(x []float64, d *Distribution, extended bool) *KDE {
	mean := d.Mean.Point
	stdev := d.Stdev.Point

	var lo, hi float64
	if extended {
		lo = math.Max(mean-6*stdev, d.Q.P1)
		hi = math.Min(mean+6*stdev, d.Q.P99)
	} else {
		lo = math.Max(mean-3*stdev, d.Q.P5)
		hi = math.Min(mean+3*stdev, d.Q.P95)
	}

	h := bandwidth(stdev, d.Q.Q3-d.Q.Q1, len(x))

	k := &KDE{
		X:     make([]float64, kdePoints),
		Y:     make([]float64, kdePoints),
		MeanX: mean,
	}

	step := (hi - lo) / (kdePoints - 1)
	for i := 0; i < kdePoints; i++ {
		xi := lo + float64(i)*step
		var sum float64
		for _, v := range x {
			sum += gauss((xi - v) / h)
		}
		k.X[i] = xi
		k.Y[i] = sum / (float64(len(x)) * h)
	}

	k.MeanY = k.interp(mean)
	return k
}

// interp linearly interpolates the curve height at the given point.
// Points outside the sampled domain are clamped to the edge values.
func (k *KDE) interp(x float64) float64 {
	if x <= k.X[0] {
		return k.Y[0]
	}
	last := len(k.X) - 1
	if x >= k.X[last] {
		return k.Y[last]
	}

	for i := 1; i <= last; i++ {
		if x <= k.X[i] {
			t := (x - k.X[i-1]) / (k.X[i] - k.X[i-1])
			return k.Y[i-1] + t*(k.Y[i]-k.Y[i-1])
		}
	}
	return k.Y[last]
}
