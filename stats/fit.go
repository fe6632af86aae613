package stats

import "math"

// Complexity tags the best-fitting curve of a parameter sweep
type Complexity int

const (
	// O1 is constant time
	O1 Complexity = iota
	// OLogN is logarithmic time
	OLogN
	// ON is linear time
	ON
	// ONLogN is linearithmic time
	ONLogN
	// ON2 is quadratic time
	ON2
	// ON3 is cubic time
	ON3
)

// String converts a Complexity to its conventional notation
func (c Complexity) String() string {
	switch c {
	case O1:
		return "O(1)"
	case OLogN:
		return "O(log(n))"
	case ON:
		return "O(n)"
	case ONLogN:
		return "O(n*log(n))"
	case ON2:
		return "O(n^2)"
	case ON3:
		return "O(n^3)"
	default:
		return "?"
	}
}

// fitting kernel of the curve
func (c Complexity) curve(n float64) float64 {
	switch c {
	case O1:
		return 1
	case OLogN:
		return math.Log2(n)
	case ON:
		return n
	case ONLogN:
		return n * math.Log2(n)
	case ON2:
		return n * n
	case ON3:
		return n * n * n
	default:
		return math.NaN()
	}
}

// Fit is the result of a least-squares complexity fit
type Fit struct {
	Complexity Complexity
	Coef       float64
	// RMS is the root mean square error normalized by the mean of y
	RMS float64
}

var fitFamily = []Complexity{O1, OLogN, ON, ONLogN, ON2, ON3}

// fitOne fits y = coef*g(x) for a single curve by least squares
func fitOne(c Complexity, x, y []float64) Fit {
	var num, den float64
	for i := range x {
		g := c.curve(x[i])
		num += y[i] * g
		den += g * g
	}
	coef := num / den

	var sqerr float64
	for i := range x {
		d := y[i] - coef*c.curve(x[i])
		sqerr += d * d
	}
	rms := math.Sqrt(sqerr/float64(len(x))) / Mean(y)

	return Fit{Complexity: c, Coef: coef, RMS: rms}
}

// FitComplexity picks the curve from the fixed family that minimizes the
// normalized RMS against the observed (x, y) points
func FitComplexity(x, y []float64) Fit {
	best := Fit{RMS: math.Inf(1)}
	for _, c := range fitFamily {
		f := fitOne(c, x, y)
		if f.RMS < best.RMS {
			best = f
		}
	}
	return best
}
