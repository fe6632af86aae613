package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kdeSample() ([]float64, *Distribution) {
	rng := NewRNG(17)
	x := make([]float64, 200)
	for i := range x {
		// rough bell shape via averaging
		var s float64
		for j := 0; j < 8; j++ {
			s += float64(rng.Intn(100))
		}
		x[i] = s / 8
	}
	return x, Describe(x, 200, NewRNG(17))
}

func TestNewKDEShape(t *testing.T) {
	x, d := kdeSample()
	k := NewKDE(x, d, false)

	require.Len(t, k.X, 200)
	require.Len(t, k.Y, 200)

	for i := range k.Y {
		assert.GreaterOrEqual(t, k.Y[i], 0.0)
	}
	for i := 1; i < len(k.X); i++ {
		assert.Greater(t, k.X[i], k.X[i-1])
	}
}

func TestNewKDEDomains(t *testing.T) {
	x, d := kdeSample()

	regular := NewKDE(x, d, false)
	extended := NewKDE(x, d, true)

	// the extended domain contains the regular one
	assert.LessOrEqual(t, extended.X[0], regular.X[0])
	assert.GreaterOrEqual(t, extended.X[len(extended.X)-1], regular.X[len(regular.X)-1])
}

func TestNewKDEMeanHeight(t *testing.T) {
	x, d := kdeSample()
	k := NewKDE(x, d, false)

	assert.Equal(t, d.Mean.Point, k.MeanX)
	// the mean of a unimodal sample sits in a dense region
	assert.Greater(t, k.MeanY, 0.0)

	var ymax float64
	for _, y := range k.Y {
		if y > ymax {
			ymax = y
		}
	}
	assert.LessOrEqual(t, k.MeanY, ymax*1.0000001)
}

func TestNewKDEDegenerateSample(t *testing.T) {
	x := []float64{1, 1, 1, 1}
	d := Describe(x, 100, NewRNG(1))
	k := NewKDE(x, d, false)

	require.Len(t, k.X, 200)
	for _, y := range k.Y {
		assert.False(t, y < 0)
	}
}
