package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

// gaussianH1D fills every bin with the integral of a normal distribution.
func gaussianH1D(n int, mean, sigma float64) *hbook.H1D {
	h := hbook.NewH1D(200, -0.1, 0.1)
	for i := range h.Binning.Bins {
		bin := &h.Binning.Bins[i]
		x := bin.XMid()
		v := (x - mean) / sigma
		w := float64(n) * bin.XWidth() / (sigma * math.Sqrt(2*math.Pi)) * math.Exp(-0.5*v*v)
		if w > 0 {
			h.Fill(x, w)
		}
	}
	return h
}

func TestExtractResolution(t *testing.T) {
	h := gaussianH1D(100000, 0.03, 0.008)

	res, err := ExtractResolution(h, 0.005, 0.055)
	require.NoError(t, err)

	assert.InDelta(t, 0.008, res.Sigma, 0.0005)
	assert.InDelta(t, 0.03, res.Mean, 0.0005)
	assert.InDelta(t, 0.008, res.StdDev, 0.0005)
	assert.Equal(t, 0.005, res.FitMin)
	assert.Equal(t, 0.055, res.FitMax)
	assert.Equal(t, 50, res.NBins)
}

func TestExtractResolution_NotEnoughBins(t *testing.T) {
	h := hbook.NewH1D(10, -0.1, 0.1)
	h.Fill(-0.09, 1)

	_, err := ExtractResolution(h, 0.005, 0.055)
	assert.Error(t, err)
}

func TestGaussian(t *testing.T) {
	ps := []float64{10, 1, 2}
	assert.Equal(t, 10.0, Gaussian(1, ps))
	assert.InDelta(t, 10*math.Exp(-0.5), Gaussian(3, ps), 1e-12)
	assert.InDelta(t, Gaussian(-1, ps), Gaussian(3, ps), 1e-12)
}

func TestResolutionCurve(t *testing.T) {
	res := Resolution{Constant: 5, Mean: 0.03, Sigma: 0.01, FitMin: 0.005, FitMax: 0.055}
	s := res.Curve(CURVE_SAMPLES)
	require.Equal(t, CURVE_SAMPLES, s.Len())

	x0, _ := s.XY(0)
	xn, _ := s.XY(CURVE_SAMPLES - 1)
	assert.InDelta(t, 0.005, x0, 1e-12)
	assert.InDelta(t, 0.055, xn, 1e-12)
}
