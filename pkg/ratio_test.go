package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func binAt(h *hbook.H2D, x, y float64) *hbook.Bin2D {
	for i := range h.Binning.Bins {
		b := &h.Binning.Bins[i]
		if b.XRange.Min <= x && x < b.XRange.Max && b.YRange.Min <= y && y < b.YRange.Max {
			return b
		}
	}
	return nil
}

func TestDivideH2D(t *testing.T) {
	num := hbook.NewH2D(2, 0, 2, 2, 0, 2)
	den := hbook.NewH2D(2, 0, 2, 2, 0, 2)

	num.Fill(0.5, 0.5, 10)
	den.Fill(0.5, 0.5, 2)

	num.Fill(1.5, 0.5, 3) // denominator left empty

	num.Fill(0.5, 1.5, 4)
	den.Fill(0.5, 1.5, 8)

	ratio, err := DivideH2D(num, den)
	require.NoError(t, err)
	assert.Equal(t, 2, ratio.Binning.Nx)
	assert.Equal(t, 2, ratio.Binning.Ny)

	assert.InDelta(t, 5, binAt(ratio, 0.5, 0.5).SumW(), 1e-12)
	assert.Equal(t, 0.0, binAt(ratio, 1.5, 0.5).SumW())
	assert.InDelta(t, 0.5, binAt(ratio, 0.5, 1.5).SumW(), 1e-12)
	assert.Equal(t, 0.0, binAt(ratio, 1.5, 1.5).SumW())
}

func TestDivideH2D_Errors(t *testing.T) {
	num := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	den := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	for i := 0; i < 10; i++ {
		num.Fill(0.5, 0.5, 1)
	}
	for i := 0; i < 2; i++ {
		den.Fill(0.5, 0.5, 1)
	}

	ratio, err := DivideH2D(num, den)
	require.NoError(t, err)
	bin := binAt(ratio, 0.5, 0.5)
	assert.InDelta(t, 5, bin.SumW(), 1e-12)
	// (10*4 + 2*100) / 16
	assert.InDelta(t, 15, bin.SumW2(), 1e-12)
	assert.InDelta(t, 0.5, bin.XMean(), 1e-12)
}

func TestDivideH2D_Outflows(t *testing.T) {
	num := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	den := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	num.Fill(-1, 0.5, 4)
	den.Fill(-1, 0.5, 2)

	ratio, err := DivideH2D(num, den)
	require.NoError(t, err)

	var outflow float64
	for _, d := range ratio.Binning.Outflows {
		outflow += d.SumW()
	}
	assert.InDelta(t, 2, outflow, 1e-12)
	assert.Equal(t, 0.0, ratio.Binning.Bins[0].SumW())
	assert.InDelta(t, 2, ratio.Binning.Dist.SumW(), 1e-12)
}

func TestDivideH2D_KeepsAnnotations(t *testing.T) {
	num := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	num.Ann["name"] = "vx_vs_vy"
	den := hbook.NewH2D(1, 0, 1, 1, 0, 1)

	ratio, err := DivideH2D(num, den)
	require.NoError(t, err)
	assert.Equal(t, "vx_vs_vy", ratio.Ann["name"])
}

func TestDivideH2D_IncompatibleBinning(t *testing.T) {
	num := hbook.NewH2D(2, 0, 2, 2, 0, 2)

	_, err := DivideH2D(num, hbook.NewH2D(3, 0, 2, 2, 0, 2))
	assert.ErrorIs(t, err, ErrBinning)

	_, err = DivideH2D(num, hbook.NewH2D(2, 0, 4, 2, 0, 2))
	assert.ErrorIs(t, err, ErrBinning)
}

type memorySource struct {
	h1 map[string]*hbook.H1D
	h2 map[string]*hbook.H2D
}

func (m memorySource) H1D(path string) (*hbook.H1D, error) {
	if h, ok := m.h1[path]; ok {
		return h, nil
	}
	return nil, &ErrRetrieval{Filename: "memory", Path: path, Err: ErrNotFound}
}

func (m memorySource) H2D(path string) (*hbook.H2D, error) {
	if h, ok := m.h2[path]; ok {
		return h, nil
	}
	return nil, &ErrRetrieval{Filename: "memory", Path: path, Err: ErrNotFound}
}

func (memorySource) Close() error { return nil }

func TestCompare(t *testing.T) {
	cfg := NewComparisonConfig(DefaultConfiguration())

	exp := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	exp.Fill(0.5, 0.5, 6)
	sim := hbook.NewH2D(1, 0, 1, 1, 0, 1)
	sim.Fill(0.5, 0.5, 3)

	ratio, err := Compare(
		memorySource{h2: map[string]*hbook.H2D{cfg.ExpHist: exp}},
		memorySource{h2: map[string]*hbook.H2D{cfg.SimHist: sim}},
		cfg,
	)
	require.NoError(t, err)
	assert.Equal(t, "comparison_hist", ratio.Ann["name"])
	assert.Equal(t, "Comparison of vx vs vy (exp / sim_corr)", ratio.Ann["title"])
	assert.InDelta(t, 2, ratio.Binning.Bins[0].SumW(), 1e-12)
}

func TestCompare_MissingDistribution(t *testing.T) {
	cfg := NewComparisonConfig(DefaultConfiguration())
	exp := hbook.NewH2D(1, 0, 1, 1, 0, 1)

	_, err := Compare(
		memorySource{h2: map[string]*hbook.H2D{cfg.ExpHist: exp}},
		memorySource{},
		cfg,
	)
	var retrieval *ErrRetrieval
	require.ErrorAs(t, err, &retrieval)
	assert.Equal(t, "W vs Q2/corr_vx_vs_vy", retrieval.Path)
	assert.ErrorIs(t, err, ErrNotFound)
}
