package analysis

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

// DivideH2D returns num/den bin by bin, outflows included. Bins where den is
// zero are left empty. Errors follow e² = (e1²·c2² + e2²·c1²) / c2⁴.
func DivideH2D(num, den *hbook.H2D) (*hbook.H2D, error) {
	nx, ny := num.Binning.Nx, num.Binning.Ny
	if nx != den.Binning.Nx || ny != den.Binning.Ny {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d bins", ErrBinning, nx, ny, den.Binning.Nx, den.Binning.Ny)
	}

	xedges, yedges := edges2D(num)
	dxedges, dyedges := edges2D(den)
	if !sameEdges(xedges, dxedges) || !sameEdges(yedges, dyedges) {
		return nil, fmt.Errorf("%w: bin edges differ", ErrBinning)
	}

	ratio := hbook.NewH2DFromEdges(xedges, yedges)
	var total hbook.Dist2D
	for i := range ratio.Binning.Bins {
		d := divideDist(num.Binning.Bins[i].Dist, den.Binning.Bins[i].Dist)
		ratio.Binning.Bins[i].Dist = d
		addDist(&total, d)
	}
	for i := range ratio.Binning.Outflows {
		d := divideDist(num.Binning.Outflows[i], den.Binning.Outflows[i])
		ratio.Binning.Outflows[i] = d
		addDist(&total, d)
	}
	ratio.Binning.Dist = total

	for k, v := range num.Ann {
		ratio.Ann[k] = v
	}
	return ratio, nil
}

// divideDist divides one bin. The numerator moments are rescaled so the
// bin keeps its mean position.
func divideDist(num, den hbook.Dist2D) hbook.Dist2D {
	var out hbook.Dist2D
	c2 := den.SumW()
	if c2 == 0 {
		return out
	}
	c1 := num.SumW()
	e1, e2 := num.SumW2(), den.SumW2()
	c := c1 / c2
	w := hbook.Dist0D{
		N:     num.Entries(),
		SumW:  c,
		SumW2: (e1*c2*c2 + e2*c1*c1) / (c2 * c2 * c2 * c2),
	}
	out.X.Dist = w
	out.Y.Dist = w
	if c1 != 0 {
		scale := c / c1
		out.X.Stats.SumWX = scale * num.X.Stats.SumWX
		out.X.Stats.SumWX2 = scale * num.X.Stats.SumWX2
		out.Y.Stats.SumWX = scale * num.Y.Stats.SumWX
		out.Y.Stats.SumWX2 = scale * num.Y.Stats.SumWX2
		out.Stats.SumWXY = scale * num.Stats.SumWXY
	}
	return out
}

func addDist(dst *hbook.Dist2D, d hbook.Dist2D) {
	for _, pair := range [][2]*hbook.Dist1D{{&dst.X, &d.X}, {&dst.Y, &d.Y}} {
		to, from := pair[0], pair[1]
		to.Dist.N += from.Dist.N
		to.Dist.SumW += from.Dist.SumW
		to.Dist.SumW2 += from.Dist.SumW2
		to.Stats.SumWX += from.Stats.SumWX
		to.Stats.SumWX2 += from.Stats.SumWX2
	}
	dst.Stats.SumWXY += d.Stats.SumWXY
}

// edges2D extracts the x and y bin edges. Bins are stored row by row, x first.
func edges2D(h *hbook.H2D) ([]float64, []float64) {
	nx, ny := h.Binning.Nx, h.Binning.Ny
	bins := h.Binning.Bins
	xedges := make([]float64, 0, nx+1)
	for ix := 0; ix < nx; ix++ {
		xedges = append(xedges, bins[ix].XRange.Min)
	}
	xedges = append(xedges, bins[nx-1].XRange.Max)

	yedges := make([]float64, 0, ny+1)
	for iy := 0; iy < ny; iy++ {
		yedges = append(yedges, bins[iy*nx].YRange.Min)
	}
	yedges = append(yedges, bins[(ny-1)*nx].YRange.Max)
	return xedges, yedges
}

func sameEdges(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9*math.Max(1, math.Abs(a[i])) {
			return false
		}
	}
	return true
}

// ComparisonConfig names the inputs and the output of a comparison.
type ComparisonConfig struct {
	ExpHist string
	SimHist string
	Name    string
	Title   string
}

func NewComparisonConfig(config Configuration) ComparisonConfig {
	return ComparisonConfig{
		ExpHist: config.ExpHist,
		SimHist: config.SimHist,
		Name:    config.ComparisonName,
		Title:   config.ComparisonTitle,
	}
}

// Compare divides the experimental distribution by the corrected simulation
// one and relabels the result.
func Compare(exp, sim HistogramSource, cfg ComparisonConfig) (*hbook.H2D, error) {
	num, err := exp.H2D(cfg.ExpHist)
	if err != nil {
		return nil, err
	}
	den, err := sim.H2D(cfg.SimHist)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Dividing %q (%d entries) by %q (%d entries)",
		cfg.ExpHist, num.Entries(), cfg.SimHist, den.Entries()), "comparison")

	ratio, err := DivideH2D(num, den)
	if err != nil {
		return nil, err
	}
	ratio.Ann["name"] = cfg.Name
	ratio.Ann["title"] = cfg.Title
	return ratio, nil
}
