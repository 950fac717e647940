package analysis

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fit"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/optimize"
)

// Resolution holds the spread of a distribution, measured twice: from the
// histogram moments and from a Gaussian fit of the peak.
type Resolution struct {
	StdDev   float64
	Constant float64
	Mean     float64
	Sigma    float64
	FitMin   float64
	FitMax   float64
	NBins    int
}

// Gaussian is the "gaus" model: ps = [constant, mean, sigma].
func Gaussian(x float64, ps []float64) float64 {
	v := (x - ps[1]) / ps[2]
	return ps[0] * math.Exp(-0.5*v*v)
}

// Curve samples the fitted Gaussian over the fit window.
func (r Resolution) Curve(n int) *hbook.S2D {
	ps := []float64{r.Constant, r.Mean, r.Sigma}
	pts := make([]hbook.Point2D, n)
	step := (r.FitMax - r.FitMin) / float64(n-1)
	for i := range pts {
		x := r.FitMin + float64(i)*step
		pts[i] = hbook.Point2D{X: x, Y: Gaussian(x, ps)}
	}
	return hbook.NewS2D(pts...)
}

// ExtractResolution computes the standard deviation of h and fits a
// Gaussian to the bins whose centre lies in [xmin, xmax].
func ExtractResolution(h *hbook.H1D, xmin, xmax float64) (Resolution, error) {
	res := Resolution{
		StdDev: h.XStdDev(),
		FitMin: xmin,
		FitMax: xmax,
	}

	var xs, ys, errs []float64
	for i := range h.Binning.Bins {
		bin := &h.Binning.Bins[i]
		x := bin.XMid()
		if x < xmin || x > xmax || bin.SumW() == 0 {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, bin.SumW())
		errs = append(errs, math.Sqrt(bin.SumW2()))
	}
	res.NBins = len(xs)
	if len(xs) < 3 {
		return res, fmt.Errorf("not enough filled bins in [%g, %g] to fit a gaussian: %d", xmin, xmax, len(xs))
	}

	f := fit.Func1D{
		F:   Gaussian,
		X:   xs,
		Y:   ys,
		Err: errs,
		Ps:  initialGaussian(xs, ys, xmax-xmin),
	}
	result, err := fit.Curve1D(f, nil, &optimize.NelderMead{})
	if err != nil {
		return res, fmt.Errorf("gaussian fit failed: %w", err)
	}
	if err := result.Status.Err(); err != nil {
		return res, fmt.Errorf("gaussian fit did not converge: %w", err)
	}

	res.Constant = result.X[0]
	res.Mean = result.X[1]
	res.Sigma = math.Abs(result.X[2])
	logger.Info(fmt.Sprintf("Gaussian fit: constant=%g mean=%g sigma=%g (%d bins)",
		res.Constant, res.Mean, res.Sigma, res.NBins), "resolution")
	return res, nil
}

func initialGaussian(xs, ys []float64, width float64) []float64 {
	var sumw, sumwx, sumwx2, peak float64
	for i, x := range xs {
		w := ys[i]
		sumw += w
		sumwx += w * x
		sumwx2 += w * x * x
		peak = math.Max(peak, w)
	}
	mean := sumwx / sumw
	sigma := math.Sqrt(math.Max(sumwx2/sumw-mean*mean, 0))
	if sigma == 0 || math.IsNaN(sigma) {
		sigma = width / 4
	}
	return []float64{peak, mean, sigma}
}
