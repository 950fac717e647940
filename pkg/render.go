package analysis

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const CURVE_SAMPLES = 100

var (
	colorBlack = color.RGBA{A: 255}
	colorGreen = color.RGBA{G: 255, A: 255}
	colorBlue  = color.RGBA{B: 255, A: 255}
)

type RenderOptions struct {
	Title   string
	XLabel  string
	YLabel  string
	DrawMin float64
	DrawMax float64
	Width   vg.Length
	Height  vg.Length
}

func NewRenderOptions(config Configuration) RenderOptions {
	return RenderOptions{
		Title:   "MM² Resolution",
		XLabel:  "MM² (GeV²)",
		YLabel:  "Yields",
		DrawMin: config.DrawMin,
		DrawMax: config.DrawMax,
		Width:   vg.Length(config.CanvasWidth) * vg.Inch,
		Height:  vg.Length(config.CanvasHeight) * vg.Inch,
	}
}

// LineColors returns the histogram and fit curve colours for a sample.
func LineColors(kind SampleKind) (color.Color, color.Color) {
	switch kind {
	case SampleReconstructed, SampleExperimental:
		return colorGreen, colorBlue
	default:
		return colorBlack, colorBlack
	}
}

// LegendLabels returns the legend entries for the histogram and the fit.
func LegendLabels(res Resolution) (string, string) {
	return fmt.Sprintf("MM² (σ = %.4f)", res.StdDev),
		fmt.Sprintf("Gaussian Fit (σ = %.4f)", res.Sigma)
}

func RenderResolution(h *hbook.H1D, res Resolution, kind SampleKind, opts RenderOptions) *hplot.Plot {
	histColor, fitColor := LineColors(kind)
	histLabel, fitLabel := LegendLabels(res)

	p := hplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Min = opts.DrawMin
	p.X.Max = opts.DrawMax
	p.Legend.Top = true

	hh := hplot.NewH1D(h)
	hh.LineStyle.Color = histColor
	hh.LineStyle.Width = vg.Points(2)
	hh.FillColor = nil
	p.Add(hh)

	ps := []float64{res.Constant, res.Mean, res.Sigma}
	fn := plotter.NewFunction(func(x float64) float64 { return Gaussian(x, ps) })
	fn.XMin = res.FitMin
	fn.XMax = res.FitMax
	fn.Samples = CURVE_SAMPLES
	fn.LineStyle.Color = fitColor
	fn.LineStyle.Width = vg.Points(2)
	p.Add(fn)

	p.Legend.Add(histLabel, hh)
	p.Legend.Add(fitLabel, fn)
	return p
}

var imageFormats = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".pdf": true,
	".svg": true, ".eps": true, ".tif": true, ".tiff": true,
}

func IsImageFile(filename string) bool {
	return imageFormats[strings.ToLower(filepath.Ext(filename))]
}

// SaveResolution renders the histogram and its fit into an image file.
func SaveResolution(filename string, h *hbook.H1D, res Resolution, kind SampleKind, opts RenderOptions) error {
	p := RenderResolution(h, res, kind, opts)
	if err := hplot.Save(p, opts.Width, opts.Height, filename); err != nil {
		return &ErrCreateOutput{Filename: filename, Err: err}
	}
	return nil
}

// WriteResolution stores the "canvas" composite: the histogram, the fit
// curve and the legend lines.
func WriteResolution(sink HistogramSink, h *hbook.H1D, res Resolution, opts RenderOptions) error {
	histLabel, fitLabel := LegendLabels(res)
	h.Ann["title"] = fmt.Sprintf("%s;%s;%s", opts.Title, opts.XLabel, opts.YLabel)

	if err := sink.PutH1D("canvas/MM2", h); err != nil {
		return err
	}
	if err := sink.PutCurve("canvas/gaus", res.Curve(CURVE_SAMPLES)); err != nil {
		return err
	}
	return sink.PutText("canvas/legend", histLabel+"\n"+fitLabel)
}
