package h5store

import (
	"errors"
	"fmt"
	"path"
	"strings"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"go-hep.org/x/hep/hbook"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

// Every stored object is a group holding a "kind" tag and its YODA encoding,
// which is what Container reads back. Histograms also get plain numeric
// datasets so other HDF5 tools can use them.
const (
	kindH1D = "H1D"
	kindH2D = "H2D"
	kindS2D = "S2D"
)

// Container is an HDF5 file used as a hierarchical histogram store.
type Container struct {
	File     *hdf5.File
	Filename string
	writable bool
}

// Open opens an existing file for reading.
func Open(filename string) (*Container, error) {
	f, err := openFile(filename)
	if err != nil {
		return nil, &analysis.ErrOpenFile{Filename: filename, Err: err}
	}
	return &Container{File: f, Filename: filename}, nil
}

// Create creates filename, truncating it if it exists.
func Create(filename string) (*Container, error) {
	f, err := createFile(filename)
	if err != nil {
		return nil, &analysis.ErrCreateOutput{Filename: filename, Err: err}
	}
	return &Container{File: f, Filename: filename, writable: true}, nil
}

func cleanPath(p string) string {
	return strings.Trim(path.Clean("/"+p), "/")
}

// exists walks p element by element, HDF5 fails on a missing intermediate link.
func (c *Container) exists(p string) bool {
	current := ""
	for _, part := range strings.Split(p, "/") {
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		if !c.File.LinkExists(current) {
			return false
		}
	}
	return true
}

func (c *Container) openObject(p, want string) (*hdf5.Group, error) {
	p = cleanPath(p)
	if !c.exists(p) {
		return nil, &analysis.ErrRetrieval{Filename: c.Filename, Path: p, Err: analysis.ErrNotFound}
	}
	g, err := c.File.OpenGroup(p)
	if err != nil {
		return nil, &analysis.ErrRetrieval{
			Filename: c.Filename,
			Path:     p,
			Err:      fmt.Errorf("%w: not a group: %v", analysis.ErrWrongShape, err),
		}
	}
	kind, err := readString(g, "kind")
	if err != nil || kind != want {
		g.Close()
		if err == nil {
			err = fmt.Errorf("got %s", kind)
		}
		return nil, &analysis.ErrRetrieval{
			Filename: c.Filename,
			Path:     p,
			Err:      fmt.Errorf("%w: want %s: %v", analysis.ErrWrongShape, want, err),
		}
	}
	return g, nil
}

func (c *Container) readYODA(p, want string, into interface{ UnmarshalYODA([]byte) error }) error {
	g, err := c.openObject(p, want)
	if err != nil {
		return err
	}
	defer g.Close()

	data, err := readString(g, "yoda")
	if err != nil {
		return &analysis.ErrRetrieval{Filename: c.Filename, Path: p, Err: err}
	}
	if err := into.UnmarshalYODA([]byte(data)); err != nil {
		return &analysis.ErrRetrieval{Filename: c.Filename, Path: p, Err: err}
	}
	return nil
}

func (c *Container) H1D(p string) (*hbook.H1D, error) {
	var h hbook.H1D
	if err := c.readYODA(p, kindH1D, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Container) H2D(p string) (*hbook.H2D, error) {
	var h hbook.H2D
	if err := c.readYODA(p, kindH2D, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Curve reads back a graph stored with PutCurve.
func (c *Container) Curve(p string) (*hbook.S2D, error) {
	var s hbook.S2D
	if err := c.readYODA(p, kindS2D, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Text reads back a string stored with PutText.
func (c *Container) Text(p string) (string, error) {
	p = cleanPath(p)
	if !c.exists(p) {
		return "", &analysis.ErrRetrieval{Filename: c.Filename, Path: p, Err: analysis.ErrNotFound}
	}
	dir, name := path.Split(p)
	var g *hdf5.Group
	var err error
	if dir == "" {
		g, err = c.File.OpenGroup("/")
	} else {
		g, err = c.File.OpenGroup(strings.TrimSuffix(dir, "/"))
	}
	if err != nil {
		return "", &analysis.ErrRetrieval{Filename: c.Filename, Path: p, Err: err}
	}
	defer g.Close()

	s, err := readString(g, name)
	if err != nil {
		return "", &analysis.ErrRetrieval{
			Filename: c.Filename,
			Path:     p,
			Err:      fmt.Errorf("%w: not a text dataset: %v", analysis.ErrWrongShape, err),
		}
	}
	return s, nil
}

func (c *Container) objectGroup(p string) (*hdf5.Group, error) {
	if !c.writable {
		return nil, &analysis.ErrCreateOutput{Filename: c.Filename, Err: errors.New("container opened read-only")}
	}
	p = cleanPath(p)
	if c.exists(p) {
		return nil, &analysis.ErrCreateOutput{Filename: c.Filename, Err: fmt.Errorf("%q already exists", p)}
	}
	g, err := createGroupPath(c.File, p)
	if err != nil {
		return nil, &analysis.ErrCreateOutput{Filename: c.Filename, Err: err}
	}
	return g, nil
}

func (c *Container) putObject(p, kind string, obj interface{ MarshalYODA() ([]byte, error) },
	ann hbook.Annotation, extra func(g *hdf5.Group) error) error {
	setName(ann, p)
	data, err := obj.MarshalYODA()
	if err != nil {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: fmt.Errorf("error encoding %q: %w", p, err)}
	}

	g, err := c.objectGroup(p)
	if err != nil {
		return err
	}
	var errs []error
	if err := writeString(g, "kind", kind); err != nil {
		errs = append(errs, err)
	}
	if err := writeString(g, "yoda", string(data)); err != nil {
		errs = append(errs, err)
	}
	if err := writeString(g, "name", annString(ann, "name")); err != nil {
		errs = append(errs, err)
	}
	if err := writeString(g, "title", annString(ann, "title")); err != nil {
		errs = append(errs, err)
	}
	if extra != nil {
		if err := extra(g); err != nil {
			errs = append(errs, err)
		}
	}
	if err := g.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing group: %w", err))
	}
	if len(errs) > 0 {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: fmt.Errorf("error writing %q: %w", p, errors.Join(errs...))}
	}
	return nil
}

func (c *Container) PutH1D(p string, h *hbook.H1D) error {
	return c.putObject(p, kindH1D, h, h.Ann, func(g *hdf5.Group) error {
		bins := h.Binning.Bins
		edges := make([]float64, 0, len(bins)+1)
		contents := make([]float64, len(bins))
		sumw2 := make([]float64, len(bins))
		for i := range bins {
			edges = append(edges, bins[i].XMin())
			contents[i] = bins[i].SumW()
			sumw2[i] = bins[i].SumW2()
		}
		if len(bins) > 0 {
			edges = append(edges, bins[len(bins)-1].XMax())
		}
		return errors.Join(
			writeFloats(g, "xedges", edges, []uint{uint(len(edges))}),
			writeFloats(g, "contents", contents, []uint{uint(len(contents))}),
			writeFloats(g, "sumw2", sumw2, []uint{uint(len(sumw2))}),
		)
	})
}

func (c *Container) PutH2D(p string, h *hbook.H2D) error {
	return c.putObject(p, kindH2D, h, h.Ann, func(g *hdf5.Group) error {
		nx, ny := h.Binning.Nx, h.Binning.Ny
		bins := h.Binning.Bins
		if nx == 0 || ny == 0 {
			return nil
		}
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

		// row major, one row per y bin
		contents := make([]float64, len(bins))
		sumw2 := make([]float64, len(bins))
		for i := range bins {
			contents[i] = bins[i].SumW()
			sumw2[i] = bins[i].SumW2()
		}
		dims := []uint{uint(ny), uint(nx)}
		return errors.Join(
			writeFloats(g, "xedges", xedges, []uint{uint(len(xedges))}),
			writeFloats(g, "yedges", yedges, []uint{uint(len(yedges))}),
			writeFloats(g, "contents", contents, dims),
			writeFloats(g, "sumw2", sumw2, dims),
		)
	})
}

func (c *Container) PutCurve(p string, s *hbook.S2D) error {
	return c.putObject(p, kindS2D, s, s.Annotation(), func(g *hdf5.Group) error {
		n := s.Len()
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := 0; i < n; i++ {
			xs[i], ys[i] = s.XY(i)
		}
		return errors.Join(
			writeFloats(g, "x", xs, []uint{uint(n)}),
			writeFloats(g, "y", ys, []uint{uint(n)}),
		)
	})
}

func (c *Container) PutText(p string, text string) error {
	if !c.writable {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: errors.New("container opened read-only")}
	}
	p = cleanPath(p)
	if c.exists(p) {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: fmt.Errorf("%q already exists", p)}
	}
	dir, name := path.Split(p)
	var g *hdf5.Group
	var err error
	if dir == "" {
		g, err = c.File.OpenGroup("/")
	} else {
		g, err = createGroupPath(c.File, dir)
	}
	if err != nil {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: err}
	}
	defer g.Close()

	if err := writeString(g, name, text); err != nil {
		return &analysis.ErrCreateOutput{Filename: c.Filename, Err: fmt.Errorf("error writing %q: %w", p, err)}
	}
	return nil
}

func (c *Container) Close() error {
	if err := c.File.Close(); err != nil {
		if c.writable {
			return &analysis.ErrCreateOutput{Filename: c.Filename, Err: err}
		}
		return err
	}
	return nil
}

func setName(ann hbook.Annotation, p string) {
	if ann == nil {
		return
	}
	ann["name"] = analysis.BaseName(p)
}

func annString(ann hbook.Annotation, key string) string {
	if v, ok := ann[key].(string); ok {
		return v
	}
	return ""
}

var (
	_ analysis.HistogramSource = (*Container)(nil)
	_ analysis.HistogramSink   = (*Container)(nil)
)
