package analysis

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// ROOTFile reads histograms from a ROOT file.
type ROOTFile struct {
	File     *riofs.File
	Filename string
	dir      riofs.Directory
}

func OpenROOT(filename string) (*ROOTFile, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	return &ROOTFile{File: f, Filename: filename, dir: riofs.Dir(f)}, nil
}

func (r *ROOTFile) get(path string) (root.Object, error) {
	obj, err := r.dir.Get(path)
	if err != nil {
		return nil, &ErrRetrieval{Filename: r.Filename, Path: path, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	return obj, nil
}

func (r *ROOTFile) H1D(path string) (*hbook.H1D, error) {
	obj, err := r.get(path)
	if err != nil {
		return nil, err
	}
	// TH2 also satisfies rhist.H1, so rule it out first
	if _, is2d := obj.(rhist.H2); is2d {
		return nil, r.wrongShape(path, obj, "1-D histogram")
	}
	h, ok := obj.(rhist.H1)
	if !ok {
		return nil, r.wrongShape(path, obj, "1-D histogram")
	}
	return rootcnv.H1D(h), nil
}

func (r *ROOTFile) H2D(path string) (*hbook.H2D, error) {
	obj, err := r.get(path)
	if err != nil {
		return nil, err
	}
	h, ok := obj.(rhist.H2)
	if !ok {
		return nil, r.wrongShape(path, obj, "2-D histogram")
	}
	return rootcnv.H2D(h), nil
}

// Curve reads back a graph stored with PutCurve.
func (r *ROOTFile) Curve(path string) (*hbook.S2D, error) {
	obj, err := r.get(path)
	if err != nil {
		return nil, err
	}
	g, ok := obj.(rhist.Graph)
	if !ok {
		return nil, r.wrongShape(path, obj, "graph")
	}
	return rootcnv.S2D(g), nil
}

// Text reads back a string stored with PutText.
func (r *ROOTFile) Text(path string) (string, error) {
	obj, err := r.get(path)
	if err != nil {
		return "", err
	}
	s, ok := obj.(*rbase.ObjString)
	if !ok {
		return "", r.wrongShape(path, obj, "string")
	}
	return s.String(), nil
}

func (r *ROOTFile) wrongShape(path string, obj root.Object, want string) error {
	return &ErrRetrieval{
		Filename: r.Filename,
		Path:     path,
		Err:      fmt.Errorf("%w: got %s, want %s", ErrWrongShape, obj.Class(), want),
	}
}

func (r *ROOTFile) Close() error {
	return r.File.Close()
}

// ROOTWriter stores histograms in a newly created ROOT file.
type ROOTWriter struct {
	File     *riofs.File
	Filename string
	dir      riofs.Directory
}

func CreateROOT(filename string) (*ROOTWriter, error) {
	f, err := groot.Create(filename)
	if err != nil {
		return nil, &ErrCreateOutput{Filename: filename, Err: err}
	}
	return &ROOTWriter{File: f, Filename: filename, dir: riofs.Dir(f)}, nil
}

func (w *ROOTWriter) put(path string, obj root.Object) error {
	if err := w.dir.Put(path, obj); err != nil {
		return &ErrCreateOutput{Filename: w.Filename, Err: fmt.Errorf("error writing %q: %w", path, err)}
	}
	return nil
}

func (w *ROOTWriter) PutH1D(path string, h *hbook.H1D) error {
	setName(h.Ann, path)
	return w.put(path, rhist.NewH1DFrom(h))
}

func (w *ROOTWriter) PutH2D(path string, h *hbook.H2D) error {
	setName(h.Ann, path)
	return w.put(path, rhist.NewH2DFrom(h))
}

func (w *ROOTWriter) PutCurve(path string, s *hbook.S2D) error {
	setName(s.Annotation(), path)
	return w.put(path, rhist.NewGraphFrom(s))
}

func (w *ROOTWriter) PutText(path string, text string) error {
	return w.put(path, rbase.NewObjString(text))
}

func (w *ROOTWriter) Close() error {
	if err := w.File.Close(); err != nil {
		return &ErrCreateOutput{Filename: w.Filename, Err: err}
	}
	return nil
}

func setName(ann hbook.Annotation, path string) {
	if ann == nil {
		return
	}
	ann["name"] = BaseName(path)
}
