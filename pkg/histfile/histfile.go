// Package histfile picks the histogram container implementation from a file
// extension.
package histfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	analysis "github.com/clas12-go/analysis_go/pkg"
	"github.com/clas12-go/analysis_go/pkg/h5store"
)

var ErrUnknownFormat = errors.New("unknown container format")

type Format int

const (
	FormatUnknown Format = iota
	FormatROOT
	FormatHDF5
)

func (f Format) String() string {
	switch f {
	case FormatROOT:
		return "root"
	case FormatHDF5:
		return "hdf5"
	default:
		return "unknown"
	}
}

func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".root":
		return FormatROOT
	case ".h5", ".hdf5":
		return FormatHDF5
	default:
		return FormatUnknown
	}
}

// Open opens filename for reading.
func Open(filename string) (analysis.HistogramSource, error) {
	switch FormatOf(filename) {
	case FormatROOT:
		f, err := analysis.OpenROOT(filename)
		if err != nil {
			return nil, err
		}
		return f, nil
	case FormatHDF5:
		c, err := h5store.Open(filename)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, &analysis.ErrOpenFile{Filename: filename, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(filename))}
}

// Create creates filename, overwriting any existing file.
func Create(filename string) (analysis.HistogramSink, error) {
	switch FormatOf(filename) {
	case FormatROOT:
		w, err := analysis.CreateROOT(filename)
		if err != nil {
			return nil, err
		}
		return w, nil
	case FormatHDF5:
		c, err := h5store.Create(filename)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, &analysis.ErrCreateOutput{Filename: filename, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(filename))}
}

// CreateEvents creates a table sink for event records. CSV files are written
// atomically on Close.
func CreateEvents(filename string, p analysis.Provenance, compression int) (analysis.RecordSink, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".h5", ".hdf5":
		w, err := h5store.NewTableWriter(filename, p, compression)
		if err != nil {
			return nil, err
		}
		return w, nil
	case ".csv", ".txt", "":
		return analysis.CreateCSVFile(filename, p), nil
	}
	return nil, &analysis.ErrCreateOutput{Filename: filename, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(filename))}
}
