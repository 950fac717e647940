package analysis

import (
	"path"

	"go-hep.org/x/hep/hbook"
)

// HistogramSource gives access to named distributions stored in a
// hierarchical container. Paths use "/" between groups, e.g. "MM2/MM2".
type HistogramSource interface {
	H1D(path string) (*hbook.H1D, error)
	H2D(path string) (*hbook.H2D, error)
	Close() error
}

// HistogramSink stores named objects in a container opened in overwrite mode.
type HistogramSink interface {
	PutH1D(path string, h *hbook.H1D) error
	PutH2D(path string, h *hbook.H2D) error
	PutCurve(path string, s *hbook.S2D) error
	PutText(path string, text string) error
	Close() error
}

// BaseName returns the last element of a container path.
func BaseName(p string) string {
	return path.Base(path.Clean("/" + p))
}
