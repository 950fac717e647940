package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongShape means the named object exists but is not the expected histogram kind.
	ErrWrongShape = errors.New("object has the wrong shape")
	// ErrBinning is returned when two histograms cannot be combined bin by bin.
	ErrBinning = errors.New("incompatible binning")
	// ErrNotFound means no object is stored under the requested path.
	ErrNotFound = errors.New("object not found")
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrRetrieval represents a named distribution that is missing from a file,
// or that could not be cast to the requested type.
type ErrRetrieval struct {
	Filename string
	Path     string
	Err      error
}

func (e *ErrRetrieval) Error() string {
	return fmt.Sprintf("error retrieving %q from %q: %v", e.Path, e.Filename, e.Err)
}

func (e *ErrRetrieval) Unwrap() error { return e.Err }

// ErrCreateOutput represents an output file that could not be created or
// was left in an invalid state.
type ErrCreateOutput struct {
	Filename string
	Err      error
}

func (e *ErrCreateOutput) Error() string {
	return fmt.Sprintf("error creating output file %q: %v", e.Filename, e.Err)
}

func (e *ErrCreateOutput) Unwrap() error { return e.Err }
