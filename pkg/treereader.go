package analysis

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// EventReader walks the entries of a flat tree of per-event kinematics.
type EventReader struct {
	Filename string
	TreeName string
	file     *riofs.File
	tree     rtree.Tree
	rvars    []rtree.ReadVar
}

func OpenEvents(filename, treeName string) (*EventReader, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	obj, err := riofs.Dir(f).Get(treeName)
	if err != nil {
		f.Close()
		return nil, &ErrRetrieval{Filename: filename, Path: treeName, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, &ErrRetrieval{Filename: filename, Path: treeName, Err: fmt.Errorf("%w: got %s, want tree", ErrWrongShape, obj.Class())}
	}

	// Bind only the scalar branches an EventRecord knows about
	var rvars []rtree.ReadVar
	for _, rv := range rtree.NewReadVars(tree) {
		if _, known := recordFields[rv.Name]; !known {
			continue
		}
		if _, scalar := toFloat64(rv.Value); !scalar {
			continue
		}
		rvars = append(rvars, rv)
	}

	return &EventReader{
		Filename: filename,
		TreeName: treeName,
		file:     f,
		tree:     tree,
		rvars:    rvars,
	}, nil
}

// Entries returns the number of entries in the tree.
func (r *EventReader) Entries() int64 {
	return r.tree.Entries()
}

// Branches returns the names of the branches that will be read.
func (r *EventReader) Branches() []string {
	names := make([]string, len(r.rvars))
	for i, rv := range r.rvars {
		names[i] = rv.Name
	}
	return names
}

// Read calls fn with a fresh record for every entry of the tree.
func (r *EventReader) Read(fn func(e *EventRecord) error) (int, error) {
	if len(r.rvars) == 0 {
		return 0, &ErrRetrieval{Filename: r.Filename, Path: r.TreeName, Err: fmt.Errorf("%w: no known branches", ErrNotFound)}
	}
	reader, err := rtree.NewReader(r.tree, r.rvars)
	if err != nil {
		return 0, fmt.Errorf("could not create tree reader: %w", err)
	}
	defer reader.Close()

	n := 0
	err = reader.Read(func(ctx rtree.RCtx) error {
		var e EventRecord
		for _, rv := range r.rvars {
			v, _ := toFloat64(rv.Value)
			recordFields[rv.Name](&e, v)
		}
		n++
		return fn(&e)
	})
	if err != nil {
		return n, fmt.Errorf("could not read tree %q: %w", r.TreeName, err)
	}
	return n, nil
}

func (r *EventReader) Close() error {
	return r.file.Close()
}

func toFloat64(ptr any) (float64, bool) {
	switch v := ptr.(type) {
	case *float32:
		return float64(*v), true
	case *float64:
		return *v, true
	case *int8:
		return float64(*v), true
	case *int16:
		return float64(*v), true
	case *int32:
		return float64(*v), true
	case *int64:
		return float64(*v), true
	case *uint8:
		return float64(*v), true
	case *uint16:
		return float64(*v), true
	case *uint32:
		return float64(*v), true
	case *uint64:
		return float64(*v), true
	case *bool:
		if *v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ReadEvents streams every entry of treeName in filename into fn.
func ReadEvents(filename, treeName string, fn func(e *EventRecord) error) (int, error) {
	r, err := OpenEvents(filename, treeName)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return r.Read(fn)
}
