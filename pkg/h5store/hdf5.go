package h5store

import (
	"fmt"
	"strings"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// createGroupPath creates every missing group along a "/" separated path and
// returns the innermost one.
func createGroupPath(file *hdf5.File, path string) (*hdf5.Group, error) {
	current := ""
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		if file.LinkExists(current) {
			continue
		}
		g, err := createGroup(file, current)
		if err != nil {
			return nil, err
		}
		g.Close()
	}
	return file.OpenGroup(current)
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compression int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer file_space.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	plist.SetChunk(chunks)

	// Set compression level
	plist.SetDeflate(compression)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data to an extendable table that already holds
// rowsInTable rows.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowsInTable int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	newsize := []uint{uint(rowsInTable) + length}
	if err := dataset.Resize(newsize); err != nil {
		return fmt.Errorf("error extending table to %d rows: %w", newsize[0], err)
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(rowsInTable)}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}

	return dataset.WriteSubset(data, dataspace, filespace)
}

func writeFloats(group *hdf5.Group, name string, data []float64, dims []uint) error {
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	dset, err := group.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer dset.Close()
	return dset.Write(&data)
}

func readFloats(group *hdf5.Group, name string) ([]float64, []uint, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, nil, err
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, nil, err
	}
	n := uint(1)
	for _, d := range dims {
		n *= d
	}
	data := make([]float64, n)
	if err := dset.Read(&data); err != nil {
		return nil, nil, err
	}
	return data, dims, nil
}

// Strings are stored as plain byte datasets.
func writeString(group *hdf5.Group, name string, s string) error {
	data := []byte(s)
	if len(data) == 0 {
		data = []byte{0}
	}
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(data))}, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	dset, err := group.CreateDataset(name, hdf5.T_NATIVE_UINT8, space)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer dset.Close()
	return dset.Write(&data)
}

func readString(group *hdf5.Group, name string) (string, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return "", err
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return "", err
	}
	data := make([]byte, dims[0])
	if err := dset.Read(&data); err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\x00"), nil
}
