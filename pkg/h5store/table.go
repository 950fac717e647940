package h5store

import (
	"errors"
	"fmt"
	"os"

	hdf5 "github.com/jmbenlloch/go-hdf5"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

// Rows are flushed to disk in blocks of this size.
const TABLE_BUFFER = 4096

// Field names match the CSV column names.
type generatedRowHDF5 struct {
	event  int32
	w_mc   float32
	q2_mc  float32
	weight float32
}

type reconstructedRowHDF5 struct {
	event                   int32
	w                       float32
	q2                      float32
	weight                  float32
	mm2_mPim                float32
	mm2_mPip                float32
	mm2_mProt               float32
	mm2_excl                float32
	pim_mom_miss            float32
	pim_mom_meas            float32
	pip_mom_miss            float32
	pip_mom_meas            float32
	prot_mom_miss           float32
	prot_mom_meas           float32
	excl_mom                float32
	pim_theta_miss          float32
	pim_theta_meas          float32
	pip_theta_miss          float32
	pip_theta_meas          float32
	prot_theta_miss         float32
	prot_theta_meas         float32
	pim_theta_angle_btwn_P  float32
	pip_theta_angle_btwn_P  float32
	prot_theta_angle_btwn_P float32
}

func generatedRow(e *analysis.EventRecord) generatedRowHDF5 {
	r := e.Generated()
	return generatedRowHDF5{
		event:  int32(r.Event),
		w_mc:   r.WMC,
		q2_mc:  r.Q2MC,
		weight: r.Weight,
	}
}

func reconstructedRow(e *analysis.EventRecord) reconstructedRowHDF5 {
	r := e.Reconstructed()
	return reconstructedRowHDF5{
		event:                   int32(r.Event),
		w:                       r.W,
		q2:                      r.Q2,
		weight:                  r.Weight,
		mm2_mPim:                r.MM2MissPim,
		mm2_mPip:                r.MM2MissPip,
		mm2_mProt:               r.MM2MissProt,
		mm2_excl:                r.MM2Exclusive,
		pim_mom_miss:            r.PimMomMiss,
		pim_mom_meas:            r.PimMomMeas,
		pip_mom_miss:            r.PipMomMiss,
		pip_mom_meas:            r.PipMomMeas,
		prot_mom_miss:           r.ProtMomMiss,
		prot_mom_meas:           r.ProtMomMeas,
		excl_mom:                r.ExclMom,
		pim_theta_miss:          r.PimThetaMiss,
		pim_theta_meas:          r.PimThetaMeas,
		pip_theta_miss:          r.PipThetaMiss,
		pip_theta_meas:          r.PipThetaMeas,
		prot_theta_miss:         r.ProtThetaMiss,
		prot_theta_meas:         r.ProtThetaMeas,
		pim_theta_angle_btwn_P:  r.PimAngleBtwnP,
		pip_theta_angle_btwn_P:  r.PipAngleBtwnP,
		prot_theta_angle_btwn_P: r.ProtAngleBtwnP,
	}
}

// TableWriter stores events in an extendable compound table at
// /Events/events, using the column layout of the run provenance.
type TableWriter struct {
	File       *hdf5.File
	Filename   string
	Provenance analysis.Provenance
	Group      *hdf5.Group
	EventTable *hdf5.Dataset
	EvtCounter int

	genRows []generatedRowHDF5
	recRows []reconstructedRowHDF5
}

func NewTableWriter(filename string, p analysis.Provenance, compression int) (*TableWriter, error) {
	file, err := createFile(filename)
	if err != nil {
		return nil, &analysis.ErrCreateOutput{Filename: filename, Err: err}
	}
	w := &TableWriter{
		File:       file,
		Filename:   filename,
		Provenance: p,
	}
	w.Group, err = createGroup(file, "Events")
	if err != nil {
		file.Close()
		return nil, err
	}

	var datatype interface{} = generatedRowHDF5{}
	if p == analysis.Reconstructed {
		datatype = reconstructedRowHDF5{}
	}
	w.EventTable, err = createTable(w.Group, "events", datatype, compression)
	if err != nil {
		w.Group.Close()
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *TableWriter) WriteRecord(e *analysis.EventRecord) error {
	if w.Provenance == analysis.Reconstructed {
		w.recRows = append(w.recRows, reconstructedRow(e))
	} else {
		w.genRows = append(w.genRows, generatedRow(e))
	}
	if w.pending() >= TABLE_BUFFER {
		return w.Flush()
	}
	return nil
}

func (w *TableWriter) pending() int {
	return len(w.genRows) + len(w.recRows)
}

// Flush appends the buffered rows to the table.
func (w *TableWriter) Flush() error {
	n := w.pending()
	if n == 0 {
		return nil
	}
	var err error
	if w.Provenance == analysis.Reconstructed {
		err = writeArrayToTable(w.EventTable, &w.recRows, w.EvtCounter)
		w.recRows = w.recRows[:0]
	} else {
		err = writeArrayToTable(w.EventTable, &w.genRows, w.EvtCounter)
		w.genRows = w.genRows[:0]
	}
	if err != nil {
		return fmt.Errorf("error writing %d events to %s: %w", n, w.Filename, err)
	}
	w.EvtCounter += n
	return nil
}

// Rows returns the number of events stored so far, buffered ones included.
func (w *TableWriter) Rows() int {
	return w.EvtCounter + w.pending()
}

func (w *TableWriter) Close() error {
	var errs []error
	if err := w.Flush(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, w.closeHandles()...)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Discard drops buffered rows and removes the partially written file.
func (w *TableWriter) Discard() {
	w.genRows = w.genRows[:0]
	w.recRows = w.recRows[:0]
	w.closeHandles()
	os.Remove(w.Filename)
}

func (w *TableWriter) closeHandles() []error {
	var errs []error
	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.Group.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing events group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}
	return errs
}
