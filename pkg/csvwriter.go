package analysis

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/natefinch/atomic"
)

// RecordSink consumes serialized events. All sinks of a run share one provenance.
type RecordSink interface {
	WriteRecord(e *EventRecord) error
	Close() error
}

// CSVWriter writes one header line followed by one row per event, all in the
// schema of the provenance it was created with.
type CSVWriter struct {
	w          *bufio.Writer
	provenance Provenance
	header     bool
	rows       int
	buf        []byte
}

func NewCSVWriter(w io.Writer, p Provenance) *CSVWriter {
	return &CSVWriter{
		w:          bufio.NewWriter(w),
		provenance: p,
		buf:        make([]byte, 0, 512),
	}
}

func (c *CSVWriter) Provenance() Provenance {
	return c.provenance
}

// WriteHeader writes the header line. Later calls are no-ops.
func (c *CSVWriter) WriteHeader() error {
	if c.header {
		return nil
	}
	c.header = true
	_, err := c.w.WriteString(c.provenance.Header() + "\n")
	return err
}

func (c *CSVWriter) WriteRecord(e *EventRecord) error {
	if err := c.WriteHeader(); err != nil {
		return err
	}
	c.buf = c.provenance.Select(e).AppendRow(c.buf[:0])
	c.buf = append(c.buf, '\n')
	if _, err := c.w.Write(c.buf); err != nil {
		return fmt.Errorf("error writing event %d: %w", e.Event, err)
	}
	c.rows++
	return nil
}

// Rows returns the number of events written so far.
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Flush writes the header, if still pending, and any buffered rows.
func (c *CSVWriter) Flush() error {
	if err := c.WriteHeader(); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *CSVWriter) Close() error {
	return c.Flush()
}

// CSVFile is a CSVWriter whose file only appears on disk once Close succeeds.
type CSVFile struct {
	*CSVWriter
	Filename string
	data     *bytes.Buffer
	closed   bool
}

func CreateCSVFile(filename string, p Provenance) *CSVFile {
	data := &bytes.Buffer{}
	return &CSVFile{
		CSVWriter: NewCSVWriter(data, p),
		Filename:  filename,
		data:      data,
	}
}

// Close flushes the rows and atomically replaces Filename with them.
func (f *CSVFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if err := f.CSVWriter.Flush(); err != nil {
		return &ErrCreateOutput{Filename: f.Filename, Err: err}
	}
	if err := atomic.WriteFile(f.Filename, f.data); err != nil {
		return &ErrCreateOutput{Filename: f.Filename, Err: err}
	}
	return nil
}

// Discard drops everything written so far without touching the disk.
func (f *CSVFile) Discard() {
	f.closed = true
	f.data.Reset()
}

// MultiSink forwards each record to several sinks.
type MultiSink []RecordSink

func (m MultiSink) WriteRecord(e *EventRecord) error {
	for _, s := range m {
		if err := s.WriteRecord(e); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard abandons every sink. Sinks that can drop their output do so, the
// rest are closed.
func (m MultiSink) Discard() {
	for _, s := range m {
		if d, ok := s.(interface{ Discard() }); ok {
			d.Discard()
			continue
		}
		s.Close()
	}
}
