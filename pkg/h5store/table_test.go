package h5store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

func readTable[T any](t *testing.T, filename string, n int) []T {
	t.Helper()
	f, err := openFile(filename)
	require.NoError(t, err)
	defer f.Close()

	dset, err := f.OpenDataset("Events/events")
	require.NoError(t, err)
	defer dset.Close()

	rows := make([]T, n)
	require.NoError(t, dset.Read(&rows))
	return rows
}

func TestTableWriter_Generated(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gen.h5")
	w, err := NewTableWriter(filename, analysis.Generated, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, w.WriteRecord(&analysis.EventRecord{
			Event:     i,
			WMC:       1.5 + float32(i),
			Q2MC:      2,
			WeightGen: 0.5,
			W:         99,
		}))
	}
	assert.Equal(t, 3, w.Rows())
	require.NoError(t, w.Close())

	rows := readTable[generatedRowHDF5](t, filename, 3)
	want := []generatedRowHDF5{
		{event: 0, w_mc: 1.5, q2_mc: 2, weight: 0.5},
		{event: 1, w_mc: 2.5, q2_mc: 2, weight: 0.5},
		{event: 2, w_mc: 3.5, q2_mc: 2, weight: 0.5},
	}
	if diff := cmp.Diff(want, rows, cmp.AllowUnexported(generatedRowHDF5{})); diff != "" {
		t.Errorf("generated rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTableWriter_ReconstructedAcrossFlushes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rec.h5")
	w, err := NewTableWriter(filename, analysis.Reconstructed, 0)
	require.NoError(t, err)

	n := TABLE_BUFFER + 10
	for i := 0; i < n; i++ {
		require.NoError(t, w.WriteRecord(&analysis.EventRecord{Event: i, W: 2, MM2Exclusive: 0.001, ProtAngleBtwnP: 45}))
	}
	assert.Equal(t, TABLE_BUFFER, w.EvtCounter)
	require.NoError(t, w.Close())

	rows := readTable[reconstructedRowHDF5](t, filename, n)
	last := rows[n-1]
	assert.Equal(t, int32(n-1), last.event)
	assert.Equal(t, float32(2), last.w)
	assert.Equal(t, float32(0.001), last.mm2_excl)
	assert.Equal(t, float32(45), last.prot_theta_angle_btwn_P)
}

func TestTableWriter_Empty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.h5")
	w, err := NewTableWriter(filename, analysis.Generated, 4)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 0, w.Rows())
}

func TestTableWriter_DiscardRemovesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rec.h5")
	w, err := NewTableWriter(filename, analysis.Reconstructed, 0)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(&analysis.EventRecord{Event: 1, W: 2}))

	w.Discard()
	_, err = os.Stat(filename)
	assert.True(t, os.IsNotExist(err))
}
