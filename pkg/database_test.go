package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) Configuration {
	config := DefaultConfiguration()
	config.NoDB = false
	config.DBDriver = "sqlite"
	config.DBPath = filepath.Join(t.TempDir(), "catalog.db")
	return config
}

func TestCatalogRoundTrip(t *testing.T) {
	db, err := ConnectToDatabase(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RecordRun(db, RunEntry{
		Pipeline:   "mm2resolution",
		InputPath:  "rec_mm2.root",
		OutputPath: "out.root",
		Provenance: "reconstructed",
		StdDev:     0.012,
		Sigma:      0.008,
		CreatedAt:  "2024-01-01T00:00:00Z",
	}))
	require.NoError(t, RecordRun(db, RunEntry{Pipeline: "eventcsv", InputPath: "gen.root", Entries: 10}))

	runs, err := ListRuns(db, "mm2resolution")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "rec_mm2.root", runs[0].InputPath)
	assert.Equal(t, 0.008, runs[0].Sigma)

	runs, err = ListRuns(db, "eventcsv")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(10), runs[0].Entries)
	assert.NotEmpty(t, runs[0].CreatedAt)
}

func TestEnsureCatalog_Idempotent(t *testing.T) {
	db, err := ConnectToDatabase(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, EnsureCatalog(db))
	assert.NoError(t, EnsureCatalog(db))
}

func TestCatalogRun(t *testing.T) {
	config := sqliteConfig(t)
	l := &recordingLogger{}
	CatalogRun(config, RunEntry{Pipeline: "comparison", InputPath: "exp.root,sim.root"}, l)
	assert.Empty(t, l.errors)

	db, err := ConnectToDatabase(config)
	require.NoError(t, err)
	defer db.Close()
	runs, err := ListRuns(db, "comparison")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestCatalogRun_ReportsFailure(t *testing.T) {
	config := DefaultConfiguration()
	config.NoDB = false
	config.DBDriver = "oracle"

	l := &recordingLogger{}
	CatalogRun(config, RunEntry{Pipeline: "eventcsv"}, l)
	require.Len(t, l.errors, 1)
	assert.Contains(t, l.errors[0], "Error connecting to database")
}

func TestCatalogRun_Disabled(t *testing.T) {
	config := DefaultConfiguration()
	config.NoDB = true
	config.DBDriver = "oracle"

	l := &recordingLogger{}
	CatalogRun(config, RunEntry{Pipeline: "eventcsv"}, l)
	assert.Empty(t, l.errors)
}

func TestConnectToDatabase_UnknownDriver(t *testing.T) {
	config := DefaultConfiguration()
	config.DBDriver = "oracle"
	_, err := ConnectToDatabase(config)
	assert.Error(t, err)
}
