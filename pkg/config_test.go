package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration_Defaults(t *testing.T) {
	config, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfiguration(), config)
	assert.Equal(t, "MM2/MM2", config.MM2Hist)
	assert.Equal(t, 0.005, config.FitMin)
	assert.Equal(t, 0.055, config.FitMax)
	assert.True(t, config.NoDB)
}

func TestLoadConfiguration_JSONC(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.jsonc")
	data := `{
		// fit a narrower window
		"fit_min": 0.01,
		"fit_max": 0.04,
		"provenance": "rec",
		"exp_hist": "W vs Q2/vx_vs_vy_sec1", // trailing comma below
	}`
	require.NoError(t, os.WriteFile(filename, []byte(data), 0o644))

	config, err := LoadConfiguration(filename)
	require.NoError(t, err)
	assert.Equal(t, 0.01, config.FitMin)
	assert.Equal(t, 0.04, config.FitMax)
	assert.Equal(t, "rec", config.Provenance)
	assert.Equal(t, "W vs Q2/vx_vs_vy_sec1", config.ExpHist)
	assert.Equal(t, "W vs Q2/corr_vx_vs_vy", config.SimHist)
}

func TestLoadConfiguration_Env(t *testing.T) {
	t.Setenv("ANALYSIS_VERBOSITY", "2")
	t.Setenv("ANALYSIS_NO_DB", "false")
	t.Setenv("ANALYSIS_DB_DRIVER", "sqlite")

	config, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, 2, config.Verbosity)
	assert.False(t, config.NoDB)
	assert.Equal(t, "sqlite", config.DBDriver)
}

func TestLoadConfiguration_Errors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)

	filename := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"fit_min": 0.1, "fit_max": 0.05}`), 0o644))
	_, err = LoadConfiguration(filename)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filename, []byte(`{"fit_min": `), 0o644))
	_, err = LoadConfiguration(filename)
	assert.Error(t, err)
}

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(message, module string) {
	l.infos = append(l.infos, module+": "+message)
}

func (l *recordingLogger) Error(message string) {
	l.errors = append(l.errors, message)
}

func TestPrintConfiguration(t *testing.T) {
	l := &recordingLogger{}
	config := DefaultConfiguration()
	PrintConfiguration(config, l)
	assert.Contains(t, l.infos, "config: No DB: true")

	l = &recordingLogger{}
	config.NoDB = false
	PrintConfiguration(config, l)
	assert.Contains(t, l.infos, "config: DB driver: mysql")
}
