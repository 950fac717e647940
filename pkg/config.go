package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/tailscale/hujson"
)

type Configuration struct {
	Verbosity  int    `json:"verbosity" env:"ANALYSIS_VERBOSITY"`
	Provenance string `json:"provenance" env:"ANALYSIS_PROVENANCE"`

	TreeName         string `json:"tree_name"`
	TableOut         string `json:"table_out"`
	CompressionLevel int    `json:"compression_level"`

	ExpHist         string `json:"exp_hist"`
	SimHist         string `json:"sim_hist"`
	ComparisonName  string `json:"comparison_name"`
	ComparisonTitle string `json:"comparison_title"`

	MM2Hist      string  `json:"mm2_hist"`
	FitMin       float64 `json:"fit_min"`
	FitMax       float64 `json:"fit_max"`
	DrawMin      float64 `json:"draw_min"`
	DrawMax      float64 `json:"draw_max"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`

	NoDB     bool   `json:"no_db" env:"ANALYSIS_NO_DB"`
	DBDriver string `json:"db_driver" env:"ANALYSIS_DB_DRIVER"`
	Host     string `json:"host" env:"ANALYSIS_DB_HOST"`
	User     string `json:"user" env:"ANALYSIS_DB_USER"`
	Passwd   string `json:"pass" env:"ANALYSIS_DB_PASS"`
	DBName   string `json:"dbname" env:"ANALYSIS_DB_NAME"`
	DBPath   string `json:"db_path" env:"ANALYSIS_DB_PATH"`
}

func DefaultConfiguration() Configuration {
	var config Configuration

	config.Verbosity = 0
	config.Provenance = ""
	config.TreeName = "events"
	config.TableOut = ""
	config.CompressionLevel = 4
	config.ExpHist = "W vs Q2/vx_vs_vy"
	config.SimHist = "W vs Q2/corr_vx_vs_vy"
	config.ComparisonName = "comparison_hist"
	config.ComparisonTitle = "Comparison of vx vs vy (exp / sim_corr)"
	config.MM2Hist = "MM2/MM2"
	config.FitMin = 0.005
	config.FitMax = 0.055
	config.DrawMin = -0.1
	config.DrawMax = 0.1
	config.CanvasWidth = 8
	config.CanvasHeight = 6
	config.NoDB = true
	config.DBDriver = "mysql"
	config.Host = "localhost"
	config.User = "analysis"
	config.Passwd = ""
	config.DBName = "ANALYSIS"
	config.DBPath = "analysis.db"
	return config
}

// LoadConfiguration returns the defaults overridden by the (JSONC) file, if
// any, and then by ANALYSIS_* environment variables.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return config, &ErrOpenFile{Filename: filename, Err: err}
		}
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return config, fmt.Errorf("invalid JSONC in %s: %w", filename, err)
		}
		err = json.Unmarshal(standardized, &config)
		if err != nil {
			return config, fmt.Errorf("invalid JSON in %s: %w", filename, err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("parse env: %w", err)
	}

	if config.FitMin >= config.FitMax {
		return config, fmt.Errorf("invalid fit window [%g, %g]", config.FitMin, config.FitMax)
	}
	return config, nil
}

// PrintConfiguration logs the settings shared by every executable.
func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Provenance override: %q", config.Provenance), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	if !config.NoDB {
		logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
		logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
		logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
		logger.Info(fmt.Sprintf("DB path: %s", config.DBPath), "config")
	}
}
