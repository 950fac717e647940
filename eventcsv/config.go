package main

import (
	"fmt"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

func loadConfiguration(filename string) (analysis.Configuration, error) {
	return analysis.LoadConfiguration(filename)
}

func printConfiguration(config analysis.Configuration, logger analysis.Logger) {
	logger.Info(fmt.Sprintf("Tree name: %s", config.TreeName), "config")
	logger.Info(fmt.Sprintf("Table out: %s", config.TableOut), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	analysis.PrintConfiguration(config, logger)
}
