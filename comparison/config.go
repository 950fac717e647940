package main

import (
	"fmt"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

func loadConfiguration(filename string) (analysis.Configuration, error) {
	return analysis.LoadConfiguration(filename)
}

func printConfiguration(config analysis.Configuration, logger analysis.Logger) {
	logger.Info(fmt.Sprintf("Experimental histogram: %s", config.ExpHist), "config")
	logger.Info(fmt.Sprintf("Simulated histogram: %s", config.SimHist), "config")
	logger.Info(fmt.Sprintf("Output name: %s", config.ComparisonName), "config")
	logger.Info(fmt.Sprintf("Output title: %s", config.ComparisonTitle), "config")
	analysis.PrintConfiguration(config, logger)
}
