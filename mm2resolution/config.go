package main

import (
	"fmt"

	analysis "github.com/clas12-go/analysis_go/pkg"
)

func loadConfiguration(filename string) (analysis.Configuration, error) {
	return analysis.LoadConfiguration(filename)
}

func printConfiguration(config analysis.Configuration, logger analysis.Logger) {
	logger.Info(fmt.Sprintf("MM2 histogram: %s", config.MM2Hist), "config")
	logger.Info(fmt.Sprintf("Fit range: [%g, %g]", config.FitMin, config.FitMax), "config")
	logger.Info(fmt.Sprintf("Draw range: [%g, %g]", config.DrawMin, config.DrawMax), "config")
	logger.Info(fmt.Sprintf("Canvas: %gx%g in", config.CanvasWidth, config.CanvasHeight), "config")
	analysis.PrintConfiguration(config, logger)
}
