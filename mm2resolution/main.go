package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	analysis "github.com/clas12-go/analysis_go/pkg"
	"github.com/clas12-go/analysis_go/pkg/histfile"
)

const usage = "Usage: mm2resolution [-config file] <input_file> <output_file>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := analysis.NewStdLogger(stdout, stderr)

	flags := flag.NewFlagSet("mm2resolution", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFilename := flags.String("config", "", "Configuration file path")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	inFile, outFile := flags.Arg(0), flags.Arg(1)

	configuration, err := loadConfiguration(*configFilename)
	if err != nil {
		logger.Error(fmt.Errorf("Error reading configuration file: %w", err).Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		analysis.SetLogger(logger)
		printConfiguration(configuration, logger)
	}

	res, err := resolution(configuration, inFile, outFile)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Histogram std dev: %.4f", res.StdDev), "main")
		logger.Info(fmt.Sprintf("Gaussian fit: constant %.4g, mean %.4g, sigma %.4f",
			res.Constant, res.Mean, res.Sigma), "main")
	}

	analysis.CatalogRun(configuration, analysis.RunEntry{
		Pipeline:   "mm2resolution",
		InputPath:  inFile,
		OutputPath: outFile,
		Provenance: analysis.ClassifySample(filepath.Base(inFile)).String(),
		StdDev:     res.StdDev,
		Sigma:      res.Sigma,
	}, logger)
	return 0
}

func resolution(configuration analysis.Configuration, inFile, outFile string) (analysis.Resolution, error) {
	in, err := histfile.Open(inFile)
	if err != nil {
		return analysis.Resolution{}, err
	}
	defer in.Close()

	h, err := in.H1D(configuration.MM2Hist)
	if err != nil {
		return analysis.Resolution{}, err
	}
	res, err := analysis.ExtractResolution(h, configuration.FitMin, configuration.FitMax)
	if err != nil {
		return res, err
	}

	opts := analysis.NewRenderOptions(configuration)
	if analysis.IsImageFile(outFile) {
		kind := analysis.ClassifySample(filepath.Base(inFile))
		return res, analysis.SaveResolution(outFile, h, res, kind, opts)
	}

	out, err := histfile.Create(outFile)
	if err != nil {
		return res, err
	}
	if err := analysis.WriteResolution(out, h, res, opts); err != nil {
		out.Close()
		return res, err
	}
	return res, out.Close()
}
