package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	analysis "github.com/clas12-go/analysis_go/pkg"
	"github.com/clas12-go/analysis_go/pkg/histfile"
)

const usage = "Usage: comparison [-config file] <exp_file> <sim_file> <output_file>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := analysis.NewStdLogger(stdout, stderr)

	flags := flag.NewFlagSet("comparison", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFilename := flags.String("config", "", "Configuration file path")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 3 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	expFile, simFile, outFile := flags.Arg(0), flags.Arg(1), flags.Arg(2)

	configuration, err := loadConfiguration(*configFilename)
	if err != nil {
		logger.Error(fmt.Errorf("Error reading configuration file: %w", err).Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		analysis.SetLogger(logger)
		printConfiguration(configuration, logger)
	}

	if err := compare(configuration, expFile, simFile, outFile); err != nil {
		logger.Error(err.Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Saved %q to %s", configuration.ComparisonName, outFile), "main")
	}

	analysis.CatalogRun(configuration, analysis.RunEntry{
		Pipeline:   "comparison",
		InputPath:  expFile + "," + simFile,
		OutputPath: outFile,
	}, logger)
	return 0
}

func compare(configuration analysis.Configuration, expFile, simFile, outFile string) error {
	exp, err := histfile.Open(expFile)
	if err != nil {
		return err
	}
	defer exp.Close()

	sim, err := histfile.Open(simFile)
	if err != nil {
		return err
	}
	defer sim.Close()

	ratio, err := analysis.Compare(exp, sim, analysis.NewComparisonConfig(configuration))
	if err != nil {
		return err
	}

	// The output only exists once both inputs were read
	out, err := histfile.Create(outFile)
	if err != nil {
		return err
	}
	if err := out.PutH2D(configuration.ComparisonName, ratio); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
