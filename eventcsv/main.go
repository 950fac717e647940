package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	analysis "github.com/clas12-go/analysis_go/pkg"
	"github.com/clas12-go/analysis_go/pkg/histfile"
)

const usage = "Usage: eventcsv [-config file] <input_file.root> <output_file.csv>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := analysis.NewStdLogger(stdout, stderr)

	flags := flag.NewFlagSet("eventcsv", flag.ContinueOnError)
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

	provenance, err := resolveProvenance(configuration, inFile)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Provenance: %s", provenance), "main")
	}

	nEvents, err := convert(configuration, provenance, inFile, outFile, logger)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Events written: %d", nEvents), "main")
	}

	analysis.CatalogRun(configuration, analysis.RunEntry{
		Pipeline:   "eventcsv",
		InputPath:  inFile,
		OutputPath: outFile,
		Provenance: provenance.String(),
		Entries:    int64(nEvents),
	}, logger)
	return 0
}

// The provenance is fixed once per run: every row of the output shares it.
func resolveProvenance(configuration analysis.Configuration, inFile string) (analysis.Provenance, error) {
	if configuration.Provenance != "" {
		return analysis.ParseProvenance(configuration.Provenance)
	}
	return analysis.ResolveProvenance(filepath.Base(inFile)), nil
}

func convert(configuration analysis.Configuration, provenance analysis.Provenance,
	inFile, outFile string, logger analysis.Logger) (int, error) {
	reader, err := analysis.OpenEvents(inFile, configuration.TreeName)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	if missing := analysis.MissingBranches(provenance, reader.Branches()); len(missing) > 0 && configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Branches not in tree, written as zero: %s", strings.Join(missing, ", ")), "main")
	}

	csvFile := analysis.CreateCSVFile(outFile, provenance)
	sinks := analysis.MultiSink{csvFile}
	if configuration.TableOut != "" {
		table, err := histfile.CreateEvents(configuration.TableOut, provenance, configuration.CompressionLevel)
		if err != nil {
			csvFile.Discard()
			return 0, err
		}
		sinks = append(sinks, table)
	}

	n, err := reader.Read(sinks.WriteRecord)
	if err != nil {
		sinks.Discard()
		return n, err
	}
	return n, sinks.Close()
}
