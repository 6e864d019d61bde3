// Package main implements the dbfconv binary: it converts a dBASE III
// (DBF version 3) file to CSV.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log/level"

	"github.com/dbfconv/dbfconv"
	"github.com/dbfconv/dbfconv/internal/config"
	"github.com/dbfconv/dbfconv/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		inPath      string
		outPath     string
		encoding    string
		configFile  string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&inPath, "input", "", "Path to the DBF input file")
	flag.StringVar(&outPath, "output", "", "Path to the CSV output file")
	flag.StringVar(&encoding, "encoding", "", "Character encoding of the input (default latin1)")
	flag.StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Log verbosity: trace, debug, info, warn, error, fatal")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dbfconv - DBF v3 to CSV converter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dbfconv [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dbfconv --input orders.dbf --output orders.csv\n")
		fmt.Fprintf(os.Stderr, "  dbfconv --input orders.dbf --output orders.csv --config /etc/dbfconv/config.yaml\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("dbfconv version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if inPath == "" || outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbfconv: %v\n", err)
		os.Exit(1)
	}
	if encoding != "" {
		cfg.Encoding = encoding
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbfconv: %v\n", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "run started",
		"input", inPath, "output", outPath, "encoding", cfg.Encoding)

	rows, err := dbfconv.ConvertFile(logger, inPath, outPath, cfg.Encoding)
	if err != nil {
		logging.Fatal(logger).Log("msg", "run aborted", "err", err)
		closeLog()
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "run finished", "rows", rows)
	closeLog()
}
