package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/engine"
)

func main() {
	var (
		format   = flag.String("format", "netcdf", "Output file format (netcdf, hdf4, hdf5)")
		actions  = flag.String("actions", "", "Action list to apply after reading")
		options  = flag.String("options", "", "Ingestion options (name=value;name=value)")
		ingest   = flag.Bool("ingest", false, "Read a non-native product file")
		encoding = flag.String("encoding", "", "String encoding for attribute text")
		verbose  = flag.Bool("verbose", false, "Log engine activity to stderr")
		version  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(harp.Version())
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: harpconvert [-format netcdf|hdf4|hdf5] [-actions list] [-ingest [-options list]] <input> <output>")
		fmt.Fprintln(os.Stderr, "       harpconvert -version")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
		defer logger.Sync()
	}

	if err := run(flag.Arg(0), flag.Arg(1), *format, *actions, *options, *ingest, *encoding); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, formatName, actions, options string, ingest bool, encoding string) error {
	if encoding != "" {
		if err := harp.SetEncoding(encoding); err != nil {
			return err
		}
	}

	format, err := harp.ParseFileFormat(formatName)
	if err != nil {
		return err
	}

	var p *harp.Product
	if ingest {
		p, err = harp.IngestProduct(input, actions, options)
	} else {
		p, err = harp.ImportProduct(input, actions)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	p.AppendHistory(historyLine(os.Args))

	if err := harp.ExportProduct(p, output, format); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

// historyLine rebuilds the invocation with the executable path reduced to
// its base name, the line appended to the product's command log.
func historyLine(argv []string) string {
	line := make([]string, len(argv))
	line[0] = filepath.Base(argv[0])
	copy(line[1:], argv[1:])
	return strings.Join(line, " ")
}
