// FILE: logsift/src/cmd/logsift/flags.go
package main

import (
	"flag"
	"fmt"
	"os"

	"logsift/src/internal/config"
)

// Command-line flags
var (
	// General flags
	configFile  = flag.String("config", "", "Config file path")
	column      = flag.String("column", "", "Header name of the message column (overrides config)")
	showVersion = flag.Bool("version", false, "Show version information")
	quiet       = flag.Bool("quiet", false, "Suppress diagnostic output")

	// Output flags
	outputTarget = flag.String("output", "", "Output target: stdout, file (overrides config)")
	outputFile   = flag.String("output-file", "", "Output file path (implies -output file)")
	serve        = flag.Bool("serve", false, "Stream formatted lines over HTTP (SSE) instead of exiting")

	// Logging flags
	logOutput = flag.String("log-output", "", "Log output: stderr, stdout, file, none (overrides config)")
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
)

// FlagConfig carries parsed command-line state into main.
type FlagConfig struct {
	ConfigFile  string
	InputPath   string
	Quiet       bool
	ShowVersion bool
	Overrides   config.Overrides
}

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "logsift - Structured Trace Log Reformatter\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.csv>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Reads the CSV export, extracts the JSON record embedded in the\n")
	fmt.Fprintf(os.Stderr, "message column of each row and prints one line per row with\n")
	fmt.Fprintf(os.Stderr, "integer fields in hexadecimal. Use '-' to read from stdin.\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -column string\n\tHeader name of the message column (default: ExtractedMessage)\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress diagnostic output\n")

	fmt.Fprintf(os.Stderr, "\nOutput:\n")
	fmt.Fprintf(os.Stderr, "  -output string\n\tOutput target: stdout, file (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -output-file string\n\tOutput file path (implies -output file)\n")
	fmt.Fprintf(os.Stderr, "  -serve\n\tStream formatted lines over HTTP (SSE) instead of exiting\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: stderr, stdout, file, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Reformat a CSV export to stdout\n")
	fmt.Fprintf(os.Stderr, "  %s trace-export.csv\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Read from stdin, write to a file\n")
	fmt.Fprintf(os.Stderr, "  %s -output-file formatted.log -\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Serve the formatted lines over HTTP on the configured port\n")
	fmt.Fprintf(os.Stderr, "  %s -serve trace-export.csv\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  LOGSIFT_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  LOGSIFT_CONFIG_DIR   Config directory\n")
}

func parseFlags() (*FlagConfig, error) {
	flag.Parse()

	// Validate log-output flag if provided
	if *logOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true, "none": true,
		}
		if !validOutputs[*logOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: stderr, stdout, file, none)", *logOutput)
		}
	}

	// Validate log-level flag if provided
	if *logLevel != "" {
		if _, err := parseLogLevel(*logLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", *logLevel)
		}
	}

	// Validate output flag if provided
	if *outputTarget != "" && *outputTarget != "stdout" && *outputTarget != "file" {
		return nil, fmt.Errorf("invalid output: %s (valid: stdout, file)", *outputTarget)
	}

	fc := &FlagConfig{
		ConfigFile:  *configFile,
		Quiet:       *quiet,
		ShowVersion: *showVersion,
		Overrides: config.Overrides{
			Column:     *column,
			Output:     *outputTarget,
			OutputFile: *outputFile,
			Serve:      *serve,
			LogLevel:   *logLevel,
			LogOutput:  *logOutput,
		},
	}

	if fc.ShowVersion {
		return fc, nil
	}

	switch flag.NArg() {
	case 0:
		return nil, fmt.Errorf("missing input file argument (use '-' for stdin)")
	case 1:
		fc.InputPath = flag.Arg(0)
	default:
		return nil, fmt.Errorf("too many arguments: expected one input file")
	}

	return fc, nil
}
