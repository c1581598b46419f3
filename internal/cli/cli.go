package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/typecollect/internal/app"
	"github.com/specialistvlad/typecollect/internal/output"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, out io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("typecollect", flag.ContinueOnError)
	flagSet.SetOutput(out)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprintf(out, `
typecollect - Resolves HCL type declarations into Avro schemas.

Usage:
  typecollect [options] [INPUT...]

Arguments:
  INPUT
    A .hcl file or a directory containing .hcl files. When omitted, the
    inputs listed in the project file are used.

Output formats: %s

Options:
`, strings.Join(formats(), ", "))
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the project file. Defaults to ./typecollect.hcl when present.")
	rootFlag := flagSet.String("root", "", "Directory that namespaces are derived relative to.")
	outputFlag := flagSet.String("output", "", "File to write the schemas to. Standard output when empty or '-'.")
	oFlag := flagSet.String("o", "", "File to write the schemas to (shorthand).")
	formatFlag := flagSet.String("format", "", "Output format. Defaults to 'json'.")
	compactFlag := flagSet.Bool("compact", false, "Write compact output.")
	prefixFlag := flagSet.String("namespace-prefix", "", "Prefix prepended to every derived namespace.")
	metricsFlag := flagSet.String("metrics-file", "", "File to write run metrics to in the Prometheus text format.")
	watchFlag := flagSet.Bool("watch", false, "Regenerate the output whenever an input file changes.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the health check and metrics server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	outPath := *outputFlag
	if outPath == "" {
		outPath = *oFlag
	}

	format := strings.ToLower(*formatFlag)
	if format != "" && !slices.Contains(formats(), format) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format: must be one of %s", strings.Join(formats(), ", "))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      *configFlag,
		Inputs:          flagSet.Args(),
		Root:            *rootFlag,
		OutputPath:      outPath,
		Format:          format,
		Compact:         *compactFlag,
		NamespacePrefix: *prefixFlag,
		MetricsFile:     *metricsFlag,
		Watch:           *watchFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func formats() []string {
	return output.Default().List()
}
