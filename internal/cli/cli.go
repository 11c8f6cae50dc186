package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/tabgrid/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tabgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tabgrid - An editable grid for CSV and XLSX data with typed, required columns.

Usage:
  tabgrid [options] [DATA_PATH]

Arguments:
  DATA_PATH
    A .csv, .tsv, .txt or .xlsx file to import.

Options:
`)
		flagSet.PrintDefaults()
	}

	tableFlag := flagSet.String("table", "", "Path to the HCL table definition file or directory.")
	tFlag := flagSet.String("t", "", "Path to the HCL table definition (shorthand).")
	dataFlag := flagSet.String("data", "", "Path to the data file. Overrides DATA_PATH.")
	viewFlag := flagSet.String("view", "", "Path to the HCL view file, loaded on start and saved on exit.")
	separatorFlag := flagSet.String("separator", "", "Field separator: 'auto', 'comma', 'tab' or 'semicolon'.")
	skipRowsFlag := flagSet.Int("skip-rows", 0, "Number of lines to skip before the header.")
	maxRowsFlag := flagSet.Int("max-rows", 0, "Maximum number of data rows to import. 0 is unlimited.")
	noHeaderFlag := flagSet.Bool("no-header", false, "The data file has no header row.")
	readOnlyFlag := flagSet.Bool("read-only", false, "Open the table read only.")
	headlessFlag := flagSet.Bool("headless", false, "Print the table once instead of starting the terminal UI.")
	widthFlag := flagSet.Int("width", 0, "Headless output width in columns. 0 does not truncate.")
	heightFlag := flagSet.Int("height", app.DefaultHeight, "Headless output height in row lines.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Write logs to this file. The terminal UI discards logs otherwise.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	tablePath := *tableFlag
	if tablePath == "" {
		tablePath = *tFlag
	}
	dataPath := *dataFlag
	if dataPath == "" && flagSet.NArg() > 0 {
		dataPath = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}
	slog.Debug("Paths determined.", "table", tablePath, "data", dataPath)

	if tablePath == "" && dataPath == "" {
		slog.Debug("No table or data path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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

	cfg := app.Config{
		TablePath: tablePath,
		DataPath:  dataPath,
		ViewPath:  *viewFlag,
		Separator: *separatorFlag,
		NoHeader:  *noHeaderFlag,
		ReadOnly:  *readOnlyFlag,
		Headless:  *headlessFlag,
		Width:     *widthFlag,
		Height:    *heightFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		LogFile:   *logFileFlag,
	}
	// Unset import flags leave the table definition in charge.
	if explicit["skip-rows"] {
		cfg.SkipRows = skipRowsFlag
	}
	if explicit["max-rows"] {
		cfg.MaxRows = maxRowsFlag
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
