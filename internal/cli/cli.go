package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/gypcmake/internal/app"
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

// envPrefix namespaces the environment fallbacks of every flag.
const envPrefix = "GYPCMAKE_"

func envString(name, def string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envBool(name string, def bool) bool {
	v := envString(name, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Ignoring malformed boolean environment variable.", "name", envPrefix+name, "value", v)
		return def
	}
	return b
}

// loadDotEnv copies the variables of the env file at path into the process
// environment without overriding what is already set. A missing file is
// fine; an unreadable or malformed one is reported and skipped.
func loadDotEnv(path string) {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Ignoring unusable .env file.", "path", path, "error", err)
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Values from a .env file in the working directory and GYPCMAKE_*
// variables become flag defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	loadDotEnv(".env")

	flagSet := flag.NewFlagSet("gypcmake", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gypcmake - Translate a GYP target graph snapshot into CMake scripts.

Usage:
  gypcmake [options] [SNAPSHOT]

Arguments:
  SNAPSHOT
    Path to a gyp_analysis.json (or .yaml) file, or a directory of them.

Environment:
  Every option can be preset with GYPCMAKE_<NAME>, e.g. GYPCMAKE_OUT or
  GYPCMAKE_LOG_LEVEL. A .env file in the working directory is read first.

Options:
`)
		flagSet.PrintDefaults()
	}

	snapshotFlag := flagSet.String("snapshot", envString("SNAPSHOT", ""), "Path to the snapshot file or directory.")
	sFlag := flagSet.String("s", "", "Path to the snapshot file or directory (shorthand).")
	outFlag := flagSet.String("out", envString("OUT", "."), "Directory the CMake tree is written to.")
	oFlag := flagSet.String("o", "", "Output directory (shorthand).")
	configFlag := flagSet.String("config", envString("CONFIG", ""), "Path to an HCL settings file.")
	guidFlag := flagSet.String("guid", envString("GUID", ""), "Fixed generated-root token. Random per run when empty.")
	parallelFlag := flagSet.Bool("parallel", envBool("PARALLEL", false), "Translate platforms concurrently.")
	checkFlag := flagSet.Bool("check", envBool("CHECK", false), "Compare with the existing output instead of writing it.")
	cleanFlag := flagSet.Bool("clean", envBool("CLEAN", false), "Remove previously generated CMake files first.")
	logFormatFlag := flagSet.String("log-format", envString("LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envString("LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	} else if *snapshotFlag != "" {
		path = *snapshotFlag
	}
	slog.Debug("Snapshot path determined.", "path", path)

	if path == "" {
		slog.Debug("No snapshot path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "only one snapshot path may be given"}
	}

	outDir := *outFlag
	if *oFlag != "" {
		outDir = *oFlag
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
		SnapshotPath: path,
		OutDir:       outDir,
		SettingsPath: *configFlag,
		Token:        *guidFlag,
		Parallel:     *parallelFlag,
		Check:        *checkFlag,
		Clean:        *cleanFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
