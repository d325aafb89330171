// Package log provides session logging for the auto-save engine.
// Failures in the engine are traced here rather than surfaced to callers;
// enable verbose tracing by setting SNAPKEEP_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	logFile *os.File
)

var logFileName = filepath.Join(os.TempDir(), "snapkeep.log")

// Initialize sets up the package loggers. When toFile is true, log output goes
// to a file in the system temp directory; otherwise it goes to stderr.
// Call Close before exit when file logging is enabled.
func Initialize(toFile bool) {
	var w io.Writer = os.Stderr
	if toFile {
		f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %s\n", err)
		} else {
			logFile = f
			w = f
		}
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(w, "INFO: ", flags)
	WarningLog = log.New(w, "WARNING: ", flags)
	ErrorLog = log.New(w, "ERROR: ", flags)

	initDebug()
}

// Close closes the log file if one was opened.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	closeDebug()
}

func init() {
	// Loggers must never be nil even if Initialize is not called.
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(io.Discard, "", 0)
}
