// Package logging provides the compiler pipeline's structured logger, a
// thin wrapper over zerolog (github.com/rs/zerolog) in the style the
// teacher repo's internal/backend/*/cs solvers log through (Debug/Err
// events with structured fields, e.g. r1cs_sparse.go's
// `log.Debug().Dur("took", ...).Msg(...)`).
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package-wide structured logger, defaulting to a
// human-readable console writer on stderr (overridden by SetOutput, e.g.
// for JSON logs in production).
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// SetOutput redirects the package logger to w, using structured JSON
// rather than the default console writer (for CLI tools that want
// machine-parseable logs).
func SetOutput(w io.Writer) {
	Logger = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel adjusts the minimum logged severity.
func SetLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}

// Stage logs one named compiler pipeline stage (circuit/R1CS/QAP/CRS/
// prove/verify) at debug level with its wall-clock duration, mirroring the
// teacher's "constraint system solver done" pattern.
func Stage(name string, d time.Duration) {
	Logger.Debug().Str("stage", name).Dur("took", d).Msg("pipeline stage done")
}
