// Package logger holds the process-wide zap logger used by the CLI.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It discards everything until Initialize
	// is called.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether the JSON encoder is active.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Logs go to stderr so command output
// on stdout stays machine readable.
func Initialize(verbose, jsonOutput bool) {
	JSONOutput = jsonOutput
	Logger = New(zapcore.Lock(os.Stderr), verbose, jsonOutput)
}

// New builds a logger writing to w. Verbose enables debug entries.
func New(w zapcore.WriteSyncer, verbose, jsonOutput bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, w, level)).Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger.Sync()
}
