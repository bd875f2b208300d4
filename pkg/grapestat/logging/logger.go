// Package logging builds the zap loggers used by grapestat.
//
// Library code logs through zap.L(), which discards output until a caller
// installs a logger:
//
//	logger, _ := logging.New(logging.Options{Verbose: true})
//	defer logging.Install(logger)()
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a logger.
type Options struct {
	// Verbose enables debug level output.
	Verbose bool
	// JSON selects structured JSON output instead of the console encoder.
	JSON bool
}

// New builds a logger writing to stderr.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if opts.JSON {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !opts.Verbose
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Install replaces the global logger and returns a function restoring the
// previous one. The returned function also flushes l.
func Install(l *zap.Logger) func() {
	undo := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		undo()
	}
}
