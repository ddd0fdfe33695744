package bootstrap

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/config"
)

// logOutput is the writer behind every logger the app hands out. Swapping
// its target changes the log format without rebuilding the loggers.
type logOutput struct {
	base io.Writer

	mu  sync.RWMutex
	out io.Writer
}

func (o *logOutput) Write(p []byte) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.out.Write(p)
}

// apply sets the global level and the output format.
func (o *logOutput) apply(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	w := o.base
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: o.base, TimeFormat: time.RFC3339}
	}
	o.mu.Lock()
	o.out = w
	o.mu.Unlock()
}

func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, *logOutput) {
	return setupLoggerTo(cfg, os.Stdout)
}

func setupLoggerTo(cfg config.LoggingConfig, base io.Writer) (zerolog.Logger, *logOutput) {
	out := &logOutput{base: base}
	out.apply(cfg)
	return zerolog.New(out).With().Timestamp().Logger(), out
}
