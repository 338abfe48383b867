// Package logger holds the process-wide JSON log of a foilopt workspace, written
// to <workspace>/.foilopt/logs/foilopt.log.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aalvaropc/foilopt/internal/buildinfo"
)

const fileName = "foilopt.log"

type Config struct {
	Root  string // workspace root; "" means the working directory
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
	logPath string
)

// Dir is the log directory of the workspace at root.
func Dir(root string) string {
	return filepath.Join(root, ".foilopt", "logs")
}

// Setup opens the workspace log and installs it as the global logger. On failure
// the global logger discards everything and the error is returned.
func Setup(cfg Config) (func() error, error) {
	root := "."
	if strings.TrimSpace(cfg.Root) != "" {
		root = filepath.Clean(cfg.Root)
	}

	dir := Dir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.Debug,
		ReplaceAttr: replaceAttr,
	})

	// Every line carries the build so logs from mixed versions can be told apart.
	l := slog.New(h).With("version", buildinfo.Version)

	mu.Lock()
	global = l
	logFile = f
	logPath = path
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = discard()
		return cerr
	}

	return cleanup, nil
}

// replaceAttr writes times in UTC and sources as file:line.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch {
	case a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime:
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	case a.Key == slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			a.Value = slog.StringValue(filepath.Base(src.File) + ":" + strconv.Itoa(src.Line))
		}
	}
	return a
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// For returns the global logger tagged with the command or screen that logs.
func For(component string) *slog.Logger {
	return L().With("component", component)
}

// Path is the open log file, or "" when logging is disabled.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	global = discard()
	logFile = nil
	logPath = ""
}
