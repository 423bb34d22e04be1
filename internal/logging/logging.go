package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thenoetrevino/clubhouse/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// IsDebug reports whether CLUBHOUSE_DEBUG is set to a true value
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv(config.EnvPrefix + "DEBUG"))
	return debug
}

// DefaultPath returns $XDG_STATE_HOME/clubhouse/clubhouse.log, falling back
// to ~/.local/state.
func DefaultPath() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "clubhouse", "clubhouse.log"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state", "clubhouse", "clubhouse.log"), nil
}

// NewLogger builds a charm logger writing to w with the configured format and level.
func NewLogger(w io.Writer, cfg config.LogConfig) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if IsDebug() {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}
	return logger
}

// Init initializes the logging system. Logs are appended to cfg.Path or
// DefaultPath. The returned file must be closed on exit.
func Init(cfg config.LogConfig) (*os.File, error) {
	logPath := cfg.Path
	if logPath == "" {
		var err error
		if logPath, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// Open log file in append mode
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	Logger = slog.New(NewLogger(file, cfg))
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	stdlog.SetOutput(file)
	stdlog.SetFlags(stdlog.LstdFlags)

	return file, nil
}
