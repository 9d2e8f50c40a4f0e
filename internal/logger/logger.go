package logger

import (
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "time"

    "github.com/rs/zerolog"
)

// These constants are the string representation of the log levels
const (
    // DebugLevel defines debug log level
    DebugLevel = "debug"
    // InfoLevel defines info log level
    InfoLevel = "info"
    // WarnLevel defines warn log level
    WarnLevel = "warn"
    // ErrorLevel defines error log level
    ErrorLevel = "error"
    // Disabled disables the logger
    Disabled = "disabled"
)

var (
    once sync.Once
    // Nop until Init so packages and tests can log without setup
    logger = zerolog.Nop()
)

// Config holds the configuration for the logger
type Config struct {
    Level  string
    Output string // "stdout", "stderr", or file path
    Pretty bool   // Enable pretty logging for development
}

// Init initializes the global logger. Only the first call has an effect.
func Init(cfg Config) error {
    var err error
    once.Do(func() {
        level, parseErr := zerolog.ParseLevel(strings.ToLower(cfg.Level))
        if parseErr != nil {
            level = zerolog.InfoLevel
        }
        zerolog.SetGlobalLevel(level)
        zerolog.TimeFieldFormat = time.RFC3339Nano

        var output io.Writer
        output, err = openOutput(cfg.Output)
        if err != nil {
            return
        }

        if cfg.Pretty {
            logger = zerolog.New(zerolog.ConsoleWriter{
                Out:        output,
                TimeFormat: "2006-01-02 15:04:05",
            })
        } else {
            logger = zerolog.New(output)
        }

        logger = logger.With().
            Timestamp().
            Caller().
            Logger()

        zerolog.DefaultContextLogger = &logger
    })
    return err
}

func openOutput(output string) (io.Writer, error) {
    switch output {
    case "", "stdout":
        return os.Stdout, nil
    case "stderr":
        return os.Stderr, nil
    }

    dir := filepath.Dir(output)
    if dir != "." && dir != string(filepath.Separator) {
        if err := os.MkdirAll(dir, 0755); err != nil {
            return nil, fmt.Errorf("failed to create log directory: %w", err)
        }
    }

    file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
    if err != nil {
        return nil, fmt.Errorf("failed to open log file: %w", err)
    }
    return file, nil
}

// Get returns the logger instance
func Get() *zerolog.Logger {
    return &logger
}

// With returns a child logger carrying the given component name
func With(component string) *zerolog.Logger {
    l := logger.With().Str("component", component).Logger()
    return &l
}
